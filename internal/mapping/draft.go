package mapping

import (
	"fmt"

	"github.com/google/uuid"

	dec "github.com/rezonia/earsiv-client/internal/decimal"
	"github.com/rezonia/earsiv-client/internal/model"
	"github.com/rezonia/earsiv-client/internal/validation"
)

// draftKnownKeys is the fixed domain key set the draft mapper consumes;
// anything else passes through to the wire untouched.
var draftKnownKeys = map[string]struct{}{
	"uuid": {}, "documentNumber": {}, "date": {}, "time": {}, "currency": {},
	"currencyRate": {}, "invoiceType": {}, "whichType": {}, "taxOrIdentityNumber": {},
	"buyerTitle": {}, "buyerFirstName": {}, "buyerLastName": {}, "buildingName": {},
	"buildingNumber": {}, "doorNumber": {}, "town": {}, "taxOffice": {}, "country": {},
	"fullAddress": {}, "district": {}, "city": {}, "postNumber": {}, "phoneNumber": {},
	"faxNumber": {}, "email": {}, "website": {}, "refundTable": {}, "specialBaseAmount": {},
	"specialBasePercent": {}, "specialBaseTaxAmount": {}, "taxType": {}, "products": {},
	"type": {}, "base": {}, "productsTotalPrice": {}, "totalDiscountOrIncrement": {},
	"calculatedVAT": {}, "totalTaxes": {}, "includedTaxesTotalPrice": {}, "paymentPrice": {},
	"note": {}, "orderNumber": {}, "orderDate": {}, "waybillNumber": {}, "waybillDate": {},
	"receiptNumber": {}, "receiptDate": {}, "receiptTime": {}, "receiptType": {},
	"zReportNumber": {}, "okcSerialNumber": {},
}

var draftProductKnownKeys = map[string]struct{}{
	"name": {}, "quantity": {}, "unitType": {}, "unitPrice": {}, "price": {},
	"vatRate": {}, "taxRate": {}, "totalAmount": {}, "vatAmount": {}, "vatAmountOfTax": {},
	"specialBaseAmount": {}, "discountOrIncrement": {}, "discountOrIncrementRate": {},
	"discountOrIncrementAmount": {}, "discountOrIncrementReason": {},
}

// DraftInvoiceKeys builds the native creation payload from a domain draft
// record. Unlike the read-side mappers this direction is lossy by design:
// monetary fields are serialized to two-decimal strings because the
// creation endpoint rejects bare numbers. All field validation runs here,
// before any request is built.
func DraftInvoiceKeys(value any) (model.Record, error) {
	rec, err := toRecord(value)
	if err != nil {
		return nil, err
	}

	id, err := draftUUID(rec)
	if err != nil {
		return nil, err
	}

	date, err := FormatDate(rec["date"])
	if err != nil {
		return nil, err
	}
	clock, err := FormatClock(rec["time"])
	if err != nil {
		return nil, err
	}

	for _, check := range []struct {
		field string
	}{{"base"}, {"paymentPrice"}, {"productsTotalPrice"}, {"includedTaxesTotalPrice"}} {
		if err := validation.GreaterThan(valOr(rec, check.field, nil), 0, check.field); err != nil {
			return nil, err
		}
	}

	products, err := draftProducts(rec["products"])
	if err != nil {
		return nil, err
	}

	refunds, err := draftRefunds(rec["refundTable"])
	if err != nil {
		return nil, err
	}

	out := make(model.Record, len(rec)+16)
	for k, v := range rec {
		if _, known := draftKnownKeys[k]; !known {
			out[k] = v
		}
	}

	note, _ := rec["note"].(string)
	if note == "" {
		note = AmountToText(rec["paymentPrice"])
	}

	out["faturaUuid"] = id
	out["belgeNumarasi"] = strOr(rec, "documentNumber", "")
	out["faturaTarihi"] = date
	out["saat"] = clock
	out["paraBirimi"] = strOr(rec, "currency", model.DefaultCurrency)
	out["dovzTLkur"] = dec.Fixed2(valOr(rec, "currencyRate", 0.0))
	out["faturaTipi"] = strOr(rec, "invoiceType", string(model.InvoiceTypeSale))
	out["hangiTip"] = strOr(rec, "whichType", model.DefaultWhichType)
	out["vknTckn"] = strOr(rec, "taxOrIdentityNumber", "11111111111")
	out["aliciUnvan"] = strOr(rec, "buyerTitle", "")
	out["aliciAdi"] = strOr(rec, "buyerFirstName", "")
	out["aliciSoyadi"] = strOr(rec, "buyerLastName", "")
	out["binaAdi"] = strOr(rec, "buildingName", "")
	out["binaNo"] = strOr(rec, "buildingNumber", "")
	out["kapiNo"] = strOr(rec, "doorNumber", "")
	out["kasabaKoy"] = strOr(rec, "town", "")
	out["vergiDairesi"] = strOr(rec, "taxOffice", "")
	out["ulke"] = strOr(rec, "country", model.DefaultCountry)
	out["bulvarcaddesokak"] = strOr(rec, "fullAddress", "")
	out["mahalleSemtIlce"] = strOr(rec, "district", "")
	out["sehir"] = strOr(rec, "city", "")
	out["postaKodu"] = strOr(rec, "postNumber", "")
	out["tel"] = strOr(rec, "phoneNumber", "")
	out["fax"] = strOr(rec, "faxNumber", "")
	out["eposta"] = strOr(rec, "email", "")
	out["websitesi"] = strOr(rec, "website", "")
	out["iadeTable"] = refunds
	out["ozelMatrahTutari"] = dec.Fixed2(valOr(rec, "specialBaseAmount", 0.0))
	out["ozelMatrahOrani"] = valOr(rec, "specialBasePercent", 0.0)
	out["ozelMatrahVergiTutari"] = dec.Fixed2(valOr(rec, "specialBaseTaxAmount", 0.0))
	out["vergiCesidi"] = strOr(rec, "taxType", " ")
	out["malHizmetTable"] = products
	out["tip"] = strOr(rec, "type", "İskonto")
	out["matrah"] = dec.Fixed2(rec["base"])
	out["malhizmetToplamTutari"] = dec.Fixed2(rec["productsTotalPrice"])
	out["toplamIskonto"] = dec.Fixed2(valOr(rec, "totalDiscountOrIncrement", 0.0))
	out["hesaplanankdv"] = dec.Fixed2(valOr(rec, "calculatedVAT", 0.0))
	out["vergilerToplami"] = dec.Fixed2(valOr(rec, "totalTaxes", 0.0))
	out["vergilerDahilToplamTutar"] = dec.Fixed2(rec["includedTaxesTotalPrice"])
	out["odenecekTutar"] = dec.Fixed2(rec["paymentPrice"])
	out["not"] = note
	out["siparisNumarasi"] = strOr(rec, "orderNumber", "")
	out["irsaliyeNumarasi"] = strOr(rec, "waybillNumber", "")
	out["fisNo"] = strOr(rec, "receiptNumber", "")
	out["fisSaati"] = strOr(rec, "receiptTime", "")
	out["fisTipi"] = strOr(rec, "receiptType", "")
	out["zRaporNo"] = strOr(rec, "zReportNumber", "")
	out["okcSeriNo"] = strOr(rec, "okcSerialNumber", "")

	for domain, native := range map[string]string{
		"orderDate":   "siparisTarihi",
		"waybillDate": "irsaliyeTarihi",
		"receiptDate": "fisTarihi",
	} {
		formatted := ""
		if raw := valOr(rec, domain, nil); raw != nil && raw != "" {
			formatted, err = FormatDate(raw)
			if err != nil {
				return nil, err
			}
		}
		out[native] = formatted
	}

	return out, nil
}

func draftUUID(rec model.Record) (string, error) {
	raw, ok := rec["uuid"]
	if !ok || raw == "" {
		return uuid.NewString(), nil
	}
	id, isString := raw.(string)
	if !isString {
		return "", model.NewValidationError("uuid", raw, "invalid invoice UUID")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", model.NewValidationError("uuid", raw, "invalid invoice UUID")
	}
	return id, nil
}

func draftProducts(raw any) ([]any, error) {
	if raw == nil {
		return nil, model.NewValidationError("products", raw, "must be a non-empty list")
	}
	items, err := recordSlice(raw)
	if err != nil || len(items) == 0 {
		return nil, model.NewValidationError("products", raw, "must be a non-empty list")
	}

	out := make([]any, len(items))
	for i, item := range items {
		mapped, err := draftProduct(item, i)
		if err != nil {
			return nil, err
		}
		out[i] = mapped
	}
	return out, nil
}

// draftProduct maps one line item. A single invalid row fails the whole
// payload; there is no partial success on the creation endpoint.
func draftProduct(item model.Record, index int) (model.Record, error) {
	path := func(field string) string {
		return fmt.Sprintf("products[%d].%s", index, field)
	}

	if err := validation.NotEmptyString(item["name"], path("name")); err != nil {
		return nil, err
	}
	quantity := valOr(item, "quantity", 1.0)
	for field, value := range map[string]any{
		"quantity":    quantity,
		"price":       item["price"],
		"unitPrice":   item["unitPrice"],
		"totalAmount": item["totalAmount"],
	} {
		if err := validation.GreaterThan(value, 0, path(field)); err != nil {
			return nil, err
		}
	}

	out := make(model.Record, len(item)+8)
	for k, v := range item {
		if _, known := draftProductKnownKeys[k]; !known {
			out[k] = v
		}
	}

	out["malHizmet"] = item["name"]
	out["miktar"] = quantity
	out["birim"] = strOr(item, "unitType", model.DefaultUnitType)
	out["birimFiyat"] = dec.Fixed2(item["unitPrice"])
	out["fiyat"] = dec.Fixed2(item["price"])
	out["iskontoArttm"] = strOr(item, "discountOrIncrement", "İskonto")
	out["iskontoOrani"] = valOr(item, "discountOrIncrementRate", 0.0)
	out["iskontoTutari"] = dec.Fixed2(valOr(item, "discountOrIncrementAmount", 0.0))
	out["iskontoNedeni"] = strOr(item, "discountOrIncrementReason", "")
	out["malHizmetTutari"] = dec.Fixed2(item["totalAmount"])
	out["kdvOrani"] = dec.Fixed(valOr(item, "vatRate", 0.0), 0)
	out["kdvTutari"] = dec.Fixed2(valOr(item, "vatAmount", 0.0))
	out["vergiOrani"] = valOr(item, "taxRate", 0.0)
	out["vergininKdvTutari"] = dec.Fixed2(valOr(item, "vatAmountOfTax", 0.0))
	out["ozelMatrahTutari"] = dec.Fixed2(valOr(item, "specialBaseAmount", 0.0))

	return out, nil
}

func draftRefunds(raw any) ([]any, error) {
	if raw == nil {
		return []any{}, nil
	}
	items, err := recordSlice(raw)
	if err != nil {
		return nil, model.NewValidationError("refundTable", raw, "must be a list of records")
	}

	out := make([]any, len(items))
	for i, item := range items {
		field := fmt.Sprintf("refundTable[%d].invoiceNumber", i)
		if err := validation.NotEmptyString(item["invoiceNumber"], field); err != nil {
			return nil, err
		}
		date, err := FormatDate(item["date"])
		if err != nil {
			return nil, err
		}

		mapped := make(model.Record, len(item))
		for k, v := range item {
			if k != "invoiceNumber" && k != "date" {
				mapped[k] = v
			}
		}
		mapped["faturaNo"] = item["invoiceNumber"]
		mapped["duzenlenmeTarihi"] = date
		out[i] = mapped
	}
	return out, nil
}

func strOr(rec model.Record, key, def string) string {
	if s, ok := rec[key].(string); ok && s != "" {
		return s
	}
	return def
}

func valOr(rec model.Record, key string, def any) any {
	if v, ok := rec[key]; ok {
		return v
	}
	return def
}
