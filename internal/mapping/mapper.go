// Package mapping translates portal documents between the portal's native
// Turkish field names and the English domain names this library exposes.
//
// Every mapper is table-driven: a table lists [domain, native, default]
// triples and a single fold renames whichever side is requested. Keys that
// are not in a table pass through untouched in both directions, so a
// mapped record survives a round trip even when the portal adds fields
// this library has never seen.
package mapping

import (
	"github.com/rezonia/earsiv-client/internal/model"
)

// pair binds one domain key to its native counterpart. def is emitted when
// the source side is absent; a nil def omits the key instead.
type pair struct {
	domain string
	native string
	def    any
}

type table []pair

// apply renames rec's keys according to tbl. With toNative false the native
// names become domain names; with toNative true the reverse. Unlisted keys
// are copied verbatim.
func apply(tbl table, rec model.Record, toNative bool) model.Record {
	known := make(map[string]struct{}, len(tbl))
	for _, p := range tbl {
		if toNative {
			known[p.domain] = struct{}{}
		} else {
			known[p.native] = struct{}{}
		}
	}

	out := make(model.Record, len(rec)+len(tbl))
	for k, v := range rec {
		if _, ok := known[k]; !ok {
			out[k] = v
		}
	}

	for _, p := range tbl {
		src, dst := p.native, p.domain
		if toNative {
			src, dst = p.domain, p.native
		}
		if v, ok := rec[src]; ok {
			out[dst] = v
		} else if p.def != nil {
			out[dst] = p.def
		}
	}

	return out
}

// applyNested maps an array of sub-records in place, element-wise.
func applyNested(out model.Record, key string, tbl table, toNative bool) error {
	raw, ok := out[key]
	if !ok || raw == nil {
		return nil
	}

	items, err := recordSlice(raw)
	if err != nil {
		return model.NewValidationError(key, raw, "must be a list of records")
	}

	mapped := make([]any, len(items))
	for i, item := range items {
		mapped[i] = apply(tbl, item, toNative)
	}
	out[key] = mapped
	return nil
}

func recordSlice(raw any) ([]model.Record, error) {
	switch items := raw.(type) {
	case []model.Record:
		return items, nil
	case []any:
		out := make([]model.Record, len(items))
		for i, item := range items {
			rec, ok := item.(map[string]any)
			if !ok {
				return nil, model.NewValidationError("", item, "not a record")
			}
			out[i] = rec
		}
		return out, nil
	default:
		return nil, model.NewValidationError("", raw, "not a list")
	}
}

// toRecord guards every public mapper: the input must be a flat record,
// never an array, primitive or nil.
func toRecord(value any) (model.Record, error) {
	switch rec := value.(type) {
	case model.Record:
		if rec == nil {
			return nil, model.NewValidationError("", value, "invalid payload")
		}
		return rec, nil
	case model.BasicInvoice:
		return model.Record(rec), nil
	case model.Invoice:
		return model.Record(rec), nil
	case model.UserInformation:
		return model.Record(rec), nil
	case model.CompanyInformation:
		return model.Record(rec), nil
	default:
		return nil, model.NewValidationError("", value, "invalid payload")
	}
}

// InvoiceKeys maps a detailed invoice record, including its product and
// refund sub-tables.
func InvoiceKeys(value any, toNative bool) (model.Record, error) {
	rec, err := toRecord(value)
	if err != nil {
		return nil, err
	}

	out := apply(invoiceTable, rec, toNative)

	productsKey, refundKey := "products", "refundTable"
	if toNative {
		productsKey, refundKey = "malHizmetTable", "iadeTable"
	}
	if err := applyNested(out, productsKey, invoiceProductTable, toNative); err != nil {
		return nil, err
	}
	if err := applyNested(out, refundKey, refundInvoiceTable, toNative); err != nil {
		return nil, err
	}
	return out, nil
}

// BasicInvoiceKeys maps an invoice summary issued by the current account.
func BasicInvoiceKeys(value any, toNative bool) (model.Record, error) {
	rec, err := toRecord(value)
	if err != nil {
		return nil, err
	}
	return apply(basicInvoiceTable, rec, toNative), nil
}

// BasicInvoiceIssuedToMeKeys maps an invoice summary issued to the current
// account. The wire names differ from BasicInvoiceKeys (seller fields
// instead of buyer fields) but the domain shape is the same.
func BasicInvoiceIssuedToMeKeys(value any, toNative bool) (model.Record, error) {
	rec, err := toRecord(value)
	if err != nil {
		return nil, err
	}
	return apply(basicInvoiceIssuedToMeTable, rec, toNative), nil
}

// UserInformationKeys maps the authenticated account's company profile.
func UserInformationKeys(value any, toNative bool) (model.Record, error) {
	rec, err := toRecord(value)
	if err != nil {
		return nil, err
	}
	return apply(userInformationTable, rec, toNative), nil
}

// CompanyInformationKeys maps a registry lookup result.
func CompanyInformationKeys(value any, toNative bool) (model.Record, error) {
	rec, err := toRecord(value)
	if err != nil {
		return nil, err
	}
	return apply(companyInformationTable, rec, toNative), nil
}
