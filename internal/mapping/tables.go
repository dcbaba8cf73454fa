package mapping

// Key tables, one per portal document shape. Defaults mirror what the
// portal itself omits: most fields fall back to an empty string or zero, a
// few are only present on some document types and stay absent (nil def).

var invoiceTable = table{
	{"base", "matrah", 0.0},
	{"buildingName", "binaAdi", ""},
	{"buildingNumber", "binaNo", ""},
	{"buyerFirstName", "aliciAdi", ""},
	{"buyerLastName", "aliciSoyadi", ""},
	{"buyerTitle", "aliciUnvan", ""},
	{"calculatedVAT", "hesaplanankdv", 0.0},
	{"city", "sehir", ""},
	{"country", "ulke", ""},
	{"currency", "paraBirimi", ""},
	{"currencyRate", "dovzTLkur", 0.0},
	{"date", "faturaTarihi", ""},
	{"district", "mahalleSemtIlce", ""},
	{"documentNumber", "belgeNumarasi", ""},
	{"doorNumber", "kapiNo", ""},
	{"email", "eposta", ""},
	{"faxNumber", "fax", ""},
	{"fullAddress", "bulvarcaddesokak", ""},
	{"includedTaxesTotalPrice", "vergilerDahilToplamTutar", 0.0},
	{"invoiceType", "faturaTipi", ""},
	{"note", "not", ""},
	{"okcSerialNumber", "okcSeriNo", nil},
	{"orderDate", "siparisTarihi", nil},
	{"orderNumber", "siparisNumarasi", nil},
	{"paymentPrice", "odenecekTutar", 0.0},
	{"phoneNumber", "tel", ""},
	{"postNumber", "postaKodu", ""},
	{"products", "malHizmetTable", nil},
	{"productsTotalPrice", "malhizmetToplamTutari", 0.0},
	{"receiptDate", "fisTarihi", nil},
	{"receiptNumber", "fisNo", nil},
	{"receiptTime", "fisSaati", nil},
	{"receiptType", "fisTipi", nil},
	{"refundTable", "iadeTable", nil},
	{"specialBaseAmount", "ozelMatrahTutari", 0.0},
	{"specialBasePercent", "ozelMatrahOrani", 0.0},
	{"specialBaseTaxAmount", "ozelMatrahVergiTutari", 0.0},
	{"taxOffice", "vergiDairesi", ""},
	{"taxOrIdentityNumber", "vknTckn", ""},
	{"taxType", "vergiCesidi", nil},
	{"time", "saat", ""},
	{"totalDiscountOrIncrement", "toplamIskonto", 0.0},
	{"totalTaxes", "vergilerToplami", 0.0},
	{"town", "kasabaKoy", ""},
	{"type", "tip", ""},
	{"uuid", "faturaUuid", ""},
	{"waybillDate", "irsaliyeTarihi", nil},
	{"waybillNumber", "irsaliyeNumarasi", nil},
	{"website", "websitesi", ""},
	{"whichType", "hangiTip", nil},
	{"zReportNumber", "zRaporNo", nil},
}

var invoiceProductTable = table{
	{"discountOrIncrement", "iskontoArttm", ""},
	{"discountOrIncrementAmount", "iskontoTutari", 0.0},
	{"discountOrIncrementRate", "iskontoOrani", 0.0},
	{"discountOrIncrementReason", "iskontoNedeni", ""},
	{"name", "malHizmet", ""},
	{"price", "fiyat", 0.0},
	{"quantity", "miktar", 0.0},
	{"specialBaseAmount", "ozelMatrahTutari", 0.0},
	{"taxRate", "vergiOrani", 0.0},
	{"totalAmount", "malHizmetTutari", 0.0},
	{"unitPrice", "birimFiyat", 0.0},
	{"unitType", "birim", ""},
	{"vatAmount", "kdvTutari", 0.0},
	{"vatAmountOfTax", "vergininKdvTutari", 0.0},
	{"vatRate", "kdvOrani", 0.0},
}

var refundInvoiceTable = table{
	{"invoiceNumber", "faturaNo", ""},
	{"date", "duzenlenmeTarihi", ""},
}

var basicInvoiceTable = table{
	{"uuid", "ettn", ""},
	{"documentNumber", "belgeNumarasi", ""},
	{"taxOrIdentityNumber", "aliciVknTckn", ""},
	{"titleOrFullName", "aliciUnvanAdSoyad", ""},
	{"documentDate", "belgeTarihi", ""},
	{"documentType", "belgeTuru", ""},
	{"approvalStatus", "onayDurumu", ""},
}

var basicInvoiceIssuedToMeTable = table{
	{"uuid", "ettn", ""},
	{"documentNumber", "belgeNumarasi", ""},
	{"taxOrIdentityNumber", "saticiVknTckn", ""},
	{"titleOrFullName", "saticiUnvanAdSoyad", ""},
	{"documentDate", "belgeTarihi", ""},
	{"documentType", "belgeTuru", ""},
	{"approvalStatus", "onayDurumu", ""},
}

var userInformationTable = table{
	{"title", "unvan", ""},
	{"firstName", "ad", ""},
	{"lastName", "soyad", ""},
	{"taxOrIdentityNumber", "vknTckn", ""},
	{"email", "ePostaAdresi", ""},
	{"website", "webSitesiAdresi", ""},
	{"recordNumber", "sicilNo", ""},
	{"mersisNumber", "mersisNo", ""},
	{"taxOffice", "vergiDairesi", ""},
	{"street", "cadde", ""},
	{"buildingName", "apartmanAdi", ""},
	{"buildingNumber", "apartmanNo", ""},
	{"doorNumber", "kapiNo", ""},
	{"town", "kasaba", ""},
	{"city", "il", ""},
	{"district", "ilce", ""},
	{"postNumber", "postaKodu", ""},
	{"country", "ulke", ""},
	{"phoneNumber", "telNo", ""},
	{"faxNumber", "faksNo", ""},
	{"businessCenter", "isMerkezi", ""},
}

var companyInformationTable = table{
	{"title", "unvan", ""},
	{"firstName", "adi", ""},
	{"lastName", "soyadi", ""},
	{"taxOffice", "vergiDairesi", ""},
}
