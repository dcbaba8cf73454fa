package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/earsiv-client/internal/mapping"
	"github.com/rezonia/earsiv-client/internal/model"
)

func TestBasicInvoiceKeysRoundTrip(t *testing.T) {
	native := model.Record{
		"ettn":              "49f2b7ad-84d2-40d1-a1f0-6ae4e9e6b7a9",
		"belgeNumarasi":     "GIB2026000000042",
		"aliciVknTckn":      "11111111111",
		"aliciUnvanAdSoyad": "Lorem Danışmanlık A.Ş.",
		"belgeTarihi":       "14/02/2026",
		"belgeTuru":         "FATURA",
		"onayDurumu":        "Onaylandı",
	}

	domain, err := mapping.BasicInvoiceKeys(native, false)
	require.NoError(t, err)
	assert.Equal(t, "GIB2026000000042", domain["documentNumber"])
	assert.Equal(t, "49f2b7ad-84d2-40d1-a1f0-6ae4e9e6b7a9", domain["uuid"])
	assert.Equal(t, "Onaylandı", domain["approvalStatus"])
	assert.NotContains(t, domain, "belgeNumarasi")

	back, err := mapping.BasicInvoiceKeys(domain, true)
	require.NoError(t, err)
	assert.Equal(t, native, back)
}

func TestBasicInvoiceKeysUnknownKeyPassthrough(t *testing.T) {
	native := model.Record{
		"ettn":         "49f2b7ad-84d2-40d1-a1f0-6ae4e9e6b7a9",
		"talepDurumu":  "TALEP YOK",
		"gonderimTipi": "ELEKTRONIK",
	}

	domain, err := mapping.BasicInvoiceKeys(native, false)
	require.NoError(t, err)
	assert.Equal(t, "TALEP YOK", domain["talepDurumu"])
	assert.Equal(t, "ELEKTRONIK", domain["gonderimTipi"])

	back, err := mapping.BasicInvoiceKeys(domain, true)
	require.NoError(t, err)
	assert.Equal(t, "TALEP YOK", back["talepDurumu"])
}

func TestBasicInvoiceIssuedToMeKeys(t *testing.T) {
	native := model.Record{
		"ettn":               "8aa1f7ce-1f7e-4f6f-9a58-0d6e6e2c51b2",
		"saticiVknTckn":      "1234567890",
		"saticiUnvanAdSoyad": "Satıcı Ltd. Şti.",
	}

	domain, err := mapping.BasicInvoiceIssuedToMeKeys(native, false)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", domain["taxOrIdentityNumber"])
	assert.Equal(t, "Satıcı Ltd. Şti.", domain["titleOrFullName"])
}

// Both listing variants describe the counterpart under a single domain key,
// whichever side of the trade the portal row names.
func TestListingVariantsShareCounterpartKey(t *testing.T) {
	issued, err := mapping.BasicInvoiceKeys(model.Record{
		"ettn":              "a",
		"aliciUnvanAdSoyad": "Acme A.Ş.",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "Acme A.Ş.", issued["titleOrFullName"])
	assert.NotContains(t, issued, "buyerTitleOrFullName")

	received, err := mapping.BasicInvoiceIssuedToMeKeys(model.Record{
		"ettn":               "b",
		"saticiUnvanAdSoyad": "Satıcı Ltd.",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "Satıcı Ltd.", received["titleOrFullName"])

	assert.Equal(t, "Acme A.Ş.", model.BasicInvoice(issued).TitleOrFullName())
	assert.Equal(t, "Satıcı Ltd.", model.BasicInvoice(received).TitleOrFullName())
}

func TestInvoiceKeysNestedTables(t *testing.T) {
	native := model.Record{
		"faturaUuid": "49f2b7ad-84d2-40d1-a1f0-6ae4e9e6b7a9",
		"malHizmetTable": []any{
			map[string]any{
				"malHizmet":  "Danışmanlık",
				"miktar":     2.0,
				"birimFiyat": "74.95",
				"fiyat":      "149.90",
			},
		},
		"iadeTable": []any{
			map[string]any{
				"faturaNo":         "GIB2026000000001",
				"duzenlenmeTarihi": "01/02/2026",
			},
		},
	}

	domain, err := mapping.InvoiceKeys(native, false)
	require.NoError(t, err)

	products, ok := domain["products"].([]any)
	require.True(t, ok)
	require.Len(t, products, 1)
	product := products[0].(model.Record)
	assert.Equal(t, "Danışmanlık", product["name"])
	assert.Equal(t, "74.95", product["unitPrice"])

	refunds, ok := domain["refundTable"].([]any)
	require.True(t, ok)
	refund := refunds[0].(model.Record)
	assert.Equal(t, "GIB2026000000001", refund["invoiceNumber"])
	assert.Equal(t, "01/02/2026", refund["date"])
}

func TestInvoiceKeysRejectsMalformedProductTable(t *testing.T) {
	native := model.Record{
		"faturaUuid":     "49f2b7ad-84d2-40d1-a1f0-6ae4e9e6b7a9",
		"malHizmetTable": "not a table",
	}

	_, err := mapping.InvoiceKeys(native, false)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "malHizmetTable", verr.Field)
}

func TestUserInformationKeysDefaults(t *testing.T) {
	domain, err := mapping.UserInformationKeys(model.Record{"unvan": "Acme A.Ş."}, false)
	require.NoError(t, err)
	assert.Equal(t, "Acme A.Ş.", domain["title"])
	// Missing wire fields surface as empty strings, not absent keys.
	assert.Equal(t, "", domain["email"])
	assert.Equal(t, "", domain["taxOffice"])
}

func TestCompanyInformationKeys(t *testing.T) {
	native := model.Record{
		"unvan":        "",
		"adi":          "AHMET",
		"soyadi":       "YILMAZ",
		"vergiDairesi": "KADIKÖY",
	}

	domain, err := mapping.CompanyInformationKeys(native, false)
	require.NoError(t, err)
	assert.Equal(t, "AHMET", domain["firstName"])
	assert.Equal(t, "YILMAZ", domain["lastName"])
	assert.Equal(t, "KADIKÖY", domain["taxOffice"])
}

func TestMappersRejectNonRecordPayloads(t *testing.T) {
	mappers := map[string]func(any, bool) (model.Record, error){
		"invoice":                  mapping.InvoiceKeys,
		"basicInvoice":             mapping.BasicInvoiceKeys,
		"basicInvoiceIssuedToMe":   mapping.BasicInvoiceIssuedToMeKeys,
		"userInformation":          mapping.UserInformationKeys,
		"companyInformation":       mapping.CompanyInformationKeys,
		"draftInvoice": func(value any, _ bool) (model.Record, error) {
			return mapping.DraftInvoiceKeys(value)
		},
	}

	for name, mapper := range mappers {
		for _, payload := range []any{nil, 0, "", false, []any{}, model.Record(nil)} {
			_, err := mapper(payload, false)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr, "%s mapper, payload %#v", name, payload)
		}
	}
}

func TestMerge(t *testing.T) {
	base := model.Record{
		"uuid": "49f2b7ad-84d2-40d1-a1f0-6ae4e9e6b7a9",
		"buyer": model.Record{
			"title": "Acme",
			"city":  "İstanbul",
		},
		"products": []any{map[string]any{"name": "a"}},
	}
	patch := model.Record{
		"buyer":    model.Record{"city": "Ankara"},
		"products": []any{map[string]any{"name": "b"}},
		"note":     "updated",
	}

	merged := mapping.Merge(base, patch)

	buyer := merged["buyer"].(model.Record)
	assert.Equal(t, "Acme", buyer["title"])
	assert.Equal(t, "Ankara", buyer["city"])
	assert.Equal(t, "updated", merged["note"])
	// Lists replace wholesale.
	products := merged["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "b", products[0].(map[string]any)["name"])
	// The inputs stay untouched.
	assert.Equal(t, "İstanbul", base["buyer"].(model.Record)["city"])
}
