package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rezonia/earsiv-client/internal/export"
	"github.com/rezonia/earsiv-client/internal/model"
)

func sampleInvoices() []model.BasicInvoice {
	return []model.BasicInvoice{
		{
			"uuid":                "a",
			"documentNumber":      "GIB2026000000001",
			"documentDate":        "14/02/2026",
			"documentType":        "FATURA",
			"taxOrIdentityNumber": "11111111111",
			"titleOrFullName":     "Acme A.Ş.",
			"approvalStatus":      "Onaylandı",
		},
		{
			"uuid":            "b",
			"documentNumber":  "GIB2026000000002",
			"titleOrFullName": "Satıcı Ltd.",
			"approvalStatus":  "Onaylanmadı",
		},
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.CSV(&buf, sampleInvoices()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "UUID", rows[0][0])
	assert.Equal(t, "Onay Durumu", rows[0][6])
	assert.Equal(t, []string{"a", "GIB2026000000001", "14/02/2026", "FATURA", "11111111111", "Acme A.Ş.", "Onaylandı"}, rows[1])
	assert.Equal(t, "Satıcı Ltd.", rows[2][5])
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.XLSX(&buf, sampleInvoices()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Faturalar")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Belge Numarası", rows[0][1])
	assert.Equal(t, "GIB2026000000001", rows[1][1])
	assert.Equal(t, "Onaylanmadı", rows[2][6])
}

func TestCSVEmptyListing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.CSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
