// Package export writes invoice listings to spreadsheet formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rezonia/earsiv-client/internal/model"
)

var columns = []struct {
	header string
	value  func(model.BasicInvoice) string
}{
	{"UUID", model.BasicInvoice.UUID},
	{"Belge Numarası", model.BasicInvoice.DocumentNumber},
	{"Belge Tarihi", model.BasicInvoice.DocumentDate},
	{"Belge Türü", model.BasicInvoice.DocumentType},
	{"VKN/TCKN", model.BasicInvoice.TaxOrIdentityNumber},
	{"Unvan/Ad Soyad", model.BasicInvoice.TitleOrFullName},
	{"Onay Durumu", func(b model.BasicInvoice) string { return string(b.ApprovalStatus()) }},
}

// CSV writes the invoices as a comma-separated table with a header row.
func CSV(w io.Writer, invoices []model.BasicInvoice) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.header
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(columns))
	for _, invoice := range invoices {
		for i, col := range columns {
			row[i] = col.value(invoice)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// XLSX writes the invoices as a styled spreadsheet with a bold header row.
func XLSX(w io.Writer, invoices []model.BasicInvoice) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Faturalar"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col.header); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for rowIdx, invoice := range invoices {
		for colIdx, col := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, col.value(invoice)); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
