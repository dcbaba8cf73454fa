package portal

import (
	"context"
	"fmt"
	"strings"

	"github.com/rezonia/earsiv-client/internal/mapping"
	"github.com/rezonia/earsiv-client/internal/model"
)

// ListFilter narrows an invoice listing. Zero-value dates mean today.
// An empty ApprovalStatus keeps everything; any other value is matched
// verbatim against each invoice, so an unrecognized status yields an empty
// result rather than an error.
type ListFilter struct {
	StartDate      any
	EndDate        any
	ApprovalStatus string

	// HourlyInterval only applies to issued-to-me listings and only when
	// the start and end dates are the same day.
	HourlyInterval model.HourlySearchInterval
}

// GetInvoice fetches a detailed invoice by UUID.
func (c *Client) GetInvoice(ctx context.Context, invoiceUUID string) (model.Invoice, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_FATURA_GETIR", "RG_BASITFATURA", model.Record{
		"ettn": invoiceUUID,
	})
	if err != nil {
		return nil, err
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		return nil, model.NewAPIError(model.ErrInvoiceNotFound, "invoice not found", body)
	}
	mapped, err := mapping.InvoiceKeys(model.Record(data), false)
	if err != nil {
		return nil, err
	}
	return model.Invoice(mapped), nil
}

// GetBasicInvoices lists the invoices issued by the current account within
// the filter's date range.
func (c *Client) GetBasicInvoices(ctx context.Context, filter ListFilter) ([]model.BasicInvoice, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	start, err := mapping.FormatDate(filter.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := mapping.FormatDate(filter.EndDate)
	if err != nil {
		return nil, err
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_TASLAKLARI_GETIR", "RG_BASITTASLAKLAR", model.Record{
		"baslangic": start,
		"bitis":     end,
		"hangiTip":  model.DefaultWhichType,
		"table":     []any{},
	})
	if err != nil {
		return nil, err
	}

	return c.collectBasicInvoices(body, filter.ApprovalStatus, mapping.BasicInvoiceKeys)
}

// GetBasicInvoicesIssuedToMe lists the invoices other accounts issued to
// the current one. When the range is a single day the portal can narrow it
// to a half-day window.
func (c *Client) GetBasicInvoicesIssuedToMe(ctx context.Context, filter ListFilter) ([]model.BasicInvoice, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	start, err := mapping.FormatDate(filter.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := mapping.FormatDate(filter.EndDate)
	if err != nil {
		return nil, err
	}

	interval := model.IntervalNone
	if start == end && filter.HourlyInterval != "" {
		interval = filter.HourlyInterval
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_ADIMA_KESILEN_BELGELERI_GETIR", "RG_ALICI_TASLAKLAR", model.Record{
		"baslangic":            start,
		"bitis":                end,
		"hourlySearchInterval": string(interval),
	})
	if err != nil {
		return nil, err
	}

	return c.collectBasicInvoices(body, filter.ApprovalStatus, mapping.BasicInvoiceIssuedToMeKeys)
}

func (c *Client) collectBasicInvoices(body map[string]any, status string, mapper func(any, bool) (model.Record, error)) ([]model.BasicInvoice, error) {
	items, ok := body["data"].([]any)
	if !ok {
		return []model.BasicInvoice{}, nil
	}

	out := make([]model.BasicInvoice, 0, len(items))
	for _, raw := range items {
		rec, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		mapped, err := mapper(model.Record(rec), false)
		if err != nil {
			return nil, err
		}
		out = append(out, model.BasicInvoice(mapped))
	}
	return FilterByApprovalStatus(out, status), nil
}

// FilterByApprovalStatus keeps the invoices whose approval status equals
// status. An empty status keeps everything.
func FilterByApprovalStatus(invoices []model.BasicInvoice, status string) []model.BasicInvoice {
	if status == "" {
		return invoices
	}
	out := make([]model.BasicInvoice, 0, len(invoices))
	for _, invoice := range invoices {
		if string(invoice.ApprovalStatus()) == status {
			out = append(out, invoice)
		}
	}
	return out
}

// FindBasicInvoice lists with the filter and picks the invoice with the
// given UUID.
func (c *Client) FindBasicInvoice(ctx context.Context, invoiceUUID string, filter ListFilter) (model.BasicInvoice, error) {
	invoices, err := c.GetBasicInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, invoice := range invoices {
		if invoice.UUID() == invoiceUUID {
			return invoice, nil
		}
	}
	return nil, model.NewAPIError(model.ErrBasicInvoiceNotFound, fmt.Sprintf("invoice %s not in listing", invoiceUUID), nil)
}

// GetInvoiceHTML fetches the portal's rendered HTML for an invoice. With
// injectPrintScript a window.print() call is appended so the document
// prints itself when opened in a browser.
func (c *Client) GetInvoiceHTML(ctx context.Context, invoiceUUID string, signed, injectPrintScript bool) (string, error) {
	if err := c.checkToken(); err != nil {
		return "", err
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_FATURA_GOSTER", "RG_TASLAKLAR", model.Record{
		"ettn":       invoiceUUID,
		"onayDurumu": string(approvalFor(signed)),
	})
	if err != nil {
		return "", err
	}

	html, ok := body["data"].(string)
	if !ok || html == "" {
		return "", model.NewAPIError(model.ErrInvalidInvoiceHTML, "portal returned no HTML for the invoice", body)
	}

	if injectPrintScript {
		for _, tag := range []string{"</body>", "</html>"} {
			if strings.Contains(html, tag) {
				html = strings.Replace(html, tag, "<script>window.print();</script>"+tag, 1)
				break
			}
		}
	}
	return html, nil
}

// GetUserInformation fetches the authenticated account's company profile.
func (c *Client) GetUserInformation(ctx context.Context) (model.UserInformation, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_KULLANICI_BILGILERI_GETIR", "RG_KULLANICI", model.Record{})
	if err != nil {
		return nil, err
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		return nil, model.NewAPIError(model.ErrUserInformationNotFound, "user information not found", body)
	}
	mapped, err := mapping.UserInformationKeys(model.Record(data), false)
	if err != nil {
		return nil, err
	}
	return model.UserInformation(mapped), nil
}

// UpdateUserInformation merges the patch over the current profile and
// saves it. The merged profile is returned on success.
func (c *Client) UpdateUserInformation(ctx context.Context, patch model.Record) (model.UserInformation, error) {
	current, err := c.GetUserInformation(ctx)
	if err != nil {
		return nil, err
	}

	merged := mapping.Merge(model.Record(current), patch)
	payload, err := mapping.UserInformationKeys(merged, true)
	if err != nil {
		return nil, err
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_KULLANICI_BILGILERI_KAYDET", "RG_KULLANICI", payload)
	if err != nil {
		return nil, err
	}

	if data, ok := body["data"].(string); !ok || data != "Bilgileriniz başarıyla güncellendi." {
		return nil, model.NewAPIError(model.ErrUserInformationNotUpdated, "user information was not updated", body)
	}
	return model.UserInformation(merged), nil
}

// GetCompanyInformation looks a company or person up in the registry by
// tax or identity number.
func (c *Client) GetCompanyInformation(ctx context.Context, taxOrIdentityNumber string) (model.CompanyInformation, error) {
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	body, err := c.dispatch(ctx, "SICIL_VEYA_MERNISTEN_BILGILERI_GETIR", "RG_BASITFATURA", model.Record{
		"vknTcknn": taxOrIdentityNumber,
	})
	if err != nil {
		return nil, err
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		return nil, model.NewAPIError(model.ErrCompanyInformationNotFound, "company information not found", body)
	}
	mapped, err := mapping.CompanyInformationKeys(model.Record(data), false)
	if err != nil {
		return nil, err
	}
	return model.CompanyInformation(mapped), nil
}

// GetSavedPhoneNumber fetches the phone number registered for SMS signing.
func (c *Client) GetSavedPhoneNumber(ctx context.Context) (string, error) {
	if err := c.checkToken(); err != nil {
		return "", err
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_TELEFONNO_SORGULA", "RG_BASITTASLAKLAR", model.Record{})
	if err != nil {
		return "", err
	}

	data, ok := body["data"].(map[string]any)
	if ok {
		if phone, ok := data["telefon"].(string); ok && phone != "" {
			return phone, nil
		}
	}
	return "", model.NewAPIError(model.ErrSavedPhoneNumberNotFound, "no saved phone number", body)
}

// CreateDraftInvoice validates and submits a draft invoice, returning its
// UUID.
func (c *Client) CreateDraftInvoice(ctx context.Context, draft model.Record) (string, error) {
	if err := c.checkToken(); err != nil {
		return "", err
	}

	payload, err := mapping.DraftInvoiceKeys(draft)
	if err != nil {
		return "", err
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_FATURA_OLUSTUR", "RG_BASITFATURA", payload)
	if err != nil {
		return "", err
	}

	if !creationSucceeded(body) {
		return "", model.NewAPIError(model.ErrBasicInvoiceNotCreated, "draft invoice was not created", body)
	}
	return payload["faturaUuid"].(string), nil
}

// UpdateDraftInvoice fetches the draft, deep-merges the patch over it and
// resubmits it under the same UUID. The merged invoice is returned.
func (c *Client) UpdateDraftInvoice(ctx context.Context, invoiceUUID string, patch model.Record) (model.Invoice, error) {
	invoice, err := c.GetInvoice(ctx, invoiceUUID)
	if err != nil {
		return nil, err
	}

	merged := mapping.Merge(model.Record(invoice), patch)
	payload, err := mapping.DraftInvoiceKeys(merged)
	if err != nil {
		return nil, err
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_FATURA_OLUSTUR", "RG_BASITFATURA", payload)
	if err != nil {
		return nil, err
	}

	if !creationSucceeded(body) {
		return nil, model.NewAPIError(model.ErrBasicInvoiceNotCreated, "draft invoice was not updated", body)
	}
	return model.Invoice(merged), nil
}

func creationSucceeded(body map[string]any) bool {
	data, ok := body["data"].(string)
	return ok && strings.Contains(data, "Faturanız başarıyla oluşturulmuştur")
}

// DeleteDraftInvoice deletes a draft. The full basic invoice record is
// required because the portal wants the native summary row back.
func (c *Client) DeleteDraftInvoice(ctx context.Context, invoice model.BasicInvoice, reason string) (bool, error) {
	if err := c.checkToken(); err != nil {
		return false, err
	}

	native, err := mapping.BasicInvoiceKeys(invoice, true)
	if err != nil {
		return false, err
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_FATURA_SIL", "RG_TASLAKLAR", model.Record{
		"silinecekler": []any{native},
		"aciklama":     reason,
	})
	if err != nil {
		return false, err
	}

	data, ok := body["data"].(string)
	if !ok {
		return false, model.NewAPIError(model.ErrBasicInvoiceNotDeleted, "draft invoice was not deleted", body)
	}
	return strings.Contains(data, "fatura başarıyla silindi"), nil
}

// CreateCancelRequest files a cancellation request for an issued invoice.
func (c *Client) CreateCancelRequest(ctx context.Context, invoice model.BasicInvoice, reason string) (bool, error) {
	if err := c.checkToken(); err != nil {
		return false, err
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_IPTAL_TALEBI_OLUSTUR", "RG_BASITTASLAKLAR", model.Record{
		"ettn":          invoice.UUID(),
		"onayDurumu":    string(invoice.ApprovalStatus()),
		"belgeTuru":     invoice.DocumentType(),
		"talepAciklama": reason,
	})
	if err != nil {
		return false, err
	}

	data, ok := body["data"].(string)
	if !ok {
		return false, model.NewAPIError(model.ErrCancelRequestNotCreated, "cancel request was not created", body)
	}
	return strings.Contains(data, "İptal talebiniz başarıyla oluşturulmuş"), nil
}

// SendSMSCode asks the portal to text a signing code to the account's
// saved phone number and returns the operation id for VerifySMSCode.
func (c *Client) SendSMSCode(ctx context.Context) (model.SMSCode, error) {
	phone, err := c.GetSavedPhoneNumber(ctx)
	if err != nil {
		return model.SMSCode{}, err
	}

	body, err := c.dispatch(ctx, "EARSIV_PORTAL_SMSSIFRE_GONDER", "RG_SMSONAY", model.Record{
		"CEPTEL":  phone,
		"KCEPTEL": false,
		"TIP":     "",
	})
	if err != nil {
		return model.SMSCode{}, err
	}

	data, ok := body["data"].(map[string]any)
	if ok {
		if oid, ok := data["oid"].(string); ok && oid != "" {
			return model.SMSCode{OperationID: oid, PhoneNumber: phone}, nil
		}
	}
	return model.SMSCode{}, model.NewAPIError(model.ErrInvalidSMSOperationID, "portal returned no SMS operation id", body)
}

// SignInvoices confirms a pending SMS code and signs the given invoices.
func (c *Client) SignInvoices(ctx context.Context, code, operationID string, invoices []model.BasicInvoice) (bool, error) {
	if err := c.checkToken(); err != nil {
		return false, err
	}

	rows := make([]any, len(invoices))
	for i, invoice := range invoices {
		native, err := mapping.BasicInvoiceKeys(invoice, true)
		if err != nil {
			return false, err
		}
		rows[i] = native
	}

	body, err := c.dispatch(ctx, "0lhozfib5410mp", "RG_SMSONAY", model.Record{
		"SIFRE": code,
		"OID":   operationID,
		"OPR":   1,
		"DATA":  rows,
	})
	if err != nil {
		return false, err
	}

	data, ok := body["data"].(map[string]any)
	if !ok || data["sonuc"] == nil {
		return false, model.NewAPIError(model.ErrInvoicesNotSigned, "invoices could not be signed", body)
	}
	return fmt.Sprintf("%v", data["sonuc"]) == "1", nil
}

func approvalFor(signed bool) model.ApprovalStatus {
	if signed {
		return model.StatusApproved
	}
	return model.StatusUnapproved
}
