package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/earsiv-client/internal/model"
	"github.com/rezonia/earsiv-client/internal/portal"
	"github.com/rezonia/earsiv-client/internal/server"
)

// stubPortal answers every handler call with canned values. Individual tests
// override the function fields they care about.
type stubPortal struct {
	getInvoice    func(ctx context.Context, invoiceUUID string) (model.Invoice, error)
	getBasic      func(ctx context.Context, filter portal.ListFilter) ([]model.BasicInvoice, error)
	getIssuedToMe func(ctx context.Context, filter portal.ListFilter) ([]model.BasicInvoice, error)
	getHTML       func(ctx context.Context, invoiceUUID string, signed, inject bool) (string, error)
	getXML        func(ctx context.Context, invoiceUUID string, signed bool) ([]byte, error)
	getUser       func(ctx context.Context) (model.UserInformation, error)
	updateUser    func(ctx context.Context, patch model.Record) (model.UserInformation, error)
	getCompany    func(ctx context.Context, number string) (model.CompanyInformation, error)
	createDraft   func(ctx context.Context, draft model.Record) (string, error)
	deleteDraft   func(ctx context.Context, invoice model.BasicInvoice, reason string) (bool, error)
	sendSMSCode   func(ctx context.Context) (model.SMSCode, error)
	signInvoices  func(ctx context.Context, code, operationID string, invoices []model.BasicInvoice) (bool, error)
}

func (p *stubPortal) GetInvoice(ctx context.Context, invoiceUUID string) (model.Invoice, error) {
	return p.getInvoice(ctx, invoiceUUID)
}

func (p *stubPortal) GetBasicInvoices(ctx context.Context, filter portal.ListFilter) ([]model.BasicInvoice, error) {
	return p.getBasic(ctx, filter)
}

func (p *stubPortal) GetBasicInvoicesIssuedToMe(ctx context.Context, filter portal.ListFilter) ([]model.BasicInvoice, error) {
	return p.getIssuedToMe(ctx, filter)
}

func (p *stubPortal) GetInvoiceHTML(ctx context.Context, invoiceUUID string, signed, inject bool) (string, error) {
	return p.getHTML(ctx, invoiceUUID, signed, inject)
}

func (p *stubPortal) GetInvoiceXML(ctx context.Context, invoiceUUID string, signed bool) ([]byte, error) {
	return p.getXML(ctx, invoiceUUID, signed)
}

func (p *stubPortal) GetUserInformation(ctx context.Context) (model.UserInformation, error) {
	return p.getUser(ctx)
}

func (p *stubPortal) UpdateUserInformation(ctx context.Context, patch model.Record) (model.UserInformation, error) {
	return p.updateUser(ctx, patch)
}

func (p *stubPortal) GetCompanyInformation(ctx context.Context, number string) (model.CompanyInformation, error) {
	return p.getCompany(ctx, number)
}

func (p *stubPortal) CreateDraftInvoice(ctx context.Context, draft model.Record) (string, error) {
	return p.createDraft(ctx, draft)
}

func (p *stubPortal) DeleteDraftInvoice(ctx context.Context, invoice model.BasicInvoice, reason string) (bool, error) {
	return p.deleteDraft(ctx, invoice, reason)
}

func (p *stubPortal) SendSMSCode(ctx context.Context) (model.SMSCode, error) {
	return p.sendSMSCode(ctx)
}

func (p *stubPortal) SignInvoices(ctx context.Context, code, operationID string, invoices []model.BasicInvoice) (bool, error) {
	return p.signInvoices(ctx, code, operationID, invoices)
}

func newTestServer(p *stubPortal) *server.Server {
	config := &server.Config{
		Address: ":8365",
		Debug:   true,
	}
	return server.NewServer(config, p)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&stubPortal{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestListInvoicesEndpoint(t *testing.T) {
	var captured portal.ListFilter
	stub := &stubPortal{
		getBasic: func(_ context.Context, filter portal.ListFilter) ([]model.BasicInvoice, error) {
			captured = filter
			return []model.BasicInvoice{
				{"uuid": "a", "belgeNumarasi": "GIB2024000000001"},
				{"uuid": "b", "belgeNumarasi": "GIB2024000000002"},
			}, nil
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/invoices?start=2024-01-01&end=2024-01-31&status=Onayland%C4%B1", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-01-01", captured.StartDate)
	assert.Equal(t, "2024-01-31", captured.EndDate)
	assert.Equal(t, "Onaylandı", captured.ApprovalStatus)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["count"])
}

func TestListInvoicesIssuedToMe(t *testing.T) {
	issuedCalled := false
	stub := &stubPortal{
		getIssuedToMe: func(_ context.Context, _ portal.ListFilter) ([]model.BasicInvoice, error) {
			issuedCalled = true
			return nil, nil
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices?issued-to-me=true", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, issuedCalled)
}

func TestGetInvoiceEndpoint(t *testing.T) {
	stub := &stubPortal{
		getInvoice: func(_ context.Context, invoiceUUID string) (model.Invoice, error) {
			assert.Equal(t, "abc-123", invoiceUUID)
			return model.Invoice{"uuid": "abc-123", "documentNumber": "GIB2024000000001"}, nil
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/abc-123", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "GIB2024000000001", response["documentNumber"])
}

func TestGetInvoiceNotFound(t *testing.T) {
	stub := &stubPortal{
		getInvoice: func(_ context.Context, _ string) (model.Invoice, error) {
			return nil, model.NewAPIError(model.ErrInvoiceNotFound, "invoice not found", nil)
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/zzz", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "INVOICE_NOT_FOUND", response["code"])
}

func TestSessionTimeoutMapsToUnauthorized(t *testing.T) {
	stub := &stubPortal{
		getUser: func(_ context.Context) (model.UserInformation, error) {
			return nil, model.NewAPIError(model.ErrSessionTimeout, "oturum zaman aşımına uğradı", nil)
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateDraftEndpoint(t *testing.T) {
	stub := &stubPortal{
		createDraft: func(_ context.Context, draft model.Record) (string, error) {
			assert.Equal(t, "Test", draft["buyerFirstName"])
			return "new-uuid", nil
		},
	}
	srv := newTestServer(stub)

	body := []byte(`{"buyerFirstName":"Test"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "new-uuid", response["uuid"])
}

func TestCreateDraftValidationFailure(t *testing.T) {
	stub := &stubPortal{
		createDraft: func(_ context.Context, _ model.Record) (string, error) {
			return "", model.NewValidationError("paymentPrice", 0, "must be greater than 0")
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "paymentPrice", response["field"])
}

func TestDeleteDraftEndpoint(t *testing.T) {
	stub := &stubPortal{
		deleteDraft: func(_ context.Context, invoice model.BasicInvoice, reason string) (bool, error) {
			assert.Equal(t, "abc-123", invoice.UUID())
			assert.Equal(t, "yanlış alıcı", reason)
			return true, nil
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodDelete,
		"/api/v1/invoices/abc-123?reason=yanl%C4%B1%C5%9F+al%C4%B1c%C4%B1", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvoiceHTMLEndpoint(t *testing.T) {
	stub := &stubPortal{
		getHTML: func(_ context.Context, invoiceUUID string, signed, inject bool) (string, error) {
			assert.Equal(t, "abc-123", invoiceUUID)
			assert.False(t, signed)
			assert.False(t, inject)
			return "<html><body>fatura</body></html>", nil
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/abc-123/html?signed=false", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "fatura")
}

func TestInvoiceXMLEndpoint(t *testing.T) {
	stub := &stubPortal{
		getXML: func(_ context.Context, _ string, signed bool) ([]byte, error) {
			assert.True(t, signed)
			return []byte(`<?xml version="1.0"?><Invoice/>`), nil
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/abc-123/xml", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
}

func TestUpdateUserEndpoint(t *testing.T) {
	stub := &stubPortal{
		updateUser: func(_ context.Context, patch model.Record) (model.UserInformation, error) {
			assert.Equal(t, "Ankara", patch["city"])
			return model.UserInformation{"city": "Ankara"}, nil
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/user", bytes.NewReader([]byte(`{"city":"Ankara"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetCompanyEndpoint(t *testing.T) {
	stub := &stubPortal{
		getCompany: func(_ context.Context, number string) (model.CompanyInformation, error) {
			assert.Equal(t, "11111111111", number)
			return model.CompanyInformation{"title": "Test A.Ş."}, nil
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies/11111111111", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignFlow(t *testing.T) {
	stub := &stubPortal{
		sendSMSCode: func(_ context.Context) (model.SMSCode, error) {
			return model.SMSCode{OperationID: "op-1", PhoneNumber: "5550001122"}, nil
		},
		signInvoices: func(_ context.Context, code, operationID string, invoices []model.BasicInvoice) (bool, error) {
			assert.Equal(t, "123456", code)
			assert.Equal(t, "op-1", operationID)
			require.Len(t, invoices, 2)
			assert.Equal(t, "a", invoices[0].UUID())
			return true, nil
		},
	}
	srv := newTestServer(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sign/sms-code", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var smsResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &smsResponse))
	assert.Equal(t, "op-1", smsResponse["oid"])

	body := []byte(`{"code":"123456","oid":"op-1","uuids":["a","b"]}`)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/sign", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var signResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signResponse))
	assert.Equal(t, true, signResponse["signed"])
}

func TestSignRejectsMissingFields(t *testing.T) {
	srv := newTestServer(&stubPortal{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sign", bytes.NewReader([]byte(`{"code":"123456"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
