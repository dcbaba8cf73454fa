package portal

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rezonia/earsiv-client/internal/model"
)

// InvoiceDownloadURL builds the signed-document download link for an
// invoice. The link embeds the current token, so it expires with the
// session.
func (c *Client) InvoiceDownloadURL(invoiceUUID string, signed bool) (string, error) {
	if err := c.checkToken(); err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("token", c.token)
	query.Set("ettn", invoiceUUID)
	query.Set("belgeTip", "FATURA")
	query.Set("cmd", "EARSIV_PORTAL_BELGE_INDIR")
	query.Set("onayDurumu", string(approvalFor(signed)))

	return c.baseURL() + downloadPath + "?" + query.Encode(), nil
}

// GetInvoiceZip downloads the invoice's document bundle. The portal
// answers bad requests with an HTML error page and status 200, so the
// content-disposition header is the only reliable success signal; anything
// other than the exact attachment name is rejected.
func (c *Client) GetInvoiceZip(ctx context.Context, invoiceUUID string, signed bool) ([]byte, error) {
	downloadURL, err := c.InvoiceDownloadURL(invoiceUUID, signed)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, &model.APIError{Code: model.ErrUnknown, Message: "cannot build download request", Cause: err}
	}
	for name, value := range defaultHeaders {
		req.Header.Set(name, value)
	}
	req.Header.Set("Referrer", c.baseURL()+referrerPath)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.APIError{Code: model.ErrUnknown, Message: "invoice download failed", Cause: err}
	}
	defer resp.Body.Close()

	expected := fmt.Sprintf("attachment; filename=%q", invoiceUUID+"_f.zip")
	if resp.Header.Get("Content-Disposition") != expected {
		return nil, &model.APIError{
			Code:           model.ErrInvalidInvoiceZipResponse,
			Message:        "download response is not the invoice zip",
			HTTPStatusCode: resp.StatusCode,
			HTTPStatusText: resp.Status,
		}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.APIError{Code: model.ErrInvalidInvoiceZipResponse, Message: "cannot read invoice zip", Cause: err}
	}
	return payload, nil
}

// GetInvoiceXML downloads the invoice bundle and extracts the UBL XML
// document from it.
func (c *Client) GetInvoiceXML(ctx context.Context, invoiceUUID string, signed bool) ([]byte, error) {
	payload, err := c.GetInvoiceZip(ctx, invoiceUUID, signed)
	if err != nil {
		return nil, err
	}

	reader, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, &model.APIError{Code: model.ErrInvalidInvoiceZipResponse, Message: "invoice zip is unreadable", Cause: err}
	}

	wanted := invoiceUUID + "_f.xml"
	for _, entry := range reader.File {
		if entry.Name != wanted {
			continue
		}
		file, err := entry.Open()
		if err != nil {
			return nil, &model.APIError{Code: model.ErrInvoiceXMLFileNotFound, Message: "invoice xml entry is unreadable", Cause: err}
		}
		defer file.Close()
		return io.ReadAll(file)
	}
	return nil, model.NewAPIError(model.ErrInvoiceXMLFileNotFound, "invoice xml not present in bundle", nil)
}
