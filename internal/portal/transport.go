// Package portal implements the e-Arşiv web portal protocol: session
// bootstrap, the dispatch envelope, error classification and the document
// operations built on top of them.
//
// The portal is not a REST API. Every operation is a form-urlencoded POST
// against one of a handful of fixed paths, carrying a command name, a fresh
// call id, a page name and a JSON payload string. Responses are JSON with an
// inconsistent envelope; classification of failures happens here so callers
// only ever see typed errors.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rezonia/earsiv-client/internal/model"
)

const (
	BaseURL     = "https://earsivportal.efatura.gov.tr"
	TestBaseURL = "https://earsivportaltest.efatura.gov.tr"

	dispatchPath = "/earsiv-services/dispatch"
	tokenPath    = "/earsiv-services/assos-login"
	esignPath    = "/earsiv-services/esign"
	downloadPath = "/earsiv-services/download"
	referrerPath = "/intragiris.html"

	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
)

// The portal rejects requests that do not look like its own browser UI.
var defaultHeaders = map[string]string{
	"Accept":          "*/*",
	"Accept-Language": "tr,en-US;q=0.9,en;q=0.8",
	"Cache-Control":   "no-cache",
	"Content-Type":    "application/x-www-form-urlencoded;charset=UTF-8",
	"Pragma":          "no-cache",
	"Sec-Fetch-Mode":  "cors",
	"Sec-Fetch-Site":  "same-origin",
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_14_6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/87.0.4280.67 Safari/537.36",
}

func (c *Client) baseURL() string {
	if c.testMode {
		return c.testBase
	}
	return c.prodBase
}

// dispatchParams builds the command envelope for one dispatch call. The
// call id must be fresh on every attempt, so retries call this again.
func (c *Client) dispatchParams(cmd, pageName string, payload any) (url.Values, error) {
	jp, err := json.Marshal(payload)
	if err != nil {
		return nil, model.NewAPIError(model.ErrUnknown, "cannot encode request payload", nil)
	}

	params := url.Values{}
	params.Set("cmd", cmd)
	params.Set("callid", uuid.NewString())
	params.Set("pageName", pageName)
	params.Set("token", c.token)
	params.Set("jp", string(jp))
	return params, nil
}

// dispatch runs one portal command, recovering from session timeouts with
// an explicit bounded loop. Each retry invokes the recovery hook first
// (re-login by default) and then rebuilds the envelope, picking up the
// refreshed token and a fresh call id.
func (c *Client) dispatch(ctx context.Context, cmd, pageName string, payload any) (map[string]any, error) {
	remaining := c.maxRetries
	for {
		params, err := c.dispatchParams(cmd, pageName, payload)
		if err != nil {
			return nil, err
		}

		body, err := c.post(ctx, dispatchPath, params)
		var apiErr *model.APIError
		if err == nil || !errors.As(err, &apiErr) || apiErr.Code != model.ErrSessionTimeout || remaining <= 0 {
			return body, err
		}

		remaining--
		c.logger.Warn().Str("cmd", cmd).Int("remaining", remaining).Msg("session expired, recovering")
		if hookErr := c.recover(ctx); hookErr != nil {
			return nil, hookErr
		}
	}
}

func (c *Client) recover(ctx context.Context) error {
	if c.onSessionTimeout != nil {
		return c.onSessionTimeout(ctx, c)
	}
	return c.InitAccessToken(ctx)
}

// post sends one form-urlencoded POST and classifies the response body.
func (c *Client) post(ctx context.Context, path string, params url.Values) (map[string]any, error) {
	base := c.baseURL()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+path, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, &model.APIError{Code: model.ErrUnknown, Message: "cannot build request", Cause: err}
	}
	for name, value := range defaultHeaders {
		req.Header.Set(name, value)
	}
	req.Header.Set("Referrer", base+referrerPath)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.APIError{Code: model.ErrUnknown, Message: "portal request failed", Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.APIError{
			Code:           model.ErrUnknown,
			Message:        "cannot read portal response",
			HTTPStatusCode: resp.StatusCode,
			HTTPStatusText: resp.Status,
			Cause:          err,
		}
	}

	body, err := classify(raw)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			apiErr.HTTPStatusCode = resp.StatusCode
			apiErr.HTTPStatusText = resp.Status
		}
		return nil, err
	}
	return body, nil
}

// classify decides whether a decoded body is a success envelope or one of
// the portal's error shapes. Order matters: a non-object body is invalid
// before anything else, an error marker outranks the payload, and the
// session-timeout signal outranks the generic error.
func classify(raw []byte) (map[string]any, error) {
	var decoded any
	if err := json.Unmarshal(bytes.TrimSpace(raw), &decoded); err != nil {
		return nil, model.NewAPIError(model.ErrInvalidResponse, "portal returned a non-JSON response", string(raw))
	}

	body, ok := decoded.(map[string]any)
	if !ok {
		return nil, model.NewAPIError(model.ErrInvalidResponse, "portal returned a non-object response", decoded)
	}

	_, hasError := body["error"]
	if !hasError {
		if data, ok := body["data"].(map[string]any); ok {
			if hata, exists := data["hata"]; exists && hata != nil && hata != "" && hata != false {
				hasError = true
			}
		}
	}
	if !hasError {
		return body, nil
	}

	if isSessionTimeout(body) {
		return nil, model.NewAPIError(model.ErrSessionTimeout, "portal session timed out", body)
	}
	return nil, model.NewAPIError(model.ErrUnknown, "portal reported an error", body)
}

// isSessionTimeout looks for the message type code the portal uses when the
// token is stale.
func isSessionTimeout(body map[string]any) bool {
	messages, ok := body["messages"].([]any)
	if !ok {
		return false
	}
	for _, raw := range messages {
		message, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if message["type"] == "4" {
			return true
		}
	}
	return false
}
