package model

import "fmt"

// ErrorCode classifies a portal API failure so callers can branch on it.
type ErrorCode int

const (
	ErrUnknown ErrorCode = iota + 1
	ErrSessionTimeout
	ErrInvalidResponse
	ErrInvalidAccessToken
	ErrBasicInvoiceNotCreated
	ErrInvoiceNotFound
	ErrBasicInvoiceNotFound
	ErrInvalidInvoiceHTML
	ErrUserInformationNotFound
	ErrUserInformationNotUpdated
	ErrSavedPhoneNumberNotFound
	ErrInvalidSMSOperationID
	ErrInvoicesNotSigned
	ErrCancelRequestNotCreated
	ErrBasicInvoiceNotDeleted
	ErrInvalidAnonymousUserID
	ErrCompanyInformationNotFound
	ErrInvoiceXMLFileNotFound
	ErrInvalidInvoiceZipResponse
)

var errorCodeNames = map[ErrorCode]string{
	ErrUnknown:                    "UNKNOWN_ERROR",
	ErrSessionTimeout:             "SESSION_TIMEOUT",
	ErrInvalidResponse:            "INVALID_RESPONSE",
	ErrInvalidAccessToken:         "INVALID_ACCESS_TOKEN",
	ErrBasicInvoiceNotCreated:     "BASIC_INVOICE_NOT_CREATED",
	ErrInvoiceNotFound:            "INVOICE_NOT_FOUND",
	ErrBasicInvoiceNotFound:       "BASIC_INVOICE_NOT_FOUND",
	ErrInvalidInvoiceHTML:         "INVALID_INVOICE_HTML",
	ErrUserInformationNotFound:    "USER_INFORMATION_NOT_FOUND",
	ErrUserInformationNotUpdated:  "USER_INFORMATION_NOT_UPDATED",
	ErrSavedPhoneNumberNotFound:   "SAVED_PHONE_NUMBER_NOT_FOUND",
	ErrInvalidSMSOperationID:      "INVALID_SMS_OPERATION_ID",
	ErrInvoicesNotSigned:          "BASIC_INVOICES_COULD_NOT_SIGNED",
	ErrCancelRequestNotCreated:    "INVOICE_CANCEL_REQUEST_NOT_CREATED",
	ErrBasicInvoiceNotDeleted:     "BASIC_INVOICE_NOT_DELETED",
	ErrInvalidAnonymousUserID:     "INVALID_ANONYMOUS_USER_ID",
	ErrCompanyInformationNotFound: "COMPANY_INFORMATION_NOT_FOUND",
	ErrInvoiceXMLFileNotFound:     "INVOICE_XML_FILE_NOT_FOUND",
	ErrInvalidInvoiceZipResponse:  "INVALID_INVOICE_ZIP_FILE_RESPONSE",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// APIError represents a classified failure response from the portal.
// Data carries the raw decoded body so callers can inspect portal messages.
type APIError struct {
	Code           ErrorCode
	Message        string
	Data           any
	HTTPStatusCode int
	HTTPStatusText string
	Cause          error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NewAPIError creates an API error with the raw response payload attached.
func NewAPIError(code ErrorCode, message string, data any) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MissingTokenError is returned when an authenticated operation is attempted
// before an access token has been acquired. No network call is made.
type MissingTokenError struct{}

func (e *MissingTokenError) Error() string {
	return "no access token: call Connect or InitAccessToken first"
}

// MissingCredentialsError is returned when a token acquisition is attempted
// without a username and password being set.
type MissingCredentialsError struct {
	Credentials Credentials
}

func (e *MissingCredentialsError) Error() string {
	return "no credentials: call SetCredentials or UseAnonymousAccount first"
}

// ValidationError represents an invalid payload field detected before any
// request is sent. Field is the path of the offending value, for example
// "products[0].price".
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed on %s: %s (value=%v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
