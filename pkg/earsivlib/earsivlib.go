// Package earsivlib provides a public API for the GİB e-Arşiv portal.
//
// It exposes the portal client together with the record types it consumes
// and produces.
//
// Example usage:
//
//	client := earsivlib.NewClient(
//		earsivlib.WithCredentials("12345678901", "password"),
//	)
//	if err := client.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	invoices, err := client.GetBasicInvoices(ctx, earsivlib.ListFilter{
//	    StartDate: "2024-01-01",
//	    EndDate:   "2024-01-31",
//	})
package earsivlib

import (
	"github.com/rezonia/earsiv-client/internal/model"
	"github.com/rezonia/earsiv-client/internal/portal"
)

// Re-export the client and its configuration surface
type (
	Client       = portal.Client
	Option       = portal.Option
	ListFilter   = portal.ListFilter
	RecoveryFunc = portal.RecoveryFunc
)

var (
	NewClient              = portal.NewClient
	WithHTTPClient         = portal.WithHTTPClient
	WithBaseURLs           = portal.WithBaseURLs
	WithCredentials        = portal.WithCredentials
	WithTestMode           = portal.WithTestMode
	WithMaxRetries         = portal.WithMaxRetries
	WithSessionTimeoutHook = portal.WithSessionTimeoutHook
	WithLogger             = portal.WithLogger

	FilterByApprovalStatus = portal.FilterByApprovalStatus
)

// Re-export record types
type (
	Record             = model.Record
	Invoice            = model.Invoice
	BasicInvoice       = model.BasicInvoice
	UserInformation    = model.UserInformation
	CompanyInformation = model.CompanyInformation
	Credentials        = model.Credentials
	SMSCode            = model.SMSCode
)

// Re-export enums
type (
	ApprovalStatus       = model.ApprovalStatus
	HourlySearchInterval = model.HourlySearchInterval
	InvoiceType          = model.InvoiceType
)

const (
	StatusApproved   = model.StatusApproved
	StatusUnapproved = model.StatusUnapproved
	StatusDeleted    = model.StatusDeleted

	IntervalNone      = model.IntervalNone
	IntervalFirstHalf = model.IntervalFirstHalf
	IntervalLastHalf  = model.IntervalLastHalf

	InvoiceTypeSale      = model.InvoiceTypeSale
	InvoiceTypeRefund    = model.InvoiceTypeRefund
	InvoiceTypeExemption = model.InvoiceTypeExemption
)

// Re-export error types
type (
	APIError                = model.APIError
	ErrorCode               = model.ErrorCode
	ValidationError         = model.ValidationError
	MissingTokenError       = model.MissingTokenError
	MissingCredentialsError = model.MissingCredentialsError
)
