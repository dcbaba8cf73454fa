package model

// ApprovalStatus is the approval state of a document on the portal. The
// portal reports it as a Turkish display string, so the constants carry the
// wire values directly.
type ApprovalStatus string

const (
	StatusApproved   ApprovalStatus = "Onaylandı"
	StatusUnapproved ApprovalStatus = "Onaylanmadı"
	StatusDeleted    ApprovalStatus = "Silinmiş"
)

// Valid reports whether s is one of the statuses the portal emits.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusApproved, StatusUnapproved, StatusDeleted:
		return true
	}
	return false
}

// HourlySearchInterval narrows an issued-to-me listing to part of a day.
// Only honored by the portal when the start and end dates are equal.
type HourlySearchInterval string

const (
	IntervalNone      HourlySearchInterval = "NONE"
	IntervalFirstHalf HourlySearchInterval = "00:00-11:59"
	IntervalLastHalf  HourlySearchInterval = "12:00-23:59"
)

// InvoiceType selects the kind of invoice being drafted.
type InvoiceType string

const (
	InvoiceTypeSale      InvoiceType = "SATIS"
	InvoiceTypeRefund    InvoiceType = "IADE"
	InvoiceTypeExemption InvoiceType = "ISTISNA"
)

// Common field values the portal expects when none is given explicitly.
const (
	DefaultCurrency  = "TRY"
	DefaultCountry   = "Türkiye"
	DefaultUnitType  = "C62" // piece
	DefaultWhichType = "5000/30000"
)
