// Package model defines the domain records exchanged with the e-Arşiv
// portal and the typed errors the client surfaces.
//
// The portal speaks loosely typed JSON: every document is a flat object
// whose field set drifts between endpoints and portal releases. Records are
// therefore maps rather than rigid structs, so unrecognized portal fields
// survive a round trip untouched. The named record types add typed accessors
// for the fields this library understands.
package model

import "strconv"

// Record is a flat portal document with English (domain) key names.
type Record = map[string]any

// Credentials hold the portal account. A password of "1" marks an anonymous
// test-mode account, not a real secret.
type Credentials struct {
	Username string
	Password string
}

// Anonymous reports whether the credentials belong to an anonymous
// test-mode account.
func (c Credentials) Anonymous() bool {
	return c.Password == "1"
}

// BasicInvoice is a lightweight invoice summary used for listing, deleting
// and signing. Both listing variants (issued by me, issued to me) map onto
// this shape.
type BasicInvoice Record

func (b BasicInvoice) UUID() string                   { return recString(b, "uuid") }
func (b BasicInvoice) DocumentNumber() string         { return recString(b, "documentNumber") }
func (b BasicInvoice) TaxOrIdentityNumber() string    { return recString(b, "taxOrIdentityNumber") }
func (b BasicInvoice) TitleOrFullName() string        { return recString(b, "titleOrFullName") }
func (b BasicInvoice) DocumentDate() string           { return recString(b, "documentDate") }
func (b BasicInvoice) DocumentType() string           { return recString(b, "documentType") }
func (b BasicInvoice) ApprovalStatus() ApprovalStatus { return ApprovalStatus(recString(b, "approvalStatus")) }

// Invoice is the fully detailed invoice record.
type Invoice Record

func (i Invoice) UUID() string           { return recString(i, "uuid") }
func (i Invoice) DocumentNumber() string { return recString(i, "documentNumber") }
func (i Invoice) Date() string           { return recString(i, "date") }
func (i Invoice) Currency() string       { return recString(i, "currency") }
func (i Invoice) BuyerTitle() string     { return recString(i, "buyerTitle") }
func (i Invoice) PaymentPrice() float64  { return recNumber(i, "paymentPrice") }
func (i Invoice) Note() string           { return recString(i, "note") }

// Products returns the invoice line items, one record per product row.
func (i Invoice) Products() []Record {
	items, _ := i["products"].([]any)
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(Record); ok {
			out = append(out, rec)
		}
	}
	return out
}

// UserInformation is the authenticated account's company profile.
type UserInformation Record

func (u UserInformation) Title() string               { return recString(u, "title") }
func (u UserInformation) FirstName() string           { return recString(u, "firstName") }
func (u UserInformation) LastName() string            { return recString(u, "lastName") }
func (u UserInformation) TaxOrIdentityNumber() string { return recString(u, "taxOrIdentityNumber") }
func (u UserInformation) Email() string               { return recString(u, "email") }
func (u UserInformation) TaxOffice() string           { return recString(u, "taxOffice") }

// CompanyInformation is a registry lookup result for a tax or identity
// number.
type CompanyInformation Record

func (c CompanyInformation) Title() string     { return recString(c, "title") }
func (c CompanyInformation) FirstName() string { return recString(c, "firstName") }
func (c CompanyInformation) LastName() string  { return recString(c, "lastName") }
func (c CompanyInformation) TaxOffice() string { return recString(c, "taxOffice") }

// SMSCode identifies a pending SMS signing confirmation.
type SMSCode struct {
	OperationID string
	PhoneNumber string
}

func recString(rec map[string]any, key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return ""
	}
}

// recNumber tolerates both string and numeric wire encodings; the portal is
// not consistent about which one it returns.
func recNumber(rec map[string]any, key string) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
