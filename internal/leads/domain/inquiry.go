// Package domain holds the lead capture types shared by validation, the API
// client and the form state machine.
package domain

import "strings"

// Source tags which page or form produced an inquiry.
type Source string

const (
	SourceHome      Source = "home"
	SourceContactUs Source = "contactus"
	SourcePlot      Source = "plot"
)

// Field names accepted from forms.
const (
	FieldFullName    = "fullName"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldMessage     = "message"
	FieldBudgetRange = "budgetRange"
	FieldInquiryType = "inquiryType"
)

// fieldAliases maps the input names used by the existing site markup onto
// canonical field names.
var fieldAliases = map[string]string{
	"firstName":    FieldFullName,
	"full_name":    FieldFullName,
	"name":         FieldFullName,
	"emailTxt":     FieldEmail,
	"budget_range": FieldBudgetRange,
	"inquiry_type": FieldInquiryType,
}

// BudgetRange is the price bracket selected on plot inquiries.
type BudgetRange string

const (
	Budget75To100L  BudgetRange = "75-100L"
	Budget100To150L BudgetRange = "100-150L"
	Budget150LPlus  BudgetRange = "150L+"
)

// Valid reports whether b is a known bracket.
func (b BudgetRange) Valid() bool {
	switch b {
	case Budget75To100L, Budget100To150L, Budget150LPlus:
		return true
	}
	return false
}

// InquiryType is what the prospect is asking for.
type InquiryType string

const (
	InquiryMoreInfo   InquiryType = "more_info"
	InquirySiteVisit  InquiryType = "site_visit"
	InquiryReadyToBuy InquiryType = "ready_to_buy"
)

// Valid reports whether t is a known inquiry type.
func (t InquiryType) Valid() bool {
	switch t {
	case InquiryMoreInfo, InquirySiteVisit, InquiryReadyToBuy:
		return true
	}
	return false
}

// LeadInquiry is a validated, normalized contact request. Only the validation
// engine constructs one.
type LeadInquiry struct {
	FullName    string
	Email       string
	Phone       string
	Message     string
	Source      Source
	BudgetRange BudgetRange
	InquiryType InquiryType
	PlotID      string
}

// Fields is the raw, untrimmed form state keyed by field name.
type Fields map[string]string

// Canonical returns a copy of f with alias keys folded onto canonical names.
// A canonical key wins over its alias when both are present.
func (f Fields) Canonical() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if canonical, ok := fieldAliases[k]; ok {
			if _, exists := f[canonical]; exists {
				continue
			}
			k = canonical
		}
		out[k] = v
	}
	return out
}

// Get returns the raw value for name.
func (f Fields) Get(name string) string {
	return f[name]
}

// Trimmed returns the value for name with surrounding whitespace removed.
func (f Fields) Trimmed(name string) string {
	return strings.TrimSpace(f[name])
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
