// Package validation turns raw form fields into a normalized lead inquiry.
// Rules run in a fixed order and the first failing rule decides the message.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"leadcapture_frontend/internal/leads/domain"
	"leadcapture_frontend/platform/apperr"
	"leadcapture_frontend/platform/phone"
	"leadcapture_frontend/platform/validator"
)

// User-facing validation messages.
const (
	MsgFillAllFields = "Please fill in all fields."
	MsgNameShape     = "Full name: minimum 5 letters."
	MsgEmailShape    = "Enter a valid email address."
	MsgPhoneShape    = "Enter a valid mobile number."
	MsgBudgetRange   = "Please select your budget range."
	MsgPlot          = "Please select a plot again."
	MsgInquiryType   = "Please select a valid inquiry type."
)

// Custom validator tags.
const (
	tagName   = "leadname"
	tagEmail  = "leademail"
	tagMobile = "inmobile"
)

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z\s]{5,}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@([A-Za-z0-9-]+\.)+[A-Za-z]{2,}$`)
)

var coreFields = []string{domain.FieldFullName, domain.FieldEmail, domain.FieldPhone}

// selectionFields are checked after the shape rules.
var selectionFields = map[string]bool{
	domain.FieldBudgetRange: true,
	domain.FieldInquiryType: true,
}

// Engine validates form fields against a variant.
type Engine struct {
	val *validator.Validator
}

// NewEngine registers the lead tags on val. A nil val gets a fresh validator.
func NewEngine(val *validator.Validator) (*Engine, error) {
	if val == nil {
		val = validator.New()
	}
	patterns := map[string]*regexp.Regexp{
		tagName:  namePattern,
		tagEmail: emailPattern,
	}
	for tag, pattern := range patterns {
		if err := val.RegisterPattern(tag, pattern); err != nil {
			return nil, fmt.Errorf("validation engine: %w", err)
		}
	}
	if err := val.RegisterPredicate(tagMobile, phone.IsIndianMobile); err != nil {
		return nil, fmt.Errorf("validation engine: %w", err)
	}
	return &Engine{val: val}, nil
}

// MustNewEngine is NewEngine for package-level wiring and tests.
func MustNewEngine() *Engine {
	e, err := NewEngine(nil)
	if err != nil {
		panic(err)
	}
	return e
}

// Validate checks fields against v and returns the normalized inquiry. The
// error is always an *apperr.Error of kind KindValidation. Validate has no
// side effects.
func (e *Engine) Validate(v Variant, fields domain.Fields) (domain.LeadInquiry, error) {
	f := fields.Canonical()

	for _, name := range presenceFields(v) {
		if !e.val.Check(f.Trimmed(name), "required") {
			return domain.LeadInquiry{}, apperr.Validation(MsgFillAllFields)
		}
	}

	name := f.Trimmed(domain.FieldFullName)
	if !e.val.Check(name, tagName) {
		return domain.LeadInquiry{}, apperr.Validation(MsgNameShape)
	}

	email := f.Trimmed(domain.FieldEmail)
	if !e.val.Check(email, tagEmail) {
		return domain.LeadInquiry{}, apperr.Validation(MsgEmailShape)
	}

	mobile := phone.Normalize(f.Get(domain.FieldPhone))
	if !e.val.Check(mobile, tagMobile) {
		return domain.LeadInquiry{}, apperr.Validation(MsgPhoneShape)
	}

	inquiry := domain.LeadInquiry{
		FullName: name,
		Email:    normalizeEmail(email),
		Phone:    mobile,
		Source:   v.Source,
		PlotID:   strings.TrimSpace(v.PlotID),
	}

	if err := e.checkSelections(v, f, &inquiry); err != nil {
		return domain.LeadInquiry{}, err
	}

	if v.Accepts(domain.FieldMessage) {
		inquiry.Message = truncateRunes(f.Trimmed(domain.FieldMessage), v.MaxMessage())
	}
	return inquiry, nil
}

func (e *Engine) checkSelections(v Variant, f domain.Fields, inquiry *domain.LeadInquiry) error {
	budget := domain.BudgetRange(f.Trimmed(domain.FieldBudgetRange))
	switch {
	case v.Requires(domain.FieldBudgetRange) && budget == "":
		return apperr.Validation(MsgBudgetRange)
	case budget != "" && v.Accepts(domain.FieldBudgetRange) && !budget.Valid():
		return apperr.Validation(MsgBudgetRange)
	case v.Accepts(domain.FieldBudgetRange):
		inquiry.BudgetRange = budget
	}

	if v.RequirePlot && inquiry.PlotID == "" {
		return apperr.Validation(MsgPlot)
	}

	if !v.Accepts(domain.FieldInquiryType) {
		return nil
	}
	kind := domain.InquiryType(f.Trimmed(domain.FieldInquiryType))
	if kind == "" {
		if v.Requires(domain.FieldInquiryType) {
			return apperr.Validation(MsgInquiryType)
		}
		kind = domain.InquiryMoreInfo
	}
	if !kind.Valid() {
		return apperr.Validation(MsgInquiryType)
	}
	inquiry.InquiryType = kind
	return nil
}

// presenceFields returns core fields followed by required free-text fields.
func presenceFields(v Variant) []string {
	out := make([]string, 0, len(coreFields)+len(v.Required))
	out = append(out, coreFields...)
	for _, name := range v.Required {
		if !selectionFields[name] {
			out = append(out, name)
		}
	}
	return out
}

// normalizeEmail lowercases the domain and keeps the local part as typed.
func normalizeEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}
