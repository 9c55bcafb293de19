package transport

import "leadcapture_frontend/internal/leads/domain"

// Request DTOs sent to the lead API.

// ContactRequest is the body of POST /api/contact. Field names follow the
// site markup the API was built against.
type ContactRequest struct {
	FirstName string `json:"firstName"`
	EmailTxt  string `json:"emailTxt"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Source    string `json:"source"`
}

// PlotInquiryRequest is the body of POST /api/plot-inquiries.
type PlotInquiryRequest struct {
	PlotNumber  string  `json:"plot_number"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	BudgetRange *string `json:"budget_range"`
	InquiryType string  `json:"inquiry_type"`
	Message     *string `json:"message"`
}

// APIResponse is the envelope returned by the lead API. Every field is
// optional on the wire.
type APIResponse struct {
	OK      *bool  `json:"ok,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failed reports whether the body explicitly signals failure.
func (r APIResponse) Failed() bool {
	return r.OK != nil && !*r.OK
}

// NewContactRequest maps a validated inquiry onto the contact body.
func NewContactRequest(in domain.LeadInquiry) ContactRequest {
	return ContactRequest{
		FirstName: in.FullName,
		EmailTxt:  in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		Source:    string(in.Source),
	}
}

// NewPlotInquiryRequest maps a validated inquiry onto the plot inquiry body.
// Empty message and budget are sent as null.
func NewPlotInquiryRequest(in domain.LeadInquiry) PlotInquiryRequest {
	inquiryType := in.InquiryType
	if inquiryType == "" {
		inquiryType = domain.InquiryMoreInfo
	}
	return PlotInquiryRequest{
		PlotNumber:  in.PlotID,
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		BudgetRange: nullable(string(in.BudgetRange)),
		InquiryType: string(inquiryType),
		Message:     nullable(in.Message),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Response DTOs returned by the form gateway.

// FormView is the rendered state of one form instance.
type FormView struct {
	Variant string            `json:"variant"`
	State   string            `json:"state"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields"`
	PlotID  string            `json:"plotId,omitempty"`
}

// EditFieldsRequest is the body of PATCH /api/forms/:variant.
type EditFieldsRequest struct {
	Fields map[string]string `json:"fields" validate:"required,max=20,dive,keys,min=1,max=40,endkeys,max=2000"`
}
