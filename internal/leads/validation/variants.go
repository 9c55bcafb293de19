package validation

import (
	"fmt"
	"os"
	"sort"
	"time"

	"leadcapture_frontend/internal/leads/domain"

	"gopkg.in/yaml.v3"
)

// Lead API paths.
const (
	EndpointContact       = "/api/contact"
	EndpointPlotInquiries = "/api/plot-inquiries"
)

// Variant names used by the site pages.
const (
	VariantHome      = "home"
	VariantContactUs = "contactus"
	VariantPlot      = "plot"
	VariantLeadModal = "lead-modal"
)

const (
	defaultMessageMaxLen  = 1000
	defaultSuccessMessage = "Thank you, we'll reach out soon!"
)

// Variant is the declarative field-requirement map of one form call site.
// Core fields (name, email, phone) are always required.
type Variant struct {
	Name     string        `yaml:"name"`
	Source   domain.Source `yaml:"source"`
	Endpoint string        `yaml:"endpoint"`
	// Required lists non-core fields that must be present.
	Required []string `yaml:"required"`
	// Optional lists non-core fields accepted but not enforced.
	Optional       []string      `yaml:"optional"`
	RequirePlot    bool          `yaml:"requirePlot"`
	MessageMaxLen  int           `yaml:"messageMaxLen"`
	SuccessMessage string        `yaml:"successMessage"`
	ResetAfter     time.Duration `yaml:"resetAfter"`

	// PlotID is supplied by the page, never by the user.
	PlotID string `yaml:"-"`
}

// WithPlot returns a copy of v bound to a selected plot.
func (v Variant) WithPlot(plotID string) Variant {
	v.PlotID = plotID
	return v
}

// Requires reports whether field is required by v.
func (v Variant) Requires(field string) bool {
	return contains(v.Required, field)
}

// Accepts reports whether field is either required or optional for v.
func (v Variant) Accepts(field string) bool {
	return contains(v.Required, field) || contains(v.Optional, field)
}

// MaxMessage returns the message cap in runes.
func (v Variant) MaxMessage() int {
	if v.MessageMaxLen <= 0 {
		return defaultMessageMaxLen
	}
	return v.MessageMaxLen
}

// Confirmation returns the message shown after a successful submit.
func (v Variant) Confirmation() string {
	if v.SuccessMessage == "" {
		return defaultSuccessMessage
	}
	return v.SuccessMessage
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// DefaultVariants returns the built-in form call sites.
func DefaultVariants() map[string]Variant {
	return map[string]Variant{
		VariantHome: {
			Name:       VariantHome,
			Source:     domain.SourceHome,
			Endpoint:   EndpointContact,
			Required:   []string{domain.FieldMessage},
			ResetAfter: 2500 * time.Millisecond,
		},
		VariantContactUs: {
			Name:       VariantContactUs,
			Source:     domain.SourceContactUs,
			Endpoint:   EndpointContact,
			Required:   []string{domain.FieldMessage},
			ResetAfter: 2500 * time.Millisecond,
		},
		VariantPlot: {
			Name:           VariantPlot,
			Source:         domain.SourcePlot,
			Endpoint:       EndpointPlotInquiries,
			Required:       []string{domain.FieldMessage, domain.FieldBudgetRange},
			Optional:       []string{domain.FieldInquiryType},
			RequirePlot:    true,
			SuccessMessage: "Thank you! Our team will contact you about this plot shortly.",
			ResetAfter:     1500 * time.Millisecond,
		},
		VariantLeadModal: {
			Name:           VariantLeadModal,
			Source:         domain.SourceHome,
			Endpoint:       EndpointContact,
			Optional:       []string{domain.FieldMessage},
			MessageMaxLen:  100,
			SuccessMessage: "Thanks! We'll reach out soon.",
			ResetAfter:     1200 * time.Millisecond,
		},
	}
}

type variantsFile struct {
	Variants []Variant `yaml:"variants"`
}

// LoadVariants returns the built-in variants merged with the overrides in
// path. An empty path returns the built-ins unchanged. Entries in the file
// replace built-ins of the same name.
func LoadVariants(path string) (map[string]Variant, error) {
	variants := DefaultVariants()
	if path == "" {
		return variants, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read forms config: %w", err)
	}
	return mergeVariants(variants, raw)
}

func mergeVariants(variants map[string]Variant, raw []byte) (map[string]Variant, error) {
	var file variantsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse forms config: %w", err)
	}

	for i, v := range file.Variants {
		if err := checkVariant(v); err != nil {
			return nil, fmt.Errorf("forms config entry %d: %w", i, err)
		}
		variants[v.Name] = v
	}
	return variants, nil
}

func checkVariant(v Variant) error {
	switch {
	case v.Name == "":
		return fmt.Errorf("name is required")
	case v.Source == "":
		return fmt.Errorf("variant %q: source is required", v.Name)
	case v.Endpoint != EndpointContact && v.Endpoint != EndpointPlotInquiries:
		return fmt.Errorf("variant %q: unsupported endpoint %q", v.Name, v.Endpoint)
	case v.RequirePlot != (v.Endpoint == EndpointPlotInquiries):
		return fmt.Errorf("variant %q: plot inquiries and requirePlot go together", v.Name)
	case v.MessageMaxLen < 0:
		return fmt.Errorf("variant %q: messageMaxLen must not be negative", v.Name)
	case v.ResetAfter < 0:
		return fmt.Errorf("variant %q: resetAfter must not be negative", v.Name)
	}
	return nil
}

// Names returns the sorted variant names.
func Names(variants map[string]Variant) []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
