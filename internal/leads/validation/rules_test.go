package validation

import (
	"strings"
	"testing"

	"leadcapture_frontend/internal/leads/domain"
	"leadcapture_frontend/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactVariant() Variant {
	return DefaultVariants()[VariantContactUs]
}

func validFields() domain.Fields {
	return domain.Fields{
		domain.FieldFullName: "Ravi Kumar",
		domain.FieldEmail:    "ravi@example.com",
		domain.FieldPhone:    "9876543210",
		domain.FieldMessage:  "Interested",
	}
}

func requireValidationMessage(t *testing.T, err error, want string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, want, apperr.Message(err, ""))
}

func TestValidateHappyPath(t *testing.T) {
	engine := MustNewEngine()

	got, err := engine.Validate(contactVariant(), validFields())
	require.NoError(t, err)

	assert.Equal(t, domain.LeadInquiry{
		FullName: "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "9876543210",
		Message:  "Interested",
		Source:   domain.SourceContactUs,
	}, got)
}

func TestValidatePresenceFirst(t *testing.T) {
	engine := MustNewEngine()

	for _, field := range []string{domain.FieldFullName, domain.FieldEmail, domain.FieldPhone, domain.FieldMessage} {
		t.Run(field, func(t *testing.T) {
			fields := validFields()
			fields[field] = "   "
			// A bad shape elsewhere must not win over presence.
			if field != domain.FieldEmail {
				fields[domain.FieldEmail] = "not-an-email"
			}
			_, err := engine.Validate(contactVariant(), fields)
			requireValidationMessage(t, err, MsgFillAllFields)
		})
	}
}

func TestValidateOptionalMessage(t *testing.T) {
	engine := MustNewEngine()
	fields := validFields()
	delete(fields, domain.FieldMessage)

	got, err := engine.Validate(DefaultVariants()[VariantLeadModal], fields)
	require.NoError(t, err)
	assert.Empty(t, got.Message)
	assert.Equal(t, domain.SourceHome, got.Source)
}

func TestValidateNameRule(t *testing.T) {
	engine := MustNewEngine()

	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"five letters", "Ravik", true},
		{"letters and spaces", "  Anita  Desai ", true},
		{"too short", "Al", false},
		{"four letters", "Ravi", false},
		{"digits", "Ravi Kumar 2", false},
		{"symbols", "Ravi-Kumar", false},
		{"non ascii", "Rávi Kumar", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validFields()
			fields[domain.FieldFullName] = tc.input
			got, err := engine.Validate(contactVariant(), fields)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, strings.TrimSpace(tc.input), got.FullName)
				return
			}
			requireValidationMessage(t, err, MsgNameShape)
		})
	}
}

func TestValidateEmailRule(t *testing.T) {
	engine := MustNewEngine()

	for _, bad := range []string{"ravi", "ravi@", "@example.com", "ravi@example", "ravi@example.c", "ravi example@x.com", "ravi@exa_mple.com"} {
		t.Run(bad, func(t *testing.T) {
			fields := validFields()
			fields[domain.FieldEmail] = bad
			_, err := engine.Validate(contactVariant(), fields)
			requireValidationMessage(t, err, MsgEmailShape)
		})
	}

	for _, user := range []string{"ravi", "r.kumar", "ravi_k+site", "a%b-c"} {
		for _, host := range []string{"example.com", "mail.example.co.in", "x-y.io"} {
			fields := validFields()
			fields[domain.FieldEmail] = user + "@" + host
			_, err := engine.Validate(contactVariant(), fields)
			assert.NoError(t, err, user+"@"+host)
		}
	}
}

func TestValidateEmailDomainLowercased(t *testing.T) {
	engine := MustNewEngine()
	fields := validFields()
	fields[domain.FieldEmail] = "  Ravi.K@Example.COM "

	got, err := engine.Validate(contactVariant(), fields)
	require.NoError(t, err)
	assert.Equal(t, "Ravi.K@example.com", got.Email)
}

func TestValidatePhoneRule(t *testing.T) {
	engine := MustNewEngine()

	good := map[string]string{
		"9876543210":        "9876543210",
		"+91 98765 43210":   "+919876543210",
		"098765-43210":      "09876543210",
		"(+91) 6000-000000": "+916000000000",
	}
	for input, want := range good {
		fields := validFields()
		fields[domain.FieldPhone] = input
		got, err := engine.Validate(contactVariant(), fields)
		require.NoError(t, err, input)
		assert.Equal(t, want, got.Phone)
	}

	for _, bad := range []string{"987654321", "5876543210", "0123456789", "+1 9876543210", "98765432101"} {
		fields := validFields()
		fields[domain.FieldPhone] = bad
		_, err := engine.Validate(contactVariant(), fields)
		requireValidationMessage(t, err, MsgPhoneShape)
	}
}

func TestValidateRuleOrder(t *testing.T) {
	engine := MustNewEngine()
	fields := domain.Fields{
		domain.FieldFullName: "Al",
		domain.FieldEmail:    "broken",
		domain.FieldPhone:    "123",
		domain.FieldMessage:  "hi",
	}

	_, err := engine.Validate(contactVariant(), fields)
	requireValidationMessage(t, err, MsgNameShape)

	fields[domain.FieldFullName] = "Ravi Kumar"
	_, err = engine.Validate(contactVariant(), fields)
	requireValidationMessage(t, err, MsgEmailShape)

	fields[domain.FieldEmail] = "ravi@example.com"
	_, err = engine.Validate(contactVariant(), fields)
	requireValidationMessage(t, err, MsgPhoneShape)
}

func TestValidateNameTooShortScenario(t *testing.T) {
	engine := MustNewEngine()
	fields := domain.Fields{
		domain.FieldFullName: "Al",
		domain.FieldEmail:    "a@b.co",
		domain.FieldPhone:    "9876543210",
	}

	_, err := engine.Validate(DefaultVariants()[VariantLeadModal], fields)
	requireValidationMessage(t, err, MsgNameShape)
}

func TestValidateMessageTruncatedInRunes(t *testing.T) {
	engine := MustNewEngine()
	fields := validFields()
	fields[domain.FieldMessage] = strings.Repeat("é", 150)

	got, err := engine.Validate(DefaultVariants()[VariantLeadModal], fields)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 100), got.Message)
}

func TestValidatePlotVariant(t *testing.T) {
	engine := MustNewEngine()
	plot := DefaultVariants()[VariantPlot]

	fields := validFields()
	_, err := engine.Validate(plot.WithPlot("A-12"), fields)
	requireValidationMessage(t, err, MsgBudgetRange)

	fields[domain.FieldBudgetRange] = "cheap"
	_, err = engine.Validate(plot.WithPlot("A-12"), fields)
	requireValidationMessage(t, err, MsgBudgetRange)

	fields[domain.FieldBudgetRange] = string(domain.Budget100To150L)
	_, err = engine.Validate(plot, fields)
	requireValidationMessage(t, err, MsgPlot)

	fields[domain.FieldInquiryType] = "whenever"
	_, err = engine.Validate(plot.WithPlot("A-12"), fields)
	requireValidationMessage(t, err, MsgInquiryType)

	delete(fields, domain.FieldInquiryType)
	got, err := engine.Validate(plot.WithPlot(" A-12 "), fields)
	require.NoError(t, err)
	assert.Equal(t, "A-12", got.PlotID)
	assert.Equal(t, domain.Budget100To150L, got.BudgetRange)
	assert.Equal(t, domain.InquiryMoreInfo, got.InquiryType)
	assert.Equal(t, domain.SourcePlot, got.Source)
}

func TestValidateIgnoresUserSuppliedSource(t *testing.T) {
	engine := MustNewEngine()
	fields := validFields()
	fields["source"] = "attacker"
	fields["plotId"] = "Z-99"

	got, err := engine.Validate(contactVariant(), fields)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceContactUs, got.Source)
	assert.Empty(t, got.PlotID)
}

func TestValidateAcceptsLegacyFieldNames(t *testing.T) {
	engine := MustNewEngine()
	fields := domain.Fields{
		"firstName": "Ravi Kumar",
		"emailTxt":  "ravi@example.com",
		"phone":     "9876543210",
		"message":   "Interested",
	}

	got, err := engine.Validate(contactVariant(), fields)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", got.FullName)
}
