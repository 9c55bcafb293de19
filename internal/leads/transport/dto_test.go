package transport

import (
	"encoding/json"
	"testing"

	"leadcapture_frontend/internal/leads/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRequestWireNames(t *testing.T) {
	body, err := json.Marshal(NewContactRequest(domain.LeadInquiry{
		FullName: "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "9876543210",
		Message:  "Interested",
		Source:   domain.SourceHome,
	}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"firstName": "Ravi Kumar",
		"emailTxt": "ravi@example.com",
		"phone": "9876543210",
		"message": "Interested",
		"source": "home"
	}`, string(body))
}

func TestPlotInquiryRequestNullsEmptyOptionals(t *testing.T) {
	body, err := json.Marshal(NewPlotInquiryRequest(domain.LeadInquiry{
		FullName:    "Ravi Kumar",
		Email:       "ravi@example.com",
		Phone:       "9876543210",
		BudgetRange: domain.Budget150LPlus,
		PlotID:      "A-12",
	}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"plot_number": "A-12",
		"full_name": "Ravi Kumar",
		"email": "ravi@example.com",
		"phone": "9876543210",
		"budget_range": "150L+",
		"inquiry_type": "more_info",
		"message": null
	}`, string(body))
}

func TestAPIResponseFailed(t *testing.T) {
	var resp APIResponse
	require.NoError(t, json.Unmarshal([]byte(`{"ok":false,"message":"x"}`), &resp))
	assert.True(t, resp.Failed())

	resp = APIResponse{}
	require.NoError(t, json.Unmarshal([]byte(`{"message":"saved"}`), &resp))
	assert.False(t, resp.Failed())
}
