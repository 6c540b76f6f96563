package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
)

// -----------------------------------------------------------------------------
// Validation Tests
// -----------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      ReportRequest
		wantCode string
		fields   string
	}{
		{
			name: "valid quarterly",
			req:  ReportRequest{Name: "Q3 2024 ESG Report", Type: Quarterly},
		},
		{
			name: "valid with period",
			req:  ReportRequest{Name: "Annual", Type: Annual, StartDate: "2024-01-01", EndDate: "2024-12-31"},
		},
		{
			name: "same start and end",
			req:  ReportRequest{Name: "Day", Type: Custom, StartDate: "2024-05-01", EndDate: "2024-05-01"},
		},
		{
			name:     "missing type",
			req:      ReportRequest{Name: "Q3 2024 ESG Report"},
			wantCode: rerrors.ErrRequestMissingFields,
			fields:   "type",
		},
		{
			name:     "missing name",
			req:      ReportRequest{Type: Monthly},
			wantCode: rerrors.ErrRequestMissingFields,
			fields:   "name",
		},
		{
			name:     "missing both",
			req:      ReportRequest{},
			wantCode: rerrors.ErrRequestMissingFields,
			fields:   "name, type",
		},
		{
			name:     "missing name wins over unknown type",
			req:      ReportRequest{Type: "weekly"},
			wantCode: rerrors.ErrRequestMissingFields,
			fields:   "name",
		},
		{
			name:     "unknown type",
			req:      ReportRequest{Name: "X", Type: "weekly"},
			wantCode: rerrors.ErrRequestInvalidType,
		},
		{
			name:     "malformed date",
			req:      ReportRequest{Name: "X", Type: Monthly, StartDate: "07/01/2024"},
			wantCode: rerrors.ErrRequestInvalidPeriod,
		},
		{
			name:     "end before start",
			req:      ReportRequest{Name: "X", Type: Monthly, StartDate: "2024-09-30", EndDate: "2024-07-01"},
			wantCode: rerrors.ErrRequestInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			re, ok := rerrors.AsReportError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, re.Code)
			assert.Equal(t, rerrors.CategoryValidation, re.Category)
			if tt.fields != "" {
				assert.Equal(t, tt.fields, re.Context["fields"])
			}
		})
	}
}

func TestValidate_MissingInformationMessage(t *testing.T) {
	err := Validate(ReportRequest{Name: "Q3 2024 ESG Report"})
	re, ok := rerrors.AsReportError(err)
	require.True(t, ok)
	assert.Equal(t, "Missing Information", re.Message)
}

func TestNormalized(t *testing.T) {
	req := ReportRequest{Name: "  Q3 2024 ESG Report ", Type: " Quarterly", Notes: " n "}.Normalized()

	assert.Equal(t, "Q3 2024 ESG Report", req.Name)
	assert.Equal(t, Quarterly, req.Type)
	assert.Equal(t, "n", req.Notes)

	blank := ReportRequest{Name: "   ", Type: Monthly}.Normalized()
	assert.True(t, rerrors.IsCode(Validate(blank), rerrors.ErrRequestMissingFields))
}
