package metrics

import (
	"strings"

	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
)

// AutomatedReport is a scheduled report from the Export & Automation card.
type AutomatedReport struct {
	Name   string
	Type   ReportType
	Active bool
}

// Status returns "Active" or "Disabled".
func (a AutomatedReport) Status() string {
	if a.Active {
		return "Active"
	}
	return "Disabled"
}

// AutomatedReports returns the configured report schedules.
func AutomatedReports() []AutomatedReport {
	return []AutomatedReport{
		{Name: "Monthly ESG Summary", Type: Monthly, Active: true},
		{Name: "Quarterly Board Report", Type: Quarterly, Active: false},
		{Name: "Annual Sustainability Report", Type: Annual, Active: true},
	}
}

// DefaultRecipients is the distribution list shipped with a new install.
func DefaultRecipients() []string {
	return []string{
		"esg@company.com",
		"board@company.com",
		"sustainability@company.com",
	}
}

// ValidateRecipients checks that every entry is an email address.
func ValidateRecipients(recipients []string) error {
	var bad []string
	for _, r := range recipients {
		if err := validate.Var(r, "required,email"); err != nil {
			bad = append(bad, r)
		}
	}
	if len(bad) > 0 {
		return rerrors.ValidationError(rerrors.ErrRequestInvalidRecipient, "Invalid distribution list").
			WithContext("recipients", strings.Join(bad, ", ")).
			WithSuggestion("Use plain addresses such as esg@company.com")
	}
	return nil
}
