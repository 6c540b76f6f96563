// Package metrics holds the report request and the snapshot of ESG values
// that a report is rendered from.
package metrics

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
)

// DateLayout is the format of request start and end dates.
const DateLayout = "2006-01-02"

// ReportType is the reporting cadence chosen on the request form.
type ReportType string

const (
	Monthly   ReportType = "monthly"
	Quarterly ReportType = "quarterly"
	Annual    ReportType = "annual"
	Custom    ReportType = "custom"
)

// ReportTypes lists the accepted report types in form order.
func ReportTypes() []ReportType {
	return []ReportType{Monthly, Quarterly, Annual, Custom}
}

// ReportRequest is the input submitted from the report form.
type ReportRequest struct {
	Name      string     `json:"name" validate:"required"`
	Type      ReportType `json:"type" validate:"required,oneof=monthly quarterly annual custom"`
	StartDate string     `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string     `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Notes     string     `json:"notes"`
}

// Normalized returns a copy with surrounding whitespace removed from every
// field and the type lower-cased.
func (r ReportRequest) Normalized() ReportRequest {
	return ReportRequest{
		Name:      strings.TrimSpace(r.Name),
		Type:      ReportType(strings.ToLower(strings.TrimSpace(string(r.Type)))),
		StartDate: strings.TrimSpace(r.StartDate),
		EndDate:   strings.TrimSpace(r.EndDate),
		Notes:     strings.TrimSpace(r.Notes),
	}
}

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MissingInformation is the message shown when required fields are absent.
const MissingInformation = "Missing Information"

// Validate checks a normalized request. Missing name or type yields
// REQUEST_MISSING_FIELDS, an unknown type REQUEST_INVALID_TYPE and malformed
// or reversed dates REQUEST_INVALID_PERIOD.
func Validate(req ReportRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return validatePeriod(req)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return rerrors.Wrap(err, rerrors.ErrRequestMissingFields, rerrors.CategoryValidation, MissingInformation)
	}

	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return rerrors.ValidationError(rerrors.ErrRequestMissingFields, MissingInformation).
			WithContext("fields", strings.Join(missing, ", ")).
			WithSuggestion("Please fill in all required fields")
	}

	fe := verrs[0]
	if fe.Tag() == "oneof" {
		return rerrors.ValidationError(rerrors.ErrRequestInvalidType, "Unknown report type").
			WithContext("type", string(req.Type)).
			WithSuggestion("Choose one of: monthly, quarterly, annual, custom")
	}
	return rerrors.ValidationError(rerrors.ErrRequestInvalidPeriod, "Invalid reporting period").
		WithContext(fe.Field(), fmt.Sprint(fe.Value())).
		WithSuggestion("Dates use the YYYY-MM-DD format")
}

func validatePeriod(req ReportRequest) error {
	if req.StartDate == "" || req.EndDate == "" {
		return nil
	}
	start, _ := time.Parse(DateLayout, req.StartDate)
	end, _ := time.Parse(DateLayout, req.EndDate)
	if end.Before(start) {
		return rerrors.ValidationError(rerrors.ErrRequestInvalidPeriod, "Invalid reporting period").
			WithContext("startDate", req.StartDate).
			WithContext("endDate", req.EndDate).
			WithSuggestion("The end date must not be before the start date")
	}
	return nil
}
