// Package validation checks records before they are written and reports
// business-policy violations over a whole CompanyState.
//
// Structural checks (field shape, required values, enum membership) run on a
// single record. Policy checks look across records and never block a write.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	e "github.com/gartstein/corpsec/internal/compliance/errors"
	"github.com/gartstein/corpsec/internal/compliance/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var cinPattern = regexp.MustCompile(`^U[A-Z0-9]{20}$`)

// Validator runs structural checks. The zero value is not usable; call New.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom tags used by the models package.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("cin", func(fl validator.FieldLevel) bool {
		return cinPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return countDigits(fl.Field().String()) >= 10
	})
	v.RegisterStructValidation(meetingRules, models.Meeting{})
	v.RegisterStructValidation(filingRules, models.Filing{})
	return &Validator{validate: v}
}

// Structural validates a single record and returns an error wrapping
// ErrInvalidInput that lists every failing field.
func (v *Validator) Structural(record any) error {
	err := v.validate.Struct(record)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", e.ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "cin":
		return "CIN must be 21 characters, start with U and contain only uppercase letters and digits"
	case "phone":
		return fmt.Sprintf("%s must have at least 10 digits", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date", fe.Field())
	case "subtype":
		return fmt.Sprintf("%s is not allowed for this meeting type", fe.Field())
	case "filed_only":
		return fmt.Sprintf("%s may only be set when the status is Filed", fe.Field())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func meetingRules(sl validator.StructLevel) {
	m := sl.Current().Interface().(models.Meeting)
	if m.Type != "" && m.SubType != "" && !m.SubType.ValidFor(m.Type) {
		sl.ReportError(m.SubType, "SubType", "SubType", "subtype", "")
	}
}

func filingRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(models.Filing)
	if f.FilingDate != "" && f.Status != models.FilingFiled {
		sl.ReportError(f.FilingDate, "FilingDate", "FilingDate", "filed_only", "")
	}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
