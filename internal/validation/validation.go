// Package validation contains the logic for validating
// request data.
//
// Identifiers and emails are checked by ParseID and ValidateEmail. Request
// bodies are inspected with gjson so a field can be told apart as absent,
// null, or of the wrong type, and range rules run through the `validator`
// library. Every failure is returned as an errs.HTTPError of KindValidation.
package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/maprangsoft/crudapi/internal/errs"
	"github.com/maprangsoft/crudapi/internal/i18n"
)

// MaxSafeInteger is the largest integer a JSON number carries exactly.
const MaxSafeInteger = 1<<53 - 1

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// emailfmt is the shallow local@domain.tld check used by the API, looser
	// than the library's RFC 5322 `email` tag.
	_ = v.RegisterValidation("emailfmt", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
	return v
}

// ParseID converts a textual identifier to a positive integer.
//
// Any numeric form is accepted as long as it denotes a positive integer within
// MaxSafeInteger, so "7", " 7 ", "7.0" and "7e0" all yield 7.
func ParseID(raw string) (int64, error) {
	text := strings.TrimSpace(raw)

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		if n <= 0 || n > MaxSafeInteger {
			return 0, invalidID()
		}
		return n, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f != math.Trunc(f) || f > MaxSafeInteger {
		return 0, invalidID()
	}
	return int64(f), nil
}

func invalidID() *errs.HTTPError {
	return errs.NewValidationError(i18n.ErrInvalidID, nil)
}

// ValidateEmail fails unless value looks like local@domain.tld.
func ValidateEmail(value string) error {
	if !emailRegex.MatchString(value) {
		return errs.NewValidationError(i18n.ErrInvalidEmail, nil)
	}
	return nil
}

// Rule pairs a validator tag with the message reported when it fails.
type Rule struct {
	Tag       string
	MessageID string
}

var (
	// Required rejects empty strings and zero values.
	Required = Rule{Tag: "required", MessageID: i18n.ErrFieldRequired}
	// NotBlank is Required with the wording used for updates.
	NotBlank = Rule{Tag: "required", MessageID: i18n.ErrFieldNotBlank}
	// Email applies the emailfmt tag.
	Email = Rule{Tag: "emailfmt", MessageID: i18n.ErrInvalidEmail}
	// PositiveInt requires a value > 0.
	PositiveInt = Rule{Tag: "gt=0", MessageID: i18n.ErrFieldPositiveInt}
	// NonNegativeInt requires a value >= 0.
	NonNegativeInt = Rule{Tag: "gte=0", MessageID: i18n.ErrFieldNonNegativeInt}
)

// Check runs rules against value in order and reports the first failure as a
// validation error about field.
func Check(field string, value any, rules ...Rule) error {
	for _, rule := range rules {
		err := validate.Var(value, rule.Tag)
		if err == nil {
			continue
		}
		if _, ok := err.(validator.ValidationErrors); !ok {
			return err
		}
		return FieldError(field, rule.MessageID)
	}
	return nil
}

// FieldError builds the validation error for one field. The field name is
// passed to the message template as .Field.
func FieldError(field, msgID string) *errs.HTTPError {
	return errs.NewValidationError(msgID, map[string]any{"Field": field})
}
