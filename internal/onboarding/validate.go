package onboarding

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

const nationalIDLength = 13

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("nationalid", func(fl validator.FieldLevel) bool {
		return ValidNationalID(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// ValidNationalID reports whether id is exactly 13 ASCII decimal digits.
// Non-ASCII digits (e.g. Arabic-Indic) are rejected.
func ValidNationalID(id string) bool {
	if len(id) != nationalIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// rulePriority orders validator tags by the error the user sees first.
var rulePriority = []struct {
	tag  string
	code string
}{
	{"required", CodeMissingFields},
	{"eqfield", CodePasswordMismatch},
	{"nationalid", CodeInvalidNationalID},
}

// firstViolation validates v and returns the highest priority code, or "" when
// v is valid.
func firstViolation(v any) string {
	err := validate.Struct(v)
	if err == nil {
		return ""
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return CodeMissingFields
	}
	for _, rule := range rulePriority {
		for _, fe := range fieldErrs {
			if fe.Tag() == rule.tag {
				return rule.code
			}
		}
	}
	return CodeMissingFields
}
