// Package normalize canonicalizes and validates event and booking records
// before they are written. Each pipeline either returns a record in canonical
// form or a *domain.ValidationError; it never returns a partially normalized record.
package normalize

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"eventbooking/internal/domain"
)

// spaceClass is RE2's \s widened to \v, Unicode space separators and U+FEFF.
const spaceClass = `\s\v\p{Z}\x{FEFF}`

var validate = newValidator()

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

// RequiredString checks that v is a string that is non-empty after trimming
// and returns the trimmed value.
func RequiredString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", domain.NewValidationError(field, fmt.Sprintf("%s is required and must be a non-empty string", field))
	}
	return strings.TrimSpace(s), nil
}

// List trims every entry of a list of strings and drops entries that become empty.
// Non-string entries are rejected, as is a list that ends up empty.
func List(field string, v any) ([]string, error) {
	var raw []any
	switch items := v.(type) {
	case []string:
		raw = make([]any, len(items))
		for i, s := range items {
			raw[i] = s
		}
	case []any:
		raw = items
	default:
		return nil, domain.NewValidationError(field, fmt.Sprintf("%s is required and must be a list of strings", field))
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, domain.NewValidationError(field, fmt.Sprintf("%s must contain strings", field))
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, domain.NewValidationError(field, fmt.Sprintf("%s must contain at least one non-empty item", field))
	}
	return out, nil
}

// checkStruct runs the struct tag bounds on an already normalized record and
// converts the first violation into a ValidationError.
func checkStruct(record any) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "max":
		return domain.NewValidationError(field, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	case "min":
		return domain.NewValidationError(field, fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param()))
	case "required":
		return domain.NewValidationError(field, fmt.Sprintf("%s is required and must be a non-empty string", field))
	default:
		return domain.NewValidationError(field, fmt.Sprintf("%s is invalid", field))
	}
}
