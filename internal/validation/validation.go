// Package validation checks struct tags on request payloads and stored
// records, reporting fields by their JSON names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Struct validates data and returns one FieldError per violated constraint,
// or nil when data is valid.
func Struct(data any) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe),
			Message: describe(fe),
		})
	}
	return out
}

// First returns the first violation, if any.
func First(data any) *FieldError {
	errs := Struct(data)
	if len(errs) == 0 {
		return nil
	}
	return &errs[0]
}

// fieldPath drops the root struct name from the namespace,
// e.g. "SubmitSessionRequest.questions[0].question" -> "questions[0].question".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "ltefield":
		return "must not exceed " + lowerFirst(fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("must satisfy %s constraint", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
