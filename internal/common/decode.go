package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	validator "github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// FieldIssue describes one failed validation rule.
type FieldIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Validator returns the shared validator, keyed on json field names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// DecodeJSON decodes the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return NewAppError(CodeBadRequest, "request body is required", http.StatusBadRequest, nil)
	}
	return decodeErr(json.NewDecoder(r.Body).Decode(dst))
}

// DecodeBytes decodes an already-read request body into dst.
func DecodeBytes(body []byte, dst any) error {
	if len(body) == 0 {
		return NewAppError(CodeBadRequest, "request body is required", http.StatusBadRequest, nil)
	}
	return decodeErr(json.Unmarshal(body, dst))
}

func decodeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return NewAppError(CodeBadRequest, "request body is required", http.StatusBadRequest, err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		msg := fmt.Sprintf("field %q must be of type %s", typeErr.Field, typeErr.Type)
		return ValidationError(msg, err)
	}
	return NewAppError(CodeBadRequest, "invalid request payload", http.StatusBadRequest, err)
}

// Validate runs struct validation and converts failures to a ValidationError.
func Validate(v any, hint string) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationError("validation failed", err)
	}
	issues := make([]FieldIssue, 0, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, FieldIssue{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		parts = append(parts, describe(fe))
	}
	details := map[string]any{"fields": issues}
	if hint != "" {
		details["hint"] = hint
	}
	return ValidationError(strings.Join(parts, "; "), err).WithDetails(details)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
