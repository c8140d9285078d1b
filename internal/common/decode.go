package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeAndValidate decodes the JSON request body into dst and runs struct validation.
// Validation failures carry a json field path -> rule map in Details.
func DecodeAndValidate(r *http.Request, dst any) error {
	if r.Body == nil {
		return BadRequest("invalid payload", errors.New("empty body"))
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return NewAppError("PAYLOAD_TOO_LARGE", "request entity too large", http.StatusRequestEntityTooLarge, err)
		}
		return BadRequest("invalid payload", err)
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return BadRequest("invalid payload", err)
		}
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			_, field, _ := strings.Cut(fe.Namespace(), ".")
			details[field] = fe.Tag()
		}
		appErr := NewAppError("VALIDATION_FAILED", "validation failed", http.StatusBadRequest, err)
		appErr.Details = details
		return appErr
	}
	return nil
}
