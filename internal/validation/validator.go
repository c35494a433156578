// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError describes one field that failed validation.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the field name, using the json or koanf tag when present.
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the tag parameter, e.g. "50" for "max=50".
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the rejected value.
func (e *ValidationError) Value() interface{} {
	return e.value
}

func (e *ValidationError) Error() string {
	return e.message
}

// RequestValidationError collects the field errors of one struct.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(ve.errors))
	for i := range ve.errors {
		messages = append(messages, ve.errors[i].Error())
	}
	return strings.Join(messages, "; ")
}

// APIError is the VALIDATION_ERROR shape returned by the HTTP layer.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the collected errors into an APIError.
func (ve *RequestValidationError) ToAPIError() *APIError {
	if len(ve.errors) == 0 {
		return &APIError{Code: "VALIDATION_ERROR", Message: "Validation failed"}
	}

	if len(ve.errors) == 1 {
		err := ve.errors[0]
		return &APIError{
			Code:    "VALIDATION_ERROR",
			Message: err.message,
			Details: map[string]interface{}{
				"field": err.field,
				"tag":   err.tag,
				"value": err.value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	messages := make([]string, 0, len(ve.errors))
	for i, err := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   err.field,
			"tag":     err.tag,
			"message": err.message,
		}
		messages = append(messages, fmt.Sprintf("%s: %s", err.field, err.message))
	}

	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: strings.Join(messages, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the shared validator. Field names in errors come from
// the json tag, then the koanf tag, then the Go field name.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(tagName)

		// notblank rejects strings made only of whitespace.
		if err := validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		}); err != nil {
			panic(fmt.Sprintf("register notblank validator: %v", err))
		}
	})

	return validate
}

func tagName(f reflect.StructField) string {
	for _, key := range []string{"json", "koanf"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// ValidateStruct validates s. It returns nil when s is valid.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			errors: []ValidationError{{field: "unknown", tag: "unknown", message: err.Error()}},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldPath(fieldErr),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr),
		}
	}

	return &RequestValidationError{errors: fieldErrors}
}

// fieldPath drops the root struct name from the namespace, so nested config
// fields read "server.port" rather than "Config.server.port".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"notblank": "%s must not be blank",
	"url":      "%s must be a valid URL",
	"http_url": "%s must be a valid http or https URL",
	"hostname": "%s must be a valid hostname",
	"alphanum": "%s must contain only letters and digits",
}

var errorMessageWithParam = map[string]string{
	"oneof":       "%s must be one of: %s",
	"gte":         "%s must be greater than or equal to %s",
	"lte":         "%s must be less than or equal to %s",
	"gt":          "%s must be greater than %s",
	"lt":          "%s must be less than %s",
	"required_if": "%s is required when %s",
}

func translateError(fe validator.FieldError) string {
	field := fieldPath(fe)
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}
	return translateMinMax(fe, field, tag, param)
}

func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	isString := fe.Kind() == reflect.String

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
