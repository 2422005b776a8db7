// Package validator wraps go-playground/validator with airline reference code tags.
package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// carrierCodePattern matches two-character IATA airline designators like LH or 8P
	carrierCodePattern = regexp.MustCompile(`^[A-Z0-9]{2}$`)
	nationCodePattern  = regexp.MustCompile(`^[A-Z]{2}$`)
	planCodePattern    = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Validator defines the interface for validation operations
type Validator interface {
	ValidateStruct(s any) map[string]string
}

type validatorImpl struct {
	validate *validator.Validate
}

// NewValidator creates a validator that knows the carrier, nation and plan tags.
// Error keys use the json field name when one is declared.
func NewValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("carrier", matchPattern(carrierCodePattern))
	_ = v.RegisterValidation("nation", matchPattern(nationCodePattern))
	_ = v.RegisterValidation("plan", matchPattern(planCodePattern))

	return &validatorImpl{validate: v}
}

func matchPattern(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// ValidateStruct validates a struct and returns field-specific errors
func (v *validatorImpl) ValidateStruct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"request": err.Error()}
	}

	result := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		key := strings.TrimPrefix(fieldErr.Namespace(), topLevel(fieldErr))
		result[key] = formatValidationError(fieldErr, prettifyFieldName(fieldErr.StructField()))
	}
	return result
}

// topLevel returns the struct name prefix of a namespace, e.g. "ResolveRequest."
func topLevel(fieldErr validator.FieldError) string {
	ns := fieldErr.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[:i+1]
	}
	return ""
}

// defaultValidator backs the package-level helper
var defaultValidator = NewValidator()

// ValidateStruct validates s with a shared validator instance
func ValidateStruct(s any) map[string]string {
	return defaultValidator.ValidateStruct(s)
}

func formatValidationError(err validator.FieldError, fieldName string) string {
	switch err.Tag() {
	case "required":
		return fieldName + " is required"
	case "carrier":
		return fieldName + " must be a two-character airline code"
	case "nation":
		return fieldName + " must be a two-letter country code"
	case "plan":
		return fieldName + " must be a three-letter settlement plan code"
	case "min":
		if err.Kind() == reflect.Slice {
			return fieldName + " must contain at least " + err.Param() + " items"
		}
		return fieldName + " must be at least " + err.Param() + " characters long"
	case "max":
		if err.Kind() == reflect.Slice {
			return fieldName + " must contain at most " + err.Param() + " items"
		}
		return fieldName + " must be at most " + err.Param() + " characters long"
	case "len":
		return fieldName + " must be exactly " + err.Param() + " characters long"
	case "oneof":
		return fieldName + " must be one of the following: " + err.Param()
	case "alphanum":
		return fieldName + " must contain only letters and numbers"
	case "datetime":
		return fieldName + " must match the layout " + err.Param()
	default:
		return fieldName + " is invalid"
	}
}

// prettifyFieldName turns a camelCase or PascalCase field into a human-readable string
func prettifyFieldName(field string) string {
	var result []rune
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' && field[i-1] >= 'a' && field[i-1] <= 'z' {
			result = append(result, ' ')
		}
		result = append(result, r)
	}
	return cases.Title(language.Und, cases.NoLower).String(string(result))
}
