package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator; field names are reported by their json tag.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct runs struct-tag validation and converts failures into a field map.
func ValidateStruct(op string, v any) error {
	fields := FieldErrors{}
	CollectStruct(fields, v)
	if fields.Any() {
		return Invalid(op, fields)
	}
	return nil
}

// CollectStruct appends validation failures of v into fields.
func CollectStruct(fields FieldErrors, v any) {
	err := Validator().Struct(v)
	if err == nil {
		return
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		fields.Add("request", "invalid request")
		return
	}
	for _, fe := range ves {
		fields.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	name := strings.ReplaceAll(fe.Field(), "_", " ")
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", name)
	case "min", "gte":
		if isString {
			return fmt.Sprintf("The %s must be at least %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", name, fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("The %s must not be greater than %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s must not be greater than %s.", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", name)
	case "len":
		return fmt.Sprintf("The %s must be %s characters.", name, fe.Param())
	case "numeric":
		return fmt.Sprintf("The %s must be a number.", name)
	case "url":
		return fmt.Sprintf("The %s must be a valid URL.", name)
	default:
		return fmt.Sprintf("The %s is invalid.", name)
	}
}
