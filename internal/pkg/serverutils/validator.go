package serverutils

import (
	"errors"
	"reflect"
	"strings"

	"study-assistant-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Rejects "", but also "   " which `required` lets through.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidateRequest validates req and returns an apperror validation error
// whose message is the failing field's `msg` tag (falling back to a generic
// text when the tag is absent).
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.Validation(err.Error())
	}

	fe := fieldErrs[0]
	t := reflect.TypeOf(req)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if field, ok := t.FieldByName(fe.StructField()); ok {
		if msg := field.Tag.Get("msg"); msg != "" {
			return apperror.Validation(msg)
		}
	}
	return apperror.Validation(fe.Field() + " is required")
}
