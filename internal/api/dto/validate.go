package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct-tag validation and returns every violated constraint
// joined with " && ", matching the caller-facing message convention. A nil
// return means the shape is valid.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	messages := make([]string, 0, len(verrs))
	for _, fieldErr := range verrs {
		messages = append(messages, describe(fieldErr))
	}
	return errors.New(strings.Join(messages, " && "))
}

func describe(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "endswith":
		return fmt.Sprintf("%s must end with %s", field, fieldErr.Param())
	case "min":
		return fmt.Sprintf("%s length must be at least %s chars", field, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater or equal %s", field, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
