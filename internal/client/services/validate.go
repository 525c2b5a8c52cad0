package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateStruct checks s against its validate tags. Failures wrap
// common.ErrValidation with a readable message.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "iscolor":
		return fmt.Sprintf("%s must be a CSS colour", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
