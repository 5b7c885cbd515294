package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("postcategory", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "general", "announcement", "question":
			return true
		}
		return false
	})
	_ = validate.RegisterValidation("visibility", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "public", "private", "followers_only":
			return true
		}
		return false
	})
}

// ValidateStruct runs tag-based validation on a request body struct and
// returns a single human-readable error for the first failing field.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		first := vErrs[0]
		return fmt.Errorf("field %s failed validation on rule %s", strings.ToLower(first.Field()), first.Tag())
	}
	return err
}
