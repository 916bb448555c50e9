package utils

import (
	"reflect"
	"regexp"
	"strings"

	"foodgram/domain"

	"github.com/go-playground/validator/v10"
)

var (
	Validate *validator.Validate

	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	rgbColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

func InitValidator() {
	Validate = NewValidator()
}

func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "username", validateUsername)
	mustRegister(v, "rgbcolor", validateRGBColor)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validator: register " + tag + ": " + err.Error())
	}
}

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value != domain.ForbiddenUsername && usernamePattern.MatchString(value)
}

// validateRGBColor accepts only the six digit #RRGGBB form.
func validateRGBColor(fl validator.FieldLevel) bool {
	return rgbColorPattern.MatchString(fl.Field().String())
}
