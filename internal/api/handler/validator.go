package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ruleMessages renders a failed rule as "<field> <message>". %s receives the
// rule parameter when the message has one.
var ruleMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"gt":       "must be greater than %s",
	"gte":      "must be at least %s",
	"min":      "must be at least %s characters",
	"max":      "must be at most %s characters",
}

// RequestValidator plugs go-playground/validator into echo.Echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

// NewValidator reports fields by their JSON names.
func NewValidator() *RequestValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	return &RequestValidator{validate: validate}
}

func (rv *RequestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return err
	}

	var b strings.Builder
	for n, fe := range failures {
		if n > 0 {
			b.WriteString("; ")
		}
		b.WriteString(describe(fe))
	}
	return errors.New(b.String())
}

func describe(fe validator.FieldError) string {
	msg, ok := ruleMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
	if strings.Contains(msg, "%s") {
		msg = fmt.Sprintf(msg, fe.Param())
	}
	return fe.Field() + " " + msg
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
