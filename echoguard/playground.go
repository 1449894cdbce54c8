package echoguard

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Gobd/presence"
	"github.com/go-playground/validator/v10"
)

// Playground adapts go-playground/validator to echo.Validator. Its field
// errors are reported as presence.Failures keyed by json name, so clients
// see a single failure shape.
type Playground struct {
	validate *validator.Validate
}

// NewPlayground creates a Playground whose field names follow json tags.
func NewPlayground() *Playground {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return sf.Name
		}
		return name
	})
	return &Playground{validate: v}
}

// Validator returns the underlying validator instance for registering custom rules.
func (p *Playground) Validator() *validator.Validate {
	return p.validate
}

// Validate implements echo.Validator.
func (p *Playground) Validate(i any) error {
	err := p.validate.Struct(i)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		return FromValidationErrors(ves)
	}
	return err
}

// FromValidationErrors converts go-playground field errors into Failures.
func FromValidationErrors(errs validator.ValidationErrors) presence.Failures {
	failures := presence.Failures{}
	for _, fe := range errs {
		failures.Add(fe.Field(), message(fe))
	}
	return failures
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s.", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must have length %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s].", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL.", fe.Field())
	default:
		return fmt.Sprintf("%s failed the %q rule.", fe.Field(), fe.Tag())
	}
}
