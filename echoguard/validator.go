package echoguard

import (
	"github.com/Gobd/presence"
	"github.com/labstack/echo/v4"
)

// Validator is an echo.Validator that rejects bound requests with absent
// mandatory fields, then hands them to Next for general validation.
type Validator struct {
	// Extractor supplies field metadata. Nil means presence.DefaultExtractor.
	Extractor *presence.Extractor
	// Next runs after the presence check passes. It may be nil.
	Next echo.Validator
}

var _ echo.Validator = (*Validator)(nil)

// NewValidator returns a Validator over presence.DefaultExtractor chained to next.
func NewValidator(next echo.Validator) *Validator {
	return &Validator{Extractor: presence.DefaultExtractor, Next: next}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	ex := v.Extractor
	if ex == nil {
		ex = presence.DefaultExtractor
	}
	if err := ex.Check(i); err != nil {
		return err
	}
	if v.Next != nil {
		return v.Next.Validate(i)
	}
	return nil
}
