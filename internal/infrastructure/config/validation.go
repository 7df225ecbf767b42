package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks configuration tags plus the game's cross-field rules
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the game rules registered
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterStructValidation(validateGameConfig, GameConfig{})

	return &Validator{
		validate: v,
	}
}

// validateGameConfig enforces rules that span more than one tuning value:
// the accuracy floor may not exceed the starting accuracy, and an enabled
// betrayal must fire before the round it belongs to runs out.
func validateGameConfig(sl validator.StructLevel) {
	g := sl.Current().Interface().(GameConfig)

	if g.MinAccuracy > g.BaseAccuracy {
		sl.ReportError(g.MinAccuracy, "MinAccuracy", "MinAccuracy", "ltefield", "BaseAccuracy")
	}
	if g.BetrayalRound > 0 && g.BetrayalDelay >= g.RoundDuration {
		sl.ReportError(g.BetrayalDelay, "BetrayalDelay", "BetrayalDelay", "ltfield", "RoundDuration")
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			rule := e.Tag()
			if e.Param() != "" {
				rule = fmt.Sprintf("%s=%s", rule, e.Param())
			}
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Namespace(),
				rule,
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
