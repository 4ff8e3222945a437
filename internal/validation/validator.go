package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var industryCodeRegex = regexp.MustCompile(`^[0-9]{2,6}$`)

type ValidationRule struct {
	Rule func(v *validator.Validate)
}

// Validator is a wrapper around the actual validator.
// It sets up the validator and registers the audit-specific rules.
type Validator struct {
	validator *validator.Validate
	rules     []ValidationRule
}

func NewValidator() *Validator {
	v := validator.New()
	wrapped := &Validator{validator: v}
	wrapped.Register(
		ValidationRule{Rule: industryCodeRule},
		ValidationRule{Rule: severityRule},
		ValidationRule{Rule: dispositionRule},
	)
	return wrapped
}

func (v *Validator) Register(rules ...ValidationRule) {
	for _, validationRule := range rules {
		validationRule.Rule(v.validator)
	}
	v.rules = append(v.rules, rules...)
}

func (v *Validator) Struct(s any) error {
	return v.validator.Struct(s)
}

func industryCodeRule(v *validator.Validate) {
	_ = v.RegisterValidation("industry_code", func(fl validator.FieldLevel) bool {
		val, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return industryCodeRegex.MatchString(val)
	})
}

func severityRule(v *validator.Validate) {
	_ = v.RegisterValidation("severity", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "high", "medium", "low":
			return true
		}
		return false
	})
}

func dispositionRule(v *validator.Validate) {
	_ = v.RegisterValidation("disposition", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "open", "resolved", "waived":
			return true
		}
		return false
	})
}
