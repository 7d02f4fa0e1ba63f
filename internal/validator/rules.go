package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/identity-service/internal/models"
)

var loginNamePattern = regexp.MustCompile(`^[a-z0-9._]+$`)

// registerRules registers custom validation rules
func (v *Validator) registerRules() {
	// Login names are lowercase-only; the directory treats them as the
	// local part of an email during login resolution.
	v.validate.RegisterValidation("login_name", func(fl validator.FieldLevel) bool {
		return loginNamePattern.MatchString(fl.Field().String())
	})

	// role kind validation
	v.validate.RegisterValidation("role_kind", func(fl validator.FieldLevel) bool {
		return models.RoleKind(fl.Field().String()).IsValid()
	})
}
