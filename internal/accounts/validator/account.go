package validator

import (
	"sitterhub/pkg/logger"
	"sitterhub/pkg/model"
	"sitterhub/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var accountMessages = map[string]string{
	"role.role":      "role must be either parent or babysitter",
	"contact.e164":   "contact must be a valid phone number",
	"password.min":   "password must be at least 6 characters",
	"age.min":        "you must be at least 16 years old",
	"hourly_rate.gt": "hourly_rate must be greater than 0",
}

type AccountValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAccountValidator(log *logger.Logger) *AccountValidator {
	v := validation.New(log)

	if err := v.RegisterValidation("role", validateRole); err != nil {
		log.Fatal("Failed to register 'role' validator", "error", err)
	}

	log.Info("Account validator initialized successfully")

	return &AccountValidator{
		validate: v,
		logger:   log,
	}
}

func validateRole(fl validator.FieldLevel) bool {
	return model.Role(fl.Field().String()).IsValid()
}

// ValidateSignup also enforces the fields only babysitters must provide.
func (v *AccountValidator) ValidateSignup(req *model.Signup) error {
	var out validation.ValidationErrors
	if err := v.validate.Struct(req); err != nil {
		translated := validation.Translate(err, accountMessages)
		fields, ok := translated.(validation.ValidationErrors)
		if !ok {
			return translated
		}
		out = fields
	}

	if req.Role == model.RoleBabysitter {
		if req.HourlyRate <= 0 && !hasField(out, "hourly_rate") {
			out = append(out, validation.ValidationError{Field: "hourly_rate", Message: "hourly_rate is required for babysitters"})
		}
		if req.Experience == nil {
			out = append(out, validation.ValidationError{Field: "experience", Message: "experience is required for babysitters"})
		}
	}

	if len(out) > 0 {
		return out
	}
	return nil
}

func (v *AccountValidator) ValidateLogin(req *model.Login) error {
	if err := v.validate.Struct(req); err != nil {
		return validation.Translate(err, accountMessages)
	}
	return nil
}

func (v *AccountValidator) ValidateParentUpdate(req *model.ProfileUpdate) error {
	if err := v.validate.Struct(req); err != nil {
		return validation.Translate(err, accountMessages)
	}
	return nil
}

func (v *AccountValidator) ValidateBabysitterUpdate(req *model.BabysitterUpdate) error {
	if err := v.validate.Struct(req); err != nil {
		return validation.Translate(err, accountMessages)
	}
	return nil
}

func hasField(errs validation.ValidationErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
