package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"sitterhub/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// New returns a validator that reports JSON field names and knows the
// hhmm and isodate tags. Extra tags are registered by the caller.
func New(log *logger.Logger) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("hhmm", validateHHMM); err != nil {
		log.Fatal("Failed to register 'hhmm' validator", "error", err)
	}
	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		log.Fatal("Failed to register 'isodate' validator", "error", err)
	}

	return v
}

func validateHHMM(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, value)
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns the calendar date
// at midnight UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", value)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// Translate turns validator errors into field messages. Tag-specific
// messages override the generic ones.
func Translate(err error, messages map[string]string) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var out ValidationErrors
	for _, fe := range validationErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: message(fe, messages),
		})
	}
	return out
}

func message(fe validator.FieldError, messages map[string]string) string {
	if m, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf("%s %s", fe.Field(), m)
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "e164":
		return fmt.Sprintf("%s must be a valid phone number in E.164 format", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "mongodb":
		return fmt.Sprintf("%s must be a valid identifier", fe.Field())
	case "hhmm":
		return fmt.Sprintf("%s must be in HH:MM 24-hour format", fe.Field())
	case "isodate":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD or RFC 3339 format", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
