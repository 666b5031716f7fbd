package validator

import (
	"sitterhub/pkg/logger"
	"sitterhub/pkg/model"
	"sitterhub/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var reservationMessages = map[string]string{
	"babysitter_id.required":    "babysitter_id is required",
	"duration.required":         "duration is required and must be between 1 and 12 hours",
	"duration.min":              "duration must be at least 1 hour",
	"duration.max":              "duration must be at most 12 hours",
	"status.reservation_status": "status must be one of [pending confirmed cancelled completed]",
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	v := validation.New(log)

	if err := v.RegisterValidation("reservation_status", validateReservationStatus); err != nil {
		log.Fatal("Failed to register 'reservation_status' validator", "error", err)
	}

	log.Info("Reservation validator initialized successfully")

	return &ReservationValidator{
		validate: v,
		logger:   log,
	}
}

func validateReservationStatus(fl validator.FieldLevel) bool {
	return model.ReservationStatus(fl.Field().String()).IsValid()
}

func (v *ReservationValidator) ValidateCreate(req *model.ReservationCreate) error {
	if err := v.validate.Struct(req); err != nil {
		return validation.Translate(err, reservationMessages)
	}
	return nil
}

func (v *ReservationValidator) ValidateStatusUpdate(req *model.ReservationStatusUpdate) error {
	if err := v.validate.Struct(req); err != nil {
		return validation.Translate(err, reservationMessages)
	}
	return nil
}
