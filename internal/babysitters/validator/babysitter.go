package validator

import (
	"sitterhub/pkg/logger"
	"sitterhub/pkg/model"
	"sitterhub/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var searchMessages = map[string]string{
	"rating.lte":    "rating must be between 0 and 5",
	"rating.gte":    "rating must be between 0 and 5",
	"min_price.gte": "min_price cannot be negative",
	"max_price.gte": "max_price cannot be negative",
}

type BabysitterValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBabysitterValidator(log *logger.Logger) *BabysitterValidator {
	v := validation.New(log)

	log.Info("Babysitter validator initialized successfully")

	return &BabysitterValidator{
		validate: v,
		logger:   log,
	}
}

func (v *BabysitterValidator) ValidateSearch(search *model.BabysitterSearch) error {
	if err := v.validate.Struct(search); err != nil {
		return validation.Translate(err, searchMessages)
	}
	if search.MinPrice != nil && search.MaxPrice != nil && *search.MinPrice > *search.MaxPrice {
		return validation.ValidationErrors{
			{Field: "max_price", Message: "max_price must be greater than or equal to min_price"},
		}
	}
	return nil
}

func (v *BabysitterValidator) ValidateAvailability(req *model.AvailabilityUpdate) error {
	if err := v.validate.Struct(req); err != nil {
		return validation.Translate(err, nil)
	}
	return nil
}
