package validator

import (
	"sitterhub/pkg/logger"
	"sitterhub/pkg/model"
	"sitterhub/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var reviewMessages = map[string]string{
	"rating.required":  "rating must be between 1 and 5",
	"rating.min":       "rating must be between 1 and 5",
	"rating.max":       "rating must be between 1 and 5",
	"comment.required": "please provide a comment (minimum 10 characters)",
	"comment.min":      "please provide a comment (minimum 10 characters)",
	"comment.max":      "comment must be at most 500 characters",
}

type ReviewValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReviewValidator(log *logger.Logger) *ReviewValidator {
	v := validation.New(log)

	log.Info("Review validator initialized successfully")

	return &ReviewValidator{
		validate: v,
		logger:   log,
	}
}

// ValidateCreate expects the comment to be trimmed already.
func (v *ReviewValidator) ValidateCreate(req *model.ReviewCreate) error {
	if err := v.validate.Struct(req); err != nil {
		return validation.Translate(err, reviewMessages)
	}
	return nil
}
