package model

import (
	"math"
	"time"
)

const (
	MinReviewRating        = 1
	MaxReviewRating        = 5
	MinReviewCommentLength = 10
	MaxReviewCommentLength = 500
)

type Review struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	BabysitterID string    `json:"babysitter_id" bson:"babysitter_id"`
	ParentID     string    `json:"parent_id" bson:"parent_id"`
	Rating       int       `json:"rating" bson:"rating"`
	Comment      string    `json:"comment" bson:"comment"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`

	Parent *PartySummary `json:"parent,omitempty" bson:"-"`
}

type ReviewCreate struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=10,max=500"`
}

// RatingAggregate is the derived pair stored on the babysitter document.
type RatingAggregate struct {
	Rating       float64 `json:"rating" bson:"rating"`
	TotalReviews int     `json:"total_reviews" bson:"total_reviews"`
}

// RoundRating rounds a mean rating to one decimal place.
func RoundRating(mean float64) float64 {
	return math.Round(mean*10) / 10
}

// NewRatingAggregate derives the stored aggregate from the sum and count
// of a babysitter's review ratings.
func NewRatingAggregate(sum, count int) RatingAggregate {
	if count <= 0 {
		return RatingAggregate{}
	}
	return RatingAggregate{
		Rating:       RoundRating(float64(sum) / float64(count)),
		TotalReviews: count,
	}
}
