package model

import "time"

type Certification struct {
	Name   string    `json:"name" bson:"name" validate:"required,max=100"`
	Issuer string    `json:"issuer,omitempty" bson:"issuer,omitempty" validate:"omitempty,max=100"`
	Date   time.Time `json:"date,omitempty" bson:"date,omitempty"`
}

type AvailabilitySlot struct {
	Day       string `json:"day" bson:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string `json:"start_time" bson:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" bson:"end_time" validate:"required,hhmm"`
}

type Babysitter struct {
	ID             string             `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	PasswordHash   string             `json:"-" bson:"password_hash"`
	Age            int                `json:"age" bson:"age"`
	Contact        string             `json:"contact" bson:"contact"`
	Address        string             `json:"address" bson:"address"`
	Photo          string             `json:"photo,omitempty" bson:"photo,omitempty"`
	HourlyRate     float64            `json:"hourly_rate" bson:"hourly_rate"`
	Experience     int                `json:"experience" bson:"experience"`
	Skills         []string           `json:"skills" bson:"skills"`
	Available      bool               `json:"available" bson:"available"`
	Languages      []string           `json:"languages" bson:"languages"`
	Certifications []Certification    `json:"certifications" bson:"certifications"`
	Availability   []AvailabilitySlot `json:"availability" bson:"availability"`
	Bio            string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Rating         float64            `json:"rating" bson:"rating"`
	TotalReviews   int                `json:"total_reviews" bson:"total_reviews"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// BabysitterCard is the compact listing form used by favorites.
type BabysitterCard struct {
	ID         string  `json:"id" bson:"_id,omitempty"`
	Name       string  `json:"name" bson:"name"`
	Photo      string  `json:"photo,omitempty" bson:"photo,omitempty"`
	Address    string  `json:"address" bson:"address"`
	HourlyRate float64 `json:"hourly_rate" bson:"hourly_rate"`
	Rating     float64 `json:"rating" bson:"rating"`
}

// BabysitterUpdate carries the profile fields a babysitter may change.
// Rating aggregates are not part of it.
type BabysitterUpdate struct {
	ProfileUpdate
	HourlyRate     *float64            `json:"hourly_rate,omitempty" validate:"omitempty,gt=0,max=1000"`
	Experience     *int                `json:"experience,omitempty" validate:"omitempty,min=0,max=60"`
	Skills         *[]string           `json:"skills,omitempty" validate:"omitempty,max=30,dive,required,max=50"`
	Languages      *[]string           `json:"languages,omitempty" validate:"omitempty,max=20,dive,required,max=50"`
	Certifications *[]Certification    `json:"certifications,omitempty" validate:"omitempty,max=20,dive"`
	Availability   *[]AvailabilitySlot `json:"availability,omitempty" validate:"omitempty,max=21,dive"`
	Bio            *string             `json:"bio,omitempty" validate:"omitempty,max=500"`
	Available      *bool               `json:"available,omitempty"`
}

type AvailabilityUpdate struct {
	Available *bool `json:"available" validate:"required"`
}

type BabysitterSearch struct {
	Location   string   `json:"location" validate:"omitempty,max=200"`
	MinPrice   *float64 `json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice   *float64 `json:"max_price" validate:"omitempty,gte=0"`
	Experience *int     `json:"experience" validate:"omitempty,gte=0"`
	Available  *bool    `json:"available"`
	Skills     []string `json:"skills" validate:"omitempty,max=30,dive,max=50"`
	MinRating  *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
}

// BabysitterListing is the address-filtered directory listing.
type BabysitterListing struct {
	Babysitters []*Babysitter `json:"babysitters"`
	Total       int           `json:"total"`
	SearchTerm  string        `json:"searchTerm"`
}

// BabysitterDetail is the public profile with the babysitter's reviews.
type BabysitterDetail struct {
	*Babysitter
	Reviews []*Review `json:"reviews"`
}
