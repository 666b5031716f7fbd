package model

import "time"

type Parent struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Age          int       `json:"age" bson:"age"`
	Contact      string    `json:"contact" bson:"contact"`
	Address      string    `json:"address" bson:"address"`
	Photo        string    `json:"photo,omitempty" bson:"photo,omitempty"`
	Favorites    []string  `json:"favorites" bson:"favorites"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// ProfileUpdate holds the fields shared by both account kinds.
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Age     *int    `json:"age,omitempty" validate:"omitempty,min=16,max=120"`
	Contact *string `json:"contact,omitempty" validate:"omitempty,e164"`
	Address *string `json:"address,omitempty" validate:"omitempty,min=2,max=200"`
	Photo   *string `json:"photo,omitempty" validate:"omitempty,url"`
}
