package model

// PartySummary is the name and photo of a parent or babysitter, attached
// to reservations and reviews on read.
type PartySummary struct {
	ID    string `json:"id" bson:"_id,omitempty"`
	Name  string `json:"name" bson:"name"`
	Photo string `json:"photo,omitempty" bson:"photo,omitempty"`
}
