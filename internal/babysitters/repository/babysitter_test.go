package repository

import (
	"testing"

	"sitterhub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilter(t *testing.T) {
	minPrice, maxPrice := 10.0, 25.0
	experience := 3
	available := true
	rating := 4.0

	filter := SearchFilter(&model.BabysitterSearch{
		Location:   "Paris (15e)",
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		Experience: &experience,
		Available:  &available,
		Skills:     []string{"first aid", "cooking"},
		MinRating:  &rating,
	})

	address, ok := filter["address"].(primitive.Regex)
	if !ok || address.Pattern != `Paris \(15e\)` || address.Options != "i" {
		t.Errorf("address = %#v, want escaped case-insensitive regex", filter["address"])
	}

	price, ok := filter["hourly_rate"].(bson.M)
	if !ok || price["$gte"] != 10.0 || price["$lte"] != 25.0 {
		t.Errorf("hourly_rate = %#v", filter["hourly_rate"])
	}
	if exp, ok := filter["experience"].(bson.M); !ok || exp["$gte"] != 3 {
		t.Errorf("experience = %#v", filter["experience"])
	}
	if filter["available"] != true {
		t.Errorf("available = %#v", filter["available"])
	}
	if skills, ok := filter["skills"].(bson.M); !ok || len(skills["$in"].([]string)) != 2 {
		t.Errorf("skills = %#v", filter["skills"])
	}
	if r, ok := filter["rating"].(bson.M); !ok || r["$gte"] != 4.0 {
		t.Errorf("rating = %#v", filter["rating"])
	}
}

func TestSearchFilter_OnlyMaxPrice(t *testing.T) {
	maxPrice := 20.0
	filter := SearchFilter(&model.BabysitterSearch{MaxPrice: &maxPrice})

	if len(filter) != 1 {
		t.Fatalf("filter = %#v, want only hourly_rate", filter)
	}
	price := filter["hourly_rate"].(bson.M)
	if _, ok := price["$gte"]; ok {
		t.Error("unexpected lower bound")
	}
}

func TestSearchFilter_Empty(t *testing.T) {
	if len(SearchFilter(nil)) != 0 || len(SearchFilter(&model.BabysitterSearch{})) != 0 {
		t.Error("expected empty filter")
	}
}
