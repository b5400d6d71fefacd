package models

import (
	"strings"
	"testing"
)

func TestRecommendationValidate(t *testing.T) {
	valid := Recommendation{
		Title:       "Modern Kitchen",
		Description: "Cabinets and countertops.",
		Image:       "kitchen.jpg",
		Cost:        "$5,000",
		Category:    "Kitchen",
		Size:        "Medium",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid recommendation, got %v", err)
	}

	missing := valid
	missing.Title = ""
	missing.Cost = ""
	err := missing.Validate()
	if err == nil {
		t.Fatal("Expected validation error for missing fields")
	}
	if !strings.Contains(err.Error(), "title") || !strings.Contains(err.Error(), "cost") {
		t.Errorf("Expected missing fields named, got %v", err)
	}

	badCategory := valid
	badCategory.Category = "Garage"
	if err := badCategory.Validate(); err == nil {
		t.Error("Expected validation error for unknown category")
	}

	badSize := valid
	badSize.Size = "Gigantic"
	if err := badSize.Validate(); err == nil {
		t.Error("Expected validation error for unknown size")
	}
}

func TestRecommendationFieldsRoundTrip(t *testing.T) {
	rec := Recommendation{
		Title:       "Bathroom Refit",
		Description: "Walk-in shower.",
		Image:       "bath.jpg",
		Cost:        "$2,000 - $4,000",
		Category:    "Bathroom",
		Size:        "Small",
		ItemsNeeded: []string{"Tiles", "Vanity"},
	}

	got := RecommendationFromFields("abc", rec.Fields())
	rec.ID = "abc"
	if got.Title != rec.Title || got.Cost != rec.Cost || got.Category != rec.Category {
		t.Errorf("Round trip mismatch: %+v", got)
	}
	if len(got.ItemsNeeded) != 2 || got.ItemsNeeded[0] != "Tiles" {
		t.Errorf("Items lost in round trip: %v", got.ItemsNeeded)
	}
}

func TestSubmissionValidate(t *testing.T) {
	valid := Submission{PropertyType: "Apartment", Area: "1200", Condition: "Dated"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid submission, got %v", err)
	}

	empty := Submission{}
	if err := empty.Validate(); err == nil {
		t.Error("Expected validation error for empty submission")
	}
}
