package models

import (
	"fmt"
	"strings"
)

// Valid values for the category and size fields of a recommendation.
var (
	Categories = []string{"Kitchen", "Living Room", "Bathroom", "Exterior", "General", "Balcony"}
	Sizes      = []string{"Small", "Medium", "Large"}
)

// Recommendation is a renovation service listing managed by admins and
// shown on the user dashboard. The ID is assigned by the document store.
type Recommendation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Cost        string   `json:"cost"`
	Category    string   `json:"category"`
	Size        string   `json:"size"`
	ItemsNeeded []string `json:"itemsNeeded,omitempty"`
}

// Validate checks the required fields for creating a recommendation.
func (r *Recommendation) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(r.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(r.Cost) == "" {
		missing = append(missing, "cost")
	}
	if strings.TrimSpace(r.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(r.Size) == "" {
		missing = append(missing, "size")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if !contains(Categories, r.Category) {
		return fmt.Errorf("invalid category: %s", r.Category)
	}
	if !contains(Sizes, r.Size) {
		return fmt.Errorf("invalid size: %s", r.Size)
	}
	return nil
}

// Fields returns the document fields stored for this recommendation.
// The ID is not included; it lives on the document reference.
func (r *Recommendation) Fields() map[string]interface{} {
	items := make([]interface{}, len(r.ItemsNeeded))
	for i, item := range r.ItemsNeeded {
		items[i] = item
	}
	return map[string]interface{}{
		"title":       r.Title,
		"description": r.Description,
		"image":       r.Image,
		"cost":        r.Cost,
		"category":    r.Category,
		"size":        r.Size,
		"itemsNeeded": items,
	}
}

// RecommendationFromFields maps a stored document onto a Recommendation.
// Unknown fields are ignored and missing fields are left zero valued.
func RecommendationFromFields(id string, fields map[string]interface{}) Recommendation {
	rec := Recommendation{ID: id}
	rec.Title = stringField(fields, "title")
	rec.Description = stringField(fields, "description")
	rec.Image = stringField(fields, "image")
	rec.Cost = stringField(fields, "cost")
	rec.Category = stringField(fields, "category")
	rec.Size = stringField(fields, "size")
	if raw, ok := fields["itemsNeeded"].([]interface{}); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				rec.ItemsNeeded = append(rec.ItemsNeeded, s)
			}
		}
	}
	return rec
}

func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
