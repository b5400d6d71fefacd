package models

import (
	"fmt"
	"strings"
)

// Submission is a renovation lead submitted by a prospective customer.
// Submissions land in the userSubmissions collection and show up on the
// admin dashboard feed.
type Submission struct {
	ID           string `json:"id"`
	PropertyType string `json:"propertyType"`
	Area         string `json:"area"`
	Condition    string `json:"condition"`
}

func (s *Submission) Validate() error {
	var missing []string
	if strings.TrimSpace(s.PropertyType) == "" {
		missing = append(missing, "propertyType")
	}
	if strings.TrimSpace(s.Area) == "" {
		missing = append(missing, "area")
	}
	if strings.TrimSpace(s.Condition) == "" {
		missing = append(missing, "condition")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (s *Submission) Fields() map[string]interface{} {
	return map[string]interface{}{
		"propertyType": s.PropertyType,
		"area":         s.Area,
		"condition":    s.Condition,
	}
}

func SubmissionFromFields(id string, fields map[string]interface{}) Submission {
	return Submission{
		ID:           id,
		PropertyType: stringField(fields, "propertyType"),
		Area:         stringField(fields, "area"),
		Condition:    stringField(fields, "condition"),
	}
}
