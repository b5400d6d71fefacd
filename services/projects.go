package services

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"nextgenhome/backend/models"
)

//go:embed data/renovated_properties.json data/locations.json
var bundledData embed.FS

// LoadProjects reads the bundled renovated-property list. The data is
// read once at startup and never mutated; callers must treat the
// returned slice as read only.
func LoadProjects() ([]models.Project, error) {
	raw, err := bundledData.ReadFile("data/renovated_properties.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read bundled project data: %w", err)
	}
	var projects []models.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse bundled project data: %w", err)
	}
	return projects, nil
}

// LoadLocations reads the bundled state-to-cities map used by the
// registration form.
func LoadLocations() (map[string][]string, error) {
	raw, err := bundledData.ReadFile("data/locations.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read bundled location data: %w", err)
	}
	var locations map[string][]string
	if err := json.Unmarshal(raw, &locations); err != nil {
		return nil, fmt.Errorf("failed to parse bundled location data: %w", err)
	}
	return locations, nil
}

// CostFromTags derives a display cost from a project's tags. A tag
// with a hyphen is a closed range ("$1,000 - $5,000"), a purely
// numeric tag is an open threshold ("Over $1,000"), and a project with
// neither renders "N/A".
func CostFromTags(tags []string) string {
	for _, tag := range tags {
		if strings.Contains(tag, "-") {
			parts := strings.SplitN(tag, "-", 2)
			min, errMin := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
			max, errMax := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
			if errMin != nil || errMax != nil {
				continue
			}
			return fmt.Sprintf("$%s - $%s", humanize.Comma(min), humanize.Comma(max))
		}
		if n, err := strconv.ParseInt(tag, 10, 64); err == nil {
			return fmt.Sprintf("Over $%s", humanize.Comma(n))
		}
	}
	return "N/A"
}

// ProjectItems lists the inclusions shown on a project detail view,
// keyed off the project title.
func ProjectItems(title string) []string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "kitchen"):
		return []string{"Modular Cabinets", "Granite Countertop", "Chimney", "Smart Hub"}
	case strings.Contains(lower, "living room"):
		return []string{"Sofa Set", "Center Table", "TV Unit", "Ambient Lighting"}
	case strings.Contains(lower, "bathroom"):
		return []string{"Vanity", "Walk-in Shower Glass", "Premium Tiles", "Exhaust Fan"}
	default:
		return []string{"Paint", "Lighting Fixtures", "Flooring", "Decor Accents"}
	}
}

// FindProject resolves a requested id against the static project list.
// Project ids are numeric but requests arrive as opaque strings, so
// both sides are normalized to their string form before comparing.
func FindProject(projects []models.Project, id string) (models.Project, bool) {
	for _, p := range projects {
		if strconv.Itoa(p.ID) == strings.TrimSpace(id) {
			return p, true
		}
	}
	return models.Project{}, false
}
