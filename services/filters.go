package services

import (
	"strconv"
	"strings"

	"nextgenhome/backend/models"
)

// Range is a numeric filter bound parsed from a bucket string such as
// "15000-50000" (closed) or "100000" (open ended).
type Range struct {
	Min     int
	Max     int
	Bounded bool
	Active  bool
}

// ParseRange parses a filter bucket. An empty bucket yields an inactive
// range that passes everything.
func ParseRange(bucket string) Range {
	if bucket == "" {
		return Range{}
	}
	parts := strings.SplitN(bucket, "-", 2)
	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}
	}
	r := Range{Min: min, Active: true}
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		max, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Range{}
		}
		r.Max = max
		r.Bounded = true
	}
	return r
}

// Contains reports whether v passes the range. Inactive ranges pass
// everything.
func (r Range) Contains(v int) bool {
	if !r.Active {
		return true
	}
	if v < r.Min {
		return false
	}
	return !r.Bounded || v <= r.Max
}

// NumericCost extracts the numeric value of a free-form cost display
// string by keeping every digit and parsing the result as one integer.
// "$500 - $1,000" therefore collapses to 5001000; callers that filter
// on cost inherit that quirk, and the bucket values are chosen to
// match it. The second return is false when the string has no digits.
func NumericCost(display string) (int, bool) {
	var b strings.Builder
	for _, r := range display {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return v, true
}

// FilterRecommendations derives the displayed service list from the
// mirror. Pure: fixed inputs always yield the same output, and the
// input order is preserved. The text query is a case-insensitive
// substring match on title or description; the cost range applies the
// digit-stripped cost parse, and records with no parseable cost fail
// whenever a bound is active. All predicates are conjunctive.
func FilterRecommendations(recs []models.Recommendation, query string, costRange Range) []models.Recommendation {
	q := strings.ToLower(query)
	filtered := make([]models.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if q != "" &&
			!strings.Contains(strings.ToLower(rec.Title), q) &&
			!strings.Contains(strings.ToLower(rec.Description), q) {
			continue
		}
		if costRange.Active {
			cost, ok := NumericCost(rec.Cost)
			if !ok || !costRange.Contains(cost) {
				continue
			}
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// FilterProjects derives the displayed completed-project list: title
// substring match plus a numeric range over square yards.
func FilterProjects(projects []models.Project, query string, sqYardRange Range) []models.Project {
	q := strings.ToLower(query)
	filtered := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) {
			continue
		}
		if !sqYardRange.Contains(p.SqYard) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
