package handlers

import (
	"encoding/json"
	"net/http"
)

// Feature is a marketing bullet on the landing page.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Step is one entry in the how-it-works section.
type Step struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is a quoted user review.
type Testimonial struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// LandingContent is the static marketing copy for the landing page.
type LandingContent struct {
	Headline     string        `json:"headline"`
	Tagline      string        `json:"tagline"`
	Features     []Feature     `json:"features"`
	Steps        []Step        `json:"steps"`
	Testimonials []Testimonial `json:"testimonials"`
}

var landingContent = LandingContent{
	Headline: "Reimagine Your Home",
	Tagline:  "Your ultimate partner in discovering, planning, and executing home renovations.",
	Features: []Feature{
		{Title: "Personalized Recommendations", Description: "Get project ideas and material suggestions tailored to your home and budget."},
		{Title: "Visualize Your Project", Description: "Use our tools to see how different materials and colors will look in your space."},
		{Title: "Expert Advice", Description: "Access a wealth of articles, guides, and tips from renovation experts."},
		{Title: "Connect with Professionals", Description: "Find and hire top-rated contractors and designers in your area."},
	},
	Steps: []Step{
		{Number: 1, Title: "Create Your Profile", Description: "Tell us about your home, style, and project goals."},
		{Number: 2, Title: "Get Inspired", Description: "Browse personalized recommendations and save your favorites."},
		{Number: 3, Title: "Plan & Execute", Description: "Use our tools to plan your budget and timeline, then connect with pros."},
	},
	Testimonials: []Testimonial{
		{Name: "Jordan M.", Text: "NextGenHome made our kitchen renovation a breeze! The recommendations were spot on, and we found the perfect contractor through the platform."},
		{Name: "Casey L.", Text: "I was completely lost on where to start with my bathroom remodel. This app gave me the direction and confidence I needed."},
		{Name: "Alex R.", Text: "A must-have for any homeowner. The project planning tools are incredibly helpful for staying on budget and on schedule."},
	},
}

// ContentHandler serves static marketing and form data.
type ContentHandler struct {
	locations map[string][]string
}

func NewContentHandler(locations map[string][]string) *ContentHandler {
	return &ContentHandler{locations: locations}
}

func (h *ContentHandler) Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(landingContent)
}

// Locations returns the state-to-cities map backing the registration
// form's cascading selects.
func (h *ContentHandler) Locations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.locations)
}
