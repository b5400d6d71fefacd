package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"nextgenhome/backend/models"
	"nextgenhome/backend/services"
	"nextgenhome/backend/store"
)

// ItemDetail is the detail view for either a live recommendation or a
// bundled completed project.
type ItemDetail struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"` // recommendation or project
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Cost        string   `json:"cost"`
	Items       []string `json:"items"`
}

// DetailHandler resolves an opaque id: the remote recommendation
// collection is tried first, then the bundled static project list.
type DetailHandler struct {
	store    store.Store
	projects []models.Project
	notifier services.Notifier
}

func NewDetailHandler(st store.Store, projects []models.Project, notifier services.Notifier) *DetailHandler {
	return &DetailHandler{store: st, projects: projects, notifier: notifier}
}

func (h *DetailHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := h.store.Get(r.Context(), "recommendations", id)
	if err == nil {
		rec := models.RecommendationFromFields(doc.ID, doc.Fields)
		items := rec.ItemsNeeded
		if len(items) == 0 {
			items = []string{"Item details not available"}
		}
		respondJSON(w, ItemDetail{
			ID:          rec.ID,
			Type:        "recommendation",
			Title:       rec.Title,
			Description: rec.Description,
			Image:       rec.Image,
			Cost:        rec.Cost,
			Items:       items,
		})
		return
	}

	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Error fetching item details for %s: %v", id, err)
		h.notifier.Notify("There was an error fetching the details.", services.SeverityError)
		http.Error(w, "Failed to fetch item details", http.StatusInternalServerError)
		return
	}

	// Fall back to the bundled project list; ids are normalized to
	// strings on both sides before comparing.
	if project, ok := services.FindProject(h.projects, id); ok {
		respondJSON(w, ItemDetail{
			ID:    id,
			Type:  "project",
			Title: project.Title,
			Image: project.Image,
			Cost:  services.CostFromTags(project.Tags),
			Items: services.ProjectItems(project.Title),
		})
		return
	}

	h.notifier.Notify("The requested item could not be found.", services.SeverityError)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"message": "Item details are not available."})
}

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
