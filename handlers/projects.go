package handlers

import (
	"encoding/json"
	"net/http"

	"nextgenhome/backend/models"
	"nextgenhome/backend/services"
)

// ProjectHandler serves the bundled completed-project list. The data
// has no subscription lifecycle; it participates in the same filter
// pipeline as the live catalog.
type ProjectHandler struct {
	projects []models.Project
}

func NewProjectHandler(projects []models.Project) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	sqYardBucket := r.URL.Query().Get("sqYard")

	filtered := services.FilterProjects(h.projects, query, services.ParseRange(sqYardBucket))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(filtered)
}
