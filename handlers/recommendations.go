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

// RecommendationHandler serves the recommendation catalog: the
// filtered listing backed by the live mirror, plus the admin CRUD
// surface. Writes go straight to the remote store; the mirror catches
// up when the subscription redelivers, so no handler mutates it.
type RecommendationHandler struct {
	store    store.Store
	catalog  *services.Catalog
	editor   *services.Editor
	deletes  *services.DeleteGuard
	notifier services.Notifier
}

func NewRecommendationHandler(st store.Store, catalog *services.Catalog, editor *services.Editor, deletes *services.DeleteGuard, notifier services.Notifier) *RecommendationHandler {
	return &RecommendationHandler{
		store:    st,
		catalog:  catalog,
		editor:   editor,
		deletes:  deletes,
		notifier: notifier,
	}
}

// List returns the mirrored recommendations with the search query and
// cost bucket applied.
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	costBucket := r.URL.Query().Get("cost")

	snap := h.catalog.Snapshot()
	recs := make([]models.Recommendation, 0, len(snap))
	for _, doc := range snap {
		recs = append(recs, models.RecommendationFromFields(doc.ID, doc.Fields))
	}

	filtered := services.FilterRecommendations(recs, query, services.ParseRange(costBucket))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(filtered)
}

// Create validates and adds a new recommendation. Validation failures
// are rejected locally: notification, no store call, form left intact
// for the client to retry.
func (h *RecommendationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec models.Recommendation
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := rec.Validate(); err != nil {
		h.notifier.Notify("Please fill in all fields.", services.SeverityError)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	id, err := h.store.Add(r.Context(), "recommendations", rec.Fields())
	if err != nil {
		log.Printf("Error adding recommendation: %v", err)
		h.notifier.Notify("Error adding recommendation.", services.SeverityError)
		http.Error(w, "Failed to add recommendation", http.StatusInternalServerError)
		return
	}

	h.notifier.Notify("New recommendation added!", services.SeveritySuccess)
	rec.ID = id
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rec)
}

// BeginEdit opens an edit draft seeded from the record's current
// stored value.
func (h *RecommendationHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := h.store.Get(r.Context(), "recommendations", id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Recommendation not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load recommendation", http.StatusInternalServerError)
		return
	}

	rec := models.RecommendationFromFields(doc.ID, doc.Fields)
	h.editor.Begin(rec)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// Update applies a field patch to the open draft and commits it.
func (h *RecommendationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.Recommendation
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.editor.Apply(id, patch); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if err := h.editor.Save(r.Context(), id); err != nil {
		log.Printf("Error updating recommendation %s: %v", id, err)
		h.notifier.Notify("Error saving recommendation.", services.SeverityError)
		http.Error(w, "Failed to save recommendation", http.StatusInternalServerError)
		return
	}

	h.notifier.Notify("Recommendation saved successfully!", services.SeveritySuccess)
	w.WriteHeader(http.StatusOK)
}

// CancelEdit discards the open draft without touching the store.
func (h *RecommendationHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	h.editor.Cancel(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusOK)
}

// RequestDelete marks the record for deletion; nothing is removed
// until the separate confirmation arrives.
func (h *RecommendationHandler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.deletes.Request(id)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "confirmation required",
		"id":     id,
	})
}

// ConfirmDelete issues the remote delete for a pending request.
func (h *RecommendationHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if !h.deletes.Pending(id) {
		http.Error(w, "No pending delete request for this recommendation", http.StatusConflict)
		return
	}

	if err := h.deletes.Confirm(r.Context(), id); err != nil {
		log.Printf("Error deleting recommendation %s: %v", id, err)
		h.notifier.Notify("Error deleting recommendation.", services.SeverityError)
		http.Error(w, "Failed to delete recommendation", http.StatusInternalServerError)
		return
	}

	h.notifier.Notify("Recommendation deleted.", services.SeverityWarning)
	w.WriteHeader(http.StatusOK)
}

// CancelDelete clears a pending delete request.
func (h *RecommendationHandler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	h.deletes.Cancel(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusOK)
}
