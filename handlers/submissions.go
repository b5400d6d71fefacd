package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"nextgenhome/backend/models"
	"nextgenhome/backend/services"
	"nextgenhome/backend/store"
)

// SubmissionHandler takes renovation leads from prospective customers
// and serves the admin feed mirrored from the userSubmissions
// collection.
type SubmissionHandler struct {
	store    store.Store
	feed     *services.Catalog
	notifier services.Notifier
}

func NewSubmissionHandler(st store.Store, feed *services.Catalog, notifier services.Notifier) *SubmissionHandler {
	return &SubmissionHandler{store: st, feed: feed, notifier: notifier}
}

func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var sub models.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := sub.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.store.Add(r.Context(), "userSubmissions", sub.Fields())
	if err != nil {
		log.Printf("Error adding submission: %v", err)
		h.notifier.Notify("Error submitting your details.", services.SeverityError)
		http.Error(w, "Failed to save submission", http.StatusInternalServerError)
		return
	}

	sub.ID = id
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sub)
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.feed.Snapshot()
	subs := make([]models.Submission, 0, len(snap))
	for _, doc := range snap {
		subs = append(subs, models.SubmissionFromFields(doc.ID, doc.Fields))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subs)
}
