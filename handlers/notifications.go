package handlers

import (
	"encoding/json"
	"net/http"

	"nextgenhome/backend/services"
)

// NotificationHandler exposes the recent in-app notification feed.
type NotificationHandler struct {
	feed *services.Feed
}

func NewNotificationHandler(feed *services.Feed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.feed.Recent())
}
