package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"nextgenhome/backend/database"
	"nextgenhome/backend/middleware"
	"nextgenhome/backend/models"
)

// SyncUserProfile upserts the local profile row for the signed-in
// account. Called by the client right after sign-in or registration.
// The role field is stored as submitted: it is a client-chosen UI
// value, not a server-verified permission.
func SyncUserProfile(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserIDFromContext(r)
	if uid == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	// Identity always comes from the verified token, never the body.
	profile.UID = uid
	if email := middleware.GetUserEmailFromContext(r); email != "" {
		profile.Email = email
	}
	if profile.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}
	if profile.Role == "" {
		profile.Role = "user"
	}

	if err := database.UpsertProfile(profile); err != nil {
		http.Error(w, "Failed to sync profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// GetUserProfile returns the stored profile for a uid.
func GetUserProfile(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserIDFromContext(r) == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	uid := mux.Vars(r)["uid"]
	profile, err := database.GetProfile(uid)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}
