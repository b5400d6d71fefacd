package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"

	"nextgenhome/backend/models"
	"nextgenhome/backend/services"
)

// UserCreator is the slice of the Firebase Auth client the sign-up
// flow needs. Tests substitute a fake.
type UserCreator interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
}

// AuthHandler implements account creation. Sign-in itself happens
// between the client and the auth provider; this backend only sees
// the resulting ID tokens (verified in middleware) and the profile
// sync that follows.
type AuthHandler struct {
	users    UserCreator
	notifier services.Notifier
}

func NewAuthHandler(users UserCreator, notifier services.Notifier) *AuthHandler {
	return &AuthHandler{users: users, notifier: notifier}
}

// Signup validates the form and creates the account with the auth
// provider. All validation runs before any provider call.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if problems := req.Validate(); len(problems) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"errors": problems})
		return
	}

	if h.users == nil {
		http.Error(w, "Authentication is not configured", http.StatusServiceUnavailable)
		return
	}

	params := (&auth.UserToCreate{}).Email(req.Email).Password(req.Password)
	record, err := h.users.CreateUser(r.Context(), params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"errors": map[string]string{"email": "This email is already in use."},
			})
			return
		}
		log.Printf("Error creating account for %s: %v", req.Email, err)
		h.notifier.Notify("Error creating account.", services.SeverityError)
		http.Error(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	h.notifier.Notify("Account created successfully! Please log in.", services.SeveritySuccess)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"uid":   record.UID,
		"email": req.Email,
	})
}
