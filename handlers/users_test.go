package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"nextgenhome/backend/middleware"
	"nextgenhome/backend/models"
)

func userRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/users/sync", SyncUserProfile).Methods("POST")
	r.HandleFunc("/users/{uid}", GetUserProfile).Methods("GET")
	return r
}

func TestSyncUserProfile(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	profile := models.UserProfile{
		Email:        "test@example.com",
		FullName:     "Test User",
		PropertyType: "Apartment",
		PropertyArea: "1100",
		State:        "Karnataka",
		City:         "Bengaluru",
	}

	req := NewAuthenticatedRequest("POST", "/users/sync", profile)
	rr := httptest.NewRecorder()
	userRouter().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var saved models.UserProfile
	if err := json.NewDecoder(rr.Body).Decode(&saved); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if saved.UID != TestUserID {
		t.Errorf("Expected uid taken from the token context, got %q", saved.UID)
	}
	if saved.Role != "user" {
		t.Errorf("Expected default role user, got %q", saved.Role)
	}

	// Fetch it back through the read endpoint.
	rr = httptest.NewRecorder()
	userRouter().ServeHTTP(rr, NewAuthenticatedRequest("GET", "/users/"+TestUserID, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var fetched models.UserProfile
	if err := json.NewDecoder(rr.Body).Decode(&fetched); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if fetched.City != "Bengaluru" || fetched.FullName != "Test User" {
		t.Errorf("Unexpected profile: %+v", fetched)
	}
}

func TestSyncUserProfileUpdatesInPlace(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	first := models.UserProfile{Email: "test@example.com", City: "Mumbai"}
	rr := httptest.NewRecorder()
	userRouter().ServeHTTP(rr, NewAuthenticatedRequest("POST", "/users/sync", first))
	if rr.Code != http.StatusOK {
		t.Fatalf("First sync failed with %d", rr.Code)
	}

	second := models.UserProfile{Email: "test@example.com", City: "Pune"}
	rr = httptest.NewRecorder()
	userRouter().ServeHTTP(rr, NewAuthenticatedRequest("POST", "/users/sync", second))
	if rr.Code != http.StatusOK {
		t.Fatalf("Second sync failed with %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	userRouter().ServeHTTP(rr, NewAuthenticatedRequest("GET", "/users/"+TestUserID, nil))

	var fetched models.UserProfile
	if err := json.NewDecoder(rr.Body).Decode(&fetched); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if fetched.City != "Pune" {
		t.Errorf("Expected updated city, got %q", fetched.City)
	}
}

func TestSyncUserProfileUsesTokenEmail(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	// No email in the body; the verified token supplies it.
	profile := models.UserProfile{FullName: "Token User", City: "Chennai"}
	req := NewAuthenticatedRequest("POST", "/users/sync", profile)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserEmailKey, "token@example.com"))

	rr := httptest.NewRecorder()
	userRouter().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var saved models.UserProfile
	if err := json.NewDecoder(rr.Body).Decode(&saved); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if saved.Email != "token@example.com" {
		t.Errorf("Expected email taken from the token, got %q", saved.Email)
	}
}

func TestSyncUserProfileMissingEmail(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	// Neither the body nor the token carries an email.
	profile := models.UserProfile{FullName: "No Email"}
	rr := httptest.NewRecorder()
	userRouter().ServeHTTP(rr, NewAuthenticatedRequest("POST", "/users/sync", profile))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestSyncUserProfileUnauthenticated(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	req := httptest.NewRequest("POST", "/users/sync", nil)
	rr := httptest.NewRecorder()
	userRouter().ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestGetUserProfileNotFound(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	rr := httptest.NewRecorder()
	userRouter().ServeHTTP(rr, NewAuthenticatedRequest("GET", "/users/no-such-uid", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}
