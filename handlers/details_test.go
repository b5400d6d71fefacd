package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"nextgenhome/backend/models"
	"nextgenhome/backend/store"
)

// errStore fails every Get with a non-NotFound error.
type errStore struct {
	*store.Memory
}

func (e *errStore) Get(ctx context.Context, collection, id string) (store.Document, error) {
	return store.Document{}, errors.New("store unavailable")
}

func detailRouter(h *DetailHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/details/{id}", h.Get).Methods("GET")
	return r
}

func TestGetDetailsRecommendation(t *testing.T) {
	m := store.NewMemory()
	notifier := &stubNotifier{}

	rec := validRecommendation()
	id, err := m.Add(context.Background(), "recommendations", rec.Fields())
	if err != nil {
		t.Fatal(err)
	}

	h := NewDetailHandler(m, nil, notifier)
	rr := httptest.NewRecorder()
	detailRouter(h).ServeHTTP(rr, httptest.NewRequest("GET", "/details/"+id, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var detail ItemDetail
	if err := json.NewDecoder(rr.Body).Decode(&detail); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if detail.Type != "recommendation" {
		t.Errorf("Expected type recommendation, got %s", detail.Type)
	}
	if detail.Title != rec.Title {
		t.Errorf("Expected title %q, got %q", rec.Title, detail.Title)
	}
	if len(detail.Items) != 2 {
		t.Errorf("Expected the stored item list, got %v", detail.Items)
	}
}

func TestGetDetailsProjectFallback(t *testing.T) {
	m := store.NewMemory()
	notifier := &stubNotifier{}

	projects := []models.Project{
		{ID: 42, Title: "Kitchen Modernization", Image: "kitchen.jpg", SqYard: 120, Tags: []string{"5000-12000"}},
	}

	h := NewDetailHandler(m, projects, notifier)
	rr := httptest.NewRecorder()
	detailRouter(h).ServeHTTP(rr, httptest.NewRequest("GET", "/details/42", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var detail ItemDetail
	if err := json.NewDecoder(rr.Body).Decode(&detail); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if detail.Type != "project" {
		t.Errorf("Expected type project, got %s", detail.Type)
	}
	if detail.Cost != "$5,000 - $12,000" {
		t.Errorf("Expected rendered cost range, got %q", detail.Cost)
	}
	if len(detail.Items) == 0 {
		t.Error("Expected a kitchen item list")
	}
}

func TestGetDetailsNotFound(t *testing.T) {
	m := store.NewMemory()
	notifier := &stubNotifier{}

	h := NewDetailHandler(m, nil, notifier)
	rr := httptest.NewRecorder()
	detailRouter(h).ServeHTTP(rr, httptest.NewRequest("GET", "/details/nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected status %d, got %d", http.StatusNotFound, rr.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["message"] != "Item details are not available." {
		t.Errorf("Unexpected body: %v", body)
	}
	if n, ok := notifier.last(); !ok || n.Message != "The requested item could not be found." {
		t.Errorf("Unexpected notification: %+v", n)
	}
}

func TestGetDetailsStoreError(t *testing.T) {
	notifier := &stubNotifier{}

	h := NewDetailHandler(&errStore{Memory: store.NewMemory()}, nil, notifier)
	rr := httptest.NewRecorder()
	detailRouter(h).ServeHTTP(rr, httptest.NewRequest("GET", "/details/any", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if n, ok := notifier.last(); !ok || n.Message != "There was an error fetching the details." {
		t.Errorf("Unexpected notification: %+v", n)
	}
}
