package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"nextgenhome/backend/database"
	"nextgenhome/backend/handlers"
	"nextgenhome/backend/middleware"
	"nextgenhome/backend/services"
	"nextgenhome/backend/store"
)

func main() {
	isDevelopment := os.Getenv("ENV") != "production"
	if isDevelopment {
		log.Println("Running in development environment")
	}

	// Initialize the local profile database
	if err := database.InitDB(); err != nil {
		log.Fatal(err)
	}

	// Initialize Firebase Admin SDK
	log.Println("Initializing Firebase Admin SDK...")
	app, err := middleware.InitializeFirebase()
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without credentials the server runs self-contained on an
	// in-memory store with auth checks disabled.
	var st store.Store
	var users handlers.UserCreator
	if app == nil {
		log.Println("Using in-memory document store")
		st = store.NewMemory()
	} else {
		fsClient, err := app.Firestore(ctx)
		if err != nil {
			log.Fatalf("Failed to open Firestore client: %v", err)
		}
		defer fsClient.Close()
		st = store.NewFirestore(fsClient)

		authClient, err := app.Auth(ctx)
		if err != nil {
			log.Fatalf("Failed to open Auth client: %v", err)
		}
		users = authClient
	}

	feed := services.NewFeed()

	// Live mirrors of the two remote collections. They stay
	// subscribed for the life of the process.
	recommendations := services.NewCatalog(st, "recommendations", "Error fetching recommendations.", feed)
	if err := recommendations.Start(ctx); err != nil {
		log.Fatalf("Failed to start recommendation mirror: %v", err)
	}
	defer recommendations.Stop()

	submissions := services.NewCatalog(st, "userSubmissions", "Error fetching submissions.", feed)
	if err := submissions.Start(ctx); err != nil {
		log.Fatalf("Failed to start submission mirror: %v", err)
	}
	defer submissions.Stop()

	// Bundled static content
	projects, err := services.LoadProjects()
	if err != nil {
		log.Fatalf("Failed to load project data: %v", err)
	}
	locations, err := services.LoadLocations()
	if err != nil {
		log.Fatalf("Failed to load location data: %v", err)
	}

	deps := routeDeps{
		recommendations: handlers.NewRecommendationHandler(st, recommendations, services.NewEditor(st), services.NewDeleteGuard(st), feed),
		details:         handlers.NewDetailHandler(st, projects, feed),
		projects:        handlers.NewProjectHandler(projects),
		submissions:     handlers.NewSubmissionHandler(st, submissions, feed),
		auth:            handlers.NewAuthHandler(users, feed),
		content:         handlers.NewContentHandler(locations),
		notifications:   handlers.NewNotificationHandler(feed),
	}

	// Create router
	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r, deps)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s...", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

type routeDeps struct {
	recommendations *handlers.RecommendationHandler
	details         *handlers.DetailHandler
	projects        *handlers.ProjectHandler
	submissions     *handlers.SubmissionHandler
	auth            *handlers.AuthHandler
	content         *handlers.ContentHandler
	notifications   *handlers.NotificationHandler
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router, deps routeDeps) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")
	r.HandleFunc("/content/landing", deps.content.Landing).Methods("GET", "OPTIONS")
	r.HandleFunc("/content/locations", deps.content.Locations).Methods("GET", "OPTIONS")
	r.HandleFunc("/recommendations", deps.recommendations.List).Methods("GET", "OPTIONS")
	r.HandleFunc("/projects", deps.projects.List).Methods("GET", "OPTIONS")
	r.HandleFunc("/details/{id}", deps.details.Get).Methods("GET", "OPTIONS")
	r.HandleFunc("/auth/signup", deps.auth.Signup).Methods("POST", "OPTIONS")
	r.HandleFunc("/submissions", deps.submissions.Create).Methods("POST", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Admin catalog management
	protectedRouter.HandleFunc("/recommendations", deps.recommendations.Create).Methods("POST")
	protectedRouter.HandleFunc("/recommendations/{id}/edit", deps.recommendations.BeginEdit).Methods("POST")
	protectedRouter.HandleFunc("/recommendations/{id}", deps.recommendations.Update).Methods("PUT")
	protectedRouter.HandleFunc("/recommendations/{id}/edit/cancel", deps.recommendations.CancelEdit).Methods("POST")
	protectedRouter.HandleFunc("/recommendations/{id}/delete", deps.recommendations.RequestDelete).Methods("POST")
	protectedRouter.HandleFunc("/recommendations/{id}/delete/confirm", deps.recommendations.ConfirmDelete).Methods("POST")
	protectedRouter.HandleFunc("/recommendations/{id}/delete/cancel", deps.recommendations.CancelDelete).Methods("POST")

	// Admin lead feed
	protectedRouter.HandleFunc("/submissions", deps.submissions.List).Methods("GET")

	// Profiles
	protectedRouter.HandleFunc("/users/sync", handlers.SyncUserProfile).Methods("POST")
	protectedRouter.HandleFunc("/users/{uid}", handlers.GetUserProfile).Methods("GET")

	// Notification feed
	protectedRouter.HandleFunc("/notifications", deps.notifications.List).Methods("GET")
}
