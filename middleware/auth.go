package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Define context keys
type contextKey string

const UserIDKey contextKey = "user_id"
const UserEmailKey contextKey = "user_email"

var firebaseAuth *auth.Client

// Indirection points so tests can stub Firebase initialization.
var firebaseInitApp = func(ctx context.Context, config *firebase.Config, opts ...option.ClientOption) (*firebase.App, error) {
	return firebase.NewApp(ctx, config, opts...)
}

var firebaseGetAuth = func(app *firebase.App, ctx context.Context) (*auth.Client, error) {
	return app.Auth(ctx)
}

// InitializeFirebase initializes the Firebase Admin SDK from
// environment credentials and returns the app so the caller can open
// the Firestore client. A nil app with nil error means no credentials
// are configured: dev mode, auth checks disabled and the in-memory
// store used instead.
func InitializeFirebase() (*firebase.App, error) {
	log.Println("Starting Firebase initialization...")

	credentials := loadCredentials()
	if credentials == nil {
		log.Println("No Firebase credentials found, running in dev mode with auth checks disabled")
		return nil, nil
	}

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	config := &firebase.Config{ProjectID: projectID}
	opt := option.WithCredentialsJSON(credentials)

	app, err := firebaseInitApp(context.Background(), config, opt)
	if err != nil {
		log.Printf("Error initializing Firebase app: %v", err)
		return nil, err
	}

	firebaseAuth, err = firebaseGetAuth(app, context.Background())
	if err != nil {
		log.Printf("Error getting Firebase Auth client: %v", err)
		return nil, err
	}

	log.Println("Firebase Admin SDK initialized successfully")
	return app, nil
}

// loadCredentials resolves service account credentials from the
// environment, preferring raw JSON over base64.
func loadCredentials() []byte {
	if raw := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); raw != "" {
		log.Println("Using JSON Firebase credentials from environment")
		return []byte(raw)
	}
	if encoded := os.Getenv("FIREBASE_SERVICE_ACCOUNT_BASE64"); encoded != "" {
		log.Println("Using base64-encoded Firebase credentials from environment")
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			log.Printf("Error decoding base64 Firebase credentials: %v", err)
			return nil
		}
		return decoded
	}
	return nil
}

// AuthMiddleware verifies Firebase ID tokens from the Authorization
// header and stashes the caller's uid in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Dev mode: no verifier configured, act as a fixed admin.
		if firebaseAuth == nil {
			ctx := context.WithValue(r.Context(), UserIDKey, "dev-admin-1")
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		// Skip auth for OPTIONS requests (CORS preflight)
		if r.Method == "OPTIONS" {
			next.ServeHTTP(w, r)
			return
		}

		idToken := extractToken(r.Header.Get("Authorization"))
		if idToken == "" {
			http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		token, err := verifyToken(idToken)
		if err != nil {
			log.Printf("Error verifying token: %v", err)
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, token.UID)
		if email, ok := token.Claims["email"].(string); ok {
			ctx = context.WithValue(ctx, UserEmailKey, email)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken gets the token from the Authorization header
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, "Bearer ")
	if len(parts) != 2 {
		return ""
	}

	return parts[1]
}

// verifyToken verifies the Firebase JWT token
func verifyToken(idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, errors.New("Firebase auth client not initialized")
	}

	token, err := firebaseAuth.VerifyIDToken(context.Background(), idToken)
	if err != nil {
		return nil, fmt.Errorf("error verifying ID token: %w", err)
	}

	return token, nil
}

// GetUserIDFromContext retrieves the user ID from the request context
func GetUserIDFromContext(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUserEmailFromContext retrieves the verified email, if present.
func GetUserEmailFromContext(r *http.Request) string {
	email, ok := r.Context().Value(UserEmailKey).(string)
	if !ok {
		return ""
	}
	return email
}
