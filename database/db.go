package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"nextgenhome/backend/models"
)

var DB *sql.DB

func InitDB() error {
	var dbPath string
	if os.Getenv("FLY_APP_NAME") != "" {
		// We're running on Fly.io, use the mounted volume
		dbPath = filepath.Join("/data", "profiles.db")
	} else if os.Getenv("TEST_DB") == "1" {
		dbPath = ":memory:"
	} else {
		dbPath = "./profiles.db"
	}

	var err error
	// Add connection parameters to better handle concurrency
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	if _, err = DB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err = DB.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}

	if err = DB.Ping(); err != nil {
		return err
	}

	return CreateTables(DB)
}

// CreateTables creates the profile schema. Split out so tests can run
// it against their own in-memory connection.
func CreateTables(db *sql.DB) error {
	createProfilesTable := `
	CREATE TABLE IF NOT EXISTS user_profiles (
		uid TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		full_name TEXT,
		property_type TEXT,
		property_area TEXT,
		state TEXT,
		city TEXT,
		role TEXT NOT NULL DEFAULT 'user'
	);
	`
	_, err := db.Exec(createProfilesTable)
	return err
}

// UpsertProfile inserts the profile or updates it in place when the
// uid already exists.
func UpsertProfile(p models.UserProfile) error {
	_, err := DB.Exec(`
		INSERT INTO user_profiles (uid, email, full_name, property_type, property_area, state, city, role)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			email = excluded.email,
			full_name = excluded.full_name,
			property_type = excluded.property_type,
			property_area = excluded.property_area,
			state = excluded.state,
			city = excluded.city,
			role = excluded.role
	`, p.UID, p.Email, p.FullName, p.PropertyType, p.PropertyArea, p.State, p.City, p.Role)
	return err
}

// GetProfile loads a profile by uid. Returns sql.ErrNoRows when the
// uid is unknown.
func GetProfile(uid string) (models.UserProfile, error) {
	var p models.UserProfile
	var fullName, propertyType, propertyArea, state, city sql.NullString
	err := DB.QueryRow(`
		SELECT uid, email, full_name, property_type, property_area, state, city, role
		FROM user_profiles WHERE uid = ?
	`, uid).Scan(&p.UID, &p.Email, &fullName, &propertyType, &propertyArea, &state, &city, &p.Role)
	if err != nil {
		return models.UserProfile{}, err
	}
	p.FullName = fullName.String
	p.PropertyType = propertyType.String
	p.PropertyArea = propertyArea.String
	p.State = state.String
	p.City = city.String
	return p, nil
}
