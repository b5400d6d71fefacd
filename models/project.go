package models

// Project is a previously completed renovation bundled with the app.
// Projects are read-only reference data; they are never written back
// to the document store.
type Project struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Image  string   `json:"image"`
	SqYard int      `json:"sq_yard"`
	Tags   []string `json:"tags"`
}
