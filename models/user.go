package models

// UserProfile is the locally stored profile for a signed-in account.
// Identity (uid, email) comes from the auth provider; the rest is
// collected at registration. Role is chosen client side and stored as
// given; it is a UI hint, not a server-enforced permission.
type UserProfile struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	PropertyType string `json:"propertyType"`
	PropertyArea string `json:"propertyArea"`
	State        string `json:"state"`
	City         string `json:"city"`
	Role         string `json:"role"`
}
