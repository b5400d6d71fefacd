package models

import "regexp"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupRequest carries the fields submitted on the sign-up form.
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate returns field-keyed validation messages. An empty map means
// the request is valid. These checks run before any call to the auth
// provider.
func (r *SignupRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if !emailPattern.MatchString(r.Email) {
		problems["email"] = "Please enter a valid email address."
	}
	if len(r.Password) < 6 {
		problems["password"] = "Password must be at least 6 characters long."
	}
	if r.Password != r.ConfirmPassword {
		problems["confirmPassword"] = "Passwords do not match."
	}
	return problems
}
