package model

// User is an identity known to the external identity provider.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
