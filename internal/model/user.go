package model

// User is the locally simulated account. Credentials are never
// verified; any non-empty email and password sign in successfully.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
