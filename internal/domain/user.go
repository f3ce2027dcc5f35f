package domain

// User is the read-only view of an account owned by the identity provider.
type User struct {
	ID       string
	UserName string
	Email    string
}
