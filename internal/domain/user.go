package domain

// User is an identity with a store-generated id and a display name. The
// username carries no uniqueness or format constraint, and users are never
// updated or deleted once created.
type User struct {
	ID       string
	Username string
}
