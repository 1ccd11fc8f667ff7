package domain

import "time"

type Profile struct {
	Name     string
	Email    string
	Business string
	ABN      string
	Phone    string
}

// Session is the in-memory representation of the current authenticated
// user. Authenticated is true iff Token is a non-empty server-issued
// credential that has not been invalidated.
type Session struct {
	Authenticated bool
	Token         string
	Email         string
	Profile       Profile
}

// PersistedSession is the single durable slot owned by this module. The
// wire keys match the original mobile app's encrypted-storage entry.
type PersistedSession struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"datetime"`
}
