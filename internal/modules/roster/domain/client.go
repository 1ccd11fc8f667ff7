package domain

import (
	"fmt"
	"strings"
)

// Client is immutable once fetched within a session; the collection is
// refreshed by re-fetching it whole.
type Client struct {
	ID    int64
	Name  string
	Email string
}

// NewClient validates the fields a client must carry before it is sent to
// the create endpoint.
func NewClient(name, email string) (Client, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Client{}, fmt.Errorf("client name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return Client{}, fmt.Errorf("client email %q is invalid", email)
	}
	return Client{Name: name, Email: email}, nil
}
