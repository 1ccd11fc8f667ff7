package out

import (
	"context"

	"shiftware/internal/modules/session/domain"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (domain.Profile, error)
	// Probe issues the cheapest authenticated read to discover whether the
	// active token is still accepted.
	Probe(ctx context.Context) error
}

// TokenVault is the encrypted-at-rest key-value slot holding the persisted
// session. Writes are all-or-nothing.
type TokenVault interface {
	Save(ctx context.Context, session domain.PersistedSession) error
	Load(ctx context.Context) (domain.PersistedSession, error)
	Clear(ctx context.Context) error
}

// DataReset is implemented by the aggregation usecases; their in-memory
// and cached collections are dropped whenever the session is cleared.
type DataReset interface {
	ResetData()
}
