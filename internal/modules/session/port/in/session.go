package in

import (
	"context"

	"shiftware/internal/modules/session/dto"
)

type Usecase interface {
	// Login is all-or-nothing: "authenticated" means the server accepted
	// the credentials AND the token was durably stored.
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	// Logout clears all session and aggregated-data state unconditionally.
	// When notifyServer is set the remote API is informed best-effort.
	Logout(ctx context.Context, notifyServer bool) error
	// Restore optimistically adopts the persisted token without asking the
	// server whether it still works.
	Restore(ctx context.Context) (dto.SessionOutput, error)
	// Validate probes the remote API with the active token. A revoked
	// token forces logout and yields (false, nil); a transport failure
	// leaves the session untouched and yields the error.
	Validate(ctx context.Context) (bool, error)
	LoadProfile(ctx context.Context) (dto.ProfileOutput, error)
	Current(ctx context.Context) dto.SessionOutput
	// HasPersisted reports whether a session has ever been saved, without
	// adopting it.
	HasPersisted(ctx context.Context) bool

	// Guard surface for the aggregation modules.
	Authenticated() bool
	ForceLogout(ctx context.Context)
}
