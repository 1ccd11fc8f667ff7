package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"shiftware/internal/modules/session/domain"
	sessiondto "shiftware/internal/modules/session/dto"
	sessionin "shiftware/internal/modules/session/port/in"
	sessionout "shiftware/internal/modules/session/port/out"
	"shiftware/internal/modules/session/service"
	"shiftware/internal/platform/clock"
	apperrors "shiftware/internal/platform/errors"
)

// Interactor orchestrates the authentication lifecycle around the
// SessionService state machine: remote calls, the token vault, and the
// forced-logout fan-out into the aggregation caches.
type Interactor struct {
	svc    *service.SessionService
	api    sessionout.AuthAPI
	vault  sessionout.TokenVault
	clock  clock.Clock
	caches []sessionout.DataReset
}

var _ sessionin.Usecase = (*Interactor)(nil)

func NewInteractor(svc *service.SessionService, api sessionout.AuthAPI, vault sessionout.TokenVault, clk clock.Clock) *Interactor {
	return &Interactor{svc: svc, api: api, vault: vault, clock: clk}
}

// RegisterCaches attaches the aggregation usecases whose data is owned by
// the current session. Called once from bootstrap, before any operation.
func (i *Interactor) RegisterCaches(caches ...sessionout.DataReset) {
	i.caches = append(i.caches, caches...)
}

func (i *Interactor) Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.SessionOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return sessiondto.SessionOutput{}, fmt.Errorf("email and password are required: %w", apperrors.ErrInvalidInput)
	}

	token, err := i.api.Login(ctx, email, input.Password)
	if err != nil {
		if apperrors.IsNetwork(err) {
			// Connectivity says nothing about the credential; any existing
			// session stays as it was.
			return sessiondto.SessionOutput{}, err
		}
		i.teardown(ctx, false)
		return sessiondto.SessionOutput{}, err
	}

	i.svc.Adopt(token, email)

	if err := i.vault.Save(ctx, domain.PersistedSession{Token: token, SavedAt: i.clock.Now()}); err != nil {
		// The server accepted the credentials but the token is not durable,
		// so the login contract is not met. Roll back, telling the server
		// while the token is still usable.
		i.teardown(ctx, true)
		return sessiondto.SessionOutput{}, err
	}

	return i.Current(ctx), nil
}

func (i *Interactor) Logout(ctx context.Context, notifyServer bool) error {
	i.teardown(ctx, notifyServer)
	return nil
}

func (i *Interactor) Restore(ctx context.Context) (sessiondto.SessionOutput, error) {
	saved, err := i.vault.Load(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	// Optimistic adoption; Validate is the separate step that proves the
	// token still works.
	i.svc.Adopt(saved.Token, "")
	return i.Current(ctx), nil
}

func (i *Interactor) Validate(ctx context.Context) (bool, error) {
	if !i.svc.Authenticated() {
		return false, nil
	}
	err := i.api.Probe(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrUnauthorized):
		i.teardown(ctx, false)
		return false, nil
	default:
		return false, err
	}
}

func (i *Interactor) LoadProfile(ctx context.Context) (sessiondto.ProfileOutput, error) {
	if !i.svc.Authenticated() {
		return sessiondto.ProfileOutput{}, apperrors.ErrUnauthorized
	}
	profile, err := i.api.Profile(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			i.teardown(ctx, false)
		}
		return sessiondto.ProfileOutput{}, err
	}
	i.svc.SetProfile(profile)
	return profileOutput(profile), nil
}

func (i *Interactor) Current(_ context.Context) sessiondto.SessionOutput {
	snap := i.svc.Snapshot()
	return sessiondto.SessionOutput{
		Authenticated: snap.Authenticated,
		Email:         snap.Email,
		Profile:       profileOutput(snap.Profile),
	}
}

func (i *Interactor) HasPersisted(ctx context.Context) bool {
	_, err := i.vault.Load(ctx)
	return err == nil
}

func (i *Interactor) Authenticated() bool {
	return i.svc.Authenticated()
}

// ForceLogout is the teardown path for auth rejections detected during
// otherwise unrelated operations. It never notifies the server: a rejected
// token has nothing to invalidate.
func (i *Interactor) ForceLogout(ctx context.Context) {
	i.teardown(ctx, false)
}

// teardown clears in-memory session state and drops aggregated data. The
// persisted vault entry is left alone; restore-after-logout with the same
// entry must keep working.
func (i *Interactor) teardown(ctx context.Context, notifyServer bool) {
	if notifyServer && i.svc.Token() != "" {
		if err := i.api.Logout(ctx); err != nil {
			slog.Warn("server logout notification failed", "err", err)
		}
	}
	i.svc.Clear()
	for _, c := range i.caches {
		c.ResetData()
	}
}

func profileOutput(p domain.Profile) sessiondto.ProfileOutput {
	return sessiondto.ProfileOutput{
		Name:     p.Name,
		Email:    p.Email,
		Business: p.Business,
		ABN:      p.ABN,
		Phone:    p.Phone,
	}
}
