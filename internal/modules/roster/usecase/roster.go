package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"shiftware/internal/modules/roster/domain"
	"shiftware/internal/modules/roster/dto"
	rosterin "shiftware/internal/modules/roster/port/in"
	rosterout "shiftware/internal/modules/roster/port/out"
	"shiftware/internal/modules/roster/service"
	apperrors "shiftware/internal/platform/errors"
)

// sessionGuard is the narrowed slice of the session usecase this module
// needs: an auth check before fetching, and the forced-logout trigger when
// the remote API rejects the token mid-operation.
type sessionGuard interface {
	Authenticated() bool
	ForceLogout(ctx context.Context)
}

type Interactor struct {
	svc   *service.RosterService
	cache rosterout.ClientCache
	guard sessionGuard

	mu      sync.Mutex
	clients []domain.Client
}

func NewInteractor(svc *service.RosterService, cache rosterout.ClientCache, guard sessionGuard) *Interactor {
	return &Interactor{svc: svc, cache: cache, guard: guard}
}

var _ rosterin.Usecase = (*Interactor)(nil)

func (i *Interactor) List(ctx context.Context) (dto.ListOutput, error) {
	if !i.guard.Authenticated() {
		return dto.ListOutput{}, fmt.Errorf("list clients: %w", apperrors.ErrUnauthorized)
	}

	clients, err := i.svc.List(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			i.guard.ForceLogout(ctx)
			return dto.ListOutput{}, err
		}
		if apperrors.IsNetwork(err) {
			if cached, cerr := i.cache.Load(ctx); cerr == nil && len(cached) > 0 {
				return dto.ListOutput{Clients: outputs(cached), FromCache: true}, nil
			}
		}
		return dto.ListOutput{}, err
	}

	i.mu.Lock()
	i.clients = clients
	i.mu.Unlock()

	if err := i.cache.Replace(ctx, clients); err != nil {
		slog.Warn("client cache update failed", "err", err)
	}
	return dto.ListOutput{Clients: outputs(clients)}, nil
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateClientInput) (dto.ClientOutput, error) {
	if !i.guard.Authenticated() {
		return dto.ClientOutput{}, fmt.Errorf("create client: %w", apperrors.ErrUnauthorized)
	}
	created, err := i.svc.Create(ctx, input.Name, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			i.guard.ForceLogout(ctx)
		}
		return dto.ClientOutput{}, err
	}
	return dto.ClientOutput{ID: created.ID, Name: created.Name, Email: created.Email}, nil
}

// ResetData drops this session's collections. Registered with the session
// usecase, which calls it on every teardown.
func (i *Interactor) ResetData() {
	i.mu.Lock()
	i.clients = nil
	i.mu.Unlock()
	if err := i.cache.Reset(context.Background()); err != nil {
		slog.Warn("client cache reset failed", "err", err)
	}
}

func outputs(clients []domain.Client) []dto.ClientOutput {
	out := make([]dto.ClientOutput, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.ClientOutput{ID: c.ID, Name: c.Name, Email: c.Email})
	}
	return out
}
