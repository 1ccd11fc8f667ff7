package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"shiftware/internal/modules/schedule/domain"
	"shiftware/internal/modules/schedule/dto"
	schedulein "shiftware/internal/modules/schedule/port/in"
	scheduleout "shiftware/internal/modules/schedule/port/out"
	"shiftware/internal/modules/schedule/service"
	apperrors "shiftware/internal/platform/errors"
)

type sessionGuard interface {
	Authenticated() bool
	ForceLogout(ctx context.Context)
}

type Interactor struct {
	svc   *service.ScheduleService
	cache scheduleout.ShiftCache
	guard sessionGuard

	mu     sync.Mutex
	shifts []domain.Shift
}

func NewInteractor(svc *service.ScheduleService, cache scheduleout.ShiftCache, guard sessionGuard) *Interactor {
	return &Interactor{svc: svc, cache: cache, guard: guard}
}

var _ schedulein.Usecase = (*Interactor)(nil)

func (i *Interactor) Calendar(ctx context.Context) (dto.CalendarOutput, error) {
	if !i.guard.Authenticated() {
		return dto.CalendarOutput{}, fmt.Errorf("load calendar: %w", apperrors.ErrUnauthorized)
	}

	byDay, flat, err := i.svc.LoadCalendar(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			i.guard.ForceLogout(ctx)
			return dto.CalendarOutput{}, err
		}
		if apperrors.IsNetwork(err) {
			if cached, cerr := i.cache.Load(ctx); cerr == nil && len(cached) > 0 {
				return output(service.Group(cached), true), nil
			}
		}
		return dto.CalendarOutput{}, err
	}

	i.mu.Lock()
	i.shifts = flat
	i.mu.Unlock()

	if err := i.cache.Replace(ctx, flat); err != nil {
		slog.Warn("shift cache update failed", "err", err)
	}
	return output(byDay, false), nil
}

func (i *Interactor) ResetData() {
	i.mu.Lock()
	i.shifts = nil
	i.mu.Unlock()
	if err := i.cache.Reset(context.Background()); err != nil {
		slog.Warn("shift cache reset failed", "err", err)
	}
}

func output(byDay map[string][]domain.Shift, fromCache bool) dto.CalendarOutput {
	out := dto.CalendarOutput{
		ByDay:     make(map[string][]dto.ShiftOutput, len(byDay)),
		Days:      make([]string, 0, len(byDay)),
		FromCache: fromCache,
	}
	for day, shifts := range byDay {
		items := make([]dto.ShiftOutput, 0, len(shifts))
		for _, s := range shifts {
			item := dto.ShiftOutput{
				ID:             s.ID,
				ClientID:       s.ClientID,
				Description:    s.Description,
				Start:          s.Start,
				End:            s.End,
				FormattedStart: s.FormattedStart(),
				FormattedEnd:   s.FormattedEnd(),
				Hours:          s.Hours(),
				Day:            day,
			}
			if s.Client != nil {
				item.ClientName = s.Client.Name
				item.ClientEmail = s.Client.Email
			}
			items = append(items, item)
		}
		out.ByDay[day] = items
		out.Days = append(out.Days, day)
	}
	sort.Strings(out.Days)
	return out
}
