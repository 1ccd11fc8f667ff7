package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"shiftware/internal/modules/schedule/domain"
	scheduleout "shiftware/internal/modules/schedule/port/out"
)

// enrichmentConcurrency bounds the per-shift client fetch fan-out so a
// large roster does not open one connection per shift.
const enrichmentConcurrency = 4

type ScheduleService struct {
	api scheduleout.ShiftsAPI
}

func NewScheduleService(api scheduleout.ShiftsAPI) *ScheduleService {
	return &ScheduleService{api: api}
}

// LoadCalendar fetches the base shift collection, then resolves each
// shift's client concurrently. The base fetch completes before any
// enrichment starts (enrichment needs the IDs). A single enrichment
// failure cancels the group and fails the whole operation: partial
// records are not an acceptable result.
//
// The returned map is freshly built on every call. Per-day order is
// completion order, which is why insertion is mutex-guarded.
func (s *ScheduleService) LoadCalendar(ctx context.Context) (map[string][]domain.Shift, []domain.Shift, error) {
	base, err := s.api.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	byDay := make(map[string][]domain.Shift)
	flat := make([]domain.Shift, 0, len(base))
	var mu sync.Mutex

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(enrichmentConcurrency)
	for _, shift := range base {
		group.Go(func() error {
			client, err := s.api.ClientByID(gctx, shift.ClientID)
			if err != nil {
				return fmt.Errorf("resolve client %d for shift %d: %w", shift.ClientID, shift.ID, err)
			}
			shift.Client = &client
			mu.Lock()
			byDay[shift.Day()] = append(byDay[shift.Day()], shift)
			flat = append(flat, shift)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return byDay, flat, nil
}

// Group rebuilds the day map from an already-enriched flat slice, used
// when serving the cached snapshot.
func Group(shifts []domain.Shift) map[string][]domain.Shift {
	byDay := make(map[string][]domain.Shift)
	for _, shift := range shifts {
		byDay[shift.Day()] = append(byDay[shift.Day()], shift)
	}
	return byDay
}
