package in

import (
	"context"

	"shiftware/internal/modules/schedule/dto"
)

type Usecase interface {
	// Calendar fetches all shifts, resolves each one's owning client, and
	// groups them by calendar day. Every call builds a fresh grouping; any
	// enrichment failure fails the whole call.
	Calendar(ctx context.Context) (dto.CalendarOutput, error)
}
