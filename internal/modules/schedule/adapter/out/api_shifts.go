package out

import (
	"context"
	"fmt"
	"time"

	"shiftware/internal/modules/schedule/domain"
	scheduleout "shiftware/internal/modules/schedule/port/out"
	"shiftware/internal/platform/rest"
)

// wireTimeLayout is how the API serializes shift timestamps. They carry no
// zone marker, so the adapter parses them in the configured location
// instead of guessing an offset.
const wireTimeLayout = "2006-01-02 15:04:05"

type shiftWire struct {
	ID          int64  `json:"id"`
	ClientID    int64  `json:"client_id"`
	ShiftStart  string `json:"shift_start"`
	ShiftEnd    string `json:"shift_end"`
	Description string `json:"description"`
}

type shiftsResponse struct {
	Shifts []shiftWire `json:"shifts"`
}

type shiftClientResponse struct {
	Client struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"client"`
}

type ShiftsAPI struct {
	client *rest.Client
	loc    *time.Location
}

func NewShiftsAPI(client *rest.Client, loc *time.Location) scheduleout.ShiftsAPI {
	if loc == nil {
		loc = time.UTC
	}
	return &ShiftsAPI{client: client, loc: loc}
}

func (a *ShiftsAPI) List(ctx context.Context) ([]domain.Shift, error) {
	var resp shiftsResponse
	if err := a.client.Get(ctx, "/shifts", &resp); err != nil {
		return nil, err
	}
	shifts := make([]domain.Shift, 0, len(resp.Shifts))
	for _, w := range resp.Shifts {
		start, err := time.ParseInLocation(wireTimeLayout, w.ShiftStart, a.loc)
		if err != nil {
			return nil, fmt.Errorf("parse shift %d start %q: %w", w.ID, w.ShiftStart, err)
		}
		end, err := time.ParseInLocation(wireTimeLayout, w.ShiftEnd, a.loc)
		if err != nil {
			return nil, fmt.Errorf("parse shift %d end %q: %w", w.ID, w.ShiftEnd, err)
		}
		shifts = append(shifts, domain.Shift{
			ID:          w.ID,
			ClientID:    w.ClientID,
			Start:       start,
			End:         end,
			Description: w.Description,
		})
	}
	return shifts, nil
}

func (a *ShiftsAPI) ClientByID(ctx context.Context, id int64) (domain.ClientRef, error) {
	var resp shiftClientResponse
	if err := a.client.Get(ctx, fmt.Sprintf("/clients/%d", id), &resp); err != nil {
		return domain.ClientRef{}, err
	}
	return domain.ClientRef{ID: resp.Client.ID, Name: resp.Client.Name, Email: resp.Client.Email}, nil
}
