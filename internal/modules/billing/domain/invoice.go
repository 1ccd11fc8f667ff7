package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ClientRef is the resolved owning client attached during enrichment.
type ClientRef struct {
	ID    int64
	Name  string
	Email string
}

// ShiftLine is a shift billed on an invoice, as embedded in the invoice
// payload.
type ShiftLine struct {
	ID          int64
	Start       time.Time
	End         time.Time
	Description string
}

// Totals is the financial detail served by the per-invoice endpoint.
// Money is decimal; float money does not add up.
type Totals struct {
	Subtotal decimal.Decimal
	GST      decimal.Decimal
	Total    decimal.Decimal
}

// Invoice is an invoice enriched with its owning client and totals.
// Client stays nil and Totals zero only between the base fetch and
// enrichment; aggregation never returns them that way.
type Invoice struct {
	ID       int64
	ClientID int64
	PaidAt   time.Time
	Shifts   []ShiftLine

	Client *ClientRef
	Totals Totals
}

// Paid reports whether the invoice has been settled. The API sends a
// null-or-timestamp paid marker.
func (i Invoice) Paid() bool {
	return !i.PaidAt.IsZero()
}

// CreateSpec describes a new invoice to raise.
type CreateSpec struct {
	ClientID int64
	ShiftIDs []int64
	Due      time.Time
}

func (s CreateSpec) Validate() error {
	if s.ClientID == 0 {
		return fmt.Errorf("invoice client is required")
	}
	if len(s.ShiftIDs) == 0 {
		return fmt.Errorf("invoice needs at least one shift")
	}
	return nil
}
