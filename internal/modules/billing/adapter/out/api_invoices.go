package out

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"shiftware/internal/modules/billing/domain"
	billingout "shiftware/internal/modules/billing/port/out"
	"shiftware/internal/platform/rest"
)

// wireTimeLayout matches the zoneless timestamps the API serializes.
const wireTimeLayout = "2006-01-02 15:04:05"

type shiftLineWire struct {
	ID          int64  `json:"id"`
	ShiftStart  string `json:"shift_start"`
	ShiftEnd    string `json:"shift_end"`
	Description string `json:"description"`
}

type invoiceWire struct {
	ID       int64           `json:"id"`
	ClientID int64           `json:"client_id"`
	Paid     *string         `json:"paid"` // null when unsettled
	Shifts   []shiftLineWire `json:"shifts"`
}

type invoicesResponse struct {
	Invoices []invoiceWire `json:"invoices"`
}

type invoiceResponse struct {
	Invoice invoiceWire `json:"invoice"`
}

type invoiceDetailResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	GST      decimal.Decimal `json:"gst"`
	Total    decimal.Decimal `json:"total"`
}

type invoiceClientResponse struct {
	Client struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"client"`
}

type createInvoiceRequest struct {
	ClientID int64   `json:"client_id"`
	ShiftIDs []int64 `json:"shift_ids"`
	Due      string  `json:"due"`
}

type InvoicesAPI struct {
	client *rest.Client
	loc    *time.Location
}

func NewInvoicesAPI(client *rest.Client, loc *time.Location) billingout.InvoicesAPI {
	if loc == nil {
		loc = time.UTC
	}
	return &InvoicesAPI{client: client, loc: loc}
}

func (a *InvoicesAPI) List(ctx context.Context) ([]domain.Invoice, error) {
	var resp invoicesResponse
	if err := a.client.Get(ctx, "/invoices", &resp); err != nil {
		return nil, err
	}
	invoices := make([]domain.Invoice, 0, len(resp.Invoices))
	for _, w := range resp.Invoices {
		invoice, err := a.fromWire(w)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

func (a *InvoicesAPI) ClientByID(ctx context.Context, id int64) (domain.ClientRef, error) {
	var resp invoiceClientResponse
	if err := a.client.Get(ctx, fmt.Sprintf("/clients/%d", id), &resp); err != nil {
		return domain.ClientRef{}, err
	}
	return domain.ClientRef{ID: resp.Client.ID, Name: resp.Client.Name, Email: resp.Client.Email}, nil
}

func (a *InvoicesAPI) Detail(ctx context.Context, invoiceID int64) (domain.Totals, error) {
	var resp invoiceDetailResponse
	if err := a.client.Get(ctx, fmt.Sprintf("/invoices/%d", invoiceID), &resp); err != nil {
		return domain.Totals{}, err
	}
	return domain.Totals{Subtotal: resp.Subtotal, GST: resp.GST, Total: resp.Total}, nil
}

func (a *InvoicesAPI) Create(ctx context.Context, spec domain.CreateSpec, idempotencyKey string) (domain.Invoice, error) {
	req := createInvoiceRequest{
		ClientID: spec.ClientID,
		ShiftIDs: spec.ShiftIDs,
		Due:      spec.Due.In(a.loc).Format(wireTimeLayout),
	}
	var resp invoiceResponse
	if err := a.client.PostIdempotent(ctx, "/invoices", req, &resp, idempotencyKey); err != nil {
		return domain.Invoice{}, err
	}
	return a.fromWire(resp.Invoice)
}

func (a *InvoicesAPI) fromWire(w invoiceWire) (domain.Invoice, error) {
	invoice := domain.Invoice{ID: w.ID, ClientID: w.ClientID}
	if w.Paid != nil && *w.Paid != "" {
		paidAt, err := time.ParseInLocation(wireTimeLayout, *w.Paid, a.loc)
		if err != nil {
			return domain.Invoice{}, fmt.Errorf("parse invoice %d paid %q: %w", w.ID, *w.Paid, err)
		}
		invoice.PaidAt = paidAt
	}
	for _, line := range w.Shifts {
		start, err := time.ParseInLocation(wireTimeLayout, line.ShiftStart, a.loc)
		if err != nil {
			return domain.Invoice{}, fmt.Errorf("parse invoice %d shift %d start %q: %w", w.ID, line.ID, line.ShiftStart, err)
		}
		end, err := time.ParseInLocation(wireTimeLayout, line.ShiftEnd, a.loc)
		if err != nil {
			return domain.Invoice{}, fmt.Errorf("parse invoice %d shift %d end %q: %w", w.ID, line.ID, line.ShiftEnd, err)
		}
		invoice.Shifts = append(invoice.Shifts, domain.ShiftLine{
			ID:          line.ID,
			Start:       start,
			End:         end,
			Description: line.Description,
		})
	}
	return invoice, nil
}
