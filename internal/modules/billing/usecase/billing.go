package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"shiftware/internal/modules/billing/domain"
	"shiftware/internal/modules/billing/dto"
	billingin "shiftware/internal/modules/billing/port/in"
	billingout "shiftware/internal/modules/billing/port/out"
	"shiftware/internal/modules/billing/service"
	apperrors "shiftware/internal/platform/errors"
)

type sessionGuard interface {
	Authenticated() bool
	ForceLogout(ctx context.Context)
}

type Interactor struct {
	svc   *service.BillingService
	cache billingout.InvoiceCache
	guard sessionGuard

	mu       sync.Mutex
	invoices []domain.Invoice
}

func NewInteractor(svc *service.BillingService, cache billingout.InvoiceCache, guard sessionGuard) *Interactor {
	return &Interactor{svc: svc, cache: cache, guard: guard}
}

var _ billingin.Usecase = (*Interactor)(nil)

func (i *Interactor) List(ctx context.Context) (dto.ListOutput, error) {
	if !i.guard.Authenticated() {
		return dto.ListOutput{}, fmt.Errorf("list invoices: %w", apperrors.ErrUnauthorized)
	}

	invoices, err := i.svc.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			i.guard.ForceLogout(ctx)
			return dto.ListOutput{}, err
		}
		if apperrors.IsNetwork(err) {
			if cached, cerr := i.cache.Load(ctx); cerr == nil && len(cached) > 0 {
				return dto.ListOutput{Invoices: outputs(cached), FromCache: true}, nil
			}
		}
		return dto.ListOutput{}, err
	}

	i.mu.Lock()
	i.invoices = invoices
	i.mu.Unlock()

	if err := i.cache.Replace(ctx, invoices); err != nil {
		slog.Warn("invoice cache update failed", "err", err)
	}
	return dto.ListOutput{Invoices: outputs(invoices)}, nil
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInvoiceInput) (dto.InvoiceOutput, error) {
	if !i.guard.Authenticated() {
		return dto.InvoiceOutput{}, fmt.Errorf("create invoice: %w", apperrors.ErrUnauthorized)
	}
	created, err := i.svc.Create(ctx, domain.CreateSpec{
		ClientID: input.ClientID,
		ShiftIDs: input.ShiftIDs,
		Due:      input.Due,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			i.guard.ForceLogout(ctx)
		}
		return dto.InvoiceOutput{}, err
	}
	return invoiceOutput(created), nil
}

func (i *Interactor) ResetData() {
	i.mu.Lock()
	i.invoices = nil
	i.mu.Unlock()
	if err := i.cache.Reset(context.Background()); err != nil {
		slog.Warn("invoice cache reset failed", "err", err)
	}
}

func outputs(invoices []domain.Invoice) []dto.InvoiceOutput {
	out := make([]dto.InvoiceOutput, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, invoiceOutput(inv))
	}
	return out
}

func invoiceOutput(inv domain.Invoice) dto.InvoiceOutput {
	item := dto.InvoiceOutput{
		ID:         inv.ID,
		ClientID:   inv.ClientID,
		Paid:       inv.Paid(),
		PaidAt:     inv.PaidAt,
		ShiftCount: len(inv.Shifts),
		Subtotal:   inv.Totals.Subtotal.StringFixed(2),
		GST:        inv.Totals.GST.StringFixed(2),
		Total:      inv.Totals.Total.StringFixed(2),
	}
	if inv.Client != nil {
		item.ClientName = inv.Client.Name
		item.ClientEmail = inv.Client.Email
	}
	return item
}
