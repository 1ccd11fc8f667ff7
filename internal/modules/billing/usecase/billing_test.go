package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"shiftware/internal/modules/billing/domain"
	"shiftware/internal/modules/billing/dto"
	"shiftware/internal/modules/billing/service"
	"shiftware/internal/modules/billing/usecase"
	apperrors "shiftware/internal/platform/errors"
	"shiftware/internal/platform/id"
)

type fakeInvoicesAPI struct {
	invoices  []domain.Invoice
	listErr   error
	clients   map[int64]domain.ClientRef
	details   map[int64]domain.Totals
	detailErr map[int64]error

	createdKeys []string
	createErr   error
}

func (f *fakeInvoicesAPI) List(context.Context) ([]domain.Invoice, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.invoices, nil
}

func (f *fakeInvoicesAPI) ClientByID(_ context.Context, clientID int64) (domain.ClientRef, error) {
	client, ok := f.clients[clientID]
	if !ok {
		return domain.ClientRef{}, fmt.Errorf("unknown client %d", clientID)
	}
	return client, nil
}

func (f *fakeInvoicesAPI) Detail(_ context.Context, invoiceID int64) (domain.Totals, error) {
	if err := f.detailErr[invoiceID]; err != nil {
		return domain.Totals{}, err
	}
	return f.details[invoiceID], nil
}

func (f *fakeInvoicesAPI) Create(_ context.Context, spec domain.CreateSpec, key string) (domain.Invoice, error) {
	if f.createErr != nil {
		return domain.Invoice{}, f.createErr
	}
	f.createdKeys = append(f.createdKeys, key)
	return domain.Invoice{ID: 99, ClientID: spec.ClientID}, nil
}

type fakeInvoiceCache struct {
	stored []domain.Invoice
	resets int
}

func (f *fakeInvoiceCache) Replace(_ context.Context, invoices []domain.Invoice) error {
	f.stored = invoices
	return nil
}

func (f *fakeInvoiceCache) Load(context.Context) ([]domain.Invoice, error) {
	return f.stored, nil
}

func (f *fakeInvoiceCache) Reset(context.Context) error {
	f.stored = nil
	f.resets++
	return nil
}

type fakeGuard struct {
	authenticated bool
	forced        int
}

func (f *fakeGuard) Authenticated() bool { return f.authenticated }

func (f *fakeGuard) ForceLogout(context.Context) {
	f.forced++
	f.authenticated = false
}

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testAPI() *fakeInvoicesAPI {
	return &fakeInvoicesAPI{
		invoices: []domain.Invoice{
			{ID: 1, ClientID: 10, Shifts: make([]domain.ShiftLine, 2)},
			{ID: 2, ClientID: 11, PaidAt: time.Date(2021, 9, 10, 12, 0, 0, 0, time.UTC), Shifts: make([]domain.ShiftLine, 1)},
		},
		clients: map[int64]domain.ClientRef{
			10: {ID: 10, Name: "Acme", Email: "billing@acme.test"},
			11: {ID: 11, Name: "Bay Cafe", Email: "owner@baycafe.test"},
		},
		details: map[int64]domain.Totals{
			1: {Subtotal: money("100.00"), GST: money("10.00"), Total: money("110.00")},
			2: {Subtotal: money("250.50"), GST: money("25.05"), Total: money("275.55")},
		},
	}
}

func newUC(api *fakeInvoicesAPI, cache *fakeInvoiceCache, guard *fakeGuard) *usecase.Interactor {
	return usecase.NewInteractor(service.NewBillingService(api, id.RandomHex{}), cache, guard)
}

func TestListEnrichesClientAndTotals(t *testing.T) {
	t.Parallel()
	uc := newUC(testAPI(), &fakeInvoiceCache{}, &fakeGuard{authenticated: true})

	out, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Invoices) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(out.Invoices))
	}
	first := out.Invoices[0]
	if first.ID != 1 || first.ClientName != "Acme" {
		t.Fatalf("base order or client enrichment lost: %+v", first)
	}
	if first.Total != "110.00" || first.GST != "10.00" {
		t.Fatalf("totals not formatted to two places: %+v", first)
	}
	if first.Paid {
		t.Fatalf("invoice 1 has no paid timestamp but reports paid")
	}
	second := out.Invoices[1]
	if !second.Paid || second.PaidAt.IsZero() {
		t.Fatalf("invoice 2 paid marker lost: %+v", second)
	}
	if second.ShiftCount != 1 {
		t.Fatalf("shift count lost: %+v", second)
	}
}

func TestListFailsWholeOperationWhenDetailFetchFails(t *testing.T) {
	t.Parallel()
	api := testAPI()
	api.detailErr = map[int64]error{2: &apperrors.APIError{Status: 500}}
	uc := newUC(api, &fakeInvoiceCache{}, &fakeGuard{authenticated: true})

	out, err := uc.List(context.Background())
	if err == nil {
		t.Fatalf("expected failure when one detail fetch fails")
	}
	if len(out.Invoices) != 0 {
		t.Fatalf("partial results leaked: %+v", out.Invoices)
	}
}

func TestListRequiresSession(t *testing.T) {
	t.Parallel()
	uc := newUC(testAPI(), &fakeInvoiceCache{}, &fakeGuard{})

	if _, err := uc.List(context.Background()); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestListRevokedTokenForcesLogout(t *testing.T) {
	t.Parallel()
	api := testAPI()
	api.listErr = apperrors.ErrUnauthorized
	guard := &fakeGuard{authenticated: true}
	uc := newUC(api, &fakeInvoiceCache{}, guard)

	if _, err := uc.List(context.Background()); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if guard.forced != 1 {
		t.Fatalf("expected forced logout, got %d", guard.forced)
	}
}

func TestListServesCacheOnNetworkFailure(t *testing.T) {
	t.Parallel()
	api := testAPI()
	cache := &fakeInvoiceCache{}
	uc := newUC(api, cache, &fakeGuard{authenticated: true})

	if _, err := uc.List(context.Background()); err != nil {
		t.Fatalf("warm-up list: %v", err)
	}

	api.listErr = &apperrors.NetworkError{Op: "GET /invoices", Err: errors.New("timeout")}
	out, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("expected cached fallback, got %v", err)
	}
	if !out.FromCache || len(out.Invoices) != 2 {
		t.Fatalf("unexpected fallback output: %+v", out)
	}
	if out.Invoices[1].Total != "275.55" {
		t.Fatalf("cached totals lost precision: %+v", out.Invoices[1])
	}
}

func TestCreateValidatesSpecAndSendsIdempotencyKey(t *testing.T) {
	t.Parallel()
	api := testAPI()
	uc := newUC(api, &fakeInvoiceCache{}, &fakeGuard{authenticated: true})

	due := time.Date(2021, 9, 21, 0, 0, 0, 0, time.UTC)
	if _, err := uc.Create(context.Background(), dto.CreateInvoiceInput{ClientID: 10, ShiftIDs: []int64{1, 2}, Due: due}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(api.createdKeys) != 1 || api.createdKeys[0] == "" {
		t.Fatalf("idempotency key not sent: %v", api.createdKeys)
	}

	if _, err := uc.Create(context.Background(), dto.CreateInvoiceInput{ClientID: 0, ShiftIDs: []int64{1}}); err == nil {
		t.Fatalf("expected validation failure without client")
	}
	if _, err := uc.Create(context.Background(), dto.CreateInvoiceInput{ClientID: 10}); err == nil {
		t.Fatalf("expected validation failure without shifts")
	}
	if len(api.createdKeys) != 1 {
		t.Fatalf("invalid specs must not reach the API")
	}
}

func TestResetDataDropsCache(t *testing.T) {
	t.Parallel()
	cache := &fakeInvoiceCache{}
	uc := newUC(testAPI(), cache, &fakeGuard{authenticated: true})

	if _, err := uc.List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	uc.ResetData()
	if cache.resets != 1 || len(cache.stored) != 0 {
		t.Fatalf("reset did not drop the cache: resets=%d stored=%d", cache.resets, len(cache.stored))
	}
}
