package out_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shiftware/internal/modules/billing/adapter/out"
	"shiftware/internal/modules/billing/domain"
	"shiftware/internal/platform/rest"
)

func TestListMapsNullOrTimestampPaidMarker(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"invoices":[
			{"id":1,"client_id":10,"paid":null,"shifts":[
				{"id":5,"shift_start":"2021-09-07 09:00:00","shift_end":"2021-09-07 17:00:00","description":"Install"}
			]},
			{"id":2,"client_id":11,"paid":"2021-09-10 12:00:00","shifts":[]}
		]}`))
	}))
	defer srv.Close()

	api := out.NewInvoicesAPI(rest.NewClient(srv.URL, time.Second, rest.StaticToken("tok")), time.UTC)
	invoices, err := api.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(invoices))
	}
	if invoices[0].Paid() {
		t.Fatalf("null paid marker produced a paid invoice")
	}
	if len(invoices[0].Shifts) != 1 || invoices[0].Shifts[0].Description != "Install" {
		t.Fatalf("embedded shift lines lost: %+v", invoices[0].Shifts)
	}
	if !invoices[1].Paid() {
		t.Fatalf("timestamp paid marker produced an unpaid invoice")
	}
	want := time.Date(2021, 9, 10, 12, 0, 0, 0, time.UTC)
	if !invoices[1].PaidAt.Equal(want) {
		t.Fatalf("paid at parsed as %v, want %v", invoices[1].PaidAt, want)
	}
}

func TestDetailParsesDecimalTotals(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"subtotal":"250.50","gst":"25.05","total":"275.55"}`))
	}))
	defer srv.Close()

	api := out.NewInvoicesAPI(rest.NewClient(srv.URL, time.Second, rest.StaticToken("tok")), time.UTC)
	totals, err := api.Detail(context.Background(), 2)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if totals.Total.StringFixed(2) != "275.55" {
		t.Fatalf("total parsed as %s", totals.Total)
	}
	if !totals.Subtotal.Add(totals.GST).Equal(totals.Total) {
		t.Fatalf("decimal arithmetic drifted: %s + %s != %s", totals.Subtotal, totals.GST, totals.Total)
	}
}

func TestCreatePostsWireShapeWithDue(t *testing.T) {
	t.Parallel()
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"invoice":{"id":7,"client_id":10,"paid":null,"shifts":[]}}`))
	}))
	defer srv.Close()

	api := out.NewInvoicesAPI(rest.NewClient(srv.URL, time.Second, rest.StaticToken("tok")), time.UTC)
	spec := domain.CreateSpec{
		ClientID: 10,
		ShiftIDs: []int64{1, 2},
		Due:      time.Date(2021, 9, 21, 0, 0, 0, 0, time.UTC),
	}
	created, err := api.Create(context.Background(), spec, "key-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("created invoice id %d", created.ID)
	}
	if gotBody["client_id"].(float64) != 10 {
		t.Fatalf("client id not sent: %v", gotBody)
	}
	if gotBody["due"] != "2021-09-21 00:00:00" {
		t.Fatalf("due date serialized as %v", gotBody["due"])
	}
}
