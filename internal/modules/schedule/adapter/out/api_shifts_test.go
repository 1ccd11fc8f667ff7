package out_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shiftware/internal/modules/schedule/adapter/out"
	"shiftware/internal/platform/rest"
)

func TestListParsesTimestampsInConfiguredZone(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shifts" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"shifts":[
			{"id":1,"client_id":10,"shift_start":"2021-09-07 09:00:00","shift_end":"2021-09-07 17:00:00","description":"Install"}
		]}`))
	}))
	defer srv.Close()

	loc, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	api := out.NewShiftsAPI(rest.NewClient(srv.URL, time.Second, rest.StaticToken("tok")), loc)

	shifts, err := api.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(shifts) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(shifts))
	}
	shift := shifts[0]
	want := time.Date(2021, 9, 7, 9, 0, 0, 0, loc)
	if !shift.Start.Equal(want) {
		t.Fatalf("start parsed as %v, want %v", shift.Start, want)
	}
	if shift.Start.Location() != loc {
		t.Fatalf("start carries zone %v, want %v", shift.Start.Location(), loc)
	}
	if shift.Hours() != 8 {
		t.Fatalf("hours: got %v", shift.Hours())
	}
}

func TestListRejectsMalformedTimestamp(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"shifts":[{"id":1,"client_id":10,"shift_start":"yesterday","shift_end":"2021-09-07 17:00:00"}]}`))
	}))
	defer srv.Close()

	api := out.NewShiftsAPI(rest.NewClient(srv.URL, time.Second, rest.StaticToken("tok")), time.UTC)
	if _, err := api.List(context.Background()); err == nil {
		t.Fatalf("malformed timestamp accepted")
	}
}

func TestClientByIDHitsPerClientEndpoint(t *testing.T) {
	t.Parallel()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"client":{"id":10,"name":"Acme","email":"billing@acme.test"}}`))
	}))
	defer srv.Close()

	api := out.NewShiftsAPI(rest.NewClient(srv.URL, time.Second, rest.StaticToken("tok")), time.UTC)
	client, err := api.ClientByID(context.Background(), 10)
	if err != nil {
		t.Fatalf("client by id: %v", err)
	}
	if gotPath != "/clients/10" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if client.Name != "Acme" {
		t.Fatalf("unexpected client: %+v", client)
	}
}
