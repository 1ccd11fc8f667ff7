package rest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "shiftware/internal/platform/errors"
	"shiftware/internal/platform/rest"
)

func TestGetSendsBearerAndRequestID(t *testing.T) {
	t.Parallel()
	var gotAuth, gotRequestID, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := rest.NewClient(srv.URL, time.Second, rest.StaticToken("tok-1"))
	var out struct {
		OK bool `json:"ok"`
	}
	if err := client.Get(context.Background(), "/profile", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !out.OK {
		t.Fatalf("response not decoded")
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("missing bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatalf("missing request id header")
	}
	if gotAccept != "application/json" {
		t.Fatalf("missing accept header, got %q", gotAccept)
	}
}

func TestEmptyTokenSendsNoAuthorization(t *testing.T) {
	t.Parallel()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := rest.NewClient(srv.URL, time.Second, rest.StaticToken(""))
	if err := client.Post(context.Background(), "/login", map[string]string{"email": "a@b"}, nil); err != nil {
		t.Fatalf("post: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("unauthenticated request carried %q", gotAuth)
	}
}

func TestUnauthorizedStatusMapsToSentinel(t *testing.T) {
	t.Parallel()
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		client := rest.NewClient(srv.URL, time.Second, rest.StaticToken("stale"))
		err := client.Get(context.Background(), "/shifts", nil)
		srv.Close()
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Fatalf("status %d: expected unauthorized sentinel, got %v", status, err)
		}
	}
}

func TestServerErrorMapsToAPIError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"name is required"}`))
	}))
	defer srv.Close()

	client := rest.NewClient(srv.URL, time.Second, rest.StaticToken("tok"))
	err := client.Post(context.Background(), "/clients", map[string]string{}, nil)
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", apiErr.Status)
	}
	if apiErr.Body == "" {
		t.Fatalf("response body not captured")
	}
}

func TestTransportFailureMapsToNetworkError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	client := rest.NewClient(srv.URL, time.Second, rest.StaticToken("tok"))
	err := client.Get(context.Background(), "/invoices", nil)
	if !apperrors.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("transport failure must not look like an auth failure")
	}
}

func TestPostIdempotentSetsKeyHeader(t *testing.T) {
	t.Parallel()
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := rest.NewClient(srv.URL, time.Second, rest.StaticToken("tok"))
	if err := client.PostIdempotent(context.Background(), "/invoices", map[string]int{"client_id": 1}, nil, "key-123"); err != nil {
		t.Fatalf("post: %v", err)
	}
	if gotKey != "key-123" {
		t.Fatalf("idempotency key not sent, got %q", gotKey)
	}
}
