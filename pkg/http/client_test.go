package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetJSONDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing accept header")
		}
		_, _ = w.Write([]byte(`{"trend":"Bullish"}`))
	}))
	defer srv.Close()

	var out struct {
		Trend string `json:"trend"`
	}
	if err := NewClient().GetJSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Trend != "Bullish" {
		t.Fatalf("unexpected trend %q", out.Trend)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Failed to load data"}`))
	}))
	defer srv.Close()

	err := NewClient().GetJSON(context.Background(), srv.URL, &struct{}{})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", se.StatusCode)
	}
	if se.Message() != "Failed to load data" {
		t.Fatalf("unexpected message %q", se.Message())
	}
}

func TestGetJSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	var out map[string]interface{}
	if err := NewClient().GetJSON(context.Background(), srv.URL, &out); err == nil {
		t.Fatalf("expected decode error")
	}
}
