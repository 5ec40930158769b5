package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateIntentionNormalizesZipcodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/intention" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["zipcode_start"] != "01001000" || body["zipcode_end"] != "80010000" {
			t.Errorf("expected normalized zipcodes, got %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Intention{ID: "int-1", ZipcodeStart: "01001000", ZipcodeEnd: "80010000"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	intention, err := c.CreateIntention(context.Background(), "01001-000", "80010-000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intention.ID != "int-1" {
		t.Errorf("unexpected intention id: %s", intention.ID)
	}
}

func TestCreateLeadSurfacesAPIMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"statusCode": 409,
			"message":    "email is already registered",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateLead(context.Background(), "Ana", "ana@example.com")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); !strings.Contains(got, "email is already registered") {
		t.Errorf("expected API message in error, got %q", got)
	}
}

func TestAssociateLead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/intention/int-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["lead_id"] != "lead-1" {
			t.Errorf("unexpected lead_id: %v", body)
		}
		_ = json.NewEncoder(w).Encode(Intention{ID: "int-1"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.AssociateLead(context.Background(), "int-1", "lead-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientNetworkError(t *testing.T) {
	c := New("http://127.0.0.1:1")
	if _, err := c.CreateLead(context.Background(), "Ana", "ana@example.com"); err == nil {
		t.Fatal("expected network error")
	}
}
