package fetcher

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer server.Close()

	c := New(5*time.Second, "test-agent")
	body, err := c.Get(t.Context(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(body) != "%PDF-1.4 fake" {
		t.Errorf("body = %q", body)
	}
}

func TestClient_Get_SetsUserAgent(t *testing.T) {
	var receivedUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	c := New(5*time.Second, "commission-search/1.0")
	if _, err := c.Get(t.Context(), server.URL); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if receivedUA != "commission-search/1.0" {
		t.Errorf("User-Agent = %q, want %q", receivedUA, "commission-search/1.0")
	}
}

func TestClient_Get_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := New(5*time.Second, "")
	_, err := c.Get(t.Context(), server.URL)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}
	if fe.URL != server.URL {
		t.Errorf("URL = %q, want %q", fe.URL, server.URL)
	}
}

func TestClient_Get_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := New(20*time.Millisecond, "")
	_, err := c.Get(t.Context(), server.URL)

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError for timeout, got %v", err)
	}
}
