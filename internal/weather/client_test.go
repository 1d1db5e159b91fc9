package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestCurrent_Success tests fetching and rounding the temperature
func TestCurrent_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/current.json" {
			t.Errorf("path = %q, want /current.json", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %q, want 'test-key'", r.URL.Query().Get("key"))
		}
		if r.URL.Query().Get("q") != "New York" {
			t.Errorf("q = %q, want 'New York'", r.URL.Query().Get("q"))
		}
		fmt.Fprint(w, `{"current":{"temp_f":71.6}}`)
	}))
	defer upstream.Close()

	c := NewClient("test-key", "New York", WithBaseURL(upstream.URL))

	temp, err := c.Current(context.Background())
	if err != nil {
		t.Fatalf("Current() failed: %v", err)
	}
	if temp != 72 {
		t.Errorf("temp = %d, want 72 (rounded from 71.6)", temp)
	}
}

// TestCurrent_UpstreamErrorPayload tests that the upstream error message is
// not echoed back
func TestCurrent_UpstreamErrorPayload(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"code":2006,"message":"API key test-key is invalid"}}`)
	}))
	defer upstream.Close()

	c := NewClient("test-key", "New York", WithBaseURL(upstream.URL))

	_, err := c.Current(context.Background())
	if err == nil {
		t.Fatal("Current() succeeded, want error")
	}
	if strings.Contains(err.Error(), "test-key") {
		t.Errorf("error leaks the api key: %v", err)
	}
	if strings.Contains(err.Error(), "invalid") {
		t.Errorf("error leaks the upstream message: %v", err)
	}
}

// TestCurrent_Unreachable tests that connection errors do not carry the
// request URL (which holds the key)
func TestCurrent_Unreachable(t *testing.T) {
	c := NewClient("secret-key", "New York",
		WithBaseURL("http://127.0.0.1:1"))

	_, err := c.Current(context.Background())
	if err == nil {
		t.Fatal("Current() succeeded against unreachable upstream")
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Errorf("error leaks the api key: %v", err)
	}
}

// TestCurrent_NoKey tests the unconfigured client
func TestCurrent_NoKey(t *testing.T) {
	c := NewClient("", "New York")

	if _, err := c.Current(context.Background()); err == nil {
		t.Fatal("Current() without key succeeded, want error")
	}
}
