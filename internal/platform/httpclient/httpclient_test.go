package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCheckHealth(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		if !healthy.Load() {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.CheckHealth(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}

	var out struct {
		Status string `json:"status"`
	}
	if err := c.GetJSON(context.Background(), "health", &out); err != nil || out.Status != "ok" {
		t.Fatalf("GetJSON: status=%q err=%v", out.Status, err)
	}

	healthy.Store(false)
	err = c.CheckHealth(context.Background())
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected HTTPError 503, got %v", err)
	}
}

func TestCheckHealth_RequiresStatusOK(t *testing.T) {
	cases := map[string]string{
		"degraded":   `{"status":"degraded"}`,
		"empty body": ``,
		"not json":   `mini-ok`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer ts.Close()

			c, err := New(ts.URL, time.Second)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if err := c.CheckHealth(context.Background()); err == nil {
				t.Fatalf("expected error for body %q", body)
			}
		})
	}
}

func TestCheckHealth_DegradedIsErrUnhealthy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.CheckHealth(context.Background()); !errors.Is(err, ErrUnhealthy) {
		t.Fatalf("expected ErrUnhealthy, got %v", err)
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	if _, err := New("", 0); err == nil {
		t.Fatalf("expected error for empty base url")
	}
	if _, err := New("not a url", 0); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}
