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

func TestHeaderInjection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test") != "1" {
			t.Errorf("expected header injected")
		}
		if r.Header.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("expected default user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	client := New(Config{
		Timeout: 1 * time.Second,
		Headers: http.Header{"X-Test": []string{"1"}},
	})
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()
}

func TestNoRetryOn5xx(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(503)
	}))
	defer srv.Close()

	p := NewProber(ProberConfig{Client: Config{Timeout: time.Second}})
	res := p.Head(context.Background(), srv.URL)
	if res.Status != 503 || !res.Failed() {
		t.Fatalf("expected failed 503, got %d", res.Status)
	}
	if res.Failure() != "HTTP 503" {
		t.Fatalf("unexpected failure text %q", res.Failure())
	}
	if n := atomic.LoadInt32(&attempts); n != 1 {
		t.Fatalf("expected exactly 1 attempt, got %d", n)
	}
}

func TestRedirectsNotFollowedByClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer srv.Close()

	resp, err := New(Config{Timeout: time.Second}).Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 to be returned, got %d", resp.StatusCode)
	}
}

func TestProberFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/a", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/b", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/b", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := NewProber(ProberConfig{Client: Config{Timeout: time.Second}}).Get(context.Background(), srv.URL+"/a")
	if res.Failed() {
		t.Fatalf("unexpected failure: %s", res.Failure())
	}
	if res.Hops != 2 || res.FinalURL != srv.URL+"/b" {
		t.Fatalf("unexpected chain: hops=%d final=%s", res.Hops, res.FinalURL)
	}
	if res.Size != 5 || string(res.Body) != "hello" {
		t.Fatalf("unexpected body %q size %d", res.Body, res.Size)
	}
}

func TestProberTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	p := NewProber(ProberConfig{Client: Config{Timeout: 100 * time.Millisecond}})
	res := p.Head(context.Background(), srv.URL)
	if !errors.Is(res.Err, ErrTimeout) {
		t.Fatalf("expected timeout, got %v", res.Err)
	}
	if !res.Failed() {
		t.Fatalf("timeout must count as failure")
	}
}

func TestProberRejectsBadURL(t *testing.T) {
	p := NewProber(ProberConfig{})
	for _, u := range []string{"", "mailto:a@b.c", "javascript:void(0)", "/relative"} {
		res := p.Get(context.Background(), u)
		if !errors.Is(res.Err, ErrBadURL) {
			t.Fatalf("%q: expected ErrBadURL, got %v", u, res.Err)
		}
	}
}

func TestProberRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	p := NewProber(ProberConfig{Client: Config{Timeout: time.Second}, RateLimit: 20})
	start := time.Now()
	for i := 0; i < 3; i++ {
		if res := p.Head(context.Background(), srv.URL); res.Failed() {
			t.Fatalf("unexpected failure: %s", res.Failure())
		}
	}
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Fatalf("expected pacing, finished in %s", elapsed)
	}
}
