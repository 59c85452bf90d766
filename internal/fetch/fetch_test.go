package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok.css", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("body{}"))
	})
	mux.HandleFunc("/font.woff2", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{0x77, 0x4f, 0x46, 0x32, 0xff, 0x00})
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	f := NewHTTPFetcher(srv.Client())

	t.Run("returns body on success", func(t *testing.T) {
		t.Parallel()

		got, err := f.Fetch(context.Background(), srv.URL+"/ok.css")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != "body{}" {
			t.Errorf("Fetch() = %q, want %q", got, "body{}")
		}
	})

	t.Run("returns binary bytes untouched", func(t *testing.T) {
		t.Parallel()

		got, err := f.Fetch(context.Background(), srv.URL+"/font.woff2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 6 || got[4] != 0xff {
			t.Errorf("Fetch() = %v, want raw font bytes", got)
		}
	})

	t.Run("non-2xx status is a FetchError", func(t *testing.T) {
		t.Parallel()

		_, err := f.Fetch(context.Background(), srv.URL+"/missing")
		if !errors.Is(err, ErrFetch) {
			t.Fatalf("error = %v, want ErrFetch", err)
		}
		if !errors.Is(err, ErrUnexpectedStatus) {
			t.Errorf("error = %v, want ErrUnexpectedStatus in chain", err)
		}
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("error type = %T, want *FetchError", err)
		}
		if fe.URL != srv.URL+"/missing" {
			t.Errorf("FetchError.URL = %q, want %q", fe.URL, srv.URL+"/missing")
		}
	})

	t.Run("canceled context is a FetchError", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.Fetch(ctx, srv.URL+"/ok.css")
		if !errors.Is(err, ErrFetch) {
			t.Fatalf("error = %v, want ErrFetch", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled in chain", err)
		}
	})

	t.Run("malformed URL is a FetchError", func(t *testing.T) {
		t.Parallel()

		_, err := f.Fetch(context.Background(), "://bad")
		if !errors.Is(err, ErrFetch) {
			t.Errorf("error = %v, want ErrFetch", err)
		}
	})
}

func TestNewHTTPFetcher_NilClient(t *testing.T) {
	t.Parallel()

	f := NewHTTPFetcher(nil)
	if f.client != http.DefaultClient {
		t.Error("nil client should default to http.DefaultClient")
	}
}

func TestFetchText(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	f := NewHTTPFetcher(srv.Client())

	t.Run("valid UTF-8", func(t *testing.T) {
		t.Parallel()

		got, err := FetchText(context.Background(), f, srv.URL+"/ok.css")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "body{}" {
			t.Errorf("FetchText() = %q, want %q", got, "body{}")
		}
	})

	t.Run("invalid UTF-8 is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := FetchText(context.Background(), f, srv.URL+"/font.woff2")
		if !errors.Is(err, ErrInvalidUTF8) {
			t.Errorf("error = %v, want ErrInvalidUTF8", err)
		}
		if !errors.Is(err, ErrFetch) {
			t.Errorf("error = %v, want ErrFetch", err)
		}
	})
}
