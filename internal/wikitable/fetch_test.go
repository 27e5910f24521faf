package wikitable

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch_SendsHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	body, err := NewFetcher(DefaultTimeout, "").Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != "<html></html>" {
		t.Fatalf("unexpected body: %q", body)
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("unexpected user agent: %q", gotUA)
	}
	if gotAccept != "text/html" {
		t.Fatalf("unexpected accept: %q", gotAccept)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher(0, "custom/1.0").Fetch(context.Background(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusNotFound {
		t.Fatalf("unexpected code: %d", se.Code)
	}
}

func TestFetch_MissingURL(t *testing.T) {
	_, err := NewFetcher(0, "").Fetch(context.Background(), "   ")
	if !errors.Is(err, ErrMissingURL) {
		t.Fatalf("expected ErrMissingURL, got %v", err)
	}
}
