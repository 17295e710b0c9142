package pictogram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookupReturnsImageURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pictograms/pt/search/bola" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `[{"_id": 101}, {"_id": 202}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pt")
	result := c.Lookup(context.Background(), "bola", 0)

	if result.FromFallback {
		t.Fatal("expected image result, got fallback")
	}
	want := srv.URL + "/pictograms/101?download=false"
	if result.ImageURL != want {
		t.Errorf("image URL = %q, want %q", result.ImageURL, want)
	}
}

func TestLookupHonorsIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"_id": 101}, {"_id": 202}, {"_id": 303}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pt")

	result := c.Lookup(context.Background(), "estrela", 1)
	if want := srv.URL + "/pictograms/202?download=false"; result.ImageURL != want {
		t.Errorf("image URL = %q, want %q", result.ImageURL, want)
	}

	// out-of-range index falls back to the first hit
	result = c.Lookup(context.Background(), "estrela", 9)
	if want := srv.URL + "/pictograms/101?download=false"; result.ImageURL != want {
		t.Errorf("clamped image URL = %q, want %q", result.ImageURL, want)
	}
}

func TestLookupFallsBackOnEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pt")
	result := c.Lookup(context.Background(), "xyzzy", 0)

	if !result.FromFallback {
		t.Error("expected fallback for empty result set")
	}
	if result.ImageURL != "" {
		t.Errorf("fallback should carry no image URL, got %q", result.ImageURL)
	}
}

func TestLookupFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pt")
	if result := c.Lookup(context.Background(), "bola", 0); !result.FromFallback {
		t.Error("expected fallback on 500 response")
	}
}

func TestLookupFallsBackOnUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately unreachable

	c := NewClient(srv.URL, "pt")
	if result := c.Lookup(context.Background(), "bola", 0); !result.FromFallback {
		t.Error("expected fallback when host is unreachable")
	}
}

func TestLookupFallsBackOnBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not": "a list"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pt")
	if result := c.Lookup(context.Background(), "bola", 0); !result.FromFallback {
		t.Error("expected fallback on malformed body")
	}
}
