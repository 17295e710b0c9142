// Package pictogram looks up ARASAAC pictograms for dictionary and
// communication boards.
package pictogram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Result is the outcome of a pictogram lookup. When FromFallback is
// set no image could be resolved and the caller should render its
// emoji or text stand-in instead.
type Result struct {
	Term         string `json:"term"`
	ImageURL     string `json:"image_url,omitempty"`
	FromFallback bool   `json:"from_fallback"`
}

type searchHit struct {
	ID int `json:"_id"`
}

// Client queries the ARASAAC pictogram API. Lookups degrade to a
// fallback result on any failure; the boards must keep working when
// the API is unreachable.
type Client struct {
	baseURL  string
	language string
	http     *http.Client
}

// NewClient creates a pictogram client. baseURL is the API root
// (https://api.arasaac.org/api); language is the search locale.
func NewClient(baseURL, language string) *Client {
	return &Client{
		baseURL:  baseURL,
		language: language,
		http:     &http.Client{Timeout: 5 * time.Second},
	}
}

// Lookup searches for term and returns the image URL of the result at
// index (clamped to the first result when out of range). Network
// errors, non-200 responses and empty result sets all return a
// fallback result, never an error.
func (c *Client) Lookup(ctx context.Context, term string, index int) *Result {
	fallback := &Result{Term: term, FromFallback: true}

	searchURL := fmt.Sprintf("%s/pictograms/%s/search/%s",
		c.baseURL, c.language, url.PathEscape(term))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return fallback
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("pictogram search failed for %q: %v", term, err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("pictogram search for %q returned status %d", term, resp.StatusCode)
		return fallback
	}

	var hits []searchHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		log.Printf("pictogram search for %q returned bad body: %v", term, err)
		return fallback
	}
	if len(hits) == 0 {
		return fallback
	}

	if index < 0 || index >= len(hits) {
		index = 0
	}

	return &Result{
		Term:     term,
		ImageURL: fmt.Sprintf("%s/pictograms/%d?download=false", c.baseURL, hits[index].ID),
	}
}
