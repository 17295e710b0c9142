package handlers

import (
	"net/http"
	"strconv"

	"buba/internal/pictogram"
)

// PictogramHandler proxies pictogram lookups for the dictionary and
// communication boards.
type PictogramHandler struct {
	client *pictogram.Client
}

// NewPictogramHandler creates a new pictogram handler
func NewPictogramHandler(client *pictogram.Client) *PictogramHandler {
	return &PictogramHandler{client: client}
}

// Search handles GET /api/pictograms?term=&index=. Lookup failures
// come back as fallback results, never errors; the boards always
// render something.
func (h *PictogramHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		respondError(w, http.StatusBadRequest, "Missing term", "", nil)
		return
	}

	index := 0
	if raw := r.URL.Query().Get("index"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid index", "", nil)
			return
		}
		index = parsed
	}

	respondJSON(w, http.StatusOK, h.client.Lookup(r.Context(), term, index))
}
