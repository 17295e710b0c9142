package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondErrorWritesJSONBody(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, 409, "username already taken", "create apprentice", errors.New("db unique violation"))

	if rec.Code != 409 {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "username already taken" {
		t.Errorf("error message = %q, want %q", body.Error, "username already taken")
	}
}

func TestRespondJSONNilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, 204, nil)

	if rec.Code != 204 {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","bogus":1}`))
	var dst struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(req, &dst); err == nil {
		t.Error("expected error for unknown field")
	}
}
