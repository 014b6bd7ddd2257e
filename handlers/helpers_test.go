package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/copapymes/league-system/services"
)

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	for _, tt := range []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Copa"}`, ""},
		{"empty body", ``, "body must not be empty"},
		{"malformed", `{"name":`, "badly-formed JSON"},
		{"unknown field", `{"names":"Copa"}`, "unknown key"},
		{"wrong type", `{"name":7}`, "incorrect JSON type for field"},
		{"trailing value", `{"name":"Copa"}{"name":"Liga"}`, "single JSON value"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst payload
			err := readJSON(rec, req, &dst)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("readJSON returned error: %v", err)
				}
				if dst.Name != "Copa" {
					t.Fatalf("decoded name = %q", dst.Name)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	successResponse(rec, http.StatusCreated, map[string]int{"id": 7}, "created")

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("got Content-Type %q, want application/json", ct)
	}

	var env struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
		Message string         `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if !env.Success || env.Data["id"] != 7 || env.Message != "created" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestErrorEnvelopeHasNullData(t *testing.T) {
	rec := httptest.NewRecorder()
	errorResponse(rec, http.StatusNotFound, "tournament not found")

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if string(raw["success"]) != "false" {
		t.Fatalf("success = %s, want false", raw["success"])
	}
	// Failures always carry an explicit null data field.
	if string(raw["data"]) != "null" {
		t.Fatalf("data = %s, want null", raw["data"])
	}
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	for _, tt := range []struct {
		err      error
		wantCode int
	}{
		{services.ErrTournamentNotFound, http.StatusNotFound},
		{services.ErrMatchNotFound, http.StatusNotFound},
		{services.ErrRegistrationConflict, http.StatusConflict},
		{services.ErrTeamNameConflict, http.StatusConflict},
		{services.ErrTournamentInvalidStatusTransition, http.StatusBadRequest},
		{services.ErrRegistrationClosed, http.StatusBadRequest},
		{services.ErrMatchSameTeam, http.StatusBadRequest},
		{services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{services.ErrUserInactive, http.StatusForbidden},
		{services.ErrMediaStorageDisabled, http.StatusServiceUnavailable},
		{errors.New("database exploded"), http.StatusInternalServerError},
	} {
		rec := httptest.NewRecorder()
		mapServiceErrorToHTTP(rec, tt.err)
		if rec.Code != tt.wantCode {
			t.Errorf("%v: got status %d, want %d", tt.err, rec.Code, tt.wantCode)
		}
	}

	// Internal errors never leak their detail to the client.
	rec := httptest.NewRecorder()
	mapServiceErrorToHTTP(rec, errors.New("pq: connection refused"))
	if strings.Contains(rec.Body.String(), "pq:") {
		t.Fatal("internal error detail leaked in response body")
	}
}

func TestParsePositiveInt(t *testing.T) {
	if n, err := parsePositiveInt("42"); err != nil || n != 42 {
		t.Fatalf("got (%d, %v), want (42, nil)", n, err)
	}
	for _, s := range []string{"", "0", "-3", "abc", "1.5"} {
		if _, err := parsePositiveInt(s); err == nil {
			t.Errorf("%q: expected an error", s)
		}
	}
}
