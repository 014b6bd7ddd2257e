package handlers

import (
	"errors"
	"net/http"

	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/repositories"
	"github.com/copapymes/league-system/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// CreateHandler handles POST /matches
func (h *MatchHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	match, err := h.matchService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusCreated, match, "match created")
}

// GetByIDHandler handles GET /matches/{matchID}
func (h *MatchHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, match, "")
}

// ListHandler handles GET /matches
func (h *MatchHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListMatchesFilter
	query := r.URL.Query()

	if tournamentIDStr := query.Get("tournament_id"); tournamentIDStr != "" {
		id, err := parsePositiveInt(tournamentIDStr)
		if err != nil {
			badRequestResponse(w, errors.New("invalid tournament_id query parameter"))
			return
		}
		filter.TournamentID = &id
	}
	if statusStr := query.Get("status"); statusStr != "" {
		status := models.MatchStatus(statusStr)
		if !status.Valid() {
			badRequestResponse(w, errors.New("invalid status query parameter"))
			return
		}
		filter.Status = &status
	}

	matches, err := h.matchService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, matches, "")
}

// UpdateHandler handles PATCH /matches/{matchID}
func (h *MatchHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	match, err := h.matchService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, match, "match updated")
}

// DeleteHandler handles DELETE /matches/{matchID}
func (h *MatchHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.matchService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, nil, "match deleted")
}
