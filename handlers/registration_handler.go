package handlers

import (
	"errors"
	"net/http"

	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(rs services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: rs}
}

// RegisterHandler handles POST /tournaments/{tournamentID}/registrations
func (h *RegistrationHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input struct {
		TeamID int `json:"team_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if input.TeamID <= 0 {
		badRequestResponse(w, errors.New("team_id is required"))
		return
	}

	registration, err := h.registrationService.Register(r.Context(), tournamentID, input.TeamID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusCreated, registration, "team registered")
}

// ListHandler handles GET /tournaments/{tournamentID}/registrations
func (h *RegistrationHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var statusFilter *models.RegistrationStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := models.RegistrationStatus(statusStr)
		statusFilter = &status
	}

	registrations, err := h.registrationService.ListByTournament(r.Context(), tournamentID, statusFilter)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, registrations, "")
}

// UpdateStatusHandler handles PATCH /registrations/{registrationID}
func (h *RegistrationHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "registrationID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input struct {
		Status models.RegistrationStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	registration, err := h.registrationService.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, registration, "registration updated")
}

// DeleteHandler handles DELETE /registrations/{registrationID}
func (h *RegistrationHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "registrationID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.registrationService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, nil, "registration withdrawn")
}
