package handlers

import (
	"net/http"

	"github.com/copapymes/league-system/services"
)

type PrizeHandler struct {
	prizeService services.PrizeService
}

func NewPrizeHandler(ps services.PrizeService) *PrizeHandler {
	return &PrizeHandler{prizeService: ps}
}

// CreateHandler handles POST /prizes
func (h *PrizeHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePrizeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	prize, err := h.prizeService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusCreated, prize, "prize created")
}

// GetByIDHandler handles GET /prizes/{prizeID}
func (h *PrizeHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "prizeID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	prize, err := h.prizeService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, prize, "")
}

// ListHandler handles GET /prizes
func (h *PrizeHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	prizes, err := h.prizeService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, prizes, "")
}

// ListByTournamentHandler handles GET /tournaments/{tournamentID}/prizes
func (h *PrizeHandler) ListByTournamentHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	prizes, err := h.prizeService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, prizes, "")
}

// UpdateHandler handles PUT /prizes/{prizeID}
func (h *PrizeHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "prizeID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.UpdatePrizeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	prize, err := h.prizeService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, prize, "prize updated")
}

// DeleteHandler handles DELETE /prizes/{prizeID}
func (h *PrizeHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "prizeID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.prizeService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, nil, "prize deleted")
}
