package handlers

import (
	"net/http"

	"github.com/copapymes/league-system/services"
)

type DivisionHandler struct {
	divisionService services.DivisionService
}

func NewDivisionHandler(ds services.DivisionService) *DivisionHandler {
	return &DivisionHandler{divisionService: ds}
}

// CreateHandler handles POST /divisions
func (h *DivisionHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateDivisionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	division, err := h.divisionService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusCreated, division, "division created")
}

// GetByIDHandler handles GET /divisions/{divisionID}
func (h *DivisionHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "divisionID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	division, err := h.divisionService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, division, "")
}

// ListHandler handles GET /divisions
func (h *DivisionHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	divisions, err := h.divisionService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, divisions, "")
}

// UpdateHandler handles PUT /divisions/{divisionID}
func (h *DivisionHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "divisionID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.UpdateDivisionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	division, err := h.divisionService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, division, "division updated")
}

// DeleteHandler handles DELETE /divisions/{divisionID}
func (h *DivisionHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "divisionID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.divisionService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, nil, "division deleted")
}
