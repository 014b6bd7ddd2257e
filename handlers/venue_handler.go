package handlers

import (
	"net/http"

	"github.com/copapymes/league-system/services"
)

type VenueHandler struct {
	venueService services.VenueService
}

func NewVenueHandler(vs services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: vs}
}

// CreateHandler handles POST /venues
func (h *VenueHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateVenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	venue, err := h.venueService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusCreated, venue, "venue created")
}

// GetByIDHandler handles GET /venues/{venueID}
func (h *VenueHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	venue, err := h.venueService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, venue, "")
}

// ListHandler handles GET /venues
func (h *VenueHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, venues, "")
}

// UpdateHandler handles PUT /venues/{venueID}
func (h *VenueHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.UpdateVenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	venue, err := h.venueService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, venue, "venue updated")
}

// DeleteHandler handles DELETE /venues/{venueID}
func (h *VenueHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.venueService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, nil, "venue deleted")
}

// UploadPhotoHandler handles POST /venues/{venueID}/photo (multipart form,
// field "photo").
func (h *VenueHandler) UploadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "venueID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, err)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	venue, err := h.venueService.UploadPhoto(r.Context(), id, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, venue, "photo uploaded")
}
