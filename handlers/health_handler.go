package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Handler handles GET /health
func (h *HealthHandler) Handler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		errorResponse(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	successResponse(w, http.StatusOK, map[string]string{"status": "ok"}, "")
}
