package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/copapymes/league-system/middleware"
	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/services"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
}

func NewAuthHandler(as services.AuthService, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{authService: as, jwtSecret: jwtSecret}
}

// LoginHandler handles POST /auth/login
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := readJSON(w, r, &creds); err != nil {
		badRequestResponse(w, err)
		return
	}

	user, err := h.authService.Login(r.Context(), creds)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.jwtSecret)
	if err != nil {
		serverErrorResponse(w, fmt.Errorf("failed to sign token: %w", err))
		return
	}

	payload := map[string]interface{}{
		"token": tokenString,
		"user":  user,
	}
	successResponse(w, http.StatusOK, payload, "login successful")
}

// ProfileHandler handles GET /auth/profile
func (h *AuthHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	user, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, user, "")
}

// ChangePasswordHandler handles POST /auth/change-password
func (h *AuthHandler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	successResponse(w, http.StatusOK, nil, "password changed")
}
