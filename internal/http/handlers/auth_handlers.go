package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/internal/http/response"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	// Credential failures stay opaque on purpose
	result, err := h.identity.Login(r.Context(), &req)
	if err != nil {
		response.Unauthorized(w, "Invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// SetPassword consumes the emailed setup token and stores the chosen password.
func (h *Handlers) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.SetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	user, err := h.identity.SetPassword(r.Context(), &req)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error(), response.CodeInvalidToken)
		return
	}

	writeJSON(w, http.StatusOK, user.ToUserInfo())
}

// Session echoes the authenticated user for dashboard bootstrapping.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Session required")
		return
	}

	user, err := h.identity.GetUser(r.Context(), claims.Sub)
	if err != nil || user == nil {
		response.Unauthorized(w, "Session user no longer exists")
		return
	}

	writeJSON(w, http.StatusOK, user.ToUserInfo())
}
