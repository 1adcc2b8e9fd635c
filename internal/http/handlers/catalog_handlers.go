package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/internal/http/response"
)

// ListAccommodations serves the public catalog (active entries only).
func (h *Handlers) ListAccommodations(w http.ResponseWriter, r *http.Request) {
	accommodations, err := h.catalog.ListActive(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to retrieve accommodations")
		return
	}
	if accommodations == nil {
		accommodations = []domain.Accommodation{}
	}

	writeJSON(w, http.StatusOK, accommodations)
}

func (h *Handlers) GetAccommodation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid accommodation id")
		return
	}

	accommodation, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		response.InternalError(w, "Failed to retrieve accommodation")
		return
	}
	if accommodation == nil || !accommodation.Active {
		response.NotFound(w, "Accommodation not found")
		return
	}

	writeJSON(w, http.StatusOK, accommodation)
}

// SubmitContact handles the public contact form.
func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	message, err := h.contacts.Submit(r.Context(), &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": message.ID})
}
