package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/internal/http/response"
)

type validateDraftReq struct {
	Step  int          `json:"step"`
	Draft domain.Draft `json:"draft"`
}

// ValidateDraft checks a single wizard step so the front end can gate the
// "next" button server-side. "Previous" never validates, so there is no
// endpoint for it.
func (h *Handlers) ValidateDraft(w http.ResponseWriter, r *http.Request) {
	var req validateDraftReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if req.Step < domain.StepPersonal || req.Step > domain.StepBooking {
		response.BadRequest(w, "step must be between 1 and 4")
		return
	}

	if err := h.reservations.ValidateStep(&req.Draft, req.Step); err != nil {
		writeDraftError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "step": req.Step})
}

// SubmitReservation accepts the whole draft and runs the submission
// coordinator. Idempotency-Key replay is handled by middleware before the
// request reaches here.
func (h *Handlers) SubmitReservation(w http.ResponseWriter, r *http.Request) {
	var draft domain.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	result, err := h.reservations.Submit(r.Context(), &draft)
	if err != nil {
		writeDraftError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// writeDraftError keeps step/field detail for validation failures and
// degrades to a plain 400 otherwise.
func writeDraftError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		response.WriteValidationError(w, vErr.Message, vErr.Field, vErr.Step)
		return
	}
	response.BadRequest(w, err.Error())
}

// ListMyReservations serves the client dashboard.
func (h *Handlers) ListMyReservations(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Session required")
		return
	}

	limit, offset := parsePagination(r)
	reservations, err := h.reservations.ListForUser(r.Context(), claims.Sub, limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to retrieve reservations")
		return
	}
	if reservations == nil {
		reservations = []domain.Reservation{}
	}

	writeJSON(w, http.StatusOK, reservations)
}

// ListMyDocuments serves the client dashboard document list.
func (h *Handlers) ListMyDocuments(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Session required")
		return
	}

	limit, offset := parsePagination(r)
	documents, err := h.documents.ListForUser(r.Context(), claims.Sub, limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to retrieve documents")
		return
	}
	if documents == nil {
		documents = []domain.Document{}
	}

	writeJSON(w, http.StatusOK, documents)
}

func parseOptionalID(r *http.Request, param string) *int64 {
	if raw := r.URL.Query().Get(param); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			return &id
		}
	}
	return nil
}
