package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/internal/http/response"
)

// Accommodations

func (h *Handlers) AdminListAccommodations(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	accommodations, err := h.catalog.ListAll(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to retrieve accommodations")
		return
	}
	if accommodations == nil {
		accommodations = []domain.Accommodation{}
	}
	writeJSON(w, http.StatusOK, accommodations)
}

func (h *Handlers) AdminCreateAccommodation(w http.ResponseWriter, r *http.Request) {
	var req domain.AccommodationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	created, err := h.catalog.Create(r.Context(), &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) AdminUpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid accommodation id")
		return
	}

	var patch domain.AccommodationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	updated, err := h.catalog.Update(r.Context(), id, patch)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if updated == nil {
		response.NotFound(w, "Accommodation not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) AdminDeleteAccommodation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid accommodation id")
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		response.NotFound(w, "Accommodation not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reservations

func (h *Handlers) AdminListReservations(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var filter domain.ReservationFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := domain.ParseReservationStatus(raw)
		if !ok {
			response.BadRequest(w, "Invalid status parameter")
			return
		}
		filter.Status = &status
	}
	filter.AccommodationID = parseOptionalID(r, "accommodation_id")
	filter.UserID = parseOptionalID(r, "user_id")

	reservations, err := h.reservations.List(r.Context(), filter, limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to retrieve reservations")
		return
	}
	if reservations == nil {
		reservations = []domain.Reservation{}
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *Handlers) AdminGetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid reservation id")
		return
	}

	reservation, err := h.reservations.Get(r.Context(), id)
	if err != nil {
		response.InternalError(w, "Failed to retrieve reservation")
		return
	}
	if reservation == nil {
		response.NotFound(w, "Reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *Handlers) AdminUpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid reservation id")
		return
	}

	var patch domain.ReservationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	if patch.Status != nil {
		if _, ok := domain.ParseReservationStatus(string(*patch.Status)); !ok {
			response.BadRequest(w, "Invalid status value")
			return
		}
	}

	updated, err := h.reservations.Update(r.Context(), id, patch)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) AdminCancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid reservation id")
		return
	}

	success, err := h.reservations.Cancel(r.Context(), id)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if !success {
		response.Conflict(w, "Reservation already canceled")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AdminCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid reservation id")
		return
	}

	payment, clientSecret, err := h.payments.CreateIntentForReservation(r.Context(), id)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"payment":       payment,
		"client_secret": clientSecret,
	})
}

// Documents

func (h *Handlers) AdminListDocuments(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var filter domain.DocumentFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := domain.ParseDocumentStatus(raw)
		if !ok {
			response.BadRequest(w, "Invalid status parameter")
			return
		}
		filter.Status = &status
	}
	filter.UserID = parseOptionalID(r, "user_id")

	documents, err := h.documents.List(r.Context(), filter, limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to retrieve documents")
		return
	}
	if documents == nil {
		documents = []domain.Document{}
	}
	writeJSON(w, http.StatusOK, documents)
}

func (h *Handlers) AdminGetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid document id")
		return
	}

	document, err := h.documents.Get(r.Context(), id)
	if err != nil {
		response.InternalError(w, "Failed to retrieve document")
		return
	}
	if document == nil {
		response.NotFound(w, "Document not found")
		return
	}
	writeJSON(w, http.StatusOK, document)
}

func (h *Handlers) AdminReviewDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid document id")
		return
	}

	var req domain.DocumentReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	reviewed, err := h.documents.Review(r.Context(), id, &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reviewed)
}

// Payments

func (h *Handlers) AdminListPayments(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var filter domain.PaymentFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := domain.ParsePaymentStatus(raw)
		if !ok {
			response.BadRequest(w, "Invalid status parameter")
			return
		}
		filter.Status = &status
	}
	filter.ReservationID = parseOptionalID(r, "reservation_id")

	payments, err := h.payments.List(r.Context(), filter, limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to retrieve payments")
		return
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *Handlers) AdminGetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid payment id")
		return
	}

	payment, err := h.payments.Get(r.Context(), id)
	if err != nil {
		response.InternalError(w, "Failed to retrieve payment")
		return
	}
	if payment == nil {
		response.NotFound(w, "Payment not found")
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *Handlers) AdminUpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid payment id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	status, valid := domain.ParsePaymentStatus(req.Status)
	if !valid {
		response.BadRequest(w, "Invalid status value")
		return
	}

	updated, err := h.payments.UpdateStatus(r.Context(), id, status)
	if err != nil {
		response.InternalError(w, "Failed to update payment")
		return
	}
	if updated == nil {
		response.NotFound(w, "Payment not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Users

func (h *Handlers) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	users, err := h.identity.ListUsers(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to retrieve users")
		return
	}

	infos := make([]*domain.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, users[i].ToUserInfo())
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *Handlers) AdminGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid user id")
		return
	}

	user, err := h.identity.GetUser(r.Context(), id)
	if err != nil {
		response.InternalError(w, "Failed to retrieve user")
		return
	}
	if user == nil {
		response.NotFound(w, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user.ToUserInfo())
}

func (h *Handlers) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid user id")
		return
	}

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	updated, err := h.identity.UpdateUser(r.Context(), id, &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if updated == nil {
		response.NotFound(w, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, updated.ToUserInfo())
}

func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid user id")
		return
	}

	if err := h.identity.DeleteUser(r.Context(), id); err != nil {
		response.NotFound(w, "User not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Contact messages

func (h *Handlers) AdminListContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	messages, err := h.contacts.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to retrieve contact messages")
		return
	}
	if messages == nil {
		messages = []domain.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}
