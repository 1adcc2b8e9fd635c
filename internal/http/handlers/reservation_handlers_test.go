package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/internal/service"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/auth"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/config"
)

type fakeReservationService struct {
	submitResult *service.SubmissionResult
	submitErr    error
	listForUser  []domain.Reservation
}

func (f *fakeReservationService) ValidateStep(draft *domain.Draft, step int) error {
	return draft.ValidateStep(step)
}

func (f *fakeReservationService) Submit(ctx context.Context, draft *domain.Draft) (*service.SubmissionResult, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	return f.submitResult, nil
}

func (f *fakeReservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationService) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, error) {
	return f.listForUser, nil
}

func (f *fakeReservationService) List(ctx context.Context, filter domain.ReservationFilter, limit, offset int) ([]domain.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationService) Update(ctx context.Context, id int64, patch domain.ReservationPatch) (*domain.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationService) Cancel(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

func testHandlers(reservations service.ReservationService) (*Handlers, *config.Config) {
	cfg := config.Load()
	cfg.Auth.JWTSecret = "test-secret"
	return New(reservations, nil, nil, nil, nil, nil, nil, nil, cfg), cfg
}

func fullDraft() domain.Draft {
	checkIn, _ := time.Parse("2006-01-02", "2025-06-01")
	checkOut, _ := time.Parse("2006-01-02", "2025-06-15")
	return domain.Draft{
		FirstName:          "Ana",
		LastName:           "Souza",
		Email:              "ana.souza@example.com",
		Phone:              "+5511988887777",
		Nationality:        "Brazilian",
		PassportPath:       "documents/1_passport.pdf",
		PassportFileName:   "passport.pdf",
		EnrollmentPath:     "documents/2_letter.pdf",
		EnrollmentFileName: "letter.pdf",
		EmergencyName:      "Marcos Souza",
		EmergencyRelation:  "father",
		EmergencyPhone:     "+5511977776666",
		EmergencyEmail:     "marcos.souza@example.com",
		AccommodationID:    1,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestValidateDraftStepOK(t *testing.T) {
	h, _ := testHandlers(&fakeReservationService{})

	rec := postJSON(t, h.ValidateDraft, "/reservations/validate", validateDraftReq{Step: 1, Draft: fullDraft()})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, float64(1), body["step"])
}

func TestValidateDraftStepFailure(t *testing.T) {
	h, _ := testHandlers(&fakeReservationService{})

	draft := fullDraft()
	draft.Phone = ""
	rec := postJSON(t, h.ValidateDraft, "/reservations/validate", validateDraftReq{Step: 1, Draft: draft})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "phone", body["field"])
	assert.Equal(t, float64(1), body["step"])
}

func TestValidateDraftStepIsolation(t *testing.T) {
	h, _ := testHandlers(&fakeReservationService{})

	// A draft missing step-4 data still passes step-1 validation
	draft := fullDraft()
	draft.AccommodationID = 0
	rec := postJSON(t, h.ValidateDraft, "/reservations/validate", validateDraftReq{Step: 1, Draft: draft})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.ValidateDraft, "/reservations/validate", validateDraftReq{Step: 4, Draft: draft})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestValidateDraftStepBounds(t *testing.T) {
	h, _ := testHandlers(&fakeReservationService{})

	rec := postJSON(t, h.ValidateDraft, "/reservations/validate", validateDraftReq{Step: 0, Draft: fullDraft()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.ValidateDraft, "/reservations/validate", validateDraftReq{Step: 5, Draft: fullDraft()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitReservation(t *testing.T) {
	reservationID := int64(10)
	svc := &fakeReservationService{
		submitResult: &service.SubmissionResult{
			Reservation: &domain.Reservation{ID: reservationID, Weeks: 2, TotalPriceCents: 40000, Status: domain.ReservationPending},
			Documents: []domain.Document{
				{ID: 1, Type: domain.DocPassport, Status: domain.DocumentAwaiting, ReservationID: &reservationID},
				{ID: 2, Type: domain.DocEnrollmentLetter, Status: domain.DocumentAwaiting, ReservationID: &reservationID},
			},
			User:        &domain.UserInfo{ID: 42, Email: "ana.souza@example.com"},
			NewIdentity: true,
		},
	}
	h, _ := testHandlers(svc)

	rec := postJSON(t, h.SubmitReservation, "/reservations", fullDraft())
	require.Equal(t, http.StatusCreated, rec.Code)

	var result service.SubmissionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, reservationID, result.Reservation.ID)
	assert.True(t, result.NewIdentity)
	assert.Len(t, result.Documents, 2)
}

func TestSubmitReservationValidationError(t *testing.T) {
	h, _ := testHandlers(&fakeReservationService{})

	draft := fullDraft()
	draft.PassportPath = ""
	rec := postJSON(t, h.SubmitReservation, "/reservations", draft)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "passport", body["field"])
	assert.Equal(t, float64(2), body["step"])
}

func TestListMyReservationsRequiresJWT(t *testing.T) {
	h, cfg := testHandlers(&fakeReservationService{listForUser: []domain.Reservation{{ID: 1, UserID: 42}}})

	protected := h.RequireJWT("client")(http.HandlerFunc(h.ListMyReservations))

	req := httptest.NewRequest(http.MethodGet, "/client/reservations", nil)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := auth.NewAccessToken(42, "ana.souza@example.com", "client", "client.reservations:read", cfg.Auth.JWTSecret, time.Minute)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/client/reservations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var reservations []domain.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reservations))
	require.Len(t, reservations, 1)
	assert.Equal(t, int64(42), reservations[0].UserID)
}

func TestRequireJWTRejectsWrongRole(t *testing.T) {
	h, cfg := testHandlers(&fakeReservationService{})

	protected := h.RequireJWT("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	token, err := auth.NewAccessToken(42, "ana.souza@example.com", "client", "", cfg.Auth.JWTSecret, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/reservations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
