package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCanceled  ReservationStatus = "canceled"
)

func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case ReservationPending, ReservationConfirmed, ReservationCompleted, ReservationCanceled:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

type Reservation struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	AccommodationID int64             `json:"accommodation_id"`
	Status          ReservationStatus `json:"status"`

	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	Weeks           int       `json:"weeks"`
	TotalPriceCents int64     `json:"total_price_cents"`

	HasDietaryRestriction bool   `json:"has_dietary_restriction"`
	DietaryDetails        string `json:"dietary_details,omitempty"`
	HasHealthRestriction  bool   `json:"has_health_restriction"`
	HealthDetails         string `json:"health_details,omitempty"`

	EmergencyName     string `json:"emergency_name"`
	EmergencyRelation string `json:"emergency_relation"`
	EmergencyPhone    string `json:"emergency_phone"`
	EmergencyEmail    string `json:"emergency_email"`

	WantsExtraNight bool   `json:"wants_extra_night"`
	ExtraNightKind  string `json:"extra_night_kind,omitempty"`
	ExtraNightQty   int    `json:"extra_night_qty,omitempty"`
	ExtraNightDates string `json:"extra_night_dates,omitempty"`

	FormSubmitted bool      `json:"form_submitted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReservationPatch carries the admin-editable fields.
type ReservationPatch struct {
	Status   *ReservationStatus `json:"status,omitempty"`
	CheckIn  *time.Time         `json:"check_in,omitempty"`
	CheckOut *time.Time         `json:"check_out,omitempty"`
}

// ReservationFilter narrows admin list queries.
type ReservationFilter struct {
	Status          *ReservationStatus
	AccommodationID *int64
	UserID          *int64
}

func (r *Reservation) CanCancel() bool {
	return r.Status != ReservationCanceled && r.Status != ReservationCompleted
}
