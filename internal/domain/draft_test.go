package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeeks(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"one day rounds up to a week", "2025-06-01", "2025-06-02", 1},
		{"six days is one week", "2025-06-01", "2025-06-07", 1},
		{"exactly seven days is one week", "2025-06-01", "2025-06-08", 1},
		{"eight days is two weeks", "2025-06-01", "2025-06-09", 2},
		{"two full weeks", "2025-06-01", "2025-06-15", 2},
		{"fifteen days is three weeks", "2025-06-01", "2025-06-16", 3},
		{"month-long stay", "2025-06-01", "2025-06-29", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Weeks(date(tt.checkIn), date(tt.checkOut))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalPriceCents(t *testing.T) {
	// 200 EUR/week over two weeks
	assert.Equal(t, int64(40000), TotalPriceCents(20000, 2))
	assert.Equal(t, int64(0), TotalPriceCents(20000, 0))
	assert.Equal(t, int64(20000), TotalPriceCents(20000, 1))
}

func validDraft() *Draft {
	return &Draft{
		FirstName:          "Ana",
		LastName:           "Souza",
		Email:              "ana.souza@example.com",
		Phone:              "+55 11 98888-7777",
		Nationality:        "Brazilian",
		PassportPath:       "documents/1717171717_passport.pdf",
		PassportFileName:   "passport.pdf",
		EnrollmentPath:     "documents/1717171718_letter.pdf",
		EnrollmentFileName: "letter.pdf",
		EmergencyName:      "Marcos Souza",
		EmergencyRelation:  "father",
		EmergencyPhone:     "+55 11 97777-6666",
		EmergencyEmail:     "marcos.souza@example.com",
		AccommodationID:    1,
		CheckIn:            date("2025-06-01"),
		CheckOut:           date("2025-06-15"),
	}
}

func TestDraftValidate(t *testing.T) {
	require.NoError(t, validDraft().Validate())
}

func TestValidateStepPersonal(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Draft)
		wantField string
	}{
		{"missing first name", func(d *Draft) { d.FirstName = "" }, "first_name"},
		{"missing last name", func(d *Draft) { d.LastName = "" }, "last_name"},
		{"missing email", func(d *Draft) { d.Email = "" }, "email"},
		{"missing phone", func(d *Draft) { d.Phone = "" }, "phone"},
		{"missing nationality", func(d *Draft) { d.Nationality = "" }, "nationality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(d)

			err := d.ValidateStep(StepPersonal)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, StepPersonal, verr.Step)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateStepDocuments(t *testing.T) {
	d := validDraft()
	d.PassportPath = ""
	err := d.ValidateStep(StepDocuments)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "passport", verr.Field)

	d = validDraft()
	d.EnrollmentPath = ""
	err = d.ValidateStep(StepDocuments)
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "enrollment_letter", verr.Field)
}

func TestValidateStepMedical(t *testing.T) {
	// Restriction flags only require details when flagged
	d := validDraft()
	d.HasDietaryRestriction = true
	err := d.ValidateStep(StepMedical)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "dietary_details", verr.Field)

	d.DietaryDetails = "lactose intolerant"
	require.NoError(t, d.ValidateStep(StepMedical))

	d.HasHealthRestriction = true
	err = d.ValidateStep(StepMedical)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "health_details", verr.Field)

	d.HealthDetails = "asthma"
	require.NoError(t, d.ValidateStep(StepMedical))

	d = validDraft()
	d.EmergencyName = ""
	err = d.ValidateStep(StepMedical)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "emergency_name", verr.Field)
}

func TestValidateStepBooking(t *testing.T) {
	d := validDraft()
	d.AccommodationID = 0
	var verr *ValidationError
	require.ErrorAs(t, d.ValidateStep(StepBooking), &verr)
	assert.Equal(t, "accommodation_id", verr.Field)

	d = validDraft()
	d.CheckOut = d.CheckIn
	require.ErrorAs(t, d.ValidateStep(StepBooking), &verr)
	assert.Equal(t, "check_out", verr.Field)

	d = validDraft()
	d.CheckOut = d.CheckIn.AddDate(0, 0, -1)
	require.ErrorAs(t, d.ValidateStep(StepBooking), &verr)
	assert.Equal(t, "check_out", verr.Field)

	d = validDraft()
	d.WantsExtraNight = true
	require.ErrorAs(t, d.ValidateStep(StepBooking), &verr)
	assert.Equal(t, "extra_night_kind", verr.Field)

	d.ExtraNightKind = ExtraNightBefore
	require.ErrorAs(t, d.ValidateStep(StepBooking), &verr)
	assert.Equal(t, "extra_night_qty", verr.Field)

	d.ExtraNightQty = 1
	require.NoError(t, d.ValidateStep(StepBooking))
}

func TestValidateStepIsolation(t *testing.T) {
	// Step checks are mutually exclusive: a draft with only step-1 fields
	// passes step 1 even though later steps are empty.
	d := &Draft{
		FirstName:   "Ana",
		LastName:    "Souza",
		Email:       "ana.souza@example.com",
		Phone:       "+5511988887777",
		Nationality: "Brazilian",
	}
	require.NoError(t, d.ValidateStep(StepPersonal))
	require.Error(t, d.ValidateStep(StepDocuments))
	require.Error(t, d.ValidateStep(StepBooking))
}

func TestValidateStepUnknown(t *testing.T) {
	err := validDraft().ValidateStep(9)
	require.Error(t, err)
}
