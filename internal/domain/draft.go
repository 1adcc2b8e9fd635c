package domain

import (
	"fmt"
	"time"
)

// Draft is the full reservation wizard state submitted as one value. The
// wizard front end accumulates it across four steps; the API validates each
// step with pure predicates so navigation can be gated server-side.
type Draft struct {
	// Step 1 - personal info
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Nationality string `json:"nationality"`

	// Step 2 - documents (storage paths returned by the upload endpoint)
	PassportPath         string `json:"passport_path"`
	PassportFileName     string `json:"passport_file_name"`
	EnrollmentPath       string `json:"enrollment_path"`
	EnrollmentFileName   string `json:"enrollment_file_name"`

	// Step 3 - medical restrictions and emergency contact
	HasDietaryRestriction bool   `json:"has_dietary_restriction"`
	DietaryDetails        string `json:"dietary_details"`
	HasHealthRestriction  bool   `json:"has_health_restriction"`
	HealthDetails         string `json:"health_details"`
	EmergencyName         string `json:"emergency_name"`
	EmergencyRelation     string `json:"emergency_relation"`
	EmergencyPhone        string `json:"emergency_phone"`
	EmergencyEmail        string `json:"emergency_email"`

	// Step 4 - booking details
	AccommodationID int64     `json:"accommodation_id"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	WantsExtraNight bool      `json:"wants_extra_night"`
	ExtraNightKind  string    `json:"extra_night_kind"` // before or after
	ExtraNightQty   int       `json:"extra_night_qty"`
	ExtraNightDates string    `json:"extra_night_dates"`
}

const (
	StepPersonal  = 1
	StepDocuments = 2
	StepMedical   = 3
	StepBooking   = 4

	StepCount = 4
)

const (
	ExtraNightBefore = "before"
	ExtraNightAfter  = "after"
)

// ValidationError identifies the field that blocked a wizard step.
type ValidationError struct {
	Step    int    `json:"step"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %s: %s", e.Step, e.Field, e.Message)
}

func stepErr(step int, field, message string) *ValidationError {
	return &ValidationError{Step: step, Field: field, Message: message}
}

// ValidateStep checks only the fields belonging to the given wizard step.
// Checks are mutually exclusive per step: validating step 3 never re-checks
// step 1 fields.
func (d *Draft) ValidateStep(step int) error {
	switch step {
	case StepPersonal:
		return d.validatePersonal()
	case StepDocuments:
		return d.validateDocuments()
	case StepMedical:
		return d.validateMedical()
	case StepBooking:
		return d.validateBooking()
	default:
		return fmt.Errorf("unknown wizard step %d", step)
	}
}

// Validate runs every step check in order, for final submission.
func (d *Draft) Validate() error {
	for step := StepPersonal; step <= StepBooking; step++ {
		if err := d.ValidateStep(step); err != nil {
			return err
		}
	}
	return nil
}

func (d *Draft) validatePersonal() error {
	if d.FirstName == "" {
		return stepErr(StepPersonal, "first_name", "first name is required")
	}
	if d.LastName == "" {
		return stepErr(StepPersonal, "last_name", "last name is required")
	}
	if d.Email == "" {
		return stepErr(StepPersonal, "email", "email is required")
	}
	if d.Phone == "" {
		return stepErr(StepPersonal, "phone", "phone is required")
	}
	if d.Nationality == "" {
		return stepErr(StepPersonal, "nationality", "nationality is required")
	}
	return nil
}

func (d *Draft) validateDocuments() error {
	if d.PassportPath == "" {
		return stepErr(StepDocuments, "passport", "passport file is required")
	}
	if d.EnrollmentPath == "" {
		return stepErr(StepDocuments, "enrollment_letter", "enrollment letter file is required")
	}
	return nil
}

func (d *Draft) validateMedical() error {
	if d.HasDietaryRestriction && d.DietaryDetails == "" {
		return stepErr(StepMedical, "dietary_details", "dietary restriction details are required")
	}
	if d.HasHealthRestriction && d.HealthDetails == "" {
		return stepErr(StepMedical, "health_details", "health restriction details are required")
	}
	if d.EmergencyName == "" {
		return stepErr(StepMedical, "emergency_name", "emergency contact name is required")
	}
	if d.EmergencyRelation == "" {
		return stepErr(StepMedical, "emergency_relation", "emergency contact relation is required")
	}
	if d.EmergencyPhone == "" {
		return stepErr(StepMedical, "emergency_phone", "emergency contact phone is required")
	}
	if d.EmergencyEmail == "" {
		return stepErr(StepMedical, "emergency_email", "emergency contact email is required")
	}
	return nil
}

func (d *Draft) validateBooking() error {
	if d.AccommodationID == 0 {
		return stepErr(StepBooking, "accommodation_id", "accommodation is required")
	}
	if d.CheckIn.IsZero() {
		return stepErr(StepBooking, "check_in", "check-in date is required")
	}
	if d.CheckOut.IsZero() {
		return stepErr(StepBooking, "check_out", "check-out date is required")
	}
	if !d.CheckOut.After(d.CheckIn) {
		return stepErr(StepBooking, "check_out", "check-out must be after check-in")
	}
	if d.WantsExtraNight {
		if d.ExtraNightKind != ExtraNightBefore && d.ExtraNightKind != ExtraNightAfter {
			return stepErr(StepBooking, "extra_night_kind", "extra night type must be before or after")
		}
		if d.ExtraNightQty <= 0 {
			return stepErr(StepBooking, "extra_night_qty", "extra night quantity is required")
		}
	}
	return nil
}

// Weeks is the pricing unit: ceiling of the stay length in 7-day buckets.
// A 1-7 day stay is one week, 8 days is two.
func Weeks(checkIn, checkOut time.Time) int {
	days := int(checkOut.Sub(checkIn).Hours() / 24)
	return (days + 6) / 7
}

// TotalPriceCents multiplies the accommodation's weekly rate by the week
// count. The arithmetic itself does no bounds check; non-positive stays are
// rejected at step-4 validation.
func TotalPriceCents(weeklyRateCents int64, weeks int) int64 {
	return weeklyRateCents * int64(weeks)
}
