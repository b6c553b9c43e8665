package booking

import "time"

// Step is a wizard state. Steps only move forward through Next once the
// current step's required fields are populated.
type Step int

const (
	StepSelectDate  Step = 1
	StepSelectTime  Step = 2
	StepPatientInfo Step = 3
	StepConfirmed   Step = 4
)

func (s Step) String() string {
	switch s {
	case StepSelectDate:
		return "select_date"
	case StepSelectTime:
		return "select_time"
	case StepPatientInfo:
		return "patient_info"
	case StepConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Period groups slots into the three columns of the time picker.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// Slot is one rendered half-hour slot.
type Slot struct {
	Time   string `json:"time"`
	Period Period `json:"period"`
	Booked bool   `json:"booked"`
}

// PatientInfo is the step 3 form.
type PatientInfo struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
}

// Summary is shown on the patient details step.
type Summary struct {
	Doctor string `json:"doctor"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// Confirmation is frozen when the appointment is confirmed.
type Confirmation struct {
	ID       string `json:"id"`
	Doctor   string `json:"doctor"`
	DateTime string `json:"date_time"`
	Patient  string `json:"patient"`
	Contact  string `json:"contact"`
}

// Draft is the state of one open booking wizard. SelectedDate is a civil
// date (YYYY-MM-DD) in the booking timezone; empty means unset, as does an
// empty SelectedTime.
type Draft struct {
	ID           string        `json:"id"`
	ProviderID   int           `json:"provider_id"`
	ProviderName string        `json:"provider_name"`
	Specialty    string        `json:"specialty"`
	Hospital     string        `json:"hospital"`
	Step         Step          `json:"step"`
	SelectedDate string        `json:"selected_date,omitempty"`
	SelectedTime string        `json:"selected_time,omitempty"`
	Year         int           `json:"year"`
	Month        time.Month    `json:"month"`
	Slots        []Slot        `json:"slots,omitempty"`
	Patient      PatientInfo   `json:"patient"`
	Summary      *Summary      `json:"summary,omitempty"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (d *Draft) clone() *Draft {
	if d == nil {
		return nil
	}
	cp := *d
	if d.Slots != nil {
		cp.Slots = append([]Slot(nil), d.Slots...)
	}
	if d.Summary != nil {
		s := *d.Summary
		cp.Summary = &s
	}
	if d.Confirmation != nil {
		c := *d.Confirmation
		cp.Confirmation = &c
	}
	return &cp
}

const dateLayout = "2006-01-02"
