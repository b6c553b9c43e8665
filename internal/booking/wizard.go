package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/healthsense/healthsense-ai/internal/doctors"
)

// Wizard implements the four-step booking state machine. It holds no draft
// state itself; every method mutates the draft it is given and leaves it
// untouched when it returns an error.
type Wizard struct {
	now          func() time.Time
	loc          *time.Location
	availability Availability
	ids          IDGenerator
	validate     *validator.Validate
}

// WizardOption customises a Wizard.
type WizardOption func(*Wizard)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) WizardOption {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// WithLocation sets the timezone used for "today" and the calendar.
func WithLocation(loc *time.Location) WizardOption {
	return func(w *Wizard) {
		if loc != nil {
			w.loc = loc
		}
	}
}

func WithAvailability(a Availability) WizardOption {
	return func(w *Wizard) {
		if a != nil {
			w.availability = a
		}
	}
}

func WithIDGenerator(g IDGenerator) WizardOption {
	return func(w *Wizard) {
		if g != nil {
			w.ids = g
		}
	}
}

// NewWizard builds a wizard with deterministic availability and a clock-seeded
// confirmation id generator unless overridden.
func NewWizard(opts ...WizardOption) *Wizard {
	w := &Wizard{
		now:          time.Now,
		loc:          time.UTC,
		availability: NewSeededAvailability(1),
		ids:          NewRandomIDGenerator(nil),
		validate:     newValidator(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Today returns the current calendar day in the wizard's timezone.
func (w *Wizard) Today() time.Time {
	return startOfDay(w.now().In(w.loc))
}

// ParseDate reads a YYYY-MM-DD civil date in the wizard's timezone.
func (w *Wizard) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), w.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Open starts a fresh draft at step 1 showing the current month.
func (w *Wizard) Open(id string, p doctors.Provider) (*Draft, error) {
	if !p.Available {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, p.Name)
	}
	now := w.now()
	today := w.Today()
	return &Draft{
		ID:           id,
		ProviderID:   p.ID,
		ProviderName: p.Name,
		Specialty:    p.Specialty,
		Hospital:     p.Hospital,
		Step:         StepSelectDate,
		Year:         today.Year(),
		Month:        today.Month(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// SelectDate records the appointment day. Only valid in step 1; past days are
// rejected.
func (w *Wizard) SelectDate(d *Draft, date string) error {
	if d.Step != StepSelectDate {
		return ErrWrongStep
	}
	t, err := w.ParseDate(date)
	if err != nil {
		return err
	}
	if t.Before(w.Today()) {
		return fmt.Errorf("%w: %s", ErrPastDate, t.Format(dateLayout))
	}
	d.SelectedDate = t.Format(dateLayout)
	w.touch(d)
	return nil
}

// SelectTime records a slot from the currently rendered list. Booked or
// unknown slots leave the selection unchanged.
func (w *Wizard) SelectTime(d *Draft, slot string) error {
	if d.Step != StepSelectTime {
		return ErrWrongStep
	}
	s, ok := findSlot(d.Slots, strings.TrimSpace(slot))
	if !ok || s.Booked {
		return fmt.Errorf("%w: %s", ErrSlotUnavailable, slot)
	}
	d.SelectedTime = s.Time
	w.touch(d)
	return nil
}

// SetPatient fills the step 3 form. Validation happens on Next.
func (w *Wizard) SetPatient(d *Draft, p PatientInfo) error {
	if d.Step != StepPatientInfo {
		return ErrWrongStep
	}
	d.Patient = normalizePatient(p)
	w.touch(d)
	return nil
}

// Next advances one step when the current step is complete. Leaving step 3
// confirms the appointment.
func (w *Wizard) Next(d *Draft) error {
	switch d.Step {
	case StepSelectDate:
		if d.SelectedDate == "" {
			return ErrDateRequired
		}
		date, err := w.ParseDate(d.SelectedDate)
		if err != nil {
			return err
		}
		d.Slots = RenderSlots(w.availability, d.ProviderID, date)
		if d.SelectedTime != "" {
			if s, ok := findSlot(d.Slots, d.SelectedTime); !ok || s.Booked {
				d.SelectedTime = ""
			}
		}
		d.Step = StepSelectTime
	case StepSelectTime:
		if d.SelectedTime == "" {
			return ErrTimeRequired
		}
		summary, err := w.summary(d)
		if err != nil {
			return err
		}
		d.Summary = summary
		d.Step = StepPatientInfo
	case StepPatientInfo:
		return w.confirm(d)
	default:
		return ErrConfirmed
	}
	w.touch(d)
	return nil
}

// Back steps back once; only allowed in steps 2 and 3.
func (w *Wizard) Back(d *Draft) error {
	if d.Step <= StepSelectDate || d.Step >= StepConfirmed {
		return ErrCannotGoBack
	}
	d.Step--
	w.touch(d)
	return nil
}

// PrevMonth and NextMonth only move the displayed month.
func (w *Wizard) PrevMonth(d *Draft) error {
	d.Year, d.Month = shiftMonth(d.Year, d.Month, -1)
	w.touch(d)
	return nil
}

func (w *Wizard) NextMonth(d *Draft) error {
	d.Year, d.Month = shiftMonth(d.Year, d.Month, 1)
	w.touch(d)
	return nil
}

// Calendar renders the displayed month of d.
func (w *Wizard) Calendar(d *Draft) Calendar {
	return BuildCalendar(d.Year, d.Month, w.Today(), d.SelectedDate)
}

// Slots renders a day's slots for a provider without touching any draft.
func (w *Wizard) Slots(providerID int, date time.Time) []Slot {
	return RenderSlots(w.availability, providerID, date)
}

func (w *Wizard) summary(d *Draft) (*Summary, error) {
	date, err := w.ParseDate(d.SelectedDate)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Doctor: d.ProviderName,
		Date:   LongDate(date),
		Time:   d.SelectedTime,
	}, nil
}

func (w *Wizard) confirm(d *Draft) error {
	patient := normalizePatient(d.Patient)
	if err := validatePatient(w.validate, patient); err != nil {
		return err
	}
	date, err := w.ParseDate(d.SelectedDate)
	if err != nil {
		return err
	}
	d.Patient = patient
	d.Confirmation = &Confirmation{
		ID:       w.ids.NewConfirmationID(),
		Doctor:   d.ProviderName,
		DateTime: fmt.Sprintf("%s at %s", date.Format("January 2, 2006"), d.SelectedTime),
		Patient:  patient.Name,
		Contact:  fmt.Sprintf("%s • %s", patient.Email, patient.Phone),
	}
	d.Step = StepConfirmed
	w.touch(d)
	return nil
}

func (w *Wizard) touch(d *Draft) {
	d.UpdatedAt = w.now()
}

// LongDate formats a day as "Monday, January 2, 2006".
func LongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
