package booking

import "fmt"

var stepLabels = []string{"Select Date", "Select Time", "Your Details", "Confirmation"}

// StepIndicator is one entry of the progress bar.
type StepIndicator struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
	State  string `json:"state"`
}

// View is the page model of an open wizard.
type View struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	ProviderID       int             `json:"provider_id"`
	Step             Step            `json:"step"`
	StepName         string          `json:"step_name"`
	Steps            []StepIndicator `json:"steps"`
	ShowBack         bool            `json:"show_back"`
	NextLabel        string          `json:"next_label,omitempty"`
	Calendar         *Calendar       `json:"calendar,omitempty"`
	SelectedDate     string          `json:"selected_date,omitempty"`
	SelectedDateText string          `json:"selected_date_text,omitempty"`
	SelectedTime     string          `json:"selected_time,omitempty"`
	SlotGroups       []SlotGroup     `json:"slot_groups,omitempty"`
	Patient          *PatientInfo    `json:"patient,omitempty"`
	Summary          *Summary        `json:"summary,omitempty"`
	Confirmation     *Confirmation   `json:"confirmation,omitempty"`
}

// Render builds the view for the draft's current step.
func (w *Wizard) Render(d *Draft) View {
	v := View{
		ID:           d.ID,
		Title:        fmt.Sprintf("Book Appointment with %s", d.ProviderName),
		ProviderID:   d.ProviderID,
		Step:         d.Step,
		StepName:     d.Step.String(),
		ShowBack:     d.Step > StepSelectDate && d.Step < StepConfirmed,
		SelectedDate: d.SelectedDate,
		SelectedTime: d.SelectedTime,
	}
	for i, label := range stepLabels {
		n := Step(i + 1)
		state := "pending"
		switch {
		case n < d.Step:
			state = "completed"
		case n == d.Step:
			state = "active"
		}
		v.Steps = append(v.Steps, StepIndicator{Number: int(n), Label: label, State: state})
	}
	switch d.Step {
	case StepSelectDate, StepSelectTime:
		v.NextLabel = "Next"
	case StepPatientInfo:
		v.NextLabel = "Confirm Appointment"
	}
	if date, err := w.ParseDate(d.SelectedDate); err == nil && d.SelectedDate != "" {
		v.SelectedDateText = LongDate(date)
	}

	switch d.Step {
	case StepSelectDate:
		cal := w.Calendar(d)
		v.Calendar = &cal
	case StepSelectTime:
		v.SlotGroups = GroupSlots(d.Slots)
	case StepPatientInfo:
		p := d.Patient
		v.Patient = &p
		v.Summary = d.Summary
	case StepConfirmed:
		v.Confirmation = d.Confirmation
	}
	return v
}
