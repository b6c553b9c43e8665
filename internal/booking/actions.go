package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Action names accepted by Service.Apply.
const (
	ActionSelectDate = "select-date"
	ActionSelectTime = "select-time"
	ActionNext       = "next"
	ActionBack       = "back"
	ActionPrevMonth  = "prev-month"
	ActionNextMonth  = "next-month"
	ActionPatient    = "patient"
)

type actionFunc func(w *Wizard, d *Draft, payload json.RawMessage) error

type selectDatePayload struct {
	Date string `json:"date"`
}

type selectTimePayload struct {
	Time string `json:"time"`
}

// nextPayload lets the page submit the patient form together with "Confirm
// Appointment".
type nextPayload struct {
	Patient *PatientInfo `json:"patient"`
}

var actions = map[string]actionFunc{
	ActionSelectDate: func(w *Wizard, d *Draft, raw json.RawMessage) error {
		var p selectDatePayload
		if err := decodePayload(raw, &p); err != nil {
			return err
		}
		return w.SelectDate(d, p.Date)
	},
	ActionSelectTime: func(w *Wizard, d *Draft, raw json.RawMessage) error {
		var p selectTimePayload
		if err := decodePayload(raw, &p); err != nil {
			return err
		}
		return w.SelectTime(d, p.Time)
	},
	ActionNext: func(w *Wizard, d *Draft, raw json.RawMessage) error {
		var p nextPayload
		if err := decodePayload(raw, &p); err != nil {
			return err
		}
		if p.Patient != nil {
			if err := w.SetPatient(d, *p.Patient); err != nil {
				return err
			}
		}
		return w.Next(d)
	},
	ActionBack: func(w *Wizard, d *Draft, _ json.RawMessage) error {
		return w.Back(d)
	},
	ActionPrevMonth: func(w *Wizard, d *Draft, _ json.RawMessage) error {
		return w.PrevMonth(d)
	},
	ActionNextMonth: func(w *Wizard, d *Draft, _ json.RawMessage) error {
		return w.NextMonth(d)
	},
	ActionPatient: func(w *Wizard, d *Draft, raw json.RawMessage) error {
		var p PatientInfo
		if err := decodePayload(raw, &p); err != nil {
			return err
		}
		return w.SetPatient(d, p)
	},
}

// Actions lists the registered action names.
func Actions() []string {
	return []string{
		ActionSelectDate, ActionSelectTime, ActionNext, ActionBack,
		ActionPrevMonth, ActionNextMonth, ActionPatient,
	}
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
