package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthsense/healthsense-ai/internal/doctors"
	"github.com/healthsense/healthsense-ai/internal/notify"
	"github.com/healthsense/healthsense-ai/internal/observability/metrics"
	"github.com/healthsense/healthsense-ai/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var bookingTracer = otel.Tracer("healthsense.internal.booking")

// Notifier delivers the confirmation once an appointment is booked.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, c notify.BookingConfirmation) error
}

// Service runs booking wizards against the provider catalog.
type Service struct {
	providers doctors.Catalog
	store     DraftStore
	wizard    *Wizard
	notifier  Notifier
	metrics   *metrics.BookingMetrics
	logger    *logging.Logger

	// mu serialises load-mutate-save so concurrent actions on one draft
	// cannot interleave.
	mu sync.Mutex
}

// NewService constructs a booking service. Nil dependencies fall back to the
// static catalog, an in-memory store and a default wizard.
func NewService(providers doctors.Catalog, store DraftStore, wizard *Wizard, notifier Notifier, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if providers == nil {
		providers = doctors.NewStaticCatalog(nil)
	}
	if store == nil {
		store = NewMemoryDraftStore()
	}
	if wizard == nil {
		wizard = NewWizard()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		providers: providers,
		store:     store,
		wizard:    wizard,
		notifier:  notifier,
		metrics:   m,
		logger:    logger,
	}
}

// Wizard exposes the state machine for rendering.
func (s *Service) Wizard() *Wizard {
	return s.wizard
}

// Open starts a new wizard for the provider.
func (s *Service) Open(ctx context.Context, providerID int) (*Draft, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.open")
	defer span.End()
	span.SetAttributes(attribute.Int("healthsense.provider_id", providerID))

	p, err := s.provider(ctx, providerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	d, err := s.wizard.Open(uuid.NewString(), p)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.store.Save(ctx, d); err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.metrics.ObserveOpened()
	s.logger.Info("booking wizard opened", "draft_id", d.ID, "provider_id", providerID)
	return d, nil
}

// Get loads an open draft.
func (s *Service) Get(ctx context.Context, id string) (*Draft, error) {
	return s.store.Load(ctx, id)
}

// Apply runs a registered action against a draft and persists the result.
// A failed action leaves the stored draft unchanged.
func (s *Service) Apply(ctx context.Context, id, action string, payload json.RawMessage) (*Draft, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.apply")
	defer span.End()
	span.SetAttributes(
		attribute.String("healthsense.draft_id", id),
		attribute.String("healthsense.booking_action", action),
	)

	fn, ok := actions[action]
	if !ok {
		s.metrics.ObserveAction(action, "unknown")
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	work, confirmed, err := s.mutate(ctx, id, action, fn, payload)
	if err != nil {
		if work == nil {
			span.RecordError(err)
		}
		return work, err
	}
	// The confirmation email goes out after the lock is released so a slow
	// send never holds up other drafts.
	if confirmed {
		s.confirmed(ctx, work)
	}
	return work, nil
}

// mutate is the locked load-apply-save step of Apply. A rejected action
// returns the stored draft with its error; a store failure returns no draft.
func (s *Service) mutate(ctx context.Context, id, action string, fn actionFunc, payload json.RawMessage) (*Draft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, false, err
	}
	work := d.clone()
	before := work.Step
	if err := fn(s.wizard, work, payload); err != nil {
		s.metrics.ObserveAction(action, resultLabel(err))
		s.logger.Debug("booking action rejected", "draft_id", id, "action", action, "error", err)
		return d, false, err
	}
	if err := s.store.Save(ctx, work); err != nil {
		return nil, false, err
	}
	s.metrics.ObserveAction(action, "ok")
	return work, before != StepConfirmed && work.Step == StepConfirmed, nil
}

// Close destroys the draft regardless of its step.
func (s *Service) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("booking wizard closed", "draft_id", id)
	return nil
}

// DaySlots is the slot listing of one provider and day.
type DaySlots struct {
	ProviderID int         `json:"provider_id"`
	Date       string      `json:"date"`
	DateText   string      `json:"date_text"`
	Groups     []SlotGroup `json:"groups"`
}

// ProviderSlots lists a provider's slots for a day; an empty date means today.
func (s *Service) ProviderSlots(ctx context.Context, providerID int, date string) (DaySlots, error) {
	p, err := s.provider(ctx, providerID)
	if err != nil {
		return DaySlots{}, err
	}
	if !p.Available {
		return DaySlots{}, fmt.Errorf("%w: %s", ErrProviderUnavailable, p.Name)
	}
	day := s.wizard.Today()
	if date != "" {
		if day, err = s.wizard.ParseDate(date); err != nil {
			return DaySlots{}, err
		}
	}
	return DaySlots{
		ProviderID: p.ID,
		Date:       day.Format(dateLayout),
		DateText:   LongDate(day),
		Groups:     GroupSlots(s.wizard.Slots(p.ID, day)),
	}, nil
}

func (s *Service) provider(ctx context.Context, id int) (doctors.Provider, error) {
	p, err := s.providers.Get(ctx, id)
	if errors.Is(err, doctors.ErrProviderNotFound) {
		return doctors.Provider{}, fmt.Errorf("%w: %d", ErrProviderNotFound, id)
	}
	if err != nil {
		return doctors.Provider{}, fmt.Errorf("booking: load provider: %w", err)
	}
	return p, nil
}

func (s *Service) confirmed(ctx context.Context, d *Draft) {
	s.metrics.ObserveConfirmed(d.Specialty)
	s.logger.Info("appointment confirmed",
		"draft_id", d.ID,
		"confirmation_id", d.Confirmation.ID,
		"provider_id", d.ProviderID,
	)
	if s.notifier == nil {
		return
	}
	// Deliver even if the client has gone away.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	err := s.notifier.SendBookingConfirmation(sendCtx, notify.BookingConfirmation{
		ConfirmationID: d.Confirmation.ID,
		ProviderName:   d.ProviderName,
		Specialty:      d.Specialty,
		Hospital:       d.Hospital,
		DateTime:       d.Confirmation.DateTime,
		PatientName:    d.Patient.Name,
		PatientEmail:   d.Patient.Email,
		PatientPhone:   d.Patient.Phone,
	})
	if err != nil {
		s.logger.Warn("booking confirmation email failed", "error", err, "confirmation_id", d.Confirmation.ID)
	}
}

func resultLabel(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return "invalid_patient"
	case errors.Is(err, ErrDateRequired):
		return "date_required"
	case errors.Is(err, ErrTimeRequired):
		return "time_required"
	case errors.Is(err, ErrPastDate):
		return "past_date"
	case errors.Is(err, ErrSlotUnavailable):
		return "slot_unavailable"
	case errors.Is(err, ErrWrongStep), errors.Is(err, ErrCannotGoBack), errors.Is(err, ErrConfirmed):
		return "wrong_step"
	default:
		return "error"
	}
}
