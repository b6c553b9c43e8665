package booking

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/healthsense/healthsense-ai/internal/notify"
	"github.com/healthsense/healthsense-ai/internal/observability/metrics"
	"github.com/healthsense/healthsense-ai/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.BookingConfirmation
	err  error
}

func (n *recordingNotifier) SendBookingConfirmation(_ context.Context, c notify.BookingConfirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, c)
	return n.err
}

func newTestService(t *testing.T, n Notifier) (*Service, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := NewService(nil, NewMemoryDraftStore(), newTestWizard(nothingBooked), n, metrics.NewBookingMetrics(reg), logging.New("error"))
	return svc, reg
}

func apply(t *testing.T, svc *Service, id, action string, payload any) *Draft {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	d, err := svc.Apply(context.Background(), id, action, raw)
	require.NoError(t, err)
	return d
}

func TestServiceOpenErrors(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.Open(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProviderNotFound)
	_, err = svc.Open(context.Background(), 4)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestServiceFullFlowNotifies(t *testing.T) {
	n := &recordingNotifier{}
	svc, reg := newTestService(t, n)
	ctx := context.Background()

	d, err := svc.Open(ctx, 1)
	require.NoError(t, err)

	apply(t, svc, d.ID, ActionSelectDate, map[string]string{"date": "2026-03-04"})
	apply(t, svc, d.ID, ActionNext, nil)
	apply(t, svc, d.ID, ActionSelectTime, map[string]string{"time": "10:00 AM"})
	apply(t, svc, d.ID, ActionNext, nil)
	final := apply(t, svc, d.ID, ActionNext, map[string]any{
		"patient": PatientInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-123-4567"},
	})

	require.Equal(t, StepConfirmed, final.Step)
	require.Len(t, n.sent, 1)
	assert.Equal(t, final.Confirmation.ID, n.sent[0].ConfirmationID)
	assert.Equal(t, "Dr. Sarah Johnson", n.sent[0].ProviderName)
	assert.Equal(t, "March 4, 2026 at 10:00 AM", n.sent[0].DateTime)

	count, err := testutil.GatherAndCount(reg, "healthsense_booking_confirmations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceNotifierFailureIsNotFatal(t *testing.T) {
	n := &recordingNotifier{err: errors.New("sendgrid down")}
	svc, _ := newTestService(t, n)
	ctx := context.Background()

	d, err := svc.Open(ctx, 2)
	require.NoError(t, err)
	apply(t, svc, d.ID, ActionSelectDate, map[string]string{"date": "2026-03-05"})
	apply(t, svc, d.ID, ActionNext, nil)
	apply(t, svc, d.ID, ActionSelectTime, map[string]string{"time": "9:00 AM"})
	apply(t, svc, d.ID, ActionNext, nil)
	apply(t, svc, d.ID, ActionPatient, PatientInfo{Name: "Sam Lee", Email: "sam@example.com", Phone: "5551234567"})
	final := apply(t, svc, d.ID, ActionNext, nil)
	assert.Equal(t, StepConfirmed, final.Step)
}

func TestServiceFailedActionLeavesDraftUnchanged(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	d, err := svc.Open(ctx, 1)
	require.NoError(t, err)

	got, err := svc.Apply(ctx, d.ID, ActionNext, nil)
	assert.ErrorIs(t, err, ErrDateRequired)
	assert.Equal(t, StepSelectDate, got.Step)

	_, err = svc.Apply(ctx, d.ID, ActionSelectDate, json.RawMessage(`{"date":`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = svc.Apply(ctx, d.ID, "teleport", nil)
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = svc.Apply(ctx, "nope", ActionBack, nil)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	stored, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StepSelectDate, stored.Step)
	assert.Empty(t, stored.SelectedDate)
}

func TestServiceClose(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	d, err := svc.Open(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Close(ctx, d.ID))
	_, err = svc.Get(ctx, d.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestServiceProviderSlots(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	slots, err := svc.ProviderSlots(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-04", slots.Date)
	assert.Equal(t, "Wednesday, March 4, 2026", slots.DateText)
	require.Len(t, slots.Groups, 3)

	_, err = svc.ProviderSlots(ctx, 4, "")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	_, err = svc.ProviderSlots(ctx, 1, "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestActionsRegistryCoversNames(t *testing.T) {
	for _, name := range Actions() {
		_, ok := actions[name]
		assert.True(t, ok, name)
	}
	assert.Len(t, actions, len(Actions()))
}

type blockingNotifier struct {
	entered chan struct{}
	release chan struct{}
}

func (n *blockingNotifier) SendBookingConfirmation(ctx context.Context, _ notify.BookingConfirmation) error {
	close(n.entered)
	select {
	case <-n.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestServiceSlowNotifierDoesNotBlockOtherDrafts(t *testing.T) {
	n := &blockingNotifier{entered: make(chan struct{}), release: make(chan struct{})}
	svc, _ := newTestService(t, n)
	ctx := context.Background()

	a, err := svc.Open(ctx, 1)
	require.NoError(t, err)
	b, err := svc.Open(ctx, 2)
	require.NoError(t, err)

	apply(t, svc, a.ID, ActionSelectDate, map[string]string{"date": "2026-03-04"})
	apply(t, svc, a.ID, ActionNext, nil)
	apply(t, svc, a.ID, ActionSelectTime, map[string]string{"time": "10:00 AM"})
	apply(t, svc, a.ID, ActionNext, nil)

	confirmed := make(chan *Draft, 1)
	go func() {
		raw, _ := json.Marshal(map[string]any{
			"patient": PatientInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-123-4567"},
		})
		d, _ := svc.Apply(ctx, a.ID, ActionNext, raw)
		confirmed <- d
	}()
	<-n.entered

	moved := make(chan error, 1)
	go func() {
		_, err := svc.Apply(ctx, b.ID, ActionNextMonth, nil)
		moved <- err
	}()
	select {
	case err := <-moved:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("action on another draft waited for the confirmation email")
	}

	close(n.release)
	d := <-confirmed
	require.NotNil(t, d)
	assert.Equal(t, StepConfirmed, d.Step)
}
