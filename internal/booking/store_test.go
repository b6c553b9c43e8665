package booking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDraft() *Draft {
	return &Draft{
		ID:           "d-1",
		ProviderID:   1,
		ProviderName: "Dr. Sarah Johnson",
		Step:         StepSelectTime,
		SelectedDate: "2026-03-05",
		Year:         2026,
		Month:        time.March,
		Slots:        []Slot{{Time: "9:00 AM", Period: PeriodMorning}},
		Summary:      &Summary{Doctor: "Dr. Sarah Johnson"},
		CreatedAt:    fixedNow,
		UpdatedAt:    fixedNow,
	}
}

func exerciseStore(t *testing.T, store DraftStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	d := sampleDraft()
	require.NoError(t, store.Save(ctx, d))

	got, err := store.Load(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, d.ProviderName, got.ProviderName)
	assert.Equal(t, d.Slots, got.Slots)
	assert.Equal(t, d.Summary, got.Summary)
	assert.True(t, d.CreatedAt.Equal(got.CreatedAt))

	got.SelectedTime = "9:00 AM"
	got.Slots[0].Booked = true
	reloaded, err := store.Load(ctx, "d-1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.SelectedTime)
	assert.False(t, reloaded.Slots[0].Booked)

	require.NoError(t, store.Delete(ctx, "d-1"))
	_, err = store.Load(ctx, "d-1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "d-1"), ErrDraftNotFound)
}

func TestMemoryDraftStore(t *testing.T) {
	exerciseStore(t, NewMemoryDraftStore())
}

func TestRedisDraftStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStore(t, NewRedisDraftStore(client, time.Hour))
}

func TestRedisDraftStoreExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisDraftStore(client, 30*time.Minute)
	require.NoError(t, store.Save(context.Background(), sampleDraft()))
	assert.Equal(t, 30*time.Minute, mr.TTL(draftKey("d-1")))

	mr.FastForward(31 * time.Minute)
	_, err := store.Load(context.Background(), "d-1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
