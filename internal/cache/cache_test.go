package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-booking/internal/models"
)

type fakeSource struct {
	events []models.Event
	err    error
	calls  int
}

func (s *fakeSource) ListEvents(ctx context.Context) ([]models.Event, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func TestLoad_ReplacesSnapshot(t *testing.T) {
	source := &fakeSource{events: []models.Event{
		{ID: "ev-1", Title: "Поход", Price: 1000, StartDate: "2026-07-01"},
		{ID: "ev-2", Title: "Сплав", Price: 2000, StartDate: "2026-07-15"},
	}}
	c := New(source)

	require.NoError(t, c.Load(context.Background()))

	events := c.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "ev-1", events[0].ID)
	assert.Equal(t, "ev-2", events[1].ID)
	assert.True(t, c.Loaded())
}

func TestLoad_DerivesOptionalPrices(t *testing.T) {
	source := &fakeSource{events: []models.Event{
		{ID: "ev-1", Price: 1000},
	}}
	c := New(source)

	require.NoError(t, c.Load(context.Background()))

	ev, ok := c.Event("ev-1")
	require.True(t, ok)
	require.NotNil(t, ev.PriceChild)
	require.NotNil(t, ev.PriceFamily)
	assert.InDelta(t, 800, *ev.PriceChild, 0.001)
	assert.InDelta(t, 2500, *ev.PriceFamily, 0.001)
}

func TestLoad_KeepsExplicitPrices(t *testing.T) {
	child := 500.0
	source := &fakeSource{events: []models.Event{
		{ID: "ev-1", Price: 1000, PriceChild: &child},
	}}
	c := New(source)

	require.NoError(t, c.Load(context.Background()))

	ev, _ := c.Event("ev-1")
	assert.Equal(t, 500.0, *ev.PriceChild)
}

func TestLoad_ErrorKeepsPreviousSnapshot(t *testing.T) {
	source := &fakeSource{events: []models.Event{{ID: "ev-1", Price: 100}}}
	c := New(source)
	require.NoError(t, c.Load(context.Background()))

	source.err = errors.New("connection refused")
	err := c.InvalidateAndReload(context.Background())

	assert.Error(t, err)
	events := c.Events()
	require.Len(t, events, 1, "a failed reload must not clear the snapshot")
	assert.Equal(t, "ev-1", events[0].ID)
}

func TestLoad_EmptyStoreWithoutError(t *testing.T) {
	c := New(&fakeSource{})

	require.NoError(t, c.Load(context.Background()))

	assert.Empty(t, c.Events())
	assert.True(t, c.Loaded())
}

func TestInvalidateAndReload_PicksUpChanges(t *testing.T) {
	source := &fakeSource{events: []models.Event{
		{ID: "ev-1", Price: 100, SpotsLeft: 10},
	}}
	c := New(source)
	require.NoError(t, c.Load(context.Background()))

	// Server-side state changed; the next reload must reflect it in full.
	source.events = []models.Event{
		{ID: "ev-1", Price: 100, SpotsLeft: 7},
	}
	require.NoError(t, c.InvalidateAndReload(context.Background()))

	ev, _ := c.Event("ev-1")
	assert.Equal(t, 7, ev.SpotsLeft)
	assert.Equal(t, 2, source.calls)
}

func TestEvents_ReturnsCopy(t *testing.T) {
	source := &fakeSource{events: []models.Event{{ID: "ev-1", Price: 100}}}
	c := New(source)
	require.NoError(t, c.Load(context.Background()))

	events := c.Events()
	events[0].Title = "mutated"

	fresh := c.Events()
	assert.Empty(t, fresh[0].Title, "callers must not be able to mutate the snapshot")
}

func TestEvent_Missing(t *testing.T) {
	c := New(&fakeSource{})
	require.NoError(t, c.Load(context.Background()))

	_, ok := c.Event("missing")
	assert.False(t, ok)
}
