package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerived_DefaultsFromAdultPrice(t *testing.T) {
	ev := Event{Price: 1000}.Derived()

	require.NotNil(t, ev.PriceChild)
	require.NotNil(t, ev.PriceFamily)
	assert.InDelta(t, 800, *ev.PriceChild, 0.001)
	assert.InDelta(t, 2500, *ev.PriceFamily, 0.001)
}

func TestDerived_KeepsExplicitValues(t *testing.T) {
	child := 450.0
	family := 2100.0
	ev := Event{Price: 1000, PriceChild: &child, PriceFamily: &family}.Derived()

	assert.Equal(t, 450.0, *ev.PriceChild)
	assert.Equal(t, 2100.0, *ev.PriceFamily)
}

func TestDerived_DoesNotMutateReceiver(t *testing.T) {
	original := Event{Price: 1000}
	_ = original.Derived()

	assert.Nil(t, original.PriceChild)
	assert.Nil(t, original.PriceFamily)
}
