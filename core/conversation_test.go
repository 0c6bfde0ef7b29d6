package core

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationContext_OptionalFields(t *testing.T) {
	c := NewConversationContext()

	for _, get := range []func() (string, bool){c.PassengerName, c.ConfirmationNumber, c.SeatNumber, c.FlightNumber} {
		v, ok := get()
		assert.False(t, ok)
		assert.Empty(t, v)
	}

	c.SetPassengerName("Ada")
	c.SetConfirmationNumber("ABC123")
	c.SetSeatNumber("12A")
	c.SetFlightNumber("FLT-101")

	name, ok := c.PassengerName()
	assert.True(t, ok)
	assert.Equal(t, "Ada", name)

	snap := c.Snapshot()
	require.NotNil(t, snap.SeatNumber)
	assert.Equal(t, "12A", *snap.SeatNumber)
	assert.Equal(t, "FLT-101", *snap.FlightNumber)

	// snapshot is detached from later writes
	c.SetSeatNumber("14C")
	assert.Equal(t, "12A", *snap.SeatNumber)
}

func TestConversationContext_SetFlightNumberIfAbsent(t *testing.T) {
	c := NewConversationContext()

	var calls int32
	gen := func() string {
		atomic.AddInt32(&calls, 1)
		return "FLT-555"
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "FLT-555", c.SetFlightNumberIfAbsent(gen))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	c.SetFlightNumber("FLT-777")
	assert.Equal(t, "FLT-777", c.SetFlightNumberIfAbsent(gen))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestConversationContext_ZeroSnapshot(t *testing.T) {
	var c ConversationContext
	assert.Equal(t, ContextSnapshot{}, c.Snapshot())
}
