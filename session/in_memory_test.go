package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Store = (*InMemoryStore)(nil)

func TestInMemoryStore_GetCreatesLazily(t *testing.T) {
	s := NewInMemoryStore()

	rc, err := s.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", rc.SessionID)
	require.NotNil(t, rc.Conversation)

	again, err := s.Get("s1")
	require.NoError(t, err)
	assert.Same(t, rc, again)
	assert.Equal(t, 1, s.Len())
}

func TestInMemoryStore_MutationsAreShared(t *testing.T) {
	s := NewInMemoryStore()

	rc, _ := s.Get("s1")
	rc.Conversation.SetSeatNumber("12A")

	again, _ := s.Get("s1")
	seat, ok := again.Conversation.SeatNumber()
	require.True(t, ok)
	assert.Equal(t, "12A", seat)
}

func TestInMemoryStore_EmptyIDGenerates(t *testing.T) {
	s := NewInMemoryStore()

	rc, err := s.Get("")
	require.NoError(t, err)
	assert.NotEmpty(t, rc.SessionID)

	again, err := s.Get(rc.SessionID)
	require.NoError(t, err)
	assert.Same(t, rc, again)
}

func TestInMemoryStore_CreateOverwrites(t *testing.T) {
	s := NewInMemoryStore()

	first, _ := s.Get("s1")
	first.Conversation.SetSeatNumber("1A")

	second, err := s.Create("s1")
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	_, ok := second.Conversation.SeatNumber()
	assert.False(t, ok)
}

func TestInMemoryStore_Delete(t *testing.T) {
	s := NewInMemoryStore()

	first, _ := s.Get("s1")
	require.NoError(t, s.Delete("s1"))
	require.NoError(t, s.Delete("unknown"))
	assert.Zero(t, s.Len())

	second, _ := s.Get("s1")
	assert.NotSame(t, first, second)
}

func TestInMemoryStore_ConcurrentGet(t *testing.T) {
	s := NewInMemoryStore()

	var wg sync.WaitGroup
	results := make([]any, 16)

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rc, _ := s.Get("shared")
			results[i] = rc
		}(i)
	}

	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}
