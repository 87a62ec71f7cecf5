package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPushDrain(t *testing.T) {
	s := NewSession("abc")

	s.Push([]byte("one"))
	s.Push([]byte("two"))

	select {
	case <-s.Ready():
	default:
		t.Fatal("expected ready signal after push")
	}

	msgs := s.Drain()
	require.Len(t, msgs, 2)
	assert.Equal(t, "one", string(msgs[0]))
	assert.Equal(t, "two", string(msgs[1]))

	assert.Empty(t, s.Drain())
}

func TestSessionNotifyCoalesces(t *testing.T) {
	s := NewSession("abc")

	// Multiple pushes collapse into a single wakeup carrying all messages.
	for i := 0; i < 10; i++ {
		s.Push([]byte("msg"))
	}

	<-s.Ready()
	assert.Len(t, s.Drain(), 10)

	select {
	case <-s.Ready():
		// A second pending signal is allowed; it just drains empty.
		assert.Empty(t, s.Drain())
	default:
	}
}

func TestSessionPushAfterCloseDropped(t *testing.T) {
	s := NewSession("abc")
	s.Push([]byte("before"))
	s.Close()
	s.Push([]byte("after"))

	assert.Empty(t, s.Drain())
}

func TestSessionTable(t *testing.T) {
	table := NewSessionTable()
	assert.Nil(t, table.Get("missing"))
	assert.Equal(t, 0, table.Len())

	s := NewSession("abc")
	table.Add(s)
	assert.Equal(t, 1, table.Len())
	assert.Same(t, s, table.Get("abc"))

	table.Remove("abc")
	assert.Nil(t, table.Get("abc"))
	assert.Equal(t, 0, table.Len())
}
