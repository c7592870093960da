package session

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestJoinIsIdempotentForComposition(t *testing.T) {
	r := NewRegistry(zerolog.Nop())

	assert.True(t, r.Join("復忠"))
	assert.False(t, r.Join("復忠")) // second connection, same member set
	assert.True(t, r.Join("信全"))

	assert.Equal(t, []string{"信全", "復忠"}, r.Members())
}

func TestLeavePrunesOnLastConnection(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	r.Join("復忠")
	r.Join("復忠")

	assert.False(t, r.Leave("復忠")) // one connection still open
	assert.Equal(t, []string{"復忠"}, r.Members())

	assert.True(t, r.Leave("復忠"))
	assert.Empty(t, r.Members())
}

func TestLeaveUnknownIsNoop(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	assert.False(t, r.Leave("信全"))
	assert.Empty(t, r.Members())
}
