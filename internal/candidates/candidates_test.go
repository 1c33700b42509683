package candidates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomoku-ai/core/internal/board"
)

func TestGenerateOnEmptyBoardReturnsCenter(t *testing.T) {
	b, err := board.New(15)
	require.NoError(t, err)
	cands := Generate(b, 2)
	require.Len(t, cands, 1)
	assert.Equal(t, board.Pos{Row: 7, Col: 7}, cands[0])
}

func TestGenerateReturnsRingAroundStone(t *testing.T) {
	b, err := board.New(15)
	require.NoError(t, err)
	b.Set(7, 7, board.Cross)

	cands := Generate(b, 1)
	assert.Len(t, cands, 8)
	for _, c := range cands {
		assert.Equal(t, 1, c.ChebyshevDistance(board.Pos{Row: 7, Col: 7}))
		assert.True(t, b.IsEmpty(c.Row, c.Col))
	}
}

func TestGenerateDoesNotDuplicateOverlappingRings(t *testing.T) {
	b, err := board.New(15)
	require.NoError(t, err)
	b.Set(7, 7, board.Cross)
	b.Set(7, 8, board.Naught)

	cands := Generate(b, 1)
	seen := make(map[board.Pos]bool)
	for _, c := range cands {
		assert.False(t, seen[c], "duplicate candidate %s", c)
		seen[c] = true
	}
}

func TestGenerateExcludesOccupiedCells(t *testing.T) {
	b, err := board.New(15)
	require.NoError(t, err)
	b.Set(7, 7, board.Cross)
	b.Set(7, 8, board.Naught)

	cands := Generate(b, 2)
	for _, c := range cands {
		assert.True(t, b.IsEmpty(c.Row, c.Col))
	}
}

func TestGenerateClampsRadiusBelowOne(t *testing.T) {
	b, err := board.New(15)
	require.NoError(t, err)
	b.Set(7, 7, board.Cross)

	withZero := Generate(b, 0)
	withOne := Generate(b, 1)
	assert.ElementsMatch(t, withOne, withZero)
}
