package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomoku-ai/core/internal/board"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	s, err := New(15, PlayerConfig{Kind: Human}, PlayerConfig{Kind: AI, SearchDepth: 2}, 2)
	require.NoError(t, err)
	return s
}

func TestApplyMoveAlternatesPlayer(t *testing.T) {
	s := newTestState(t)
	assert.Equal(t, board.Cross, s.PlayerToMove)

	_, err := s.ApplyMove(MoveInput{Row: 7, Col: 7, WallClockMS: 10})
	require.NoError(t, err)
	assert.Equal(t, board.Naught, s.PlayerToMove)
	assert.Equal(t, 1, s.StoneCount())

	_, err = s.ApplyMove(MoveInput{Row: 7, Col: 8, WallClockMS: 20})
	require.NoError(t, err)
	assert.Equal(t, board.Cross, s.PlayerToMove)
	assert.Equal(t, 2, s.StoneCount())
}

func TestApplyMoveRejectsOccupiedCell(t *testing.T) {
	s := newTestState(t)
	_, err := s.ApplyMove(MoveInput{Row: 7, Col: 7, WallClockMS: 10})
	require.NoError(t, err)

	_, err = s.ApplyMove(MoveInput{Row: 7, Col: 7, WallClockMS: 10})
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestApplyMoveRejectsOutOfBounds(t *testing.T) {
	s := newTestState(t)
	_, err := s.ApplyMove(MoveInput{Row: -1, Col: 0, WallClockMS: 10})
	assert.ErrorIs(t, err, ErrIllegalMove)

	_, err = s.ApplyMove(MoveInput{Row: 0, Col: 15, WallClockMS: 10})
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestApplyMoveDetectsWin(t *testing.T) {
	s := newTestState(t)
	moves := []board.Pos{
		{Row: 5, Col: 5}, {Row: 6, Col: 5},
		{Row: 5, Col: 6}, {Row: 6, Col: 6},
		{Row: 5, Col: 7}, {Row: 6, Col: 7},
		{Row: 5, Col: 8}, {Row: 6, Col: 8},
		{Row: 5, Col: 9},
	}
	for i, m := range moves[:len(moves)-1] {
		_, err := s.ApplyMove(MoveInput{Row: m.Row, Col: m.Col, WallClockMS: 1})
		require.NoErrorf(t, err, "move %d", i)
	}
	assert.Equal(t, InProgress, s.Outcome)

	last := moves[len(moves)-1]
	_, err := s.ApplyMove(MoveInput{Row: last.Row, Col: last.Col, WallClockMS: 1})
	require.NoError(t, err)
	assert.Equal(t, CrossWin, s.Outcome)
}

func TestApplyMoveRejectedAfterOutcome(t *testing.T) {
	s := newTestState(t)
	s.Outcome = Draw
	_, err := s.ApplyMove(MoveInput{Row: 0, Col: 0, WallClockMS: 1})
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestUndoLastPairRestoresState(t *testing.T) {
	s := newTestState(t)
	_, err := s.ApplyMove(MoveInput{Row: 7, Col: 7, WallClockMS: 10})
	require.NoError(t, err)
	_, err = s.ApplyMove(MoveInput{Row: 7, Col: 8, WallClockMS: 20})
	require.NoError(t, err)

	require.NoError(t, s.UndoLastPair())
	assert.Equal(t, 0, s.StoneCount())
	assert.Equal(t, board.Cross, s.PlayerToMove)
	assert.Equal(t, board.Empty, s.Board.At(7, 7))
	assert.Equal(t, board.Empty, s.Board.At(7, 8))
	assert.Equal(t, int64(0), s.CumulativeMS(board.Cross))
	assert.Equal(t, int64(0), s.CumulativeMS(board.Naught))
}

func TestUndoLastPairSingleMove(t *testing.T) {
	s := newTestState(t)
	_, err := s.ApplyMove(MoveInput{Row: 7, Col: 7, WallClockMS: 10})
	require.NoError(t, err)

	require.NoError(t, s.UndoLastPair())
	assert.Equal(t, 0, s.StoneCount())
	assert.Equal(t, board.Cross, s.PlayerToMove)
}

func TestUndoLastPairFailsOnEmptyHistory(t *testing.T) {
	s := newTestState(t)
	err := s.UndoLastPair()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestUndoLastPairClearsTerminalOutcome(t *testing.T) {
	s := newTestState(t)
	moves := []board.Pos{
		{Row: 5, Col: 5}, {Row: 6, Col: 5},
		{Row: 5, Col: 6}, {Row: 6, Col: 6},
		{Row: 5, Col: 7}, {Row: 6, Col: 7},
		{Row: 5, Col: 8}, {Row: 6, Col: 8},
		{Row: 5, Col: 9},
	}
	for _, m := range moves {
		_, err := s.ApplyMove(MoveInput{Row: m.Row, Col: m.Col, WallClockMS: 1})
		require.NoError(t, err)
	}
	require.Equal(t, CrossWin, s.Outcome)

	require.NoError(t, s.UndoLastPair())
	assert.Equal(t, InProgress, s.Outcome)
}
