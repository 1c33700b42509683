package alphabeta_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomoku-ai/core/internal/board"
	"github.com/gomoku-ai/core/internal/evaluate"
	"github.com/gomoku-ai/core/internal/match/matchtest"
	"github.com/gomoku-ai/core/internal/searchers"
	"github.com/gomoku-ai/core/internal/searchers/alphabeta"
)

// TestSearchTakesImmediateWin covers spec.md §8 scenario 4: a player one
// stone away from five must play the winning cell even at shallow depth.
func TestSearchTakesImmediateWin(t *testing.T) {
	b := matchtest.BuildBoard([]string{
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		".....XXXX......",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
	})
	mv, score, stats, err := alphabeta.New().WithRadius(2).Search(context.Background(), b, board.Cross, 3, board.Pos{Row: 5, Col: 8}, true)
	require.NoError(t, err)
	assert.True(t, mv == board.Pos{Row: 5, Col: 4} || mv == board.Pos{Row: 5, Col: 9}, "expected a winning completion, got %s", mv)
	assert.GreaterOrEqual(t, score, evaluate.Win)
	assert.Greater(t, stats.Nodes, 0)
}

// TestSearchBlocksOpponentImmediateWin covers spec.md §8 scenario 3: with
// no win of its own available, the mover must block the opponent's open
// four rather than play elsewhere.
func TestSearchBlocksOpponentImmediateWin(t *testing.T) {
	b := matchtest.BuildBoard([]string{
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		".....OOOO......",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
	})
	mv, _, _, err := alphabeta.New().WithRadius(2).Search(context.Background(), b, board.Cross, 3, board.Pos{Row: 5, Col: 8}, true)
	require.NoError(t, err)
	assert.True(t, mv == board.Pos{Row: 5, Col: 4} || mv == board.Pos{Row: 5, Col: 9}, "expected a block, got %s", mv)
}

// TestSearchIsDeterministicWithFixedSeed covers spec.md §8's determinism
// property: with no deadline and the same seed, two searches over
// identical input produce identical output.
func TestSearchIsDeterministicWithFixedSeed(t *testing.T) {
	b := matchtest.BuildBoard([]string{
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		".......X.......",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
	})
	mv1, score1, _, err := alphabeta.New().WithRadius(2).WithSeed(42).Search(context.Background(), b, board.Naught, 2, board.Pos{Row: 7, Col: 7}, true)
	require.NoError(t, err)
	mv2, score2, _, err := alphabeta.New().WithRadius(2).WithSeed(42).Search(context.Background(), b, board.Naught, 2, board.Pos{Row: 7, Col: 7}, true)
	require.NoError(t, err)
	assert.Equal(t, mv1, mv2)
	assert.Equal(t, score1, score2)
}

// TestSearchFirstMoveStaysWithinRing covers spec.md §4.3's first-move
// policy: when the opponent has exactly one stone, the response lands
// within Chebyshev distance {1, 2} of it, bypassing ordinary search.
func TestSearchFirstMoveStaysWithinRing(t *testing.T) {
	b := matchtest.BuildBoard([]string{
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		".......X.......",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
	})
	lone := board.Pos{Row: 7, Col: 7}
	mv, _, stats, err := alphabeta.New().WithSeed(7).Search(context.Background(), b, board.Naught, 3, lone, true)
	require.NoError(t, err)
	d := mv.ChebyshevDistance(lone)
	assert.True(t, d == 1 || d == 2, "expected distance 1 or 2 from lone stone, got %d", d)
	assert.Equal(t, 0, stats.Nodes, "first-move policy should bypass the tree entirely")
}

// TestSearchPicksCenterOnEmptyBoard covers spec.md §8's opening move:
// candidates.Generate collapses to the single center cell, so the search
// returns it with minimal work.
func TestSearchPicksCenterOnEmptyBoard(t *testing.T) {
	b, err := board.New(15)
	require.NoError(t, err)
	mv, _, _, searchErr := alphabeta.New().WithRadius(2).Search(context.Background(), b, board.Cross, 2, board.Pos{}, false)
	require.NoError(t, searchErr)
	assert.Equal(t, board.Pos{Row: 7, Col: 7}, mv)
}

// TestSearchHonorsExpiredDeadline covers spec.md §8 scenario 6: a deadline
// that has already elapsed by the time Search is entered still returns the
// first legal (ordered) candidate rather than erroring or hanging.
func TestSearchHonorsExpiredDeadline(t *testing.T) {
	b := matchtest.BuildBoard([]string{
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		".....XXXX......",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
		"...............",
	})
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	mv, _, stats, err := alphabeta.New().WithRadius(2).Search(ctx, b, board.Cross, 4, board.Pos{Row: 5, Col: 8}, true)
	require.NoError(t, err)
	assert.True(t, stats.DeadlineExceeded)
	// Still the winning completion: it's the first-ordered candidate even
	// with zero search depth actually performed.
	assert.True(t, mv == board.Pos{Row: 5, Col: 4} || mv == board.Pos{Row: 5, Col: 9})
}

// TestSearchReturnsErrNoCandidatesOnFullBoard covers the no-legal-move edge
// case: a completely filled board has nothing left to search.
func TestSearchReturnsErrNoCandidatesOnFullBoard(t *testing.T) {
	b, err := board.New(5)
	require.NoError(t, err)
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			stone := board.Cross
			if (row+col)%2 == 1 {
				stone = board.Naught
			}
			b.Set(row, col, stone)
		}
	}
	_, _, _, searchErr := alphabeta.New().Search(context.Background(), b, board.Cross, 2, board.Pos{}, false)
	assert.ErrorIs(t, searchErr, searchers.ErrNoCandidates)
}
