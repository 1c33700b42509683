// Package evaluate scores a Gomoku position for a given player: win
// detection (exactly five, overline excluded) and the axis-window threat
// scan used to rank candidate moves.
//
// The scan shape (per-axis left/right run counts, open-end checks) is
// grounded on heuristicForMove/countDirection in the gomoku reference
// scorer (other_examples TheKrainBow-gomoku ai_scoring.go), adapted from
// that file's float64 capture-aware scoring to the integer, capture-free
// contract of spec.md §4.1.
package evaluate

import (
	"github.com/gomoku-ai/core/internal/board"
	"github.com/gomoku-ai/core/internal/threat"
)

// Win mirrors threat.Win: the signed score returned for a detected win.
const Win = threat.Win

// IsWinner reports whether `player` has an exactly-five run anywhere on
// the board (overline excluded). Implements spec.md §4.4's `is_winner`.
func IsWinner(b *board.Board, player board.Cell) bool {
	return b.HasExactlyFiveAnywhere(player)
}

// ScorePosition scores the whole board for forPlayer: positive favors
// forPlayer, negative favors the opponent. Returns ±Win on a detected win
// for either side; otherwise, summed over every empty cell adjacent
// (Chebyshev distance 1) to an existing stone, forPlayer's ScoreAt minus
// the opponent's ScoreAt (a full NxN scan would waste time scoring cells
// nobody will ever consider, per the candidate generator's rationale in
// spec.md §4.2).
func ScorePosition(b *board.Board, forPlayer board.Cell) int {
	opponent := forPlayer.Opponent()
	if IsWinner(b, forPlayer) {
		return Win
	}
	if IsWinner(b, opponent) {
		return -Win
	}

	total := 0
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.At(row, col) != board.Empty {
				continue
			}
			if !nearStone(b, row, col) {
				continue
			}
			total += ScoreAt(b, forPlayer, row, col)
			total -= ScoreAt(b, opponent, row, col)
		}
	}
	return total
}

func nearStone(b *board.Board, row, col int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.At(row+dr, col+dc) != board.Empty {
				return true
			}
		}
	}
	return false
}

// ScoreAt returns the value of placing `player` at the empty cell
// (row, col): the sum, over the four axes, of the named-threat score the
// resulting run would classify as.
func ScoreAt(b *board.Board, player board.Cell, row, col int) int {
	tbl := threat.Get()
	total := 0
	for _, axis := range board.Axes {
		total += tbl.Score(classifyAxis(b, row, col, axis, player))
	}
	return total
}

// classifyAxis inspects the window around (row, col) along one axis
// direction (and its mirror) as if `player` had just been placed there,
// and returns the strongest named threat it forms.
func classifyAxis(b *board.Board, row, col int, axis board.Pos, player board.Cell) threat.Type {
	left := runInfo(b, row, col, -axis.Row, -axis.Col, player)
	right := runInfo(b, row, col, axis.Row, axis.Col, player)

	total := left.count + right.count + 1
	openEnds := 0
	if left.open {
		openEnds++
	}
	if right.open {
		openEnds++
	}

	switch {
	case total >= 5:
		return threat.Five
	case total == 4 && openEnds == 2:
		return threat.StraightFour
	case total == 4 && openEnds >= 1:
		return threat.Four
	case total == 3 && openEnds == 2:
		return threat.OpenThree
	case total == 3 && openEnds >= 1:
		return threat.Broken
	case total == 2 && openEnds >= 1:
		return threat.Two
	}

	// A gapped pattern (the placed stone, one empty cell right beside it,
	// then two or more own stones) is still a broken three in the making —
	// check it on either side whose adjacent cell is blank, but only when
	// the direct run alone didn't already classify above.
	if gapExtends(b, row, col, axis, player) {
		return threat.Broken
	}
	return threat.None
}

type runEnd struct {
	count int  // consecutive same-color stones extending this way
	open  bool // the cell right after the run is empty (extendable)
}

func runInfo(b *board.Board, row, col, dRow, dCol int, player board.Cell) runEnd {
	count := b.RunLength(row, col, dRow, dCol, player)
	nr := row + dRow*(count+1)
	nc := col + dCol*(count+1)
	return runEnd{count: count, open: b.At(nr, nc) == board.Empty}
}

// gapExtends checks for a one-gap continuation on either side, e.g.
// `_ X . X X _` around the placement point: a pattern real engines treat
// as a broken three even though neither direct run reaches three alone.
func gapExtends(b *board.Board, row, col int, axis board.Pos, player board.Cell) bool {
	for _, dir := range [2]int{1, -1} {
		dRow, dCol := axis.Row*dir, axis.Col*dir
		r1, c1 := row+dRow, col+dCol
		if b.At(r1, c1) != board.Empty {
			continue
		}
		r2, c2 := r1+dRow, c1+dCol
		if b.At(r2, c2) != player {
			continue
		}
		// Found own stone one gap away; count how many more follow.
		tail := b.RunLength(r2, c2, dRow, dCol, player)
		if 1+tail >= 2 {
			return true
		}
	}
	return false
}
