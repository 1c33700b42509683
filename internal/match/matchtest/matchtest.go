// Package matchtest provides helpers for building boards and states from
// literal layouts in tests, grounded on
// internal/state/statetest/statetest.go's BuildBoard helper.
package matchtest

import (
	"strings"

	"github.com/gomoku-ai/core/internal/board"
	"github.com/gomoku-ai/core/internal/match"
)

// BuildBoard parses rows of 'X', 'O' and '.' into a Board. Every row must
// have the same length, which becomes the board's size.
func BuildBoard(rows []string) *board.Board {
	size := len(rows)
	b, err := board.New(size)
	if err != nil {
		panic(err)
	}
	for row, line := range rows {
		if len(line) != size {
			panic("matchtest.BuildBoard: row length must equal row count")
		}
		for col, ch := range line {
			switch ch {
			case 'X':
				b.Set(row, col, board.Cross)
			case 'O':
				b.Set(row, col, board.Naught)
			case '.':
				// leave empty
			default:
				panic("matchtest.BuildBoard: unrecognized rune " + string(ch))
			}
		}
	}
	return b
}

// BuildState wraps BuildBoard's result into a match.State via
// match.NewFromBoard, with PlayerToMove set explicitly by the caller (since
// a literal layout can't imply whose turn it is). Both seats keep the zero
// match.PlayerConfig (Kind Human, SearchDepth 0).
func BuildState(rows []string, toMove board.Cell) *match.State {
	return match.NewFromBoard(BuildBoard(rows), toMove, 2)
}

// RowsFromString splits a multi-line literal (as written in a test source
// file, one board row per line) into the []string BuildBoard expects,
// dropping every blank line.
func RowsFromString(layout string) []string {
	lines := strings.Split(strings.Trim(layout, "\n"), "\n")
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		rows = append(rows, l)
	}
	return rows
}
