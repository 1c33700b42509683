// Package candidates enumerates the "interesting" empty cells the search
// should consider: those within a Chebyshev radius of an existing stone,
// so the search never has to scan a mostly-irrelevant empty board.
//
// Grounded on collectCandidateMoves (other_examples TheKrainBow-gomoku
// ai_scoring.go): a seen-bitset ring scan around every occupied cell, with
// a center-only fallback for an empty board.
package candidates

import "github.com/gomoku-ai/core/internal/board"

// Generate returns every empty cell within Chebyshev distance radius of at
// least one occupied cell (spec.md §4.2). On an empty board it returns
// exactly the center cell. Order is unspecified; internal/searchers
// applies its own ordering.
func Generate(b *board.Board, radius int) []board.Pos {
	if radius < 1 {
		radius = 1
	}
	if b.StoneCount() == 0 {
		center := b.Size / 2
		return []board.Pos{{Row: center, Col: center}}
	}

	seen := make([]bool, b.Size*b.Size)
	out := make([]board.Pos, 0, 32)
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.At(row, col) == board.Empty {
				continue
			}
			for dr := -radius; dr <= radius; dr++ {
				for dc := -radius; dc <= radius; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					nr, nc := row+dr, col+dc
					if !b.InBounds(nr, nc) || b.At(nr, nc) != board.Empty {
						continue
					}
					idx := nr*b.Size + nc
					if seen[idx] {
						continue
					}
					seen[idx] = true
					out = append(out, board.Pos{Row: nr, Col: nc})
				}
			}
		}
	}
	return out
}
