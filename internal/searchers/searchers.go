// Package searchers defines the move-search contract every search
// algorithm must satisfy, grounded on the teacher's
// internal/searchers.Searcher interface (here narrowed to Gomoku's single
// best-move contract instead of Hive's whole-match scoring surface).
package searchers

import (
	"context"

	"github.com/pkg/errors"

	"github.com/gomoku-ai/core/internal/board"
)

// ErrNoCandidates is returned when the candidate generator yields nothing
// to search — spec.md §4.3: "If the candidate set is empty (full board),
// it reports 'no move; draw'."
var ErrNoCandidates = errors.New("no candidate moves: board full")

// Stats carries the search's own bookkeeping back to the caller, per
// spec.md §4.3's "stats includes positions evaluated". Grounded on the
// teacher's alphabeta.Stats, trimmed to what this spec actually asks for.
type Stats struct {
	Nodes            int
	Evals            int
	Prunes           int
	DepthReached     int
	DeadlineExceeded bool
}

// Searcher is implemented by every move-search algorithm. depth is the
// requesting seat's configured search_depth (spec.md §3); lastMove and
// hasLastMove carry the most recently placed stone, used for the
// proximity tie-break of spec.md §4.3's ordering rule 4 — the board alone
// doesn't remember move order, so the caller (internal/players) supplies
// it from match.State.History.
type Searcher interface {
	Search(ctx context.Context, b *board.Board, player board.Cell, depth int, lastMove board.Pos, hasLastMove bool) (move board.Pos, score int, stats Stats, err error)
}
