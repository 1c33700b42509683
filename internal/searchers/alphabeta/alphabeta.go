// Package alphabeta implements depth-limited minimax with fail-hard
// alpha-beta pruning over the Gomoku candidate set, structurally grounded
// on internal/searchers/alphabeta/alphabeta.go (the Searcher struct,
// fluent With... configuration, Stats bookkeeping, context-deadline
// threaded through recursion) generalized from Hive's action/board model
// to Gomoku's (row, col) moves on a mutated-then-restored shared board.
package alphabeta

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"k8s.io/klog/v2"

	"github.com/gomoku-ai/core/internal/board"
	"github.com/gomoku-ai/core/internal/candidates"
	"github.com/gomoku-ai/core/internal/evaluate"
	"github.com/gomoku-ai/core/internal/searchers"
)

// Searcher implements searchers.Searcher using alpha-beta pruned minimax.
type Searcher struct {
	radius int
	rng    *rand.Rand
}

var _ searchers.Searcher = (*Searcher)(nil)

// New returns an alpha-beta Searcher with the default candidate radius of
// 2, matching spec.md §6.1's default.
func New() *Searcher {
	return &Searcher{
		radius: 2,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// WithRadius sets the Chebyshev radius passed to the candidate generator
// at every node.
func (ab *Searcher) WithRadius(radius int) *Searcher {
	if radius < 1 {
		radius = 1
	}
	ab.radius = radius
	return ab
}

// WithSeed fixes the random source used by the first-move policy, so that
// search determinism (spec.md §8: "with no deadline and a fixed seed ...
// two searches on identical input produce identical output") can be
// tested deterministically.
func (ab *Searcher) WithSeed(seed uint64) *Searcher {
	ab.rng = rand.New(rand.NewPCG(seed, seed))
	return ab
}

// Search implements searchers.Searcher.
func (ab *Searcher) Search(ctx context.Context, b *board.Board, player board.Cell, depth int, lastMove board.Pos, hasLastMove bool) (board.Pos, int, searchers.Stats, error) {
	if depth < 1 {
		depth = 1
	}

	if mv, ok := ab.firstMovePolicy(b, player); ok {
		klog.V(2).Infof("alphabeta: first-move policy picked %s", mv)
		return mv, 0, searchers.Stats{}, nil
	}

	cands := candidates.Generate(b, ab.radius)
	if len(cands) == 0 {
		return board.Pos{}, 0, searchers.Stats{}, searchers.ErrNoCandidates
	}

	stats := &searchers.Stats{DepthReached: depth}
	ordered := orderMoves(b, cands, player, lastMove, hasLastMove)

	alpha, beta := -math.MaxInt32, math.MaxInt32
	bestScore := -math.MaxInt32
	bestIdx := 0

	for i, mv := range ordered {
		if deadlineExpired(ctx) {
			stats.DeadlineExceeded = true
			break
		}

		b.Set(mv.Row, mv.Col, player)
		stats.Nodes++
		var score int
		switch {
		case b.FormsExactlyFive(mv.Row, mv.Col, player):
			score = evaluate.Win + depth
		case depth <= 1:
			score = evaluate.ScorePosition(b, player)
			stats.Evals++
		default:
			score = -ab.recurse(ctx, b, player.Opponent(), depth-1, -beta, -alpha, mv, stats)
		}
		b.Set(mv.Row, mv.Col, board.Empty)

		if i == 0 || score > bestScore {
			bestScore = score
			bestIdx = i
		}
		if bestScore > alpha {
			alpha = bestScore
		}
		if alpha >= beta {
			stats.Prunes++
			break
		}
		if bestScore >= evaluate.Win {
			// Already found a forced win; no sibling can be better.
			break
		}
	}

	klog.V(2).Infof("alphabeta: depth=%d nodes=%d evals=%d prunes=%d deadline=%v",
		depth, stats.Nodes, stats.Evals, stats.Prunes, stats.DeadlineExceeded)
	return ordered[bestIdx], bestScore, *stats, nil
}

// recurse searches depthLeft plies from player's perspective, returning a
// score from player's point of view (negamax convention, matching the
// sign-flip convention board.Cell already carries).
func (ab *Searcher) recurse(ctx context.Context, b *board.Board, player board.Cell, depthLeft int, alpha, beta int, lastMove board.Pos, stats *searchers.Stats) int {
	if deadlineExpired(ctx) {
		return evaluate.ScorePosition(b, player)
	}

	cands := candidates.Generate(b, ab.radius)
	if len(cands) == 0 {
		return 0 // Terminal: no candidates left, treat as a draw.
	}

	ordered := orderMoves(b, cands, player, lastMove, true)
	best := -math.MaxInt32
	for _, mv := range ordered {
		if deadlineExpired(ctx) {
			break
		}

		b.Set(mv.Row, mv.Col, player)
		stats.Nodes++
		var score int
		switch {
		case b.FormsExactlyFive(mv.Row, mv.Col, player):
			score = evaluate.Win + depthLeft
		case depthLeft <= 1:
			score = evaluate.ScorePosition(b, player)
			stats.Evals++
		default:
			score = -ab.recurse(ctx, b, player.Opponent(), depthLeft-1, -beta, -alpha, mv, stats)
		}
		b.Set(mv.Row, mv.Col, board.Empty)

		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			stats.Prunes++
			break
		}
	}
	return best
}

func deadlineExpired(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// orderMoves ranks candidates per spec.md §4.3's four-rule priority:
// immediate own win, block of an immediate opponent win, score_at plus a
// blocking bonus, and proximity to the last move as a tie-break.
func orderMoves(b *board.Board, cands []board.Pos, player board.Cell, lastMove board.Pos, hasLastMove bool) []board.Pos {
	opponent := player.Opponent()
	type ranked struct {
		pos board.Pos
		key int64
	}
	out := make([]ranked, len(cands))
	for i, c := range cands {
		switch {
		case wouldWin(b, c, player):
			out[i] = ranked{c, 1 << 48}
			continue
		case wouldWin(b, c, opponent):
			out[i] = ranked{c, 1 << 47}
			continue
		}
		own := evaluate.ScoreAt(b, player, c.Row, c.Col)
		block := evaluate.ScoreAt(b, opponent, c.Row, c.Col)
		key := (int64(own) + int64(block)) << 8
		if hasLastMove {
			key -= int64(c.ChebyshevDistance(lastMove))
		}
		out[i] = ranked{c, key}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key > out[j].key })

	moves := make([]board.Pos, len(out))
	for i, r := range out {
		moves[i] = r.pos
	}
	return moves
}

// wouldWin reports whether placing player at p would complete an
// exactly-five run, without leaving a permanent mark on the board.
func wouldWin(b *board.Board, p board.Pos, player board.Cell) bool {
	b.Set(p.Row, p.Col, player)
	win := b.FormsExactlyFive(p.Row, p.Col, player)
	b.Set(p.Row, p.Col, board.Empty)
	return win
}

// firstMovePolicy implements spec.md §4.3's "opponent has exactly one
// stone" rule: pick uniformly at random among empty cells whose Chebyshev
// distance from that stone is in {1, 2}, bypassing the search entirely.
// The "center on an empty board" half of the same policy needs no special
// case here: candidates.Generate already returns the singleton center cell
// on an empty board, so the ordinary search path picks it as the only root
// candidate (still searching the replies below it when depth > 1).
func (ab *Searcher) firstMovePolicy(b *board.Board, player board.Cell) (board.Pos, bool) {
	if b.StoneCount() != 1 {
		return board.Pos{}, false
	}

	var lone board.Pos
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if c := b.At(row, col); c != board.Empty {
				if c == player {
					// The lone stone is ours, not the opponent's: this
					// isn't our first move, it's theirs next.
					return board.Pos{}, false
				}
				lone = board.Pos{Row: row, Col: col}
			}
		}
	}

	var ring []board.Pos
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.At(row, col) != board.Empty {
				continue
			}
			d := (board.Pos{Row: row, Col: col}).ChebyshevDistance(lone)
			if d == 1 || d == 2 {
				ring = append(ring, board.Pos{Row: row, Col: col})
			}
		}
	}
	if len(ring) == 0 {
		return board.Pos{}, false
	}
	return ring[ab.rng.IntN(len(ring))], true
}
