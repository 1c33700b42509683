// Package players supplies the human/AI tagged-variant seat abstraction
// spec.md §9 asks for ("treat player kind as a tagged variant per side; do
// not encode it by negative/positive sentinels"), grounded on the
// teacher's players.Player interface and SearcherScorer factory — trimmed
// from Hive's pluggable scorer/searcher registry (this domain has exactly
// one search algorithm) down to a direct alpha-beta wiring.
package players

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomoku-ai/core/internal/board"
	"github.com/gomoku-ai/core/internal/match"
	"github.com/gomoku-ai/core/internal/parameters"
	"github.com/gomoku-ai/core/internal/searchers"
	"github.com/gomoku-ai/core/internal/searchers/alphabeta"
)

// ErrHumanMoveRequired is returned by HumanPlayer.Decide: a human seat's
// move comes from the JSON request, never from Decide.
var ErrHumanMoveRequired = errors.New("human seat requires the move to be supplied by the caller")

// Player is anything able to choose Gomoku's next move for one seat.
type Player interface {
	Kind() match.Kind
	Decide(ctx context.Context, st *match.State) (move board.Pos, stats searchers.Stats, err error)
}

// HumanPlayer is the trivial Player for a human seat: it never searches,
// it only exists so per-seat dispatch (match.PlayerConfig.Kind) always has
// a concrete Player on both sides.
type HumanPlayer struct{}

var _ Player = HumanPlayer{}

// Kind implements Player.
func (HumanPlayer) Kind() match.Kind { return match.Human }

// Decide implements Player; always fails, by design.
func (HumanPlayer) Decide(context.Context, *match.State) (board.Pos, searchers.Stats, error) {
	return board.Pos{}, searchers.Stats{}, ErrHumanMoveRequired
}

// AIPlayer wires a searchers.Searcher and a fixed search depth into a
// Player, grounded on the teacher's SearcherScorer (minus the pluggable
// scorer: this domain's evaluator is internal/evaluate, not swappable).
type AIPlayer struct {
	searcher searchers.Searcher
	depth    int
}

var _ Player = (*AIPlayer)(nil)

// NewAIPlayer wraps an already-configured searcher at a fixed depth.
func NewAIPlayer(searcher searchers.Searcher, depth int) *AIPlayer {
	if depth < 1 {
		depth = 1
	}
	return &AIPlayer{searcher: searcher, depth: depth}
}

// Kind implements Player.
func (p *AIPlayer) Kind() match.Kind { return match.AI }

// Decide runs the search on a cloned board — never the caller's
// match.State — and returns the chosen cell.
func (p *AIPlayer) Decide(ctx context.Context, st *match.State) (board.Pos, searchers.Stats, error) {
	player := st.PlayerToMove
	working := st.Board.Clone()

	var lastMove board.Pos
	hasLastMove := len(st.History) > 0
	if hasLastMove {
		last := st.History[len(st.History)-1]
		lastMove = board.Pos{Row: last.Row, Col: last.Col}
	}

	move, score, stats, err := p.searcher.Search(ctx, working, player, p.depth, lastMove, hasLastMove)
	if err != nil {
		return board.Pos{}, stats, err
	}
	klog.V(1).Infof("players: AI (%s) chose %s, score=%d, nodes=%d", player, move, score, stats.Nodes)
	return move, stats, nil
}

// DefaultAIConfig mirrors the teacher's DefaultPlayerConfig: a
// comma-separated configuration string parsed by internal/parameters.
const DefaultAIConfig = "ab,max_depth=3,radius=2"

// NewAIPlayerFromConfig builds an AIPlayer from a configuration string in
// the teacher's "key,key=value,..." shape (e.g. "ab,max_depth=3,radius=2").
// Only alpha-beta search exists in this domain, so "ab" must be present;
// unknown parameters are rejected once every known one has been popped,
// exactly as the teacher's players.New does.
func NewAIPlayerFromConfig(config string) (*AIPlayer, error) {
	if config == "" {
		config = DefaultAIConfig
	}
	params := parameters.Params(parameters.NewFromConfigString(config))

	isAB, err := parameters.PopParamOr(params, "ab", false)
	if err != nil {
		return nil, err
	}
	if !isAB {
		return nil, errors.Errorf("invalid AI configuration %q: only \"ab\" (alpha-beta) search is implemented", config)
	}

	depth, err := parameters.PopParamOr(params, "max_depth", 3)
	if err != nil {
		return nil, err
	}
	radius, err := parameters.PopParamOr(params, "radius", 2)
	if err != nil {
		return nil, err
	}
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}

	if len(params) > 0 {
		leftover := make([]string, 0, len(params))
		for k := range params {
			leftover = append(leftover, k)
		}
		return nil, errors.Errorf("unknown AI parameters \"%s\" passed", strings.Join(leftover, "\", \""))
	}

	searcher := alphabeta.New().WithRadius(radius)
	if seed != 0 {
		searcher = searcher.WithSeed(uint64(seed))
	}
	return NewAIPlayer(searcher, depth), nil
}

// ForKind returns the Player for a seat given its match.PlayerConfig and the
// match's candidate radius (match.State.SearchRadius): a HumanPlayer for
// Human, or an AIPlayer configured with the seat's depth and that radius
// for AI. radius must already be validated/capped by the caller (the JSON
// boundary enforces api.MaxRadius before building the match.State).
func ForKind(cfg match.PlayerConfig, radius int) (Player, error) {
	if cfg.Kind == match.Human {
		return HumanPlayer{}, nil
	}
	depth := cfg.SearchDepth
	if depth < 1 {
		depth = 1
	}
	searcher := alphabeta.New().WithRadius(radius)
	return NewAIPlayer(searcher, depth), nil
}
