// Package api implements the JSON decision request/response boundary of
// spec.md §6.1: translate a request into a match.State, invoke the
// search when the seat due to move is an AI seat, and serialize the
// updated state back. New to this repo (the teacher has no JSON API), but its
// error-wrapping and logging style follow the teacher's internal/match
// and internal/searchers idioms throughout.
package api

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomoku-ai/core/internal/board"
	"github.com/gomoku-ai/core/internal/match"
	"github.com/gomoku-ai/core/internal/players"
)

// MaxDepth and MaxRadius are the hard caps the boundary enforces on
// untrusted callers, per spec.md §4.3 and §3.
const (
	MaxDepth  = 6
	MaxRadius = 4
)

// Sentinel errors, matching the taxonomy of spec.md §7.
var (
	ErrMalformedRequest = errors.New("malformed request")
	ErrInconsistent     = errors.New("inconsistent request")
)

// SeatConfig is the per-player "X"/"O" object of spec.md §6.1.
type SeatConfig struct {
	Player string  `json:"player"`
	Depth  int     `json:"depth,omitempty"`
	TimeMS float64 `json:"time_ms,omitempty"`
}

// GameState is the decision request/response shape of spec.md §6.1 — the
// request and the response share one Go type, since the response is
// always "the request, updated".
type GameState struct {
	X          SeatConfig  `json:"X"`
	O          SeatConfig  `json:"O"`
	Board      int         `json:"board,omitempty"`
	Radius     int         `json:"radius,omitempty"`
	Timeout    string      `json:"timeout,omitempty"`
	Winner     string      `json:"winner,omitempty"`
	BoardState []string    `json:"board_state,omitempty"`
	Moves      []MoveEntry `json:"moves,omitempty"`
}

// Request and Response name the two directions of the same GameState
// shape, so call sites read naturally.
type (
	Request  = GameState
	Response = GameState
)

// ErrorResponse is the `{"error": "<description>"}` shape of spec.md §7.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handle implements the server behavior of spec.md §6.1 steps 1-5: it
// validates the request, replays history into a match.State, and either
// echoes the input (winner already decided), defers to the caller (the
// seat to move is human and hasn't moved yet), or runs the search and
// appends the chosen move.
func Handle(ctx context.Context, req *Request) (*Response, error) {
	size := req.Board
	if size == 0 {
		size = 19
	}
	if size != 15 && size != 19 {
		return nil, errors.Wrapf(ErrMalformedRequest, "board must be 15 or 19, got %d", size)
	}

	radius := req.Radius
	if radius == 0 {
		radius = 2
	}
	if radius > MaxRadius {
		radius = MaxRadius
	}
	if radius < 1 {
		radius = 1
	}

	if isDecidedWinner(req.Winner) {
		echo := *req
		echo.Board = size
		echo.Radius = radius
		return &echo, nil
	}

	xCfg, err := seatConfig(req.X)
	if err != nil {
		return nil, err
	}
	oCfg, err := seatConfig(req.O)
	if err != nil {
		return nil, err
	}

	st, err := match.New(size, xCfg, oCfg, radius)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedRequest, err.Error())
	}
	if err := replayMoves(st, req.Moves); err != nil {
		return nil, err
	}

	resp := &Response{
		X:       req.X,
		O:       req.O,
		Board:   size,
		Radius:  radius,
		Timeout: req.Timeout,
		Moves:   req.Moves,
	}

	if st.Outcome != match.InProgress {
		finalize(resp, st)
		return resp, nil
	}

	mover := st.PlayerToMove
	moverCfg := st.Config(mover)
	if moverCfg.Kind == match.Human {
		// The human hasn't moved yet; nothing for the core to decide.
		finalize(resp, st)
		return resp, nil
	}

	player, err := players.ForKind(moverCfg, st.SearchRadius)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedRequest, err.Error())
	}

	searchCtx := ctx
	if deadline, ok, err := parseTimeout(req.Timeout); err != nil {
		return nil, err
	} else if ok {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	start := time.Now()
	move, stats, err := player.Decide(searchCtx, st)
	elapsedMS := float64(time.Since(start).Milliseconds())
	if err != nil {
		return nil, errors.Wrap(err, "search failed")
	}

	if _, err := st.ApplyMove(match.MoveInput{
		Row:                move.Row,
		Col:                move.Col,
		WallClockMS:        int64(elapsedMS),
		PositionsEvaluated: stats.Nodes,
	}); err != nil {
		return nil, errors.Wrap(ErrInconsistent, err.Error())
	}

	resp.Moves = append(append([]MoveEntry{}, req.Moves...), MoveEntry{
		Player: mover,
		Kind:   moverCfg.Kind,
		Row:    move.Row,
		Col:    move.Col,
		TimeMS: elapsedMS,
	})
	klog.V(1).Infof("api: move %d (%s) played at (%d,%d), outcome=%s", len(resp.Moves), mover, move.Row, move.Col, st.Outcome)
	finalize(resp, st)
	return resp, nil
}

func finalize(resp *Response, st *match.State) {
	resp.Winner = winnerString(st.Outcome)
	resp.BoardState = renderBoardState(st.Board)
	resp.X.TimeMS = float64(st.CumulativeMS(board.Cross))
	resp.O.TimeMS = float64(st.CumulativeMS(board.Naught))
}

func isDecidedWinner(w string) bool {
	return w != "" && w != "none"
}

func seatConfig(c SeatConfig) (match.PlayerConfig, error) {
	var kind match.Kind
	switch c.Player {
	case "human":
		kind = match.Human
	case "AI":
		kind = match.AI
	default:
		return match.PlayerConfig{}, errors.Wrapf(ErrMalformedRequest, "invalid player kind %q, want \"human\" or \"AI\"", c.Player)
	}
	depth := c.Depth
	if depth <= 0 {
		depth = 1
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}
	return match.PlayerConfig{Kind: kind, SearchDepth: depth}, nil
}

func parseTimeout(timeout string) (time.Duration, bool, error) {
	if timeout == "" || timeout == "none" {
		return 0, false, nil
	}
	secs, err := strconv.ParseFloat(timeout, 64)
	if err != nil {
		return 0, false, errors.Wrapf(ErrMalformedRequest, "invalid timeout %q", timeout)
	}
	return time.Duration(secs * float64(time.Second)), true, nil
}

func replayMoves(st *match.State, moves []MoveEntry) error {
	for i, m := range moves {
		if m.Player != st.PlayerToMove {
			return errors.Wrapf(ErrInconsistent, "move %d: expected %s to move, got %s", i, st.PlayerToMove, m.Player)
		}
		if _, err := st.ApplyMove(match.MoveInput{Row: m.Row, Col: m.Col, WallClockMS: int64(m.TimeMS)}); err != nil {
			return errors.Wrapf(ErrInconsistent, "move %d at (%d,%d): %v", i, m.Row, m.Col, err)
		}
	}
	return nil
}

func winnerString(o match.Outcome) string {
	switch o {
	case match.CrossWin:
		return "X"
	case match.NaughtWin:
		return "O"
	case match.Draw:
		return "draw"
	default:
		return "none"
	}
}

func renderBoardState(b *board.Board) []string {
	rows := make([]string, b.Size)
	for row := 0; row < b.Size; row++ {
		var sb strings.Builder
		for col := 0; col < b.Size; col++ {
			sb.WriteString(b.At(row, col).String())
		}
		rows[row] = sb.String()
	}
	return rows
}
