package api

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/gomoku-ai/core/internal/board"
	"github.com/gomoku-ai/core/internal/match"
)

// MoveEntry is one element of the `moves` array of spec.md §6.1: a single
// object whose one coordinate member's key names both the player and the
// kind that made the move (e.g. `"X (AI)": [7, 7]`), plus `time_ms`. The
// dynamic key means this can't be a plain struct tag, so MoveEntry
// implements json.Marshaler/json.Unmarshaler directly.
type MoveEntry struct {
	Player board.Cell
	Kind   match.Kind
	Row    int
	Col    int
	TimeMS float64
}

func moveKey(player board.Cell, kind match.Kind) string {
	side := "X"
	if player == board.Naught {
		side = "O"
	}
	kindName := "human"
	if kind == match.AI {
		kindName = "AI"
	}
	return side + " (" + kindName + ")"
}

func parseMoveKey(key string) (board.Cell, match.Kind, bool) {
	switch key {
	case "X (human)":
		return board.Cross, match.Human, true
	case "X (AI)":
		return board.Cross, match.AI, true
	case "O (human)":
		return board.Naught, match.Human, true
	case "O (AI)":
		return board.Naught, match.AI, true
	}
	return board.Empty, match.Human, false
}

// MarshalJSON implements json.Marshaler.
func (m MoveEntry) MarshalJSON() ([]byte, error) {
	obj := map[string]any{
		moveKey(m.Player, m.Kind): [2]int{m.Row, m.Col},
		"time_ms":                 m.TimeMS,
	}
	return json.Marshal(obj)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *MoveEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(ErrMalformedRequest, err.Error())
	}

	found := false
	for key, val := range raw {
		if key == "time_ms" {
			if err := json.Unmarshal(val, &m.TimeMS); err != nil {
				return errors.Wrapf(ErrMalformedRequest, "time_ms: %v", err)
			}
			continue
		}
		player, kind, ok := parseMoveKey(key)
		if !ok {
			return errors.Wrapf(ErrMalformedRequest, "unrecognized move key %q", key)
		}
		if found {
			return errors.Wrap(ErrMalformedRequest, "move has more than one coordinate member")
		}
		var coords [2]int
		if err := json.Unmarshal(val, &coords); err != nil {
			return errors.Wrapf(ErrMalformedRequest, "coordinate for %q: %v", key, err)
		}
		m.Player, m.Kind, m.Row, m.Col = player, kind, coords[0], coords[1]
		found = true
	}
	if !found {
		return errors.Wrap(ErrMalformedRequest, "move has no coordinate member")
	}
	return nil
}
