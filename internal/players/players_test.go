package players

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomoku-ai/core/internal/board"
	"github.com/gomoku-ai/core/internal/match"
)

func TestHumanPlayerAlwaysFails(t *testing.T) {
	var p HumanPlayer
	assert.Equal(t, match.Human, p.Kind())
	_, _, err := p.Decide(context.Background(), nil)
	assert.ErrorIs(t, err, ErrHumanMoveRequired)
}

func TestNewAIPlayerFromConfigRejectsMissingAB(t *testing.T) {
	_, err := NewAIPlayerFromConfig("max_depth=2")
	assert.Error(t, err)
}

func TestNewAIPlayerFromConfigRejectsUnknownParam(t *testing.T) {
	_, err := NewAIPlayerFromConfig("ab,bogus=1")
	assert.Error(t, err)
}

func TestNewAIPlayerFromConfigDefault(t *testing.T) {
	p, err := NewAIPlayerFromConfig("")
	require.NoError(t, err)
	assert.Equal(t, match.AI, p.Kind())
	assert.Equal(t, 3, p.depth)
}

func TestAIPlayerDecidePicksCenterOnEmptyBoard(t *testing.T) {
	p, err := NewAIPlayerFromConfig("ab,max_depth=2,radius=2,seed=7")
	require.NoError(t, err)

	st, err := match.New(15, match.PlayerConfig{Kind: match.AI, SearchDepth: 2}, match.PlayerConfig{Kind: match.AI, SearchDepth: 2}, 2)
	require.NoError(t, err)

	move, _, err := p.Decide(context.Background(), st)
	require.NoError(t, err)
	center := 15 / 2
	assert.Equal(t, board.Pos{Row: center, Col: center}, move)
}
