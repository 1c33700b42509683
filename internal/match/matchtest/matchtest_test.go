package matchtest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gomoku-ai/core/internal/board"
)

func TestBuildBoard(t *testing.T) {
	b := BuildBoard([]string{
		".....",
		".XO..",
		".....",
		".....",
		".....",
	})
	assert.Equal(t, board.Cross, b.At(1, 1))
	assert.Equal(t, board.Naught, b.At(1, 2))
	assert.Equal(t, board.Empty, b.At(0, 0))
}

func TestBuildStateInfersStoneCount(t *testing.T) {
	s := BuildState([]string{
		".....",
		".XO..",
		".....",
		".....",
		".....",
	}, board.Cross)
	assert.Equal(t, 2, s.StoneCount())
}
