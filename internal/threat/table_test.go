package threat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdering(t *testing.T) {
	tbl := Get()
	assert.Greater(t, tbl.Score(Five), tbl.Score(StraightFour))
	assert.Greater(t, tbl.Score(StraightFour), tbl.Score(Four))
	assert.Greater(t, tbl.Score(Four), tbl.Score(OpenThree))
	assert.Greater(t, tbl.Score(OpenThree), tbl.Score(Broken))
	assert.Greater(t, tbl.Score(Broken), tbl.Score(Two))
	assert.Greater(t, tbl.Score(Two), tbl.Score(None))
}

func TestGetIsSingleton(t *testing.T) {
	a := Get()
	b := Get()
	assert.Same(t, a, b)
}
