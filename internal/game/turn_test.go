package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turnOf(t *testing.T, throws ...int) *Turn {
	t.Helper()
	tn := NewTurn()
	for _, p := range throws {
		require.NoError(t, tn.AddTry(p))
	}
	return tn
}

func TestTurnKind_IsOf(t *testing.T) {
	assert.True(t, Normal.isOf(nil))
	assert.True(t, Strike.isOf([]int{10}))
	assert.False(t, Strike.isOf([]int{0, 10}))
	assert.True(t, Spare.isOf([]int{0, 10}))
	assert.True(t, Spare.isOf([]int{7, 3}))
	assert.False(t, Spare.isOf([]int{7}))
	assert.False(t, Spare.isOf([]int{4, 5}))
}

func TestTurn_Classification(t *testing.T) {
	assert.Equal(t, Strike, turnOf(t, 10).Kind())
	assert.Equal(t, Spare, turnOf(t, 0, 10).Kind())
	assert.Equal(t, Spare, turnOf(t, 6, 4).Kind())
	assert.Equal(t, Normal, turnOf(t, 6, 3).Kind())
}

func TestTurn_ClassificationNeverReverts(t *testing.T) {
	tn := turnOf(t, 10)
	tn.EnableBonus()
	require.NoError(t, tn.AddTry(3))
	require.NoError(t, tn.AddTry(2))
	assert.Equal(t, Strike, tn.Kind())
}

func TestTurn_NormalScoreIgnoresLookahead(t *testing.T) {
	open := turnOf(t, 1, 2)
	for name, next := range map[string][]*Turn{
		"none":   nil,
		"spare":  {turnOf(t, 5, 5)},
		"strike": {turnOf(t, 10), turnOf(t, 10)},
	} {
		assert.Equal(t, 3, open.Score(next), name)
	}
}

func TestTurn_SpareScore(t *testing.T) {
	for p := 0; p <= 10; p++ {
		spare := turnOf(t, 7, 3)
		assert.Equal(t, 10+p, spare.Score([]*Turn{turnOf(t, p)}), "next throw %d", p)
	}
}

func TestTurn_StrikeScore(t *testing.T) {
	strike := turnOf(t, 10)

	assert.Equal(t, 17, strike.Score([]*Turn{turnOf(t, 3, 4), turnOf(t, 9)}))
	// One throw in the next turn borrows the first throw of the one after.
	assert.Equal(t, 29, strike.Score([]*Turn{turnOf(t, 10), turnOf(t, 9, 0)}))
	// Partial lookahead is summed as-is.
	assert.Equal(t, 20, strike.Score([]*Turn{turnOf(t, 10)}))
	assert.Equal(t, 10, strike.Score(nil))
}

func TestTurn_BonusThrowsAreConsumedFirst(t *testing.T) {
	last := turnOf(t, 10)
	last.EnableBonus()
	require.NoError(t, last.AddTry(10))
	require.NoError(t, last.AddTry(7))
	assert.True(t, last.HasFinished())
	assert.Equal(t, 27, last.Score(nil))
}

func TestTurn_HasFinished(t *testing.T) {
	cases := []struct {
		name   string
		throws []int
		bonus  bool
		want   bool
	}{
		{"empty", nil, false, false},
		{"one open throw", []int{4}, false, false},
		{"two open throws", []int{4, 5}, false, true},
		{"two open throws with bonus", []int{4, 5}, true, true},
		{"strike", []int{10}, false, true},
		{"spare", []int{4, 6}, false, true},
		{"strike with bonus, one throw", []int{10}, true, false},
		{"strike with bonus, two throws", []int{10, 4}, true, false},
		{"strike with bonus, three throws", []int{10, 4, 2}, true, true},
		{"spare with bonus, two throws", []int{4, 6}, true, false},
		{"spare with bonus, three throws", []int{4, 6, 1}, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tn := &Turn{}
			if tc.bonus {
				tn.EnableBonus()
			}
			for _, p := range tc.throws {
				require.NoError(t, tn.AddTry(p))
			}
			assert.Equal(t, tc.want, tn.HasFinished())
		})
	}
}

func TestTurn_AddTryAfterFinished(t *testing.T) {
	for _, tn := range []*Turn{turnOf(t, 10), turnOf(t, 3, 7), turnOf(t, 1, 1)} {
		for _, pins := range []int{0, 1, 10} {
			assert.ErrorIs(t, tn.AddTry(pins), ErrTurnHasFinished)
		}
	}
}

func TestTurn_EnableBonusIsIdempotent(t *testing.T) {
	tn := turnOf(t, 5, 5)
	tn.EnableBonus()
	tn.EnableBonus()
	assert.True(t, tn.BonusEnabled())
	require.NoError(t, tn.AddTry(5))
	assert.True(t, tn.HasFinished())
	assert.ErrorIs(t, tn.AddTry(5), ErrTurnHasFinished)
}
