package game

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roll(t *testing.T, g *Game, throws ...int) {
	t.Helper()
	for i, p := range throws {
		require.NoError(t, g.AddTry(p), "throw %d", i+1)
	}
}

func rollMany(t *testing.T, g *Game, pins, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		require.NoError(t, g.AddTry(pins))
	}
}

func TestGame_OpenFramesSumThrows(t *testing.T) {
	cases := []struct {
		name   string
		throws []int
		want   int
	}{
		{"gutter game", make([]int, 20), 0},
		{"all ones", repeat(1, 20), 20},
		{"mixed opens", []int{1, 2, 3, 4, 5, 4, 0, 9, 8, 1, 7, 2, 6, 3, 2, 2, 0, 0, 4, 5}, 68},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			roll(t, g, tc.throws...)
			require.True(t, g.HasFinished())
			assert.Equal(t, tc.want, g.Score())
			assert.Equal(t, sum(tc.throws), g.Score())
		})
	}
}

func TestGame_AllSpares(t *testing.T) {
	g := New()
	rollMany(t, g, 5, 21)
	require.True(t, g.HasFinished())
	assert.Equal(t, 150, g.Score())
}

func TestGame_PerfectGame(t *testing.T) {
	g := New()
	rollMany(t, g, 10, 12)
	require.True(t, g.HasFinished())
	assert.Equal(t, 300, g.Score())
	assert.Equal(t, 10, g.Count(Strike))
}

func TestGame_StrikeThrows(t *testing.T) {
	cases := map[string]struct {
		throws []int
		want   int
		turns  int
	}{
		"perfect":            {repeat(10, 12), 12, 10},
		"tenth strike 3 7":   {append(repeat(10, 10), 3, 7), 10, 10},
		"tenth triple":       {append(repeat(0, 18), 10, 10, 10), 3, 1},
		"spare then bonus X": {append(repeat(0, 18), 4, 6, 10), 1, 0},
		"ten after gutter":   {append(repeat(0, 18), 0, 10, 0), 0, 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			g, err := Replay("", tc.throws)
			require.NoError(t, err)
			require.True(t, g.HasFinished())
			assert.Equal(t, tc.want, g.StrikeThrows())
			assert.Equal(t, tc.turns, g.Count(Strike))
		})
	}
}

func TestGame_SpareCountsNextThrow(t *testing.T) {
	g := New()
	roll(t, g, 3, 7, 3)
	rollMany(t, g, 0, 17)
	require.True(t, g.HasFinished())
	assert.Equal(t, 16, g.Score())
}

func TestGame_StrikeCountsNextTwoThrows(t *testing.T) {
	g := New()
	roll(t, g, 10, 3, 4)
	rollMany(t, g, 0, 16)
	require.True(t, g.HasFinished())
	assert.Equal(t, 24, g.Score())
}

func TestGame_HasFinishedOnlyAfterTenTurns(t *testing.T) {
	g := New()
	for i := 0; i < 9; i++ {
		roll(t, g, 1, 1)
		assert.False(t, g.HasFinished(), "after turn %d", i+1)
	}
	require.NoError(t, g.AddTry(1))
	assert.False(t, g.HasFinished())
	require.NoError(t, g.AddTry(1))
	assert.True(t, g.HasFinished())
	assert.Equal(t, StateFinished, g.State())
}

func TestGame_TenthTurnBonus(t *testing.T) {
	t.Run("normal tenth ends at two throws", func(t *testing.T) {
		g := New()
		rollMany(t, g, 0, 18)
		roll(t, g, 4, 5)
		assert.True(t, g.HasFinished())
		assert.Equal(t, 9, g.Score())
	})

	t.Run("spare tenth gets exactly one bonus throw", func(t *testing.T) {
		g := New()
		rollMany(t, g, 0, 18)
		roll(t, g, 4, 6)
		assert.False(t, g.HasFinished())
		assert.Equal(t, StateAwaitingBonus, g.State())
		roll(t, g, 7)
		assert.True(t, g.HasFinished())
		assert.Equal(t, 17, g.Score())
		assert.Len(t, g.Turns(), MaxTurns)
	})

	t.Run("strike tenth gets exactly two bonus throws", func(t *testing.T) {
		g := New()
		rollMany(t, g, 0, 18)
		roll(t, g, 10)
		assert.Equal(t, StateAwaitingBonus, g.State())
		roll(t, g, 10)
		assert.False(t, g.HasFinished())
		roll(t, g, 3)
		assert.True(t, g.HasFinished())
		assert.Equal(t, 23, g.Score())
		assert.Equal(t, []int{10, 10, 3}, g.Turns()[9].Throws())
	})
}

func TestGame_AddTryAfterFinished(t *testing.T) {
	g := New()
	rollMany(t, g, 0, 20)
	for _, pins := range []int{0, 5, 10} {
		err := g.AddTry(pins)
		assert.ErrorIs(t, err, ErrGameHasFinished)
	}
	assert.Equal(t, 0, g.Score())
}

func TestGame_ScoreIsIdempotent(t *testing.T) {
	g := New()
	roll(t, g, 10, 7, 3, 9, 0, 10, 0, 8, 8, 2, 0, 6, 10, 10, 10, 8, 1)
	require.True(t, g.HasFinished())
	first := g.Score()
	assert.Equal(t, 167, first)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, g.Score())
	}
}

func TestGame_PinsStanding(t *testing.T) {
	g := New()
	assert.Equal(t, 10, g.PinsStanding())
	roll(t, g, 3)
	assert.Equal(t, 7, g.PinsStanding())
	roll(t, g, 4)
	assert.Equal(t, 10, g.PinsStanding())

	rollMany(t, g, 0, 16)
	roll(t, g, 10)
	assert.Equal(t, 10, g.PinsStanding())
	roll(t, g, 6)
	assert.Equal(t, 4, g.PinsStanding())
	roll(t, g, 4)
	assert.Equal(t, 0, g.PinsStanding())
}

func TestGame_Frames(t *testing.T) {
	g := New()
	roll(t, g, 10, 7, 3, 4)

	want := []Frame{
		{Number: 1, Throws: []int{10}, Kind: Strike, Score: 20, Total: intp(20), Resolved: true},
		{Number: 2, Throws: []int{7, 3}, Kind: Spare, Score: 14, Total: intp(34), Resolved: true},
		{Number: 3, Throws: []int{4}, Kind: Normal, Score: 4, Resolved: false},
	}
	if diff := cmp.Diff(want, g.Frames()); diff != "" {
		t.Errorf("Frames() mismatch (-want +got):\n%s", diff)
	}
}

func TestGame_FramesStopTotalsAtUnresolved(t *testing.T) {
	g := New()
	roll(t, g, 10, 10)

	frames := g.Frames()
	require.Len(t, frames, 2)
	assert.Nil(t, frames[0].Total)
	assert.False(t, frames[0].Resolved)
	assert.Nil(t, frames[1].Total)
}

func TestReplay(t *testing.T) {
	g, err := Replay("abc", repeat(10, 12))
	require.NoError(t, err)
	assert.Equal(t, "abc", g.ID)
	assert.Equal(t, 300, g.Score())
	assert.Equal(t, repeat(10, 12), g.Throws())

	_, err = Replay("", repeat(10, 13))
	assert.True(t, errors.Is(err, ErrGameHasFinished))
}

func TestValidatePins(t *testing.T) {
	assert.NoError(t, ValidatePins(0, 10))
	assert.NoError(t, ValidatePins(7, 7))
	assert.ErrorIs(t, ValidatePins(-1, 10), ErrInvalidPins)
	assert.ErrorIs(t, ValidatePins(8, 7), ErrInvalidPins)
	assert.ErrorIs(t, ValidatePins(11, 10), ErrInvalidPins)
}

func repeat(pins, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = pins
	}
	return out
}

func intp(v int) *int { return &v }
