package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtentIndexRoundTrip(t *testing.T) {
	e := NewExtent(5, 3)
	assert.Equal(t, 15, e.Len())
	for y := 0; y < e.H; y++ {
		for x := 0; x < e.W; x++ {
			gx, gy := e.Coords(e.Index(x, y))
			assert.Equal(t, [2]int{x, y}, [2]int{gx, gy})
		}
	}
	assert.True(t, e.Contains(4, 2))
	assert.False(t, e.Contains(5, 0))
	assert.False(t, e.Contains(0, -1))
	assert.Equal(t, Extent{W: 1, H: 1}, NewExtent(0, -2))
}

func TestExtentWrap(t *testing.T) {
	e := NewExtent(4, 3)
	x, y := e.Wrap(-1, 3)
	assert.Equal(t, 3, x)
	assert.Equal(t, 0, y)
	x, y = e.Wrap(9, -4)
	assert.Equal(t, 1, x)
	assert.Equal(t, 2, y)
}

func TestWrapDelta(t *testing.T) {
	cases := []struct{ d, n, want int }{
		{0, 10, 0},
		{3, 10, 3},
		{7, 10, -3},
		{-7, 10, 3},
		{5, 10, 5},
		{12, 10, 2},
		{4, 0, 4},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, WrapDelta(c.d, c.n), "WrapDelta(%d, %d)", c.d, c.n)
	}
}

func TestNewRandIsDeterministic(t *testing.T) {
	a, b := NewRand(9), NewRand(9)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, NewRand(9).Uint64(), NewRand(10).Uint64())
}

func TestPickAndChance(t *testing.T) {
	r := NewRand(1)
	before := NewRand(1).Uint64()
	assert.Equal(t, "only", Pick(r, []string{"only"}))
	assert.Equal(t, before, r.Uint64(), "single choice draws nothing")

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		seen[Pick(r, []int{1, 2, 3})] = true
	}
	assert.Len(t, seen, 3)

	assert.True(t, Chance(r, 1))
	assert.False(t, Chance(r, 0))
	assert.False(t, Chance(r, -0.5))
}

func TestFixedStep(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }

	assert.True(t, fs.ShouldStep(), "first poll steps immediately")
	assert.False(t, fs.ShouldStep())
	now = now.Add(50 * time.Millisecond)
	assert.False(t, fs.ShouldStep())
	now = now.Add(50 * time.Millisecond)
	assert.True(t, fs.ShouldStep())

	fs.SetRate(0)
	assert.Equal(t, 60, fs.Rate())
	fs.SetRate(20)
	fs.Reset()
	assert.False(t, fs.ShouldStep())
	now = now.Add(50 * time.Millisecond)
	assert.True(t, fs.ShouldStep())
}

type stubSim struct{ name string }

func (s stubSim) Name() string   { return s.name }
func (s stubSim) Size() Size     { return Size{W: 1, H: 1} }
func (s stubSim) Reset(int64)    {}
func (s stubSim) Step()          {}
func (s stubSim) Done() bool     { return true }
func (s stubSim) Paint(b []byte) {}

func TestRegistry(t *testing.T) {
	Register("zz-test", func(map[string]string) Sim { return stubSim{name: "zz-test"} })
	Register("", func(map[string]string) Sim { return nil })
	Register("zz-nil", nil)
	t.Cleanup(func() { delete(sims, "zz-test") })

	f, ok := Sims()["zz-test"]
	require.True(t, ok)
	assert.Equal(t, "zz-test", f(nil).Name())
	assert.NotContains(t, Sims(), "")
	assert.NotContains(t, Sims(), "zz-nil")
	names := SimNames()
	assert.Equal(t, "zz-test", names[len(names)-1])
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{IntParam("w", "Width", 3), BoolParam("on", "On", true)}},
		{Name: "b", Params: []Parameter{FloatParam("kt", "kT", 0.25), Int64Param("seed", "Seed", -4)}},
	}}
	p, ok := snap.Lookup("kt")
	require.True(t, ok)
	assert.Equal(t, "0.25", p.Value)
	assert.Equal(t, ParamTypeFloat, p.Type)
	p, _ = snap.Lookup("seed")
	assert.Equal(t, "-4", p.Value)
	p, _ = snap.Lookup("on")
	assert.Equal(t, "true", p.Value)
	_, ok = snap.Lookup("missing")
	assert.False(t, ok)
}
