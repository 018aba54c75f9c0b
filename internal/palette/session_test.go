package palette

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/harmony"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s := New(harmony.New(rand.New(rand.NewPCG(7, 11))))
	require.NoError(t, s.Generate(GenerateOptions{}))
	return s
}

func TestGenerate_Defaults(t *testing.T) {
	s := newSession(t)
	assert.Len(t, s.Colors(), DefaultColors)
	assert.Len(t, s.Locked(), DefaultColors)
	assert.Equal(t, harmony.DefaultScheme, s.Scheme())
	assert.Equal(t, 0, s.UndoDepth(), "first generation has nothing to undo")
}

func TestGenerate_InvalidOptions(t *testing.T) {
	s := newSession(t)
	before := s.Hexes()

	assert.ErrorIs(t, s.Generate(GenerateOptions{Count: 2}), ErrInvalidCount)
	assert.ErrorIs(t, s.Generate(GenerateOptions{Count: 9}), ErrInvalidCount)
	assert.Error(t, s.Generate(GenerateOptions{Scheme: "plaid"}))

	assert.Equal(t, before, s.Hexes())
	assert.Equal(t, 0, s.UndoDepth())
}

func TestGenerate_PreservesLocked(t *testing.T) {
	s := newSession(t)
	before := s.Colors()

	_, err := s.ToggleLock(1)
	require.NoError(t, err)
	_, err = s.ToggleLock(3)
	require.NoError(t, err)

	require.NoError(t, s.Generate(GenerateOptions{Scheme: harmony.Random}))
	after := s.Colors()

	require.Len(t, after, len(before))
	assert.Equal(t, before[1], after[1])
	assert.Equal(t, before[3], after[3])
	assert.Equal(t, []bool{false, true, false, true, false}, s.Locked())
	assert.Equal(t, harmony.Random, s.Scheme())
}

func TestGenerate_LockedKeepsAdjustedColor(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SetLock(0, true))
	s.AdjustBrightness(50)
	shown := s.Colors()[0]

	require.NoError(t, s.Generate(GenerateOptions{}))
	assert.Equal(t, shown, s.Colors()[0])

	b, sat := s.Sliders()
	assert.Zero(t, b)
	assert.Zero(t, sat)
}

func TestGenerate_NewLengthRederivesLocks(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SetLock(0, true))
	require.NoError(t, s.SetLock(4, true))
	first := s.Colors()[0]

	require.NoError(t, s.Generate(GenerateOptions{Count: 3}))
	assert.Equal(t, []bool{true, false, false}, s.Locked())
	assert.Equal(t, first, s.Colors()[0])

	require.NoError(t, s.Generate(GenerateOptions{Count: 7}))
	assert.Equal(t, []bool{true, false, false, false, false, false, false}, s.Locked())
	assert.Len(t, s.Colors(), 7)
}

func TestGenerate_BaseHue(t *testing.T) {
	s := New(harmony.New(rand.New(rand.NewPCG(1, 1))))
	base := color.HSL{H: 200, S: 50, L: 50}
	require.NoError(t, s.Generate(GenerateOptions{Count: 4, Scheme: harmony.Monochromatic, Base: &base}))
	for _, c := range s.Colors() {
		assert.Equal(t, 200.0, c.H)
	}
}

func TestResize_PreservesLockPrefix(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SetLock(0, true))
	require.NoError(t, s.SetLock(2, true))
	require.NoError(t, s.SetLock(4, true))
	before := s.Colors()

	require.NoError(t, s.Resize(3))
	assert.Equal(t, []bool{true, false, true}, s.Locked())
	assert.Equal(t, before[:3], s.Colors())
	assert.Len(t, s.Colors(), len(s.Locked()))
}

func TestResize_Grow(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SetLock(1, true))
	before := s.Colors()

	require.NoError(t, s.Resize(8))
	after := s.Colors()
	require.Len(t, after, 8)
	assert.Equal(t, before, after[:5])
	assert.Equal(t, []bool{false, true, false, false, false, false, false, false}, s.Locked())
}

func TestResize_Bounds(t *testing.T) {
	s := newSession(t)
	assert.ErrorIs(t, s.Resize(2), ErrInvalidCount)
	assert.ErrorIs(t, s.Resize(9), ErrInvalidCount)
	require.NoError(t, s.Resize(5))
	assert.Equal(t, 0, s.UndoDepth(), "same size is a no-op")
}

func TestResize_EmptySessionGenerates(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Resize(6))
	assert.Len(t, s.Colors(), 6)
	assert.Len(t, s.Locked(), 6)
}

func TestResizeLocks(t *testing.T) {
	assert.Equal(t, []bool{true, false, true}, ResizeLocks([]bool{true, false, true, true, false}, 3))
	assert.Equal(t, []bool{true, false, false, false}, ResizeLocks([]bool{true, false}, 4))
	assert.Equal(t, []bool{false, false, false}, ResizeLocks(nil, 3))
	assert.Empty(t, ResizeLocks([]bool{true}, -1))
}

func TestToggleLock(t *testing.T) {
	s := newSession(t)
	v, err := s.ToggleLock(2)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = s.ToggleLock(2)
	require.NoError(t, err)
	assert.False(t, v)

	_, err = s.ToggleLock(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = s.ToggleLock(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, s.SetLock(9, true), ErrIndexOutOfRange)
}

func TestSliders_RestoreBaselineExactly(t *testing.T) {
	s := newSession(t)
	base := s.Baseline()

	s.AdjustBrightness(40)
	s.AdjustSaturation(-30)
	s.AdjustBrightness(-70)
	s.AdjustSaturation(85)
	s.AdjustBrightness(0)
	s.AdjustSaturation(0)

	for i, c := range s.Colors() {
		assert.Equal(t, base[i].L, c.L)
		assert.Equal(t, base[i].S, c.S)
		assert.Equal(t, base[i].H, c.H)
	}
}

func TestSliders_Formula(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Load([]string{"#808080", "#FF0000", "#000000"}))
	base := s.Baseline()

	s.AdjustBrightness(50)
	got := s.Colors()
	for i := range got {
		assert.InDelta(t, base[i].L+(100-base[i].L)*0.5, got[i].L, 1e-9)
	}

	s.AdjustBrightness(-50)
	got = s.Colors()
	for i := range got {
		assert.InDelta(t, base[i].L*0.5, got[i].L, 1e-9)
	}

	s.AdjustBrightness(500)
	for _, c := range s.Colors() {
		assert.InDelta(t, 100, c.L, 1e-9)
	}

	s.AdjustBrightness(0)
	s.AdjustSaturation(-100)
	for _, c := range s.Colors() {
		assert.InDelta(t, 0, c.S, 1e-9)
	}
}

func TestSliders_NotRecordedInHistory(t *testing.T) {
	s := newSession(t)
	s.AdjustBrightness(20)
	s.AdjustSaturation(20)
	assert.Equal(t, 0, s.UndoDepth())
}

func TestSetColor(t *testing.T) {
	s := newSession(t)
	s.AdjustBrightness(30)
	shown := s.Colors()

	red := color.HSL{H: 0, S: 100, L: 50}
	require.NoError(t, s.SetColor(2, red))

	got := s.Colors()
	assert.Equal(t, red, got[2])
	assert.Equal(t, shown[0], got[0], "adjustments are folded into the baseline")
	b, _ := s.Sliders()
	assert.Zero(t, b)

	assert.ErrorIs(t, s.SetColor(10, red), ErrIndexOutOfRange)

	require.NoError(t, s.Undo())
	assert.Equal(t, shown, s.Colors())
	b, _ = s.Sliders()
	assert.Equal(t, 30.0, b)
}

func TestLoad(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SetLock(0, true))

	hexes := []string{"#112233", "#445566", "#778899", "#AABBCC"}
	require.NoError(t, s.Load(hexes))
	assert.Equal(t, hexes, s.Hexes())
	assert.Equal(t, []bool{false, false, false, false}, s.Locked())
	assert.Equal(t, 1, s.UndoDepth())
}

func TestLoad_RejectsInvalid(t *testing.T) {
	s := newSession(t)
	before := s.Hexes()

	err := s.Load([]string{"#112233", "nothex", "#778899"})
	assert.ErrorIs(t, err, ErrInvalidColor)
	assert.ErrorIs(t, s.Load([]string{"#112233"}), ErrInvalidCount)

	assert.Equal(t, before, s.Hexes())
	assert.Equal(t, 0, s.UndoDepth())
}

func TestUndo(t *testing.T) {
	s := newSession(t)
	assert.ErrorIs(t, New(nil).Undo(), ErrNothingToUndo)

	first := s.Hexes()
	require.NoError(t, s.Generate(GenerateOptions{Scheme: harmony.Triadic}))
	second := s.Hexes()
	require.NoError(t, s.Resize(3))

	require.NoError(t, s.Undo())
	assert.Equal(t, second, s.Hexes())
	assert.Equal(t, harmony.Triadic, s.Scheme())

	require.NoError(t, s.Undo())
	assert.Equal(t, first, s.Hexes())
	assert.Equal(t, harmony.DefaultScheme, s.Scheme())

	assert.ErrorIs(t, s.Undo(), ErrNothingToUndo)
}

func TestUndo_BoundedDepth(t *testing.T) {
	s := newSession(t)
	for range 15 {
		require.NoError(t, s.Generate(GenerateOptions{}))
	}
	assert.Equal(t, HistoryCapacity, s.UndoDepth())

	for range HistoryCapacity {
		require.NoError(t, s.Undo())
	}
	assert.ErrorIs(t, s.Undo(), ErrNothingToUndo)
}

func TestStateRoundTrip(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SetLock(1, true))
	require.NoError(t, s.Generate(GenerateOptions{Scheme: harmony.Square}))
	s.AdjustBrightness(-25)

	raw, err := json.Marshal(s.State())
	require.NoError(t, err)

	var st State
	require.NoError(t, json.Unmarshal(raw, &st))
	restored := Restore(st, nil)

	assert.Equal(t, s.Hexes(), restored.Hexes())
	assert.Equal(t, s.Locked(), restored.Locked())
	assert.Equal(t, s.Scheme(), restored.Scheme())
	assert.Equal(t, s.UndoDepth(), restored.UndoDepth())

	require.NoError(t, restored.Undo())
	assert.Equal(t, harmony.DefaultScheme, restored.Scheme())
}

func TestRestore_RepairsState(t *testing.T) {
	st := State{
		Snapshot: Snapshot{
			Scheme:     "bogus",
			Baseline:   []color.HSL{{H: 1}, {H: 2}, {H: 3}},
			Locked:     []bool{true},
			Brightness: 400,
		},
	}
	for i := range 12 {
		st.History = append(st.History, Snapshot{Baseline: []color.HSL{{H: float64(i)}}})
	}

	s := Restore(st, nil)
	assert.Equal(t, []bool{true, false, false}, s.Locked())
	assert.Equal(t, harmony.DefaultScheme, s.Scheme())
	b, _ := s.Sliders()
	assert.Equal(t, MaxAdjustment, b)
	assert.Equal(t, HistoryCapacity, s.UndoDepth())
}
