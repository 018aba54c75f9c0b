// Package palette holds the interactive state of one palette editing session:
// the colors, their lock flags, slider adjustments, and undo history.
//
// A Session is not safe for concurrent use. Callers serving several clients
// keep one Session per client and serialize access to it.
package palette

import (
	"errors"
	"fmt"

	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/harmony"
)

const (
	MinColors     = 3
	MaxColors     = 8
	DefaultColors = 5

	// MaxAdjustment bounds both sliders in either direction.
	MaxAdjustment = 100.0
)

var (
	ErrInvalidCount    = fmt.Errorf("palette size must be between %d and %d", MinColors, MaxColors)
	ErrIndexOutOfRange = errors.New("color index out of range")
	ErrInvalidColor    = errors.New("invalid color")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrEmptyPalette    = errors.New("palette is empty")
)

// Session is the palette context of one user. The displayed colors are always
// derived from the baseline and the two slider values, so slider moves never
// accumulate rounding drift.
type Session struct {
	gen        *harmony.Generator
	scheme     harmony.Scheme
	baseline   []color.HSL
	locked     []bool
	brightness float64
	saturation float64
	history    History
}

// New creates an empty session.
func New(gen *harmony.Generator) *Session {
	if gen == nil {
		gen = harmony.New(nil)
	}
	return &Session{gen: gen, scheme: harmony.DefaultScheme}
}

// GenerateOptions controls a generation pass. Zero values keep the current
// size and scheme.
type GenerateOptions struct {
	Count  int
	Scheme harmony.Scheme
	// Base, when set, supplies the base hue.
	Base *color.HSL
}

// Generate replaces every unlocked color with a fresh harmony. Locked colors
// keep their current value and position. Sliders reset to neutral and the new
// palette becomes the baseline.
func (s *Session) Generate(opts GenerateOptions) error {
	count := opts.Count
	if count == 0 {
		count = len(s.baseline)
		if count == 0 {
			count = DefaultColors
		}
	}
	if count < MinColors || count > MaxColors {
		return ErrInvalidCount
	}

	scheme := s.scheme
	if opts.Scheme != "" {
		if !opts.Scheme.Valid() {
			return fmt.Errorf("unknown scheme %q", opts.Scheme)
		}
		scheme = opts.Scheme
	}

	current := s.Colors()
	s.record()

	var baseHue float64
	switch {
	case opts.Base != nil:
		baseHue = opts.Base.Normalize().H
	case len(current) > 0:
		baseHue = current[0].H
	default:
		baseHue = s.gen.RandomColor(0, 100, 0, 100).H
	}

	locks := ResizeLocks(s.locked, count)
	s.baseline = harmony.ApplyLocks(s.gen.Generate(baseHue, count, scheme), current, locks)
	s.locked = locks
	s.scheme = scheme
	s.resetSliders()
	return nil
}

// Resize changes the palette length. Existing colors keep their slots;
// growing appends colors from a fresh harmony around the current base hue.
// Lock flags survive for indices present before and after; new slots start
// unlocked.
func (s *Session) Resize(n int) error {
	if n < MinColors || n > MaxColors {
		return ErrInvalidCount
	}
	if len(s.baseline) == 0 {
		return s.Generate(GenerateOptions{Count: n})
	}
	if n == len(s.baseline) {
		return nil
	}

	current := s.Colors()
	s.record()

	if n < len(current) {
		s.baseline = current[:n]
	} else {
		fresh := s.gen.Generate(current[0].H, n, s.scheme)
		s.baseline = append(current, fresh[len(current):]...)
	}
	s.locked = ResizeLocks(s.locked, n)
	s.resetSliders()
	return nil
}

// ResizeLocks returns lock flags of length n, copying the flags of surviving
// indices and leaving new ones unlocked.
func ResizeLocks(locks []bool, n int) []bool {
	if n < 0 {
		n = 0
	}
	out := make([]bool, n)
	copy(out, locks)
	return out
}

// ToggleLock flips the lock flag of index i and returns the new value.
func (s *Session) ToggleLock(i int) (bool, error) {
	if i < 0 || i >= len(s.locked) {
		return false, ErrIndexOutOfRange
	}
	s.locked[i] = !s.locked[i]
	return s.locked[i], nil
}

// SetLock sets the lock flag of index i.
func (s *Session) SetLock(i int, locked bool) error {
	if i < 0 || i >= len(s.locked) {
		return ErrIndexOutOfRange
	}
	s.locked[i] = locked
	return nil
}

// AdjustBrightness moves the brightness slider. v is clamped to [-100,100]
// and applied to the baseline lightness, never to the previous result.
func (s *Session) AdjustBrightness(v float64) {
	s.brightness = color.Clamp(v, -MaxAdjustment, MaxAdjustment)
}

// AdjustSaturation moves the saturation slider. See AdjustBrightness.
func (s *Session) AdjustSaturation(v float64) {
	s.saturation = color.Clamp(v, -MaxAdjustment, MaxAdjustment)
}

// SetColor replaces the color at index i. Pending slider adjustments are
// folded into the baseline first so the other colors do not jump.
func (s *Session) SetColor(i int, c color.HSL) error {
	if i < 0 || i >= len(s.baseline) {
		return ErrIndexOutOfRange
	}
	current := s.Colors()
	s.record()

	current[i] = c.Normalize()
	s.baseline = current
	s.resetSliders()
	return nil
}

// Load replaces the palette with saved hex colors. Nothing changes when any
// color is invalid. All locks are released.
func (s *Session) Load(hexes []string) error {
	if len(hexes) < MinColors || len(hexes) > MaxColors {
		return ErrInvalidCount
	}
	colors := make([]color.HSL, len(hexes))
	for i, h := range hexes {
		c, ok := color.HexToHSL(h)
		if !ok {
			return fmt.Errorf("%w at index %d: %q", ErrInvalidColor, i, h)
		}
		colors[i] = c
	}

	s.record()
	s.baseline = colors
	s.locked = make([]bool, len(colors))
	s.resetSliders()
	return nil
}

// Undo restores the most recent snapshot.
func (s *Session) Undo() error {
	snap, ok := s.history.Pop()
	if !ok {
		return ErrNothingToUndo
	}
	s.apply(snap)
	return nil
}

// Colors returns the displayed palette: the baseline with both sliders applied.
func (s *Session) Colors() []color.HSL {
	out := make([]color.HSL, len(s.baseline))
	for i, c := range s.baseline {
		out[i] = color.HSL{
			H: c.H,
			S: adjust(c.S, s.saturation),
			L: adjust(c.L, s.brightness),
		}
	}
	return out
}

// Hexes returns the displayed palette as #RRGGBB strings.
func (s *Session) Hexes() []string {
	colors := s.Colors()
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Hex()
	}
	return out
}

// Baseline returns a copy of the unadjusted palette.
func (s *Session) Baseline() []color.HSL {
	return append([]color.HSL(nil), s.baseline...)
}

// Locked returns a copy of the lock flags.
func (s *Session) Locked() []bool {
	return append([]bool(nil), s.locked...)
}

// Scheme returns the scheme used by the last generation.
func (s *Session) Scheme() harmony.Scheme {
	return s.scheme
}

// Sliders returns the brightness and saturation slider values.
func (s *Session) Sliders() (brightness, saturation float64) {
	return s.brightness, s.saturation
}

// UndoDepth returns how many steps can be undone.
func (s *Session) UndoDepth() int {
	return s.history.Len()
}

// adjust moves a percentage toward 100 for positive v and toward 0 for
// negative v, proportionally to the remaining headroom.
func adjust(o, v float64) float64 {
	if v == 0 {
		return o
	}
	var n float64
	if v > 0 {
		n = o + (100-o)*v/100
	} else {
		n = o * (1 + v/100)
	}
	return color.Clamp(n, 0, 100)
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Scheme:     s.scheme,
		Baseline:   s.baseline,
		Locked:     s.locked,
		Brightness: s.brightness,
		Saturation: s.saturation,
	}
}

// record pushes the current state, skipping the empty initial palette.
func (s *Session) record() {
	if len(s.baseline) == 0 {
		return
	}
	s.history.Push(s.snapshot())
}

func (s *Session) apply(snap Snapshot) {
	s.scheme = snap.Scheme
	s.baseline = snap.Baseline
	s.locked = ResizeLocks(snap.Locked, len(snap.Baseline))
	s.brightness = snap.Brightness
	s.saturation = snap.Saturation
}

func (s *Session) resetSliders() {
	s.brightness = 0
	s.saturation = 0
}
