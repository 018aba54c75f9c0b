package palette

import (
	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/harmony"
)

// HistoryCapacity bounds the undo stack.
const HistoryCapacity = 10

// Snapshot is one restorable palette state.
type Snapshot struct {
	Scheme     harmony.Scheme `json:"scheme"`
	Baseline   []color.HSL    `json:"baseline"`
	Locked     []bool         `json:"locked"`
	Brightness float64        `json:"brightness"`
	Saturation float64        `json:"saturation"`
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Baseline = append([]color.HSL(nil), s.Baseline...)
	out.Locked = append([]bool(nil), s.Locked...)
	return out
}

// History is a fixed-capacity ring buffer of snapshots. When full, pushing
// evicts the oldest entry.
type History struct {
	buf  [HistoryCapacity]Snapshot
	head int // next write position
	size int
}

// Push records a snapshot as the newest entry.
func (h *History) Push(s Snapshot) {
	h.buf[h.head] = s.clone()
	h.head = (h.head + 1) % HistoryCapacity
	if h.size < HistoryCapacity {
		h.size++
	}
}

// Pop removes and returns the newest snapshot.
func (h *History) Pop() (Snapshot, bool) {
	if h.size == 0 {
		return Snapshot{}, false
	}
	h.head = (h.head - 1 + HistoryCapacity) % HistoryCapacity
	s := h.buf[h.head]
	h.buf[h.head] = Snapshot{}
	h.size--
	return s, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return h.size
}

// Entries returns the snapshots ordered oldest to newest.
func (h *History) Entries() []Snapshot {
	out := make([]Snapshot, 0, h.size)
	start := (h.head - h.size + HistoryCapacity) % HistoryCapacity
	for i := range h.size {
		out = append(out, h.buf[(start+i)%HistoryCapacity].clone())
	}
	return out
}

// Clear drops every snapshot.
func (h *History) Clear() {
	*h = History{}
}
