package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Rand is the source of gap offsets. *rand.Rand satisfies it; tests plug in
// fixed values.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded random source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Obstacle is one half of a gate.
type Obstacle struct {
	X      float64 // Left edge, decreasing every tick
	Y      float64 // Top edge, fixed at spawn
	IsTop  bool
	Passed bool // Set once the body has cleared the right edge
}

// Rect returns the obstacle's bounding box for the given dimensions.
func (o Obstacle) Rect(w, h float64) core.Rect {
	return core.NewRect(o.X, o.Y, w, h)
}

// SpawnPair builds a gate at the right edge of the board. The top half is
// lifted by a quarter of its height plus a random offset in [0, height/2);
// the bottom half starts gap units below the top half's lower edge.
func SpawnPair(boardW, obstacleH, gap float64, rng Rand) (top, bottom Obstacle) {
	offset := rng.Float64() * (obstacleH / 2)
	top = Obstacle{
		X:     boardW,
		Y:     -obstacleH/4 - offset,
		IsTop: true,
	}
	bottom = Obstacle{
		X: boardW,
		Y: top.Y + obstacleH + gap,
	}
	return top, bottom
}

// Stream owns the active obstacles in spawn order.
type Stream struct {
	boardW        float64
	width         float64
	height        float64
	gap           float64
	spawnDistance float64
	rng           Rand
	items         []Obstacle
}

// NewStream creates an empty obstacle stream.
func NewStream(cfg config.FlappyConfig, rng Rand) *Stream {
	return &Stream{
		boardW:        cfg.Board.Width,
		width:         cfg.Obstacles.Width,
		height:        cfg.Obstacles.Height,
		gap:           cfg.Gap(),
		spawnDistance: cfg.Obstacles.SpawnDistance,
		rng:           rng,
		items:         make([]Obstacle, 0, 8),
	}
}

// Reset drops every obstacle. The random source keeps its position.
func (s *Stream) Reset() {
	s.items = s.items[:0]
}

// NeedsSpawn reports whether a new gate is due: the stream is empty or the
// newest obstacle has travelled spawnDistance from the right edge.
func (s *Stream) NeedsSpawn() bool {
	if len(s.items) == 0 {
		return true
	}
	return s.items[len(s.items)-1].X < s.boardW-s.spawnDistance
}

// Spawn appends a new gate and returns its halves.
func (s *Stream) Spawn() (top, bottom Obstacle) {
	top, bottom = SpawnPair(s.boardW, s.height, s.gap, s.rng)
	s.items = append(s.items, top, bottom)
	return top, bottom
}

// Advance moves every obstacle horizontally by dx (negative is left).
func (s *Stream) Advance(dx float64) {
	for i := range s.items {
		s.items[i].X += dx
	}
}

// MarkPassed flags every unpassed obstacle whose right edge lies left of x
// and returns how many were flagged.
func (s *Stream) MarkPassed(x float64) int {
	n := 0
	for i := range s.items {
		o := &s.items[i]
		if !o.Passed && x > o.X+s.width {
			o.Passed = true
			n++
		}
	}
	return n
}

// FirstHit returns the index of the first obstacle overlapping r, or -1.
func (s *Stream) FirstHit(r core.Rect) int {
	for i, o := range s.items {
		if r.Intersects(o.Rect(s.width, s.height)) {
			return i
		}
	}
	return -1
}

// Retire removes obstacles that are fully off the left edge and returns how
// many were removed.
func (s *Stream) Retire() int {
	kept := s.items[:0]
	for _, o := range s.items {
		if o.X+s.width >= 0 {
			kept = append(kept, o)
		}
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	return removed
}

// Len returns the number of active obstacles.
func (s *Stream) Len() int {
	return len(s.items)
}

// Obstacles returns a copy of the active obstacles.
func (s *Stream) Obstacles() []Obstacle {
	out := make([]Obstacle, len(s.items))
	copy(out, s.items)
	return out
}

// Size returns the obstacle width and height.
func (s *Stream) Size() (w, h float64) {
	return s.width, s.height
}
