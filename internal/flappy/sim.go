// Package flappy implements the gate-runner simulation: a body falling under
// gravity through a stream of paired obstacles, scored per half-gate cleared,
// with speed stages driven by the score.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// EndCause tells why a run ended.
type EndCause int

const (
	EndNone EndCause = iota
	EndCollision
	EndOutOfBounds
)

// String returns a lower-case name for logs.
func (c EndCause) String() string {
	switch c {
	case EndCollision:
		return "collision"
	case EndOutOfBounds:
		return "out_of_bounds"
	default:
		return "none"
	}
}

// Body is the player sprite. X never changes during a run.
type Body struct {
	X         float64
	Y         float64
	VelocityY float64
	Width     float64
	Height    float64
}

// Rect returns the body's bounding box.
func (b Body) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Width, b.Height)
}

// RunState is everything that resets on restart.
type RunState struct {
	Score     float64 // Grows by 0.5 per obstacle half passed
	Stage     int     // 1-based, never decreases within a run
	VelocityX float64 // Obstacle velocity; negative moves left
	GameOver  bool
	Cause     EndCause
	Ticks     int // Ticks simulated in this run
}

// StepResult describes what one tick changed.
type StepResult struct {
	Ended        bool // The run ended on this tick
	Cause        EndCause
	Passed       int // Obstacle halves cleared this tick
	StageChanged bool
}

// Simulation owns the body, the run state and the obstacle stream.
type Simulation struct {
	cfg    config.FlappyConfig
	body   Body
	run    RunState
	stream *Stream
}

// NewSimulation creates a simulation in its initial state.
func NewSimulation(cfg config.FlappyConfig, rng Rand) *Simulation {
	s := &Simulation{
		cfg:    cfg,
		stream: NewStream(cfg, rng),
	}
	s.Reset()
	return s
}

// Reset restores the initial run: body centred vertically at rest, no
// obstacles, score zero, stage one.
func (s *Simulation) Reset() {
	s.body = Body{
		X:      s.cfg.BodyX(),
		Y:      s.cfg.Board.Height / 2,
		Width:  s.cfg.Body.Width,
		Height: s.cfg.Body.Height,
	}
	s.run = RunState{
		Stage:     1,
		VelocityX: -s.cfg.Stages.Speed(1),
	}
	s.stream.Reset()
}

// Flap replaces the vertical velocity with the flap impulse. It has no effect
// once the run is over.
func (s *Simulation) Flap() {
	if s.run.GameOver {
		return
	}
	s.body.VelocityY = s.cfg.Physics.FlapImpulse
}

// Step advances the run by one tick. Once the run is over it does nothing.
func (s *Simulation) Step() StepResult {
	var res StepResult
	if s.run.GameOver {
		return res
	}
	s.run.Ticks++

	s.body.VelocityY += s.cfg.Physics.Gravity
	s.body.Y += s.body.VelocityY

	s.stream.Advance(s.run.VelocityX)

	res.Passed = s.stream.MarkPassed(s.body.X)
	s.run.Score += 0.5 * float64(res.Passed)

	if s.stream.FirstHit(s.body.Rect()) >= 0 {
		s.end(EndCollision)
	}

	s.stream.Retire()

	if s.body.Y > s.cfg.Board.Height || s.body.Y < 0 {
		s.end(EndOutOfBounds)
	}

	if s.stream.NeedsSpawn() {
		s.stream.Spawn()
	}

	if next, ok := s.cfg.Stages.Next(s.run.Stage, s.run.Score); ok {
		s.run.Stage = next
		s.run.VelocityX = -s.cfg.Stages.Speed(next)
		res.StageChanged = true
	}

	if s.run.GameOver {
		res.Ended = true
		res.Cause = s.run.Cause
	}
	return res
}

// end marks the run over, keeping the first cause seen.
func (s *Simulation) end(cause EndCause) {
	if s.run.GameOver {
		return
	}
	s.run.GameOver = true
	s.run.Cause = cause
}

// Body returns the current body.
func (s *Simulation) Body() Body {
	return s.body
}

// Run returns the current run state.
func (s *Simulation) Run() RunState {
	return s.run
}

// Obstacles returns a copy of the active obstacles in spawn order.
func (s *Simulation) Obstacles() []Obstacle {
	return s.stream.Obstacles()
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() config.FlappyConfig {
	return s.cfg
}
