// Package session drives one authenticated player through the menu, play and
// game-over screens. Input arrives as semantic events on a bounded queue that
// is drained at the start of every tick.
package session

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
)

// Controller is the top-level state machine. It is not safe for concurrent
// use; Enqueue and Tick must be called from the same goroutine.
type Controller struct {
	identity Identity
	sim      *flappy.Simulation
	queue    *core.EventQueue
	recorder RunRecorder
	logger   *log.Logger
	buttons  flappy.Buttons

	phase  flappy.Phase
	paused bool
}

// NewController starts a session on the menu screen. The identity must come
// from a successful login.
func NewController(id Identity, sim *flappy.Simulation, rec RunRecorder, logger *log.Logger) (*Controller, error) {
	if !id.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sim.Reset()
	return &Controller{
		identity: id,
		sim:      sim,
		queue:    core.NewEventQueue(core.DefaultQueueCapacity),
		recorder: rec,
		logger:   logger.With("user", id.Username),
		buttons:  flappy.ButtonsFor(sim.Config()),
		phase:    flappy.PhaseMenu,
	}, nil
}

// Enqueue adds an input event for the next tick. It returns false if the
// queue is full and the event was dropped.
func (c *Controller) Enqueue(e core.Event) bool {
	ok := c.queue.Push(e)
	if !ok {
		c.logger.Debug("input dropped", "kind", e.Kind)
	}
	return ok
}

// Tick drains pending input, then advances the simulation once if a run is
// in progress. A run that ends on this tick is recorded exactly once.
func (c *Controller) Tick() flappy.StepResult {
	for _, e := range c.queue.Drain() {
		c.handle(e)
	}

	if c.phase != flappy.PhasePlaying || c.paused {
		return flappy.StepResult{}
	}

	res := c.sim.Step()
	if res.StageChanged {
		c.logger.Debug("stage up", "stage", c.sim.Run().Stage, "score", c.sim.Run().Score)
	}
	if res.Ended {
		c.phase = flappy.PhaseGameOver
		c.record(res.Cause)
	}
	return res
}

func (c *Controller) handle(e core.Event) {
	switch c.phase {
	case flappy.PhaseMenu:
		switch {
		case e.Kind == core.EventPrimary:
			c.play()
		case e.Kind == core.EventClick && c.buttons.Start.Contains(e.X, e.Y):
			c.play()
		}

	case flappy.PhasePlaying:
		switch e.Kind {
		case core.EventPrimary, core.EventClick:
			if !c.paused {
				c.sim.Flap()
			}
		case core.EventPause:
			c.paused = !c.paused
		}

	case flappy.PhaseGameOver:
		switch {
		case e.Kind == core.EventPrimary:
			c.restart(flappy.PhasePlaying)
		case e.Kind == core.EventClick && c.buttons.Start.Contains(e.X, e.Y):
			c.restart(flappy.PhasePlaying)
		case e.Kind == core.EventClick && c.buttons.Menu.Contains(e.X, e.Y):
			c.restart(flappy.PhaseMenu)
		}
	}
}

func (c *Controller) play() {
	c.phase = flappy.PhasePlaying
	c.paused = false
	c.logger.Debug("run started")
}

func (c *Controller) restart(next flappy.Phase) {
	c.sim.Reset()
	c.paused = false
	c.phase = next
	c.logger.Debug("run reset", "phase", next)
}

func (c *Controller) record(cause flappy.EndCause) {
	run := c.sim.Run()
	c.logger.Info("run over", "score", run.Score, "stage", run.Stage, "ticks", run.Ticks, "cause", cause)

	if c.recorder == nil {
		return
	}
	best, err := c.recorder.RecordRun(Result{
		Username: c.identity.Username,
		Score:    run.Score,
		Stage:    run.Stage,
		Ticks:    run.Ticks,
		Cause:    cause,
	})
	if err != nil {
		c.logger.Warn("run not fully recorded", "error", err)
	}
	// Stored high scores never decrease; a failed update reports zero.
	if best > c.identity.HighScore {
		c.identity.HighScore = best
	}
}

// Phase returns the current screen.
func (c *Controller) Phase() flappy.Phase {
	return c.phase
}

// Paused reports whether the current run is paused.
func (c *Controller) Paused() bool {
	return c.paused
}

// Identity returns the logged-in user with the latest known high score.
func (c *Controller) Identity() Identity {
	return c.identity
}

// Simulation exposes the underlying simulation for read-only inspection.
func (c *Controller) Simulation() *flappy.Simulation {
	return c.sim
}

// Snapshot returns everything presentation needs for one frame.
func (c *Controller) Snapshot() flappy.Snapshot {
	snap := c.sim.Snapshot()
	snap.Phase = c.phase
	snap.Paused = c.paused
	snap.Username = c.identity.Username
	snap.HighScore = c.identity.HighScore
	return snap
}
