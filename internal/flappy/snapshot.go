package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Phase is the top-level screen the session is on.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Buttons are the clickable regions in board coordinates. Restart shares
// the start region on the game-over screen.
type Buttons struct {
	Start core.Rect
	Menu  core.Rect
}

// ButtonsFor centres the buttons horizontally, the start button's top edge on
// the board's vertical midpoint and the menu button MenuOffset below it.
func ButtonsFor(cfg config.FlappyConfig) Buttons {
	x := cfg.Board.Width/2 - cfg.Buttons.Width/2
	y := cfg.Board.Height / 2
	return Buttons{
		Start: core.NewRect(x, y, cfg.Buttons.Width, cfg.Buttons.Height),
		Menu:  core.NewRect(x, y+cfg.Buttons.MenuOffset, cfg.Buttons.Width, cfg.Buttons.Height),
	}
}

// ObstacleView is an obstacle as presentation sees it.
type ObstacleView struct {
	Rect  core.Rect
	IsTop bool
}

// Snapshot is a read-only view of one frame.
type Snapshot struct {
	Phase     Phase
	Paused    bool
	Username  string
	Board     core.Rect
	Body      core.Rect
	Obstacles []ObstacleView
	Buttons   Buttons
	Score     float64
	HighScore float64
	Stage     int
}

// DisplayScore truncates the score to whole gates.
func (s Snapshot) DisplayScore() int {
	return int(s.Score)
}

// Snapshot fills the simulation part of a frame. Phase and account fields
// are left for the caller.
func (s *Simulation) Snapshot() Snapshot {
	w, h := s.stream.Size()
	items := s.stream.items
	views := make([]ObstacleView, len(items))
	for i, o := range items {
		views[i] = ObstacleView{Rect: o.Rect(w, h), IsTop: o.IsTop}
	}

	return Snapshot{
		Board:     core.NewRect(0, 0, s.cfg.Board.Width, s.cfg.Board.Height),
		Body:      s.body.Rect(),
		Obstacles: views,
		Buttons:   ButtonsFor(s.cfg),
		Score:     s.run.Score,
		Stage:     s.run.Stage,
	}
}
