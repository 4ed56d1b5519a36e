package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
)

// GameKeyMap defines the key bindings for the game screen.
type GameKeyMap struct {
	Flap  key.Binding
	Pause key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flap, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Flap, k.Pause, k.Quit}}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "up", "w", "enter"),
			key.WithHelp("space", "flap/start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a semantic event.
// ok is false for unbound keys; quit reports a quit request.
func (k GameKeyMap) MapKey(msg tea.KeyMsg) (e core.Event, ok, quit bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.Event{}, false, true
	case key.Matches(msg, k.Flap):
		return core.Primary(), true, false
	case key.Matches(msg, k.Pause):
		return core.Pause(), true, false
	}
	return core.Event{}, false, false
}

// MapMouse translates a left-button press to a click in board coordinates.
// Releases, motion and other buttons are ignored.
func MapMouse(msg tea.MouseMsg, vp flappy.Viewport) (core.Event, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.Event{}, false
	}
	x, y := vp.ToBoard(msg.X, msg.Y)
	return core.Click(x, y), true
}
