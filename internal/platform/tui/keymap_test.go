package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
)

func TestGameKeyMapMapKey(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		kind core.EventKind
		ok   bool
		quit bool
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.EventPrimary, true, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.EventPrimary, true, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.EventPrimary, true, false},
		{"pause", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.EventPause, true, false},
		{"quit", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.EventNone, false, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.EventNone, false, true},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.EventNone, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok, quit := keys.MapKey(tt.msg)
			if ok != tt.ok || quit != tt.quit {
				t.Fatalf("MapKey() ok=%v quit=%v, want ok=%v quit=%v", ok, quit, tt.ok, tt.quit)
			}
			if e.Kind != tt.kind {
				t.Errorf("MapKey() kind=%v, want %v", e.Kind, tt.kind)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	vp := flappy.NewViewport(360, 640, 80, 24)

	press := tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	e, ok := MapMouse(press, vp)
	if !ok || e.Kind != core.EventClick {
		t.Fatalf("left press should map to a click, got %+v ok=%v", e, ok)
	}
	wantX, wantY := vp.ToBoard(40, 12)
	if e.X != wantX || e.Y != wantY {
		t.Errorf("click at (%v,%v), want (%v,%v)", e.X, e.Y, wantX, wantY)
	}

	ignored := []tea.MouseMsg{
		{X: 40, Y: 12, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
		{X: 40, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone},
		{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonRight},
	}
	for _, msg := range ignored {
		if _, ok := MapMouse(msg, vp); ok {
			t.Errorf("mouse %+v should be ignored", msg)
		}
	}
}
