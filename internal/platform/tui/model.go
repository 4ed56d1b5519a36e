package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/session"
)

// helpRows is the space reserved under the board for the key help line.
const helpRows = 1

// GameModel is the Bubble Tea model for the game screen.
type GameModel struct {
	ctrl     *session.Controller
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     GameKeyMap
	help     help.Model
	logger   *log.Logger
	quitting bool
}

// NewGameModel creates the game screen for an authenticated session.
func NewGameModel(ctrl *session.Controller, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return GameModel{
		ctrl:   ctrl,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 1)),
		config: cfg,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		logger: logger,
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if e, ok := MapMouse(msg, m.viewport()); ok {
			m.ctrl.Enqueue(e)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-helpRows, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.ctrl.Tick()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	e, ok, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	if ok {
		m.ctrl.Enqueue(e)
	}
	return m, nil
}

// viewport maps the board onto the play area.
func (m GameModel) viewport() flappy.Viewport {
	board := m.ctrl.Simulation().Config().Board
	return flappy.NewViewport(board.Width, board.Height, m.screen.Width(), m.screen.Height())
}

// saveScreenshot writes the current frame as plain text under ~/.flappy/screenshots.
func (m GameModel) saveScreenshot() {
	flappy.Render(m.screen, m.ctrl.Snapshot())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	name := fmt.Sprintf("flappy_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot not saved", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current frame.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	flappy.Render(m.screen, m.ctrl.Snapshot())
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// RunGame runs the game screen until the player quits.
func RunGame(ctrl *session.Controller, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(ctrl, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
