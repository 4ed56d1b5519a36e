package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/session"
)

// Form field indices
const (
	fieldUsername = iota
	fieldPassword
	fieldConfirm
)

type formMode int

const (
	modeLogin formMode = iota
	modeSignUp
)

// LoginKeyMap defines the key bindings for the login form.
type LoginKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LoginKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LoginKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Submit},
		{k.Switch, k.Quit},
	}
}

// DefaultLoginKeyMap returns default key bindings.
func DefaultLoginKeyMap() LoginKeyMap {
	return LoginKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Switch: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "login/sign up"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// LoginModel is the Bubble Tea model for the login and sign-up form.
type LoginModel struct {
	auth     session.Authenticator
	theme    Theme
	keys     LoginKeyMap
	help     help.Model
	logger   *log.Logger
	inputs   []textinput.Model
	mode     formMode
	focus    int
	message  string
	success  bool // message reports success rather than an error
	identity session.Identity
	done     bool
	quitting bool
	width    int
	height   int
}

// NewLoginModel creates the form in login mode.
func NewLoginModel(auth session.Authenticator, theme Theme, logger *log.Logger) LoginModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 32
		ti.Width = 24
		ti.Prompt = "> "
		ti.PromptStyle = theme.Prompt
		inputs[i] = ti
	}
	inputs[fieldUsername].Placeholder = "username"
	inputs[fieldPassword].Placeholder = "password"
	inputs[fieldConfirm].Placeholder = "confirm password"
	for _, i := range []int{fieldPassword, fieldConfirm} {
		inputs[i].EchoMode = textinput.EchoPassword
		inputs[i].EchoCharacter = '•'
	}
	inputs[fieldUsername].Focus()

	return LoginModel{
		auth:   auth,
		theme:  theme,
		keys:   DefaultLoginKeyMap(),
		help:   help.New(),
		logger: logger,
		inputs: inputs,
	}
}

// Init starts the cursor blinking.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// fieldCount is the number of visible fields in the current mode.
func (m LoginModel) fieldCount() int {
	if m.mode == modeSignUp {
		return 3
	}
	return 2
}

// Update handles messages for the form.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			cmd := m.setFocus((m.focus + 1) % m.fieldCount())
			return m, cmd

		case key.Matches(msg, m.keys.Prev):
			cmd := m.setFocus((m.focus - 1 + m.fieldCount()) % m.fieldCount())
			return m, cmd

		case key.Matches(msg, m.keys.Switch):
			return m.switchMode()

		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus moves the cursor to field i.
func (m *LoginModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m LoginModel) switchMode() (LoginModel, tea.Cmd) {
	if m.mode == modeLogin {
		m.mode = modeSignUp
	} else {
		m.mode = modeLogin
	}
	m.message = ""
	m.inputs[fieldPassword].Reset()
	m.inputs[fieldConfirm].Reset()
	cmd := m.setFocus(fieldUsername)
	return m, cmd
}

func (m LoginModel) submit() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()

	if m.mode == modeLogin {
		id, msg, err := session.LogIn(m.auth, username, password)
		if err != nil {
			m.logger.Info("login rejected", "user", username, "reason", err)
			m.message, m.success = msg, false
			return m, nil
		}
		m.logger.Info("login", "user", id.Username)
		m.identity = id
		m.done = true
		return m, tea.Quit
	}

	msg, err := session.SignUp(m.auth, username, password, m.inputs[fieldConfirm].Value())
	if err != nil {
		m.logger.Info("sign up rejected", "user", username, "reason", err)
		m.message, m.success = msg, false
		return m, nil
	}

	// Back to the login form with the new username filled in.
	m, cmd := m.switchMode()
	m.inputs[fieldUsername].SetValue(username)
	m.message, m.success = msg, true
	return m, cmd
}

// View renders the form.
func (m LoginModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("F L A P P Y"))
	b.WriteString("\n")
	if m.mode == modeSignUp {
		b.WriteString(m.theme.Subtitle.Render("Create an account"))
	} else {
		b.WriteString(m.theme.Subtitle.Render("Log in to play"))
	}
	b.WriteString("\n\n")

	labels := []string{"Username", "Password", "Confirm"}
	for i := range m.fieldCount() {
		label := m.theme.Label
		if i == m.focus {
			label = m.theme.LabelActive
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(labels[i]), m.inputs[i].View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.message == "":
		b.WriteString(" ")
	case m.success:
		b.WriteString(m.theme.Success.Render(m.message))
	default:
		b.WriteString(m.theme.Error.Render(m.message))
	}

	form := m.theme.Frame.Render(b.String())
	helpLine := m.theme.Help.Render(m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Center, form, helpLine)

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Identity returns the logged-in user once the form is done.
func (m LoginModel) Identity() (session.Identity, bool) {
	return m.identity, m.done
}

// RunLogin shows the form until the user logs in or quits.
// ok is false when the user quit.
func RunLogin(auth session.Authenticator, theme Theme, logger *log.Logger) (id session.Identity, ok bool, err error) {
	model := NewLoginModel(auth, theme, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return session.Identity{}, false, err
	}

	m, isLogin := finalModel.(LoginModel)
	if !isLogin {
		return session.Identity{}, false, nil
	}
	id, ok = m.Identity()
	return id, ok, nil
}
