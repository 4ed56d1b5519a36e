package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/accounts"
	"github.com/vovakirdan/tui-flappy/internal/session"
)

func newTestLogin(t *testing.T) (LoginModel, *accounts.Store) {
	t.Helper()
	store := accounts.New(filepath.Join(t.TempDir(), accounts.DefaultFile), nil)
	return NewLoginModel(store, DefaultTheme(), nil), store
}

func updateLogin(t *testing.T, m LoginModel, msg tea.Msg) LoginModel {
	t.Helper()
	next, _ := m.Update(msg)
	lm, ok := next.(LoginModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return lm
}

var (
	enterKey  = tea.KeyMsg{Type: tea.KeyEnter}
	switchKey = tea.KeyMsg{Type: tea.KeyCtrlN}
	tabKey    = tea.KeyMsg{Type: tea.KeyTab}
)

func TestLoginEmptyFields(t *testing.T) {
	m, _ := newTestLogin(t)
	m = updateLogin(t, m, enterKey)

	if m.message != session.MsgEmptyFields || m.success {
		t.Errorf("unexpected message %q (success=%v)", m.message, m.success)
	}
	if _, done := m.Identity(); done {
		t.Error("login must not succeed")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	m, store := newTestLogin(t)
	if err := store.Register("bob", "pw"); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	m.inputs[fieldUsername].SetValue("bob")
	m.inputs[fieldPassword].SetValue("nope")
	m = updateLogin(t, m, enterKey)

	if m.message != session.MsgInvalidCredential {
		t.Errorf("unexpected message %q", m.message)
	}
}

func TestLoginSuccess(t *testing.T) {
	m, store := newTestLogin(t)
	if err := store.Register("bob", "pw"); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	m.inputs[fieldUsername].SetValue("bob")
	m.inputs[fieldPassword].SetValue("pw")
	next, cmd := m.Update(enterKey)
	if cmd == nil {
		t.Fatal("successful login should quit the form")
	}

	id, done := next.(LoginModel).Identity()
	if !done || !id.Authenticated() || id.Username != "bob" {
		t.Errorf("unexpected identity %+v done=%v", id, done)
	}
}

func TestSignUpFlow(t *testing.T) {
	m, _ := newTestLogin(t)
	m = updateLogin(t, m, switchKey)
	if m.mode != modeSignUp || m.fieldCount() != 3 {
		t.Fatal("ctrl+n should switch to sign up")
	}

	m.inputs[fieldUsername].SetValue("carol")
	m.inputs[fieldPassword].SetValue("pw")
	m.inputs[fieldConfirm].SetValue("other")
	m = updateLogin(t, m, enterKey)
	if m.message != session.MsgPasswordMismatch {
		t.Fatalf("unexpected message %q", m.message)
	}

	m.inputs[fieldConfirm].SetValue("pw")
	m = updateLogin(t, m, enterKey)
	if m.message != session.MsgRegistered || !m.success {
		t.Fatalf("unexpected message %q (success=%v)", m.message, m.success)
	}
	if m.mode != modeLogin {
		t.Error("successful sign up should return to the login form")
	}
	if m.inputs[fieldUsername].Value() != "carol" || m.inputs[fieldPassword].Value() != "" {
		t.Error("login form should keep the username and clear the password")
	}
}

func TestLoginFocusCycles(t *testing.T) {
	m, _ := newTestLogin(t)

	m = updateLogin(t, m, tabKey)
	if m.focus != fieldPassword {
		t.Fatalf("expected password focus, got %d", m.focus)
	}
	m = updateLogin(t, m, tabKey)
	if m.focus != fieldUsername {
		t.Errorf("login form has two fields, focus should wrap, got %d", m.focus)
	}
}

func TestSwitchModeKeepsCursorBlinking(t *testing.T) {
	m, _ := newTestLogin(t)

	next, cmd := m.Update(switchKey)
	if cmd == nil {
		t.Error("switching to sign up should refocus the username field")
	}

	m = next.(LoginModel)
	m.inputs[fieldUsername].SetValue("dave")
	m.inputs[fieldPassword].SetValue("pw")
	m.inputs[fieldConfirm].SetValue("pw")
	next, cmd = m.Update(enterKey)
	if cmd == nil {
		t.Error("successful sign up should refocus the username field")
	}
	if next.(LoginModel).focus != fieldUsername {
		t.Errorf("focus = %d, expected username", next.(LoginModel).focus)
	}
}
