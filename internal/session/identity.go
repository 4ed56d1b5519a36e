package session

import (
	"errors"

	"github.com/vovakirdan/tui-flappy/internal/accounts"
)

var (
	ErrNotAuthenticated = errors.New("session: not authenticated")
	ErrPasswordMismatch = errors.New("session: passwords do not match")
)

// Messages shown on the login and sign-up forms.
const (
	MsgEmptyFields       = "Fields cannot be empty."
	MsgInvalidCredential = "Invalid credentials!"
	MsgPasswordMismatch  = "Passwords do not match."
	MsgUserExists        = "User already exists."
	MsgInvalidCharacter  = "Username and password cannot contain commas."
	MsgUnavailable       = "Account store unavailable, try again."
	MsgRegistered        = "User registered successfully! You can now log in."
)

// Identity is the authenticated user for the lifetime of the process.
type Identity struct {
	Username  string
	HighScore float64

	authenticated bool
}

// Authenticated reports whether the identity came from a successful login.
func (i Identity) Authenticated() bool {
	return i.authenticated
}

// Authenticator is the part of the account store the forms need.
type Authenticator interface {
	Authenticate(username, password string) (accounts.Account, error)
	Register(username, password string) error
}

// LogIn checks credentials and returns the identity to play as. On failure
// msg holds the text to show on the form.
func LogIn(auth Authenticator, username, password string) (id Identity, msg string, err error) {
	if username == "" || password == "" {
		return Identity{}, MsgEmptyFields, accounts.ErrEmptyField
	}

	acc, err := auth.Authenticate(username, password)
	if err != nil {
		return Identity{}, MsgInvalidCredential, err
	}

	return Identity{
		Username:      acc.Username,
		HighScore:     acc.HighScore,
		authenticated: true,
	}, "", nil
}

// SignUp registers a new account. The returned message is shown on success
// as well as on failure.
func SignUp(auth Authenticator, username, password, confirm string) (msg string, err error) {
	if username == "" || password == "" || confirm == "" {
		return MsgEmptyFields, accounts.ErrEmptyField
	}
	if password != confirm {
		return MsgPasswordMismatch, ErrPasswordMismatch
	}

	err = auth.Register(username, password)
	switch {
	case err == nil:
		return MsgRegistered, nil
	case errors.Is(err, accounts.ErrUserExists):
		return MsgUserExists, err
	case errors.Is(err, accounts.ErrInvalidCharacter):
		return MsgInvalidCharacter, err
	case errors.Is(err, accounts.ErrEmptyField):
		return MsgEmptyFields, err
	default:
		return MsgUnavailable, err
	}
}
