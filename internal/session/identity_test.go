package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vovakirdan/tui-flappy/internal/accounts"
)

type AuthSuite struct {
	suite.Suite
	store *accounts.Store
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) SetupTest() {
	s.store = accounts.New(filepath.Join(s.T().TempDir(), accounts.DefaultFile), nil)
}

func (s *AuthSuite) TestLogInEmptyFields() {
	id, msg, err := LogIn(s.store, "", "pw")
	s.ErrorIs(err, accounts.ErrEmptyField)
	s.Equal(MsgEmptyFields, msg)
	s.False(id.Authenticated())
}

func (s *AuthSuite) TestLogInInvalid() {
	s.Require().NoError(s.store.Register("bob", "pw"))

	id, msg, err := LogIn(s.store, "bob", "wrongpw")
	s.ErrorIs(err, accounts.ErrInvalidCredentials)
	s.Equal(MsgInvalidCredential, msg)
	s.False(id.Authenticated())
}

func (s *AuthSuite) TestLogInSuccess() {
	s.Require().NoError(s.store.Register("bob", "pw"))
	_, err := s.store.UpdateHighScore("bob", 12)
	s.Require().NoError(err)

	id, msg, err := LogIn(s.store, "bob", "pw")
	s.Require().NoError(err)
	s.Empty(msg)
	s.True(id.Authenticated())
	s.Equal("bob", id.Username)
	s.Equal(12.0, id.HighScore)
}

func (s *AuthSuite) TestSignUp() {
	tests := []struct {
		name                string
		user, pass, confirm string
		msg                 string
		err                 error
	}{
		{"empty confirm", "bob", "pw", "", MsgEmptyFields, accounts.ErrEmptyField},
		{"mismatch", "bob", "pw", "pw2", MsgPasswordMismatch, ErrPasswordMismatch},
		{"comma", "b,ob", "pw", "pw", MsgInvalidCharacter, accounts.ErrInvalidCharacter},
		{"success", "bob", "pw", "pw", MsgRegistered, nil},
		{"duplicate", "bob", "pw2", "pw2", MsgUserExists, accounts.ErrUserExists},
	}

	for _, tt := range tests {
		msg, err := SignUp(s.store, tt.user, tt.pass, tt.confirm)
		s.Equal(tt.msg, msg, tt.name)
		if tt.err == nil {
			s.NoError(err, tt.name)
		} else {
			s.ErrorIs(err, tt.err, tt.name)
		}
	}

	// The duplicate attempt must not have replaced bob's password.
	_, _, err := LogIn(s.store, "bob", "pw")
	s.NoError(err)
}
