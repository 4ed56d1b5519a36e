// Package accounts persists user credentials and per-user high scores in a
// flat, line-oriented text file: one `username,password,highscore` record per line.
package accounts

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultFile is the record file used when no path is configured.
const DefaultFile = "userData.txt"

// Errors returned by the store. I/O failures are wrapped together with the
// sentinel of the operation they broke, so callers fail closed with errors.Is.
var (
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
	ErrUserExists         = errors.New("accounts: user already exists")
	ErrUserNotFound       = errors.New("accounts: user not found")
	ErrEmptyField         = errors.New("accounts: fields cannot be empty")
	ErrInvalidCharacter   = errors.New("accounts: credentials cannot contain commas or line breaks")
	ErrUnavailable        = errors.New("accounts: store unavailable")
)

// Account is one record of the store.
type Account struct {
	Username  string
	Password  string
	HighScore float64
}

// Store reads and writes the record file. It performs no locking; the whole
// program drives it from a single goroutine.
type Store struct {
	path   string
	logger *log.Logger
}

// New returns a store backed by the file at path. The file is created on the
// first registration. A nil logger discards log output.
func New(path string, logger *log.Logger) *Store {
	if path == "" {
		path = DefaultFile
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		path:   path,
		logger: logger.With("path", path),
	}
}

// Path returns the record file location.
func (s *Store) Path() string {
	return s.path
}

// Authenticate looks for an exact username and password match.
// On success the stored account, including its high score, is returned.
// Any failure, including an unreadable file, wraps ErrInvalidCredentials.
func (s *Store) Authenticate(username, password string) (Account, error) {
	records, err := s.load()
	if err != nil {
		s.logger.Error("cannot read accounts", "user", username, "error", err)
		return Account{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	for _, rec := range records {
		if rec.ok && rec.account.Username == username && rec.account.Password == password {
			return rec.account, nil
		}
	}
	return Account{}, ErrInvalidCredentials
}

// Register appends a new account with a zero high score.
// It fails with ErrUserExists if the username is taken.
func (s *Store) Register(username, password string) error {
	if err := ValidateCredentials(username, password); err != nil {
		return err
	}

	records, err := s.load()
	if err != nil {
		s.logger.Error("cannot read accounts", "user", username, "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	for _, rec := range records {
		if rec.ok && rec.account.Username == username {
			return ErrUserExists
		}
	}

	if err := s.appendRecord(Account{Username: username, Password: password}); err != nil {
		s.logger.Error("cannot append account", "user", username, "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	s.logger.Info("account registered", "user", username)
	return nil
}

// UpdateHighScore stores max(stored, candidate) for username and returns the
// resulting high score. The whole file is rewritten through a temporary file
// that replaces the existing file only once fully written. Other records, including
// malformed lines, are copied unchanged.
func (s *Store) UpdateHighScore(username string, candidate float64) (float64, error) {
	records, err := s.load()
	if err != nil {
		s.logger.Error("cannot read accounts", "user", username, "error", err)
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	found := false
	best := candidate
	for i := range records {
		rec := &records[i]
		if !rec.ok || rec.account.Username != username || found {
			continue
		}
		found = true
		best = max(rec.account.HighScore, candidate)
		rec.account.HighScore = best
		rec.raw = formatRecord(rec.account)
	}
	if !found {
		s.logger.Warn("high score for unknown user dropped", "user", username, "score", candidate)
		return 0, ErrUserNotFound
	}

	if err := s.rewrite(records); err != nil {
		s.logger.Error("cannot rewrite accounts", "user", username, "error", err)
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	s.logger.Debug("high score updated", "user", username, "score", candidate, "best", best)
	return best, nil
}

// Lookup returns the account for username.
func (s *Store) Lookup(username string) (Account, error) {
	records, err := s.load()
	if err != nil {
		return Account{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	for _, rec := range records {
		if rec.ok && rec.account.Username == username {
			return rec.account, nil
		}
	}
	return Account{}, ErrUserNotFound
}

// List returns every well-formed account in file order.
func (s *Store) List() ([]Account, error) {
	records, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	accounts := make([]Account, 0, len(records))
	for _, rec := range records {
		if rec.ok {
			accounts = append(accounts, rec.account)
		}
	}
	return accounts, nil
}

// ValidateCredentials rejects empty fields and characters that would break
// the record format.
func ValidateCredentials(username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyField
	}
	if strings.ContainsAny(username, ",\r\n") || strings.ContainsAny(password, ",\r\n") {
		return ErrInvalidCharacter
	}
	return nil
}

// record is one line of the file, parsed if possible.
type record struct {
	raw     string
	account Account
	ok      bool
}

// load reads every line. A missing file is an empty store.
func (s *Store) load() ([]record, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("accounts: cannot open %s: %w", s.path, err)
	}
	defer f.Close()

	var records []record
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		acc, ok := parseRecord(line)
		if !ok {
			s.logger.Warn("skipping malformed account line", "line", lineNo)
		}
		records = append(records, record{raw: line, account: acc, ok: ok})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("accounts: cannot read %s: %w", s.path, err)
	}
	return records, nil
}

func (s *Store) appendRecord(acc Account) error {
	if err := ensureDir(s.path); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("accounts: cannot open %s for append: %w", s.path, err)
	}
	if _, err := f.WriteString(formatRecord(acc) + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("accounts: cannot append to %s: %w", s.path, err)
	}
	return f.Close()
}

// rewrite replaces the file with records via a temp file and rename.
func (s *Store) rewrite(records []record) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("accounts: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.WriteString(rec.raw + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("accounts: cannot write temp file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("accounts: cannot flush temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("accounts: cannot sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("accounts: cannot close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("accounts: cannot chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("accounts: cannot replace %s: %w", s.path, err)
	}
	return nil
}

func parseRecord(line string) (Account, bool) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 || parts[0] == "" {
		return Account{}, false
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return Account{}, false
	}
	return Account{Username: parts[0], Password: parts[1], HighScore: score}, true
}

func formatRecord(acc Account) string {
	return acc.Username + "," + acc.Password + "," + FormatScore(acc.HighScore)
}

// FormatScore renders a score as a plain decimal number ("42", "10.5").
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("accounts: cannot create directory %s: %w", dir, err)
	}
	return nil
}
