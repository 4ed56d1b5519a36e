package session

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/history"
)

// Result is a finished run.
type Result struct {
	Username string
	Score    float64
	Stage    int
	Ticks    int
	Cause    flappy.EndCause
}

// RunRecorder persists a finished run and returns the user's high score
// after the update.
type RunRecorder interface {
	RecordRun(Result) (float64, error)
}

// ScoreKeeper stores the best score per user.
type ScoreKeeper interface {
	UpdateHighScore(username string, candidate float64) (float64, error)
}

// RunLog stores every run.
type RunLog interface {
	SaveRun(history.Run) (int64, error)
}

// Recorder writes a run to the account store and, when configured, to the
// run history. Failures are logged and returned; nothing is retried.
type Recorder struct {
	scores ScoreKeeper
	runs   RunLog
	logger *log.Logger
}

// NewRecorder creates a recorder. runs may be nil.
func NewRecorder(scores ScoreKeeper, runs RunLog, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{scores: scores, runs: runs, logger: logger}
}

// RecordRun implements RunRecorder.
func (r *Recorder) RecordRun(res Result) (float64, error) {
	var errs []error

	best, err := r.scores.UpdateHighScore(res.Username, res.Score)
	if err != nil {
		r.logger.Warn("high score update dropped", "user", res.Username, "score", res.Score, "error", err)
		errs = append(errs, err)
	}

	if r.runs != nil {
		_, err := r.runs.SaveRun(history.Run{
			Username: res.Username,
			Score:    res.Score,
			Stage:    res.Stage,
			Ticks:    res.Ticks,
		})
		if err != nil {
			r.logger.Warn("run not saved to history", "user", res.Username, "error", err)
			errs = append(errs, err)
		}
	}

	return best, errors.Join(errs...)
}
