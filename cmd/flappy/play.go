package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/accounts"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/history"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/session"
)

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	gameCfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return err
	}

	store := accounts.New(config.ExpandPath(flagAccountsPath), logger)
	logger.Debug("account store", "path", store.Path())

	// History is optional; the game runs without it.
	var runLog session.RunLog
	runs, err := history.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "path", flagDBPath, "error", err)
	} else {
		defer runs.Close()
		runLog = runs
	}

	id, ok, err := tui.RunLogin(store, uiTheme(), logger)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !ok {
		return nil
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	rtCfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if rtCfg.Seed == 0 {
		rtCfg.Seed = time.Now().UnixNano()
	}

	sim := flappy.NewSimulation(gameCfg, flappy.NewRand(rtCfg.Seed))
	recorder := session.NewRecorder(store, runLog, logger)
	ctrl, err := session.NewController(id, sim, recorder, logger)
	if err != nil {
		return err
	}

	logger.Info("session started", "user", id.Username, "seed", rtCfg.Seed, "fps", rtCfg.TickRate)
	if err := tui.RunGame(ctrl, rtCfg, logger); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	logger.Info("session ended", "user", id.Username, "high_score", ctrl.Identity().HighScore)
	return nil
}
