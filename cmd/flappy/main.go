// flappy is a terminal gate-runner: log in, then flap through an endless
// stream of gates while the speed climbs with your score.
//
// Usage:
//
//	flappy                   - Log in (or sign up) and play
//	flappy scores [--user]   - Print the run history leaderboard
//	flappy scores --reset    - Delete the run history of --user
//	flappy board             - Browse run history interactively
//	flappy config            - Print the effective game config
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gates
//	--accounts <path>   - Account file (default: userData.txt)
//	--db <path>         - Run history database (default: ~/.flappy/history.db)
//	--config <path>     - Custom game config YAML
//	--log-file <path>   - Log file while the game owns the terminal
//	--log-level <lvl>   - debug, info, warn or error
//	--mono              - Grayscale theme
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/accounts"
	"github.com/vovakirdan/tui-flappy/internal/history"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagAccountsPath string
	flagDBPath       string
	flagConfig       string
	flagLogFile      string
	flagLogLevel     string
	flagMono         bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - flap through gates in your terminal",
	Long: `Flappy is a terminal gate-runner. Log in or create an account, then
keep the bird airborne through an endless stream of gates. Every gate
cleared scores a point; the gates speed up past 20 and 50 points.

Controls:
  Space/Up/Enter  - Start, flap, restart
  Mouse click     - Press START, RESTART or MENU; flap while playing
  P               - Pause
  Ctrl+S          - Save a text screenshot
  Q/Ctrl+C        - Quit

Examples:
  flappy
  flappy --seed 42 --fps 30
  flappy scores --user alice
  flappy board`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagAccountsPath, "accounts", accounts.DefaultFile, "Path to the account file")
	pf.StringVar(&flagDBPath, "db", history.DefaultPath, "Path to the run history database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagLogFile, "log-file", defaultLogFile, "Log file used while the game is running")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagMono, "mono", false, "Use a grayscale theme")

	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(configCmd)
}

func uiTheme() tui.Theme {
	if flagMono {
		return tui.MonochromeTheme()
	}
	return tui.DefaultTheme()
}
