// popafriend is a timed balloon-popping game for the terminal.
//
// Usage:
//
//	popafriend play                    - Play a round in this terminal
//	popafriend serve                   - Start SSH server for remote play
//	popafriend scores                  - Show recent rounds and the best score
//	popafriend prefs                   - Show or change stored preferences
//
// Global flags:
//
//	--fps <rate>         - Frame rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible rounds
//	--db <path>          - Set database path (default: ~/.popafriend/popafriend.db)
//	--config <path>      - Custom tuning YAML
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "popafriend",
	Short: "Pop a Friend - pop photo balloons before they float away",
	Long: `Pop a Friend is a 30 second reflex game. Balloons carrying your friends'
photos rise through the play area; click them before they float off the top.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View recent rounds
  prefs    - Show or change preferences

Examples:
  popafriend play
  popafriend play --photo alice.png --photo bob.jpg
  popafriend play --reduce-motion
  popafriend serve --ssh :2222
  popafriend scores --browse`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.popafriend/popafriend.db", "Path to database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(prefsCmd)
}
