package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/popafriend/internal/storage"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change stored preferences",
	Long: `Show the stored high score and reduce-motion flag, or change them.

Examples:
  popafriend prefs
  popafriend prefs reduce-motion on
  popafriend prefs reset-high-score`,
	Args: cobra.NoArgs,
	Run:  runPrefs,
}

var reduceMotionCmd = &cobra.Command{
	Use:       "reduce-motion <on|off>",
	Short:     "Turn reduce motion on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	Run:       runReduceMotion,
}

var resetHighScoreCmd = &cobra.Command{
	Use:   "reset-high-score",
	Short: "Forget the stored high score",
	Args:  cobra.NoArgs,
	Run:   runResetHighScore,
}

func init() {
	prefsCmd.AddCommand(reduceMotionCmd)
	prefsCmd.AddCommand(resetHighScoreCmd)
}

// openPrefs opens the database or exits.
func openPrefs() (*storage.Store, *storage.Preferences) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store, storage.NewPreferences(store, nil)
}

func runPrefs(_ *cobra.Command, _ []string) {
	store, prefs := openPrefs()
	defer store.Close()

	fmt.Printf("High score:    %d\n", prefs.HighScore())
	fmt.Printf("Reduce motion: %s\n", onOff(prefs.ReduceMotion()))
}

func runReduceMotion(_ *cobra.Command, args []string) {
	on, err := parseOnOff(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, prefs := openPrefs()
	defer store.Close()

	if err := prefs.SetReduceMotion(on); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving preference: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Reduce motion: %s\n", onOff(on))
}

func runResetHighScore(_ *cobra.Command, _ []string) {
	store, _ := openPrefs()
	defer store.Close()

	if err := store.Delete(storage.KeyHighScore); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting high score: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("High score reset.")
}

// parseOnOff accepts on/off and the usual boolean spellings.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
