package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/popafriend/internal/config"
	"github.com/vovakirdan/popafriend/internal/core"
	"github.com/vovakirdan/popafriend/internal/gallery"
	"github.com/vovakirdan/popafriend/internal/platform/tui"
	"github.com/vovakirdan/popafriend/internal/storage"
)

var (
	flagPhotos       []string
	flagReduceMotion bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start the game in this terminal.

Controls:
  Mouse click      - Pop a balloon
  S/Enter/Space    - Start a round
  R                - Restart
  M                - Toggle reduce motion (saved)
  ?                - Help
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Up to 5 photos can be added with --photo; balloons show a random one.
Without photos balloons carry a heart.

Examples:
  popafriend play
  popafriend play --photo ~/pics/alice.png --photo ~/pics/bob.jpg
  popafriend play --reduce-motion
  popafriend play --config ./slow-balloons.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringArrayVar(&flagPhotos, "photo", nil, "Photo file to put on balloons (repeatable, max 5)")
	playCmd.Flags().BoolVar(&flagReduceMotion, "reduce-motion", false, "Skip animations (saved as a preference)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("popafriend", io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database, scores will not be saved: %v\n", err)
		store = nil
	}

	var kv storage.KV = storage.NewMemStore()
	if store != nil {
		kv = store
	}
	prefs := storage.NewPreferences(kv, logger)

	if cmd.Flags().Changed("reduce-motion") {
		if err := prefs.SetReduceMotion(flagReduceMotion); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save reduce-motion: %v\n", err)
		}
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			FPS:     flagFPS,
			Seed:    flagSeed,
		},
		Prefs:  prefs,
		Photos: loadPhotos(flagPhotos, cfg.Gallery.MaxPhotos, logger),
		Logger: logger,
	}
	if store != nil {
		opts.History = store
	}

	runErr := tui.Run(opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadPhotos keeps the readable files among paths, up to limit.
func loadPhotos(paths []string, limit int, logger *log.Logger) []gallery.Photo {
	photos := make([]gallery.Photo, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		switch {
		case err != nil:
			fmt.Fprintf(os.Stderr, "Warning: skipping photo %s: %v\n", p, err)
			continue
		case info.IsDir():
			fmt.Fprintf(os.Stderr, "Warning: skipping photo %s: is a directory\n", p)
			continue
		}
		if len(photos) == limit {
			fmt.Fprintf(os.Stderr, "Warning: only %d photos fit, skipping %s\n", limit, p)
			continue
		}
		photos = append(photos, gallery.Photo(p))
		logger.Debug("photo added", "path", p)
	}
	return photos
}
