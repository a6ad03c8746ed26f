package game

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/popafriend/internal/storage"
)

// RoundRecorder persists finished rounds.
type RoundRecorder interface {
	RecordRound(r storage.RoundRecord) (int64, error)
}

// HistoryListener returns a listener that records every RoundEnded event.
// Write failures are logged and otherwise ignored.
func HistoryListener(rec RoundRecorder, logger *log.Logger) Listener {
	return func(ev Event) {
		ended, ok := ev.(RoundEnded)
		if !ok {
			return
		}
		_, err := rec.RecordRound(storage.RoundRecord{
			RoundID:      ended.RoundID,
			Score:        ended.FinalScore,
			NewHighScore: ended.NewHighScore,
			Seconds:      ended.Seconds,
		})
		if err != nil && logger != nil {
			logger.Warn("could not record round", "round", ended.RoundID, "error", err)
		}
	}
}
