package storage

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Preference keys. The high score is an integer string, reduce motion is "0" or "1".
const (
	KeyHighScore    = "popafriend_highscore"
	KeyReduceMotion = "popafriend_reducemotion"
)

// Preferences reads and writes the two persisted game settings.
// Missing or malformed values read as their defaults (0, false) and are never reported as errors.
type Preferences struct {
	mu     sync.Mutex // Serializes high score read-compare-write
	kv     KV
	logger *log.Logger
}

// NewPreferences wraps kv. A nil logger discards fallback warnings.
func NewPreferences(kv KV, logger *log.Logger) *Preferences {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Preferences{kv: kv, logger: logger}
}

// HighScore returns the stored best score, or 0 if absent or invalid.
func (p *Preferences) HighScore() int {
	raw, ok := p.read(KeyHighScore)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		p.logger.Warn("ignoring invalid high score", "value", raw)
		return 0
	}
	return n
}

// SetHighScore persists n. Negative values are stored as 0.
func (p *Preferences) SetHighScore(n int) error {
	if n < 0 {
		n = 0
	}
	return p.kv.Set(KeyHighScore, strconv.Itoa(n))
}

// RaiseHighScore stores n if it strictly exceeds the stored high score.
// Concurrent callers sharing this Preferences are serialized, so the stored
// value never goes down. previous is the score n was compared against.
func (p *Preferences) RaiseHighScore(n int) (previous int, raised bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	previous = p.HighScore()
	if n <= previous {
		return previous, false, nil
	}
	if err := p.SetHighScore(n); err != nil {
		return previous, false, err
	}
	return previous, true, nil
}

// ReduceMotion returns the stored flag, or false if absent or invalid.
func (p *Preferences) ReduceMotion() bool {
	raw, ok := p.read(KeyReduceMotion)
	if !ok {
		return false
	}
	switch strings.TrimSpace(raw) {
	case "1":
		return true
	case "0":
		return false
	default:
		p.logger.Warn("ignoring invalid reduce-motion flag", "value", raw)
		return false
	}
}

// SetReduceMotion persists b as "1" or "0".
func (p *Preferences) SetReduceMotion(b bool) error {
	return p.kv.Set(KeyReduceMotion, strconv.Itoa(boolToInt(b)))
}

func (p *Preferences) read(key string) (string, bool) {
	raw, ok, err := p.kv.Get(key)
	if err != nil {
		p.logger.Warn("preference read failed, using default", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}
