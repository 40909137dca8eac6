package mem

import (
	"fmt"
	"io"
	"log/slog"
)

// logger receives package diagnostics. It discards all output by default;
// route it somewhere with SetLogger.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger routes package diagnostics (such as unknown-strategy fallbacks)
// to the given logger. A nil logger is ignored.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Strategy selects which free block Allocate places a request in.
type Strategy uint8

const (
	// FirstFit takes the lowest-addressed free block that fits.
	FirstFit Strategy = iota

	// BestFit takes the smallest free block that fits. Ties go to the
	// earliest candidate in address order.
	BestFit

	// WorstFit takes the largest free block that fits. Ties go to the
	// earliest candidate in address order.
	WorstFit
)

// Strategies lists every placement strategy, for iteration and random choice.
var Strategies = []Strategy{FirstFit, BestFit, WorstFit}

func (s Strategy) String() string {
	switch s {
	case FirstFit:
		return "first-fit"
	case BestFit:
		return "best-fit"
	case WorstFit:
		return "worst-fit"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// ParseStrategy maps a strategy name to a Strategy. Both dashed and
// underscored spellings are accepted. Unknown names fall back to FirstFit
// with a diagnostic on the package logger; allocation still proceeds.
func ParseStrategy(name string) Strategy {
	switch name {
	case "first-fit", "first_fit":
		return FirstFit
	case "best-fit", "best_fit":
		return BestFit
	case "worst-fit", "worst_fit":
		return WorstFit
	default:
		logger.Warn("unknown allocation strategy, using first-fit", "strategy", name)
		return FirstFit
	}
}
