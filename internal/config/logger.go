package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a text logger at level. A nil writer means stderr.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
