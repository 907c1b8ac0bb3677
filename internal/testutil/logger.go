package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/bryanmylee/LetsMeetService/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, int(slog.LevelDebug), "text")
}

// MakeBufferLogger returns a debug-level JSON logger and the buffer it writes to,
// one object per line.
func MakeBufferLogger() (*logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logger.NewWithWriter(buf, int(slog.LevelDebug), "json"), buf
}

// LogLevels returns the "level" of every JSON line written to buf.
func LogLevels(buf *bytes.Buffer) []string {
	var levels []string
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry struct {
			Level string `json:"level"`
		}
		if err := json.Unmarshal(line, &entry); err == nil {
			levels = append(levels, entry.Level)
		}
	}
	return levels
}
