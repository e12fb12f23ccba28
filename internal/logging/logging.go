// Package logging routes the application log to a daily file under the
// platform data directory. The TUI owns the terminal, so nothing here
// ever writes to stdout or stderr, and a failure to open the log file
// degrades to a discard logger instead of an error.
package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const appDir = "lazycloud"

// Dir returns the lazycloud log directory.
func Dir() (string, error) {
	base, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDir, "logs"), nil
}

// Setup opens today's log file and installs it as the slog default.
// It returns the file path and a close func; on failure the path is
// empty, the default logger discards everything, and the close func is
// a no-op.
func Setup(debug bool) (string, func()) {
	discard := func() (string, func()) {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return "", func() {}
	}

	dir, err := Dir()
	if err != nil {
		return discard()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard()
	}

	name := "lazycloud." + time.Now().Format("2006-01-02") + ".log"
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return discard()
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	return path, func() { _ = file.Close() }
}

// dataDir resolves the per-OS local data root, the same location the
// platform stores application state in.
func dataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("LocalAppData"); dir != "" {
			return dir, nil
		}
		return filepath.Join(home, "AppData", "Local"), nil
	default:
		return filepath.Join(home, ".local", "share"), nil
	}
}
