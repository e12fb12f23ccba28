package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func withTempDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	return dir
}

func TestSetup_WritesToDailyFile(t *testing.T) {
	dir := withTempDataDir(t)

	path, closeFn := Setup(false)
	defer closeFn()

	if path == "" {
		t.Fatal("Setup returned empty path")
	}
	wantName := "lazycloud." + time.Now().Format("2006-01-02") + ".log"
	if filepath.Base(path) != wantName {
		t.Fatalf("log file = %q, want %q", filepath.Base(path), wantName)
	}
	if !strings.HasPrefix(path, dir) {
		t.Fatalf("log path %q not under data dir %q", path, dir)
	}

	slog.Info("boot", "version", "test")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "boot") {
		t.Fatalf("log file missing entry, got %q", string(data))
	}
}

func TestSetup_DebugLevelEnablesDebugEntries(t *testing.T) {
	withTempDataDir(t)

	path, closeFn := Setup(true)
	slog.Debug("verbose detail")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "verbose detail") {
		t.Fatalf("debug entry missing, got %q", string(data))
	}
}

func TestSetup_InfoLevelDropsDebugEntries(t *testing.T) {
	withTempDataDir(t)

	path, closeFn := Setup(false)
	slog.Debug("hidden")
	slog.Info("shown")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("debug entry leaked at info level: %q", string(data))
	}
	if !strings.Contains(string(data), "shown") {
		t.Fatalf("info entry missing, got %q", string(data))
	}
}

func TestSetup_UnwritableDirDegradesToDiscard(t *testing.T) {
	dir := withTempDataDir(t)

	// Occupy the logs path with a file so MkdirAll fails.
	blocked := filepath.Join(dir, "lazycloud")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	path, closeFn := Setup(false)
	defer closeFn()

	if path != "" {
		t.Fatalf("Setup path = %q, want empty on failure", path)
	}
	// Logging must still be safe to call.
	slog.Info("dropped")
}

func TestDir_UsesXDGDataHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	want := filepath.Join(dir, "lazycloud", "logs")
	if got != want {
		t.Fatalf("Dir() = %q, want %q", got, want)
	}
}
