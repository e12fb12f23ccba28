package command

import (
	"fmt"
	"time"
)

// ID identifies a tracked command instance.
type ID uint64

// Running describes a command that has started but not completed.
type Running struct {
	ID        ID
	Name      string
	StartedAt time.Time
}

// Completed describes a finished command kept for the recent history.
type Completed struct {
	Name        string
	Success     bool
	Duration    time.Duration
	CompletedAt time.Time
}

const maxHistory = 10

// Tracker records in-flight and recently finished commands for the
// status display. The zero value is ready to use. It is owned by the
// event loop and is not safe for concurrent use.
type Tracker struct {
	running  []Running
	history  []Completed // most recent first
	nextID   ID
	expanded bool
}

// Start registers a command and returns its id.
func (t *Tracker) Start(name string) ID {
	id := t.nextID
	t.nextID++
	t.running = append(t.running, Running{ID: id, Name: name, StartedAt: time.Now()})
	return id
}

// Complete moves a running command into the history. Unknown ids are
// ignored, so a completion observed after quit is harmless.
func (t *Tracker) Complete(id ID, success bool) {
	for i, r := range t.running {
		if r.ID != id {
			continue
		}
		t.running = append(t.running[:i], t.running[i+1:]...)
		done := Completed{
			Name:        r.Name,
			Success:     success,
			Duration:    time.Since(r.StartedAt),
			CompletedAt: time.Now(),
		}
		t.history = append([]Completed{done}, t.history...)
		if len(t.history) > maxHistory {
			t.history = t.history[:maxHistory]
		}
		return
	}
}

// ToggleExpanded flips the expanded panel on or off.
func (t *Tracker) ToggleExpanded() {
	t.expanded = !t.expanded
}

// Expanded reports whether the detail panel is open.
func (t *Tracker) Expanded() bool { return t.expanded }

// RunningCount returns the number of in-flight commands.
func (t *Tracker) RunningCount() int { return len(t.running) }

// HasRunning reports whether any command is in flight.
func (t *Tracker) HasRunning() bool { return len(t.running) > 0 }

// Running returns the in-flight commands in start order. The slice is
// a copy and safe to hold across later Start/Complete calls.
func (t *Tracker) Running() []Running {
	dup := make([]Running, len(t.running))
	copy(dup, t.running)
	return dup
}

// Recent returns completed commands, most recent first, bounded by the
// history limit. The slice is a copy.
func (t *Tracker) Recent() []Completed {
	dup := make([]Completed, len(t.history))
	copy(dup, t.history)
	return dup
}

// FormatDuration renders an elapsed time the way the status display
// shows it: sub-second as milliseconds, then seconds with shrinking
// precision, then minutes.
func FormatDuration(d time.Duration) string {
	secs := d.Seconds()
	switch {
	case secs < 1:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case secs < 10:
		return fmt.Sprintf("%.1fs", secs)
	case secs < 60:
		return fmt.Sprintf("%.0fs", secs)
	default:
		return fmt.Sprintf("%.1fm", secs/60)
	}
}

// FormatAge renders how long ago a command finished.
func FormatAge(d time.Duration) string {
	secs := int64(d / time.Second)
	switch {
	case secs < 5:
		return "just now"
	case secs < 60:
		return fmt.Sprintf("%ds ago", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm ago", secs/60)
	default:
		return fmt.Sprintf("%dh ago", secs/3600)
	}
}
