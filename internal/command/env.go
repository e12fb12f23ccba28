package command

import (
	"sync"

	"github.com/atotto/clipboard"
)

// ToastKind classifies a toast notification.
type ToastKind uint8

const (
	ToastSuccess ToastKind = iota
	ToastInfo
)

// Sink receives notifications produced by commands while they run off
// the event loop. The app implements it by posting messages back onto
// its own channel, which is safe from any goroutine.
type Sink interface {
	ShowToast(message string, kind ToastKind)
}

// Env is the shared environment handed to every command. Copies share
// the same clipboard lock, so an Env can be passed by value into
// commands running concurrently.
type Env struct {
	mu    *sync.Mutex
	write func(text string) error
	sink  Sink
}

// NewEnv returns an Env that reports toasts through sink.
func NewEnv(sink Sink) Env {
	return Env{mu: &sync.Mutex{}, write: clipboard.WriteAll, sink: sink}
}

// SetClipboard copies text to the system clipboard. The clipboard is a
// process-wide resource, so writes are serialized across commands.
func (e Env) SetClipboard(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.write(text)
}

// ShowToast posts a toast notification to the app.
func (e Env) ShowToast(message string, kind ToastKind) {
	if e.sink != nil {
		e.sink.ShowToast(message, kind)
	}
}
