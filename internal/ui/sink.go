package ui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jorgeparavicini/lazycloud/internal/command"
)

// programSink forwards toasts from command goroutines into the event
// loop. The program pointer is attached after construction; toasts
// raised before attach are dropped.
type programSink struct {
	p atomic.Pointer[tea.Program]
}

func (s *programSink) attach(p *tea.Program) {
	s.p.Store(p)
}

func (s *programSink) ShowToast(message string, kind command.ToastKind) {
	if p := s.p.Load(); p != nil {
		p.Send(toastMsg{text: message, kind: kind})
	}
}
