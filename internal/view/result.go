package view

type resultKind uint8

const (
	resultIgnored resultKind = iota
	resultConsumed
	resultEvent
)

// Result is the outcome of offering a key event to a component.
type Result[E any] struct {
	kind  resultKind
	event E
}

// Ignored reports that the component did not recognize the key at all.
func Ignored[E any]() Result[E] { return Result[E]{kind: resultIgnored} }

// Consumed reports that the component handled the key without
// producing an event.
func Consumed[E any]() Result[E] { return Result[E]{kind: resultConsumed} }

// Event reports that the component handled the key and produced an
// event for its owner.
func Event[E any](e E) Result[E] { return Result[E]{kind: resultEvent, event: e} }

// IsIgnored reports whether the key was not handled.
func (r Result[E]) IsIgnored() bool { return r.kind == resultIgnored }

// IsConsumed reports whether the component took the key, with or
// without an event.
func (r Result[E]) IsConsumed() bool { return r.kind != resultIgnored }

// Event returns the produced event and whether one exists.
func (r Result[E]) Event() (E, bool) { return r.event, r.kind == resultEvent }
