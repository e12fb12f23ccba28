// Package view provides the reusable interactive building blocks the
// rest of the application composes into screens: filterable tables,
// selectable lists, text inputs, confirmation dialogs and spinners.
//
// Components share a single input contract. A key event offered to a
// component produces a three-valued Result: Ignored when the component
// did not recognize the key (the caller is free to route it elsewhere),
// Consumed when the component reacted without anything to report, or an
// Event the owner must act on. Components never talk to services or the
// network; they hold view state only and surface intent through events.
//
// Rendering is pure string assembly with lipgloss. Each component
// exposes a View method taking the area it may occupy plus the active
// theme, so the same component instance can be drawn into any layout
// slot without reconfiguration.
package view
