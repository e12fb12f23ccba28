// Package ui owns the Bubble Tea event loop. It drives the three
// phases of the application (context selection, service selection,
// active service), overlays for help, themes, and errors, the command
// tracker panel, toasts, and the status bar. Services plug in through
// the service.Service interface and never touch the terminal directly.
package ui
