// Package config loads and persists lazycloud user settings.
//
// Settings live in config.toml under the platform config directory
// (~/.config/lazycloud on Linux). The file holds the theme name, the
// last selected context, and keybinding overrides:
//
//	theme = "Catppuccin Mocha"
//	last_context = "prod"
//
//	[keybindings.global]
//	quit = "ctrl+q"
//
// A missing or malformed file is never an error; Load falls back to
// the compiled-in defaults so the app works without any configuration.
// Writes go through Store, which rewrites the whole file and preserves
// every field it loaded.
package config
