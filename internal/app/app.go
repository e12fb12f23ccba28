package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jorgeparavicini/lazycloud/internal/cloud"
	"github.com/jorgeparavicini/lazycloud/internal/config"
	"github.com/jorgeparavicini/lazycloud/internal/gcp"
	"github.com/jorgeparavicini/lazycloud/internal/gcp/secretmanager"
	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/logging"
	"github.com/jorgeparavicini/lazycloud/internal/service"
	"github.com/jorgeparavicini/lazycloud/internal/ui"
)

// Options configure the lazycloud application.
type Options struct {
	// Context preselects a cloud context by name.
	Context string
	// Service preselects a service by its key, e.g. "secret-manager".
	Service string
	// Debug lowers the log level to include debug entries.
	Debug bool
}

// Run boots the lazycloud TUI and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	logPath, closeLog := logging.Setup(opts.Debug)
	defer closeLog()

	cfg := config.Default()
	var store *config.Store
	if path, err := config.DefaultPath(); err != nil {
		slog.Warn("config location unavailable", "error", err)
	} else {
		cfg = config.Load(path)
		store = config.NewStore(path, cfg)
	}

	slog.Info("lazycloud starting", "log", logPath, "theme", cfg.Theme)

	resolver, err := keymap.NewResolver(cfg.Keybindings)
	if err != nil {
		slog.Warn("invalid keybinding overrides, using defaults", "error", err)
		resolver = keymap.Default()
	}
	contexts := loadContexts()

	registry := service.NewRegistry()
	registry.Register(secretmanager.ServiceProvider{})

	if err := validatePreselection(opts, contexts, registry); err != nil {
		return err
	}

	return ui.Run(ui.Options{
		Context:      ctx,
		Contexts:     contexts,
		Registry:     registry,
		Resolver:     resolver,
		Store:        store,
		ThemeName:    cfg.Theme,
		StartContext: opts.Context,
		StartService: opts.Service,
		LastContext:  cfg.LastContext,
	})
}

// loadContexts merges freshly discovered gcloud configurations into
// the persisted context list and writes the result back. Every step is
// best-effort; an empty machine simply starts with no contexts.
func loadContexts() []cloud.Context {
	var existing []cloud.Context
	var path string
	if dir, err := config.Dir(); err == nil {
		path = filepath.Join(dir, cloud.ContextsFile)
		existing = cloud.LoadContexts(path)
	}

	var discovered []cloud.Context
	if gcloudDir, err := gcp.DefaultDir(); err == nil {
		discovered = gcp.DiscoverContexts(gcloudDir)
	} else {
		slog.Warn("gcloud directory unavailable", "error", err)
	}

	merged := cloud.Reconcile(existing, discovered)
	if path != "" {
		if err := cloud.SaveContexts(path, merged); err != nil {
			slog.Warn("persist contexts failed", "error", err)
		}
	}
	slog.Info("contexts loaded", "persisted", len(existing), "discovered", len(discovered), "total", len(merged))
	return merged
}

// validatePreselection rejects unknown --context and --service values
// before the terminal is taken over, naming the valid choices.
func validatePreselection(opts Options, contexts []cloud.Context, registry *service.Registry) error {
	if opts.Context != "" {
		found := false
		for _, c := range contexts {
			if strings.EqualFold(c.Name(), opts.Context) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown context %q (available: %s)", opts.Context, contextNames(contexts))
		}
	}

	if opts.Service != "" {
		if _, ok := registry.FindByKey(opts.Service); !ok {
			return fmt.Errorf("unknown service %q (available: %s)", opts.Service, serviceKeys(registry))
		}
	}
	return nil
}

func contextNames(contexts []cloud.Context) string {
	if len(contexts) == 0 {
		return "none"
	}
	names := make([]string, len(contexts))
	for i, c := range contexts {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}

func serviceKeys(registry *service.Registry) string {
	ids := registry.IDs()
	if len(ids) == 0 {
		return "none"
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.Key
	}
	return strings.Join(keys, ", ")
}
