// Command pagecraft is the career-site page builder.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/pagecraft/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pagecraft/internal/adapters/driven/idgen"
	"github.com/custodia-labs/pagecraft/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pagecraft/internal/adapters/driven/templates"
	"github.com/custodia-labs/pagecraft/internal/adapters/driving/cli"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
	"github.com/custodia-labs/pagecraft/internal/core/services"
	"github.com/custodia-labs/pagecraft/internal/logger"
)

// keyTemplatesFile points at a YAML catalogue replacing the built-in palette.
const keyTemplatesFile = "builder.templates_file"

func main() {
	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters into the core services.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	logger.Section("bootstrap")
	var (
		store   driven.ConfigStore
		watcher driven.ConfigWatcher
	)
	if opts.Ephemeral {
		store = memory.NewConfigStore()
	} else {
		fileStore, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		store = fileStore
		watcher = fileStore
	}

	source := templates.NewEmbeddedSource()
	if path := store.GetString(keyTemplatesFile); path != "" {
		custom, err := templates.NewFileSource(path)
		if err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
		source = custom
		logger.Debug("templates: using %s", path)
	}

	registry, err := services.NewTemplateRegistry(source)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	if missing := registry.Missing(); len(missing) > 0 {
		logger.Warn("templates: no template for %v; those types cannot be added", missing)
	}

	cfg := services.LoadBuilderConfig(store)
	logger.Debug("builder: zoom=%d device=%s history_limit=%d", cfg.DefaultZoom, cfg.DefaultDevice, cfg.HistoryLimit)
	return &cli.Services{
		Templates:     registry,
		Site:          services.NewSiteSettingsService(store),
		BuilderConfig: cfg,
		ConfigWatcher: watcher,
		NewBuilder: func(ids driven.IDGenerator) driving.BuilderService {
			if ids == nil {
				ids = idgen.UUID{}
			}
			return services.NewBuilderService(registry, ids, cfg)
		},
	}, nil
}
