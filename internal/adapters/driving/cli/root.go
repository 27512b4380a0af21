// Package cli provides the cobra command tree for pagecraft.
//
// Commands read their dependencies from package-level variables set by
// SetServices (tests) or built lazily by the bootstrap registered with
// SetBootstrap (main), so that --config-dir is honoured.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driven"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
	"github.com/custodia-labs/pagecraft/internal/logger"
)

// version is set during build with -ldflags.
var version = "dev"

// Options are the global flags that influence how services are built.
type Options struct {
	// ConfigDir overrides the directory holding config.toml.
	ConfigDir string

	// Ephemeral keeps configuration in memory only.
	Ephemeral bool
}

// BuilderFactory opens a new, empty editing session.
// ids may be nil, in which case the factory chooses a generator.
type BuilderFactory func(ids driven.IDGenerator) driving.BuilderService

// Services groups everything the commands need.
type Services struct {
	Templates     driving.TemplateRegistry
	Site          driving.SiteSettingsService
	NewBuilder    BuilderFactory
	BuilderConfig domain.BuilderConfig

	// ConfigWatcher is optional; the TUI uses it to pick up edits to config.toml.
	ConfigWatcher driven.ConfigWatcher
}

var (
	verbose   bool
	configDir string
	ephemeral bool

	services  *Services
	bootstrap func(Options) (*Services, error)
)

var rootCmd = &cobra.Command{
	Use:   "pagecraft",
	Short: "Career-site page builder",
	Long: `pagecraft edits career-site pages made of placeable components.

Components are added from a fixed template palette, arranged, styled and
nested inside containers. Every structural edit is recorded so it can be
undone. Site-wide branding lives in ~/.pagecraft/config.toml.

Run 'pagecraft tui' for the interactive builder, or 'pagecraft mcp serve'
to drive a session from an AI assistant.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		logger.SetOutput(cmd.ErrOrStderr())
		return ensureServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding config.toml (default ~/.pagecraft)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep configuration in memory only")
}

// SetServices installs the services used by every command.
func SetServices(s *Services) {
	services = s
}

// SetBootstrap registers a constructor that runs once the global flags are
// parsed, unless SetServices already installed services.
func SetBootstrap(fn func(Options) (*Services, error)) {
	bootstrap = fn
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func ensureServices() error {
	if services != nil || bootstrap == nil {
		return nil
	}
	built, err := bootstrap(Options{ConfigDir: configDir, Ephemeral: ephemeral})
	if err != nil {
		return fmt.Errorf("initialise services: %w", err)
	}
	services = built
	return nil
}

func requireTemplates() (driving.TemplateRegistry, error) {
	if services == nil || services.Templates == nil {
		return nil, errors.New("template registry not configured")
	}
	return services.Templates, nil
}

func requireSite() (driving.SiteSettingsService, error) {
	if services == nil || services.Site == nil {
		return nil, errors.New("site settings service not configured")
	}
	return services.Site, nil
}

func requireBuilder(ids driven.IDGenerator) (driving.BuilderService, error) {
	if services == nil || services.NewBuilder == nil {
		return nil, errors.New("builder not configured")
	}
	return services.NewBuilder(ids), nil
}
