package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pagecraft/internal/adapters/driving/tui"
)

// errNotTerminal is returned when the TUI is started without a terminal.
var errNotTerminal = errors.New("the interactive builder needs a terminal; use 'pagecraft replay' for scripted edits")

// isTerminal reports whether stdin is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive page builder",
	Long: `Launch the interactive terminal page builder.

The canvas shows the layer tree, a preview of the page at the current
device width and zoom, and the properties of the selected component.
Edits made to config.toml while the builder runs update the branding.

Controls:
  ↑/k, ↓/j   - Move between components
  a / A      - Add a component / add inside the selected container
  x, D, y, p - Remove, duplicate, copy, paste
  K / J      - Move the component up / down
  r / e      - Rename / edit text
  l / h      - Lock / hide
  u / U      - Undo / redo
  + / - / v  - Zoom in, zoom out, switch device
  s          - Site settings
  ?          - Help
  q          - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// buildTUIPorts opens a new session and gathers the ports the TUI needs.
func buildTUIPorts() (*tui.Ports, error) {
	templates, err := requireTemplates()
	if err != nil {
		return nil, err
	}
	site, err := requireSite()
	if err != nil {
		return nil, err
	}
	builder, err := requireBuilder(nil)
	if err != nil {
		return nil, err
	}

	ports := tui.NewPorts(builder, templates, site)
	ports.ConfigWatcher = services.ConfigWatcher
	return ports, nil
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if !isTerminal() {
		return errNotTerminal
	}

	ports, err := buildTUIPorts()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
