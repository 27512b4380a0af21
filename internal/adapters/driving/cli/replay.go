package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagecraft/internal/adapters/driven/idgen"
	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
)

var (
	replayOutput    string
	replayKeepGoing bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Run builder commands from a script",
	Long: `Replay a script of builder commands against a fresh, empty page and
print the resulting document. Reads standard input when no file is given
or the file is "-".

Ids are assigned sequentially (component-1, component-2, ...), so scripts
can refer to earlier components by id. $last expands to the id created by
the most recent add, duplicate or paste; $selected to the current selection.

Commands:
  add <type> [parent]           remove <id>          duplicate <id>
  copy <id>                     paste                clear
  reorder <from> <to>           move <id> <to>       undo / redo
  style <id> key=value...       content <id> key=value...
  rename <id> <name>            lock <id>            hide <id>
  select [id]                   hover [id]
  zoom <percent>                device <desktop|tablet|mobile>

Values are JSON when they parse as JSON (16, true, ["a","b"], null) and
strings otherwise; null removes a key. A double-quoted value is always a
string: text="2025" stores the text 2025.

Example:
  add section
  add heading $last
  content $last text="Build the future with us"
  style component-1 backgroundColor=#F1F5F9`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayOutput, "output", "o", formatText, "output format: text, json or yaml")
	replayCmd.Flags().BoolVarP(&replayKeepGoing, "keep-going", "k", false, "report failing lines and continue")
	rootCmd.AddCommand(replayCmd)
}

// replayResult is the structured output of a replay.
type replayResult struct {
	Components []domain.Component  `json:"components" yaml:"components"`
	Selected   string              `json:"selected,omitempty" yaml:"selected,omitempty"`
	Viewport   domain.Viewport     `json:"viewport" yaml:"viewport"`
	History    domain.HistoryState `json:"history" yaml:"history"`
	Failures   int                 `json:"failures,omitempty" yaml:"failures,omitempty"`
}

func runReplay(cmd *cobra.Command, args []string) error {
	if err := validFormat(replayOutput); err != nil {
		return err
	}
	builder, err := requireBuilder(idgen.NewSequential("component"))
	if err != nil {
		return err
	}

	src := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		src = f
	}

	runner := &scriptRunner{builder: builder, keepGoing: replayKeepGoing, echo: cmd.ErrOrStderr()}
	if err := runner.run(src); err != nil {
		return err
	}

	result := replayResult{
		Components: builder.Document().Components,
		Selected:   builder.Selected(),
		Viewport:   builder.Viewport(),
		History:    builder.History(),
		Failures:   runner.failures,
	}
	if replayOutput != formatText {
		return writeStructured(cmd.OutOrStdout(), replayOutput, result)
	}
	return printDocument(cmd.OutOrStdout(), builder, result)
}

func printDocument(w io.Writer, builder driving.BuilderService, result replayResult) error {
	if len(result.Components) == 0 {
		fmt.Fprintln(w, "Page is empty.")
	} else {
		depth := depthIndex(builder.Document())
		table := newTableWriter(w)
		table.header("#", "ID", "TYPE", "NAME", "FLAGS")
		for _, c := range result.Components {
			name := strings.Repeat("  ", depth[c.ID]) + truncate(c.Name, 40)
			table.row(fmt.Sprint(c.Order), c.ID, c.Type.String(), name, flags(c))
		}
		if err := table.flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Viewport: %d%% %s\n", result.Viewport.Zoom, result.Viewport.Device)
	fmt.Fprintf(w, "History:  %d/%d\n", result.History.Index+1, result.History.Length)
	if result.Selected != "" {
		fmt.Fprintf(w, "Selected: %s\n", result.Selected)
	}
	if result.Failures > 0 {
		fmt.Fprintf(w, "Failures: %d\n", result.Failures)
	}
	return nil
}

// depthIndex returns the nesting depth of every component.
func depthIndex(doc domain.Document) map[string]int {
	depth := make(map[string]int, doc.Len())
	var walk func(id string) int
	walk = func(id string) int {
		if d, ok := depth[id]; ok {
			return d
		}
		depth[id] = 0 // guards against parent cycles
		comp, ok := doc.Get(id)
		if !ok || comp.IsRoot() {
			return 0
		}
		d := walk(comp.Parent()) + 1
		depth[id] = d
		return d
	}
	for _, c := range doc.Components {
		walk(c.ID)
	}
	return depth
}

func flags(c domain.Component) string {
	var out []string
	if c.IsLocked {
		out = append(out, "locked")
	}
	if c.IsHidden {
		out = append(out, "hidden")
	}
	return strings.Join(out, ",")
}
