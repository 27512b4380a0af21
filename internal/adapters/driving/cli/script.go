package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
	"github.com/custodia-labs/pagecraft/internal/core/ports/driving"
)

// scriptError reports the line a replay script failed on.
type scriptError struct {
	line int
	text string
	err  error
}

func (e *scriptError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.line, e.text, e.err)
}

func (e *scriptError) Unwrap() error { return e.err }

// scriptRunner executes builder commands, one per line, against a session.
//
// The tokens $last and $selected expand to the id most recently created by
// add/duplicate/paste and to the current selection.
type scriptRunner struct {
	builder   driving.BuilderService
	keepGoing bool
	echo      io.Writer
	last      string
	failures  int
}

type scriptCommand struct {
	usage string
	args  int // minimum argument count
	run   func(r *scriptRunner, args scriptArgs) error
}

var scriptCommands = map[string]scriptCommand{
	"add": {"add <type> [parent]", 1, func(r *scriptRunner, a scriptArgs) error {
		parent := ""
		if len(a) > 1 {
			parent = a.at(1)
		}
		id, err := r.builder.Add(domain.ComponentType(a.at(0)), parent)
		return r.created(id, err)
	}},
	"remove": {"remove <id>", 1, func(r *scriptRunner, a scriptArgs) error {
		return r.builder.Remove(a.at(0))
	}},
	"duplicate": {"duplicate <id>", 1, func(r *scriptRunner, a scriptArgs) error {
		id, err := r.builder.Duplicate(a.at(0))
		return r.created(id, err)
	}},
	"copy": {"copy <id>", 1, func(r *scriptRunner, a scriptArgs) error {
		return r.builder.CopyToClipboard(a.at(0))
	}},
	"paste": {"paste", 0, func(r *scriptRunner, _ scriptArgs) error {
		id, err := r.builder.PasteFromClipboard()
		return r.created(id, err)
	}},
	"reorder": {"reorder <from> <to>", 2, func(r *scriptRunner, a scriptArgs) error {
		from, to, err := twoInts(a.at(0), a.at(1))
		if err != nil {
			return err
		}
		return r.builder.Reorder(from, to)
	}},
	"move": {"move <id> <to>", 2, func(r *scriptRunner, a scriptArgs) error {
		to, err := strconv.Atoi(a.at(1))
		if err != nil {
			return fmt.Errorf("position %q: %w", a.at(1), domain.ErrInvalidIndex)
		}
		return r.builder.Move(a.at(0), to)
	}},
	"style": {"style <id> key=value...", 2, func(r *scriptRunner, a scriptArgs) error {
		patch, err := parseAssignments(a[1:])
		if err != nil {
			return err
		}
		return r.builder.PatchStyles(a.at(0), domain.Styles(patch))
	}},
	"content": {"content <id> key=value...", 2, func(r *scriptRunner, a scriptArgs) error {
		patch, err := parseAssignments(a[1:])
		if err != nil {
			return err
		}
		return r.builder.PatchContent(a.at(0), domain.Content(patch))
	}},
	"rename": {"rename <id> <name>", 2, func(r *scriptRunner, a scriptArgs) error {
		return r.builder.Rename(a.at(0), strings.Join(a[1:].texts(), " "))
	}},
	"lock": {"lock <id>", 1, func(r *scriptRunner, a scriptArgs) error {
		_, err := r.builder.ToggleLock(a.at(0))
		return err
	}},
	"hide": {"hide <id>", 1, func(r *scriptRunner, a scriptArgs) error {
		_, err := r.builder.ToggleVisibility(a.at(0))
		return err
	}},
	"clear": {"clear", 0, func(r *scriptRunner, _ scriptArgs) error {
		return r.builder.Clear()
	}},
	"undo": {"undo", 0, func(r *scriptRunner, _ scriptArgs) error {
		return r.builder.Undo()
	}},
	"redo": {"redo", 0, func(r *scriptRunner, _ scriptArgs) error {
		return r.builder.Redo()
	}},
	"select": {"select [id]", 0, func(r *scriptRunner, a scriptArgs) error {
		return r.builder.Select(a.optional())
	}},
	"hover": {"hover [id]", 0, func(r *scriptRunner, a scriptArgs) error {
		return r.builder.Hover(a.optional())
	}},
	"zoom": {"zoom <percent>", 1, func(r *scriptRunner, a scriptArgs) error {
		zoom, err := strconv.Atoi(strings.TrimSuffix(a.at(0), "%"))
		if err != nil {
			return fmt.Errorf("zoom %q: %w", a.at(0), domain.ErrInvalidInput)
		}
		r.builder.SetZoom(zoom)
		return nil
	}},
	"device": {"device <desktop|tablet|mobile>", 1, func(r *scriptRunner, a scriptArgs) error {
		return r.builder.SetDevice(domain.DeviceMode(a.at(0)))
	}},
}

// run executes every line of src. Blank lines and lines starting with # are
// skipped. Unless keepGoing is set, the first failing line stops the run.
func (r *scriptRunner) run(src io.Reader) error {
	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		err := r.exec(text)
		if err == nil {
			continue
		}
		err = &scriptError{line: lineNo, text: text, err: err}
		if !r.keepGoing {
			return err
		}
		r.failures++
		if r.echo != nil {
			fmt.Fprintf(r.echo, "warning: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}

func (r *scriptRunner) exec(line string) error {
	fields, err := splitFields(line)
	if err != nil {
		return err
	}
	name := strings.ToLower(fields[0].text)
	command, ok := scriptCommands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", fields[0].text)
	}
	args := r.expand(fields[1:])
	if len(args) < command.args {
		return fmt.Errorf("usage: %s", command.usage)
	}
	return command.run(r, args)
}

func (r *scriptRunner) created(id string, err error) error {
	if err != nil {
		return err
	}
	r.last = id
	return nil
}

// expand substitutes $last and $selected. Quoted fields are left alone.
func (r *scriptRunner) expand(args scriptArgs) scriptArgs {
	out := make(scriptArgs, len(args))
	for i, arg := range args {
		out[i] = arg
		if arg.quoted {
			continue
		}
		switch arg.text {
		case "$last":
			out[i].text = r.last
		case "$selected":
			out[i].text = r.builder.Selected()
		}
	}
	return out
}

// scriptField is one whitespace-separated token of a script line.
type scriptField struct {
	text string
	// quoted is set when the token, or its value after key=, was written
	// in double quotes. Quoted values are always strings.
	quoted bool
}

type scriptArgs []scriptField

func (a scriptArgs) at(i int) string { return a[i].text }

func (a scriptArgs) texts() []string {
	out := make([]string, len(a))
	for i, f := range a {
		out[i] = f.text
	}
	return out
}

func (a scriptArgs) optional() string {
	if len(a) == 0 {
		return ""
	}
	return a[0].text
}

// splitFields splits on whitespace. A double quote opens a string only at
// the start of a token or right after its first '=', as in
// name="Acme Careers"; anywhere else it is literal, so JSON such as
// items=["Design","Engineering"] passes through untouched. Inside quotes a
// backslash escapes the next rune.
func splitFields(line string) (scriptArgs, error) {
	var (
		fields      scriptArgs
		current     strings.Builder
		field       scriptField
		started     bool
		inQuote     bool
		escaped     bool
		sawEquals   bool
		afterEquals bool
	)
	flush := func() {
		field.text = current.String()
		fields = append(fields, field)
		current.Reset()
		field = scriptField{}
		started, sawEquals, afterEquals = false, false, false
	}

	for _, ch := range line {
		switch {
		case escaped:
			current.WriteRune(ch)
			escaped = false
		case inQuote && ch == '\\':
			escaped = true
		case inQuote && ch == '"':
			inQuote = false
		case inQuote:
			current.WriteRune(ch)
		case ch == ' ' || ch == '\t':
			if started {
				flush()
			}
		case ch == '"' && !field.quoted && (!started || afterEquals):
			inQuote, field.quoted, started = true, true, true
		default:
			afterEquals = ch == '=' && !sawEquals
			if ch == '=' {
				sawEquals = true
			}
			current.WriteRune(ch)
			started = true
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	if started {
		flush()
	}
	if len(fields) == 0 {
		return nil, errors.New("empty command")
	}
	return fields, nil
}

// parseAssignments turns key=value pairs into a patch. Unquoted values are
// decoded as JSON when possible (numbers, booleans, arrays, null) and kept
// as plain strings otherwise; null removes the key. Quoted values are
// always strings, so text="2025" and text="null" stay text.
func parseAssignments(args scriptArgs) (map[string]any, error) {
	patch := make(map[string]any, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg.text, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q: %w", arg.text, domain.ErrInvalidInput)
		}
		if arg.quoted {
			patch[key] = raw
			continue
		}
		patch[key] = parseValue(raw)
	}
	return patch, nil
}

func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch t := v.(type) {
	case float64:
		if t == float64(int(t)) {
			return int(t)
		}
		return t
	case []any:
		strs := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return t
			}
			strs = append(strs, s)
		}
		return strs
	default:
		return v
	}
}

func twoInts(a, b string) (int, int, error) {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return 0, 0, fmt.Errorf("positions %q %q: %w", a, b, domain.ErrInvalidIndex)
	}
	return x, y, nil
}
