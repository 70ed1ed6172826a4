package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/snapedit/pkg/editor"
	"github.com/Fepozopo/snapedit/pkg/stdimg"
)

// App is the interactive editing shell. All terminal I/O goes through the
// reader and writers it was built with.
type App struct {
	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	session *editor.Session
	meta    *StdMetaStore
	preview *Previewer
	log     logrus.FieldLogger

	// UseFzf enables fzf pickers for command and file selection.
	UseFzf bool
	// PreviewEnabled renders the image after every change.
	PreviewEnabled bool
}

// NewApp builds a shell over session. preview may be nil.
func NewApp(in io.Reader, out, errOut io.Writer, session *editor.Session, preview *Previewer, log logrus.FieldLogger) *App {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &App{
		in:             bufio.NewReader(in),
		out:            out,
		errOut:         errOut,
		session:        session,
		meta:           NewMetaStoreFromStdimg(stdimg.Commands),
		preview:        preview,
		log:            log,
		PreviewEnabled: preview != nil,
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Commands available:")
	fmt.Fprintln(a.out, "  /  - select and apply command")
	fmt.Fprintln(a.out, "  o  - open another image at runtime")
	fmt.Fprintln(a.out, "  s  - save current image")
	fmt.Fprintln(a.out, "  a  - save current image as")
	fmt.Fprintln(a.out, "  u  - undo")
	fmt.Fprintln(a.out, "  r  - redo")
	fmt.Fprintln(a.out, "  x  - reset to original")
	fmt.Fprintln(a.out, "  i  - show image info")
	fmt.Fprintln(a.out, "  h  - show this help message")
	fmt.Fprintln(a.out, "  q  - quit")
	fmt.Fprintln(a.out, "Or type a command directly, e.g. \"blur 7\" or \"rotate 180\".")
}

// promptLine prints prompt and reads one trimmed line.
func (a *App) promptLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPath reads a path; a lone "/" opens the fzf file picker when enabled.
func (a *App) promptPath(prompt string) (string, error) {
	if a.UseFzf {
		prompt = strings.TrimSuffix(prompt, ": ") + " [or '/' to use fzf]: "
	}
	input, err := a.promptLine(prompt)
	if err != nil {
		return "", err
	}
	if input == "/" && a.UseFzf {
		sel, selErr := SelectFileWithFzf(".")
		if selErr == nil && sel != "" {
			fmt.Fprintf(a.out, " [fzf] %s\n", sel)
			return sel, nil
		}
		return a.promptLine("Enter path: ")
	}
	return input, nil
}

func (a *App) fail(err error) {
	fmt.Fprintf(a.errOut, "error: %v\n", err)
}

// Refresh prints the status line and a preview after a change.
func (a *App) Refresh() {
	fmt.Fprintln(a.out, a.session.Status())
	if !a.PreviewEnabled || a.preview == nil {
		return
	}
	buf, ok := a.session.Current()
	if !ok {
		return
	}
	if err := a.preview.Preview(buf); err != nil {
		a.log.WithError(err).Debug("preview skipped")
	}
}

// Run executes the read-eval loop until q or end of input.
func (a *App) Run() error {
	fmt.Fprintln(a.out, "Snapedit")
	a.usage()
	for {
		line, err := a.promptLine("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			continue
		}
		if quit := a.dispatch(line); quit {
			return nil
		}
	}
}

// dispatch handles one input line and reports whether the shell should exit.
func (a *App) dispatch(line string) bool {
	fields := strings.Fields(line)
	if len(fields[0]) == 1 && len(fields) == 1 {
		switch fields[0] {
		case "q":
			return true
		case "h":
			a.usage()
		case "/":
			a.selectAndApply()
		case "o":
			a.open()
		case "s":
			if err := a.session.Save(); err != nil {
				a.fail(err)
				return false
			}
			fmt.Fprintf(a.out, "Saved %s\n", a.session.Store().Path())
		case "a":
			a.saveAs()
		case "u":
			if err := a.session.Undo(); err != nil {
				a.fail(err)
				return false
			}
			a.Refresh()
		case "r":
			if err := a.session.Redo(); err != nil {
				a.fail(err)
				return false
			}
			a.Refresh()
		case "x":
			if err := a.session.ResetToOriginal(); err != nil {
				a.fail(err)
				return false
			}
			a.Refresh()
		case "i":
			a.info()
		default:
			fmt.Fprintf(a.errOut, "unknown key: %s (h for help)\n", fields[0])
		}
		return false
	}

	// direct form: "<command> [args...]"
	if _, ok := a.meta.Lookup(strings.ToLower(fields[0])); !ok {
		fmt.Fprintf(a.errOut, "unknown command: %s (h for help)\n", fields[0])
		return false
	}
	a.apply(strings.ToLower(fields[0]), fields[1:])
	return false
}

func (a *App) open() {
	path, err := a.promptPath("Image path: ")
	if err != nil {
		a.fail(err)
		return
	}
	if path == "" {
		fmt.Fprintln(a.out, "open cancelled")
		return
	}
	if err := a.session.Open(path); err != nil {
		a.fail(err)
		return
	}
	a.Refresh()
}

func (a *App) saveAs() {
	path, err := a.promptLine("Save as: ")
	if err != nil {
		a.fail(err)
		return
	}
	if path == "" {
		fmt.Fprintln(a.out, "save cancelled")
		return
	}
	if err := a.session.SaveAs(path); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "Saved %s\n", path)
}

func (a *App) info() {
	st, err := a.session.Store().Stats()
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, a.session.Status())
	fmt.Fprintf(a.out, "format: %s\n", a.session.Store().Format())
	fmt.Fprintln(a.out, st)
}

// selectAndApply picks a command with fzf or the numbered fallback list,
// prompts for its parameters and applies it.
func (a *App) selectAndApply() {
	if !a.session.Store().HasImage() {
		fmt.Fprintln(a.errOut, "No image loaded. Press 'o' to open an image first, or provide an image path as the first argument.")
		return
	}
	var commandName string
	if a.UseFzf {
		if name, err := SelectCommandWithFzfStd(stdimg.Commands); err == nil {
			commandName = name
		}
	}
	if commandName == "" {
		fmt.Fprintln(a.out, "Command selection:")
		for i, c := range a.meta.Commands {
			fmt.Fprintf(a.out, "  %d) %s - %s\n", i+1, c.Name, c.Description)
		}
		selection, err := a.promptLine("Enter number or command name (leave empty to cancel): ")
		if err != nil {
			a.fail(err)
			return
		}
		if selection == "" {
			fmt.Fprintln(a.out, "selection cancelled")
			return
		}
		name, err := a.meta.Resolve(selection)
		if err != nil {
			a.fail(err)
			return
		}
		commandName = name
	}

	c, ok := a.meta.Lookup(commandName)
	if !ok {
		fmt.Fprintf(a.errOut, "unknown command: %s\n", commandName)
		return
	}
	tooltip, _, _ := a.meta.GetCommandHelp(commandName)
	fmt.Fprintln(a.out, "\n"+tooltip+"\n")

	rawArgs := make([]string, len(c.Args))
	for i, p := range c.Args {
		typeLabel := p.Type
		if p.Type == "enum" && p.Description != "" {
			typeLabel = fmt.Sprintf("enum(%s)", p.Description)
		}
		prompt := fmt.Sprintf("%s (%s): ", p.Name, typeLabel)
		if p.Default != "" && !p.Required {
			prompt = fmt.Sprintf("%s (%s) [%s]: ", p.Name, typeLabel, p.Default)
		}
		val, err := a.promptLine(prompt)
		if err != nil {
			a.fail(err)
			return
		}
		rawArgs[i] = val
	}
	a.apply(commandName, rawArgs)
}

func (a *App) apply(name string, rawArgs []string) {
	norm, err := NormalizeArgsFromStd(a.meta, name, rawArgs)
	if err != nil {
		fmt.Fprintf(a.errOut, "input validation error: %v\n", err)
		return
	}
	op, err := BuildOperation(name, norm)
	if err != nil {
		a.fail(err)
		return
	}
	if err := a.session.Apply(op); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "Applied %s\n", op)
	a.Refresh()
}
