package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/specialistvlad/easycompile/internal/pipeline"
)

// Console is the user-facing side of a session: it reads answers and writes
// styled messages. It also serves as the pipeline's progress observer.
type Console struct {
	in          *bufio.Reader
	out         io.Writer
	term        *termenv.Output
	interactive bool

	italic lipgloss.Style
	path   lipgloss.Style
	count  lipgloss.Style
	danger lipgloss.Style
}

var _ pipeline.Observer = (*Console)(nil)

// NewConsole wraps in and out. interactive enables screen clearing and the
// run-again question.
func NewConsole(in io.Reader, out io.Writer, interactive bool) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		in:          bufio.NewReader(in),
		out:         out,
		term:        termenv.NewOutput(out),
		interactive: interactive,
		italic:      r.NewStyle().Italic(true),
		path:        r.NewStyle().Foreground(lipgloss.Color("12")),
		count:       r.NewStyle().Foreground(lipgloss.Color("10")),
		danger:      r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Interactive reports whether the console is attached to a terminal.
func (c *Console) Interactive() bool {
	return c.interactive
}

// ReadLine returns the next line without its line terminator. A final line
// without a newline is returned as is; io.EOF is only reported once nothing
// is left.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Clear wipes the screen on a terminal and does nothing otherwise.
func (c *Console) Clear() {
	if c.interactive {
		c.term.ClearScreen()
	}
}

// Error prints err in the error style.
func (c *Console) Error(err error) {
	fmt.Fprintln(c.out, c.danger.Render("✖ "+err.Error()))
}

// AskTarget prints the request for a directory, file or project type.
func (c *Console) AskTarget(projectTypes []string) {
	fmt.Fprintln(c.out, "Provide the directory you would like to compile. Or provide the type of project.")
	if len(projectTypes) > 0 {
		fmt.Fprintln(c.out, c.italic.Render("Project types: "+strings.Join(projectTypes, ", ")))
	}
}

// AskAgain prints the run-again question.
func (c *Console) AskAgain() {
	fmt.Fprintf(c.out, "Would you like to run again %s\n", c.danger.Render("[Y/N]"))
}

// Compiling announces the start of a run.
func (c *Console) Compiling(kind, name string) {
	fmt.Fprintf(c.out, "Compiling %s %s\n", kind, c.path.Render(name))
}

// Summary prints the number of compiled files.
func (c *Console) Summary(count int) {
	fmt.Fprintf(c.out, "✔ Compiled %s files.\n", c.count.Render(fmt.Sprint(count)))
}

// Goodbye prints the closing message.
func (c *Console) Goodbye() {
	c.Clear()
	fmt.Fprintln(c.out, "Thank you for using Easy Compile.")
}

func (c *Console) BackupCreated(source, _ string) {
	fmt.Fprintln(c.out, c.italic.Render("Creating backup for ")+c.path.Render(source))
}

func (c *Console) Compiled(source, _ string) {
	fmt.Fprintln(c.out, c.italic.Render("Creating Easy Compile File for ")+c.path.Render(source))
}

func (c *Console) Dropped(source string) {
	fmt.Fprintln(c.out, c.italic.Render("Dropping file ")+c.path.Render(source))
}

func (c *Console) Failed(err *pipeline.FileError) {
	c.Error(err)
}
