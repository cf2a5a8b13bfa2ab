// Package render turns a parsed value tree into colorized JSON, YAML or TOML
// text. Layout and quoting decisions live here; parsing does not.
package render

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// tabWidth is the number of spaces per nesting level in every format.
const tabWidth = 2

// Role identifies which of the fixed display styles a piece of text takes.
type Role int

const (
	RoleKey Role = iota
	RoleString
	RoleHeader
	RoleError
)

// The style table is fixed: mapping keys are blue, strings green, TOML table
// headers bold blue and error labels bold red. Each color is enabled
// individually so the table ignores the package-global terminal sniffing;
// whether styling is applied at all is the sink's decision.
var roleStyles = [...]*color.Color{
	RoleKey:    style(color.FgBlue),
	RoleString: style(color.FgGreen),
	RoleHeader: style(color.FgBlue, color.Bold),
	RoleError:  style(color.FgRed, color.Bold),
}

func style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// Sink is a destination for rendered text. Whether output is colorized is
// fixed at construction; renderers ask for a role and the sink decides
// whether that means escape sequences or plain text.
type Sink struct {
	w        io.Writer
	colorize bool
}

// NewSink returns a sink writing to w, colorized only when w is a terminal.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w, colorize: isTerminal(w)}
}

// NewColorSink returns a sink writing to w with colorization forced on or off.
func NewColorSink(w io.Writer, colorize bool) *Sink {
	return &Sink{w: w, colorize: colorize}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Colorized reports whether this sink applies styles.
func (s *Sink) Colorized() bool {
	return s.colorize
}

// Plain writes text with no styling.
func (s *Sink) Plain(text string) error {
	_, err := io.WriteString(s.w, text)
	return err
}

// Tagged writes text in the given role's style. On a non-colorized sink it is
// identical to Plain. The reset is part of the same write, so a failed or
// interleaved write can never leave the terminal styled.
func (s *Sink) Tagged(role Role, text string) error {
	if !s.colorize {
		return s.Plain(text)
	}
	_, err := io.WriteString(s.w, roleStyles[role].Sprint(text))
	return err
}

// ErrorLine writes a top-level error report to the sink: a bold red "error"
// label, the message, and a newline.
func ErrorLine(s *Sink, msg string) error {
	if err := s.Tagged(RoleError, "error"); err != nil {
		return err
	}
	return s.Plain(": " + msg + "\n")
}

func pad(depth int) string {
	return strings.Repeat(" ", depth*tabWidth)
}
