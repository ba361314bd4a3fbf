package console

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Kind selects the color of a report line.
type Kind int

const (
	KindPlain Kind = iota
	KindOK
	KindWarn
	KindError
	KindInfo
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// Printer writes the human-readable report. Color is applied only when the
// destination is a terminal.
type Printer struct {
	w        io.Writer
	colorize bool
}

// New returns a printer for w, enabling color when w is a terminal.
func New(w io.Writer) *Printer {
	if w == nil {
		w = io.Discard
	}
	return &Printer{w: w, colorize: ShouldColorize(w)}
}

// Discard returns a printer that drops everything.
func Discard() *Printer {
	return &Printer{w: io.Discard}
}

// Line prints one formatted line in the given kind.
func (p *Printer) Line(kind Kind, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if p.colorize {
		if color := kindColor(kind); color != "" {
			line = color + line + ansiReset
		}
	}
	fmt.Fprintln(p.w, line)
}

func (p *Printer) Plain(format string, args ...any) { p.Line(KindPlain, format, args...) }
func (p *Printer) OK(format string, args ...any)    { p.Line(KindOK, format, args...) }
func (p *Printer) Warn(format string, args ...any)  { p.Line(KindWarn, format, args...) }
func (p *Printer) Error(format string, args ...any) { p.Line(KindError, format, args...) }
func (p *Printer) Info(format string, args ...any)  { p.Line(KindInfo, format, args...) }

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Block writes pre-rendered text followed by a newline.
func (p *Printer) Block(text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(p.w, text)
}

func kindColor(kind Kind) string {
	switch kind {
	case KindOK:
		return ansiGreen
	case KindWarn:
		return ansiYellow
	case KindError:
		return ansiRed
	case KindInfo:
		return ansiBlue
	default:
		return ""
	}
}

// ShouldColorize reports whether writer is an interactive terminal.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
