package output

import (
	"fmt"
	"io"

	"github.com/jwalton/go-supportscolor"

	"github.com/aucos/health-check/pkg/check"
)

const (
	okGlyph   = "✅"
	failGlyph = "❌"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	reset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, reset = "", "", ""
	}
}

// Printer renders the health check report line by line.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Line writes a plain informational line.
func (p *Printer) Line(text string) {
	_, _ = fmt.Fprintln(p.w, text)
}

// Info writes a highlighted informational line.
func (p *Printer) Info(text string) {
	_, _ = fmt.Fprintf(p.w, "%s%s%s\n", green, text, reset)
}

// Error writes a highlighted error line.
func (p *Printer) Error(text string) {
	_, _ = fmt.Fprintf(p.w, "%s%s%s\n", red, text, reset)
}

// PrintResult outputs a check result with its status glyph.
// Failure details are printed one per line under the headline.
func (p *Printer) PrintResult(r check.Result) {
	switch r.Status {
	case check.StatusOK:
		p.Info(okGlyph + " " + r.Message)
		for _, d := range r.Details {
			p.Line(d)
		}
	case check.StatusSkip:
		p.Line(r.Message)
	default:
		p.Error(failGlyph + " " + r.Message)
		for _, d := range r.Details {
			p.Error(d)
		}
	}
}
