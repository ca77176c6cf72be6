// Package printer provides styled progress output for CLI commands.
// A Printer travels on the context so commands and services share one
// output stream without threading a writer through every call.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/gameplan/internal/core/styles"
)

type ctxKey struct{}

// Printer writes user-facing progress lines.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithContext returns a context carrying p.
func WithContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer carried by ctx, or a stdout Printer when the
// context has none.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

// Infof prints a plain progress line.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Successf prints a line with a success marker.
func (p *Printer) Successf(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", styles.TextSuccessStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// Warnf prints a line with a warning marker.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", styles.TextWarningStyle.Render("⚠"), fmt.Sprintf(format, args...))
}

// Errorf prints a line with an error marker.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", styles.TextErrorStyle.Render("✗"), fmt.Sprintf(format, args...))
}
