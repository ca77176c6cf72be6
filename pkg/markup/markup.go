// Package markup converts text between rich-text markup formats.
//
// Conversion is a best-effort capability: callers inject a Converter at
// construction, and every implementation fails soft by returning its
// input unchanged, so a missing or broken converter never blocks a sync.
package markup

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

// Formats understood by the pandoc-backed converter.
const (
	FormatJira = "jira"
	FormatGFM  = "gfm"
)

const convertTimeout = 10 * time.Second

// Converter converts text from one markup format to another.
type Converter interface {
	// Convert returns text converted from the `from` format to the
	// `to` format, or the input unchanged when conversion fails.
	Convert(text, from, to string) string
}

// Noop is a Converter that returns its input unchanged.
type Noop struct{}

// Convert returns text unchanged.
func (Noop) Convert(text, _, _ string) string { return text }

// Pandoc converts markup by shelling out to the pandoc binary.
type Pandoc struct {
	path string
}

// NewPandoc returns a pandoc-backed converter. An empty path uses the
// binary from PATH.
func NewPandoc(path string) *Pandoc {
	if path == "" {
		path = "pandoc"
	}
	return &Pandoc{path: path}
}

// Available reports whether the pandoc binary can be found.
func (p *Pandoc) Available() bool {
	_, err := exec.LookPath(p.path)
	return err == nil
}

// Convert runs pandoc with the text on stdin. Any failure returns the
// input unchanged.
func (p *Pandoc) Convert(text, from, to string) string {
	if text == "" {
		return text
	}

	ctx, cancel := context.WithTimeout(context.Background(), convertTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.path, "--from="+from, "--to="+to)
	cmd.Stdin = strings.NewReader(text)

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return text
	}
	return out.String()
}
