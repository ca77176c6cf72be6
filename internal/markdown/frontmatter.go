// Package markdown implements the document primitives gameplan is built
// on: a YAML frontmatter codec, a heading-delimited section splicer, and
// a bold-label field editor. All three are line-oriented and
// content-preserving; anything they don't recognize passes through
// byte-for-byte.
package markdown

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Frontmatter is an insertion-ordered set of document metadata keys.
// Unlike a plain map it remembers the order keys were first set in, so
// re-serializing a document doesn't shuffle user-visible metadata.
type Frontmatter struct {
	keys   []string
	values map[string]any
}

// NewFrontmatter returns an empty frontmatter block.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{values: map[string]any{}}
}

// Set stores a value under key. New keys are appended; existing keys
// keep their original position.
func (f *Frontmatter) Set(key string, value any) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value for key.
func (f *Frontmatter) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

// GetString returns the value for key if it is a string, else "".
func (f *Frontmatter) GetString(key string) string {
	s, _ := f.values[key].(string)
	return s
}

// Keys returns the keys in insertion order.
func (f *Frontmatter) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Len returns the number of keys.
func (f *Frontmatter) Len() int { return len(f.keys) }

// ParseFrontmatter splits doc into its YAML frontmatter block and body.
// Documents that don't open with a --- delimiter line, have no closing
// delimiter, or contain invalid YAML are returned unchanged with an
// empty frontmatter. Parsing never fails: a corrupt block is treated as
// absent so one bad file can't take down a batch.
func ParseFrontmatter(doc string) (*Frontmatter, string) {
	rest, ok := strings.CutPrefix(doc, delimiter+"\n")
	if !ok {
		return NewFrontmatter(), doc
	}

	lines := strings.Split(rest, "\n")
	closing := -1
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == delimiter {
			closing = i
			break
		}
	}
	if closing == -1 {
		return NewFrontmatter(), doc
	}

	meta := strings.Join(lines[:closing], "\n")
	body := strings.Join(lines[closing+1:], "\n")

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(meta), &root); err != nil {
		return NewFrontmatter(), doc
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return NewFrontmatter(), doc
	}

	f := NewFrontmatter()
	mapping := root.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		var value any
		if err := mapping.Content[i+1].Decode(&value); err != nil {
			return NewFrontmatter(), doc
		}
		f.Set(mapping.Content[i].Value, value)
	}
	return f, body
}

// Encode serializes the frontmatter as a ----delimited YAML block,
// ready to prepend to a document body. Keys are emitted in insertion
// order and multi-line strings use literal block style so the exact
// string survives a reparse.
func (f *Frontmatter) Encode() string {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range f.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valNode := &yaml.Node{}
		if err := valNode.Encode(f.values[key]); err != nil {
			continue
		}
		blockStrings(valNode)
		root.Content = append(root.Content, keyNode, valNode)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	_ = enc.Encode(root)
	_ = enc.Close()

	return delimiter + "\n" + buf.String() + delimiter + "\n"
}

// blockStrings switches multi-line string scalars to literal block
// style. The emitter falls back to quoting when a value can't be
// represented literally, so round-tripping is preserved either way.
func blockStrings(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	for _, c := range n.Content {
		blockStrings(c)
	}
}
