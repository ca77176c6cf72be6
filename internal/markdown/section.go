package markdown

import "strings"

// HeadingLevel returns the markdown heading level of line (1 for #, 2
// for ##, ...), or 0 if the line is not a heading. A heading is one or
// more # characters followed by a space.
func HeadingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

// isBoundary reports whether line ends a section opened by a heading of
// the given level: a heading at the same or a higher (shallower) level.
// Deeper headings are section content, not boundaries.
func isBoundary(line string, level int) bool {
	l := HeadingLevel(line)
	return l > 0 && l <= level
}

// sectionBounds locates the line index of header and the index of the
// first line past the section's content. Returns ok=false when the
// header isn't present verbatim.
func sectionBounds(lines []string, header string) (start, end int, ok bool) {
	level := HeadingLevel(header)
	if level == 0 {
		return 0, 0, false
	}
	start = -1
	for i, line := range lines {
		if line == header {
			start = i
			break
		}
	}
	if start == -1 {
		return 0, 0, false
	}
	end = start + 1
	for end < len(lines) && !isBoundary(lines[end], level) {
		end++
	}
	return start, end, true
}

// ReplaceSection replaces the content of the section opened by the
// exact heading line header, leaving every sibling section untouched.
// The section runs from the line after the header up to the next
// heading of the same or higher level, or end of document. Trailing
// blank lines in the new content are normalized to a single newline
// before the next boundary. If the header isn't found the document is
// returned unchanged.
func ReplaceSection(doc, header, content string) string {
	lines := strings.Split(doc, "\n")
	start, end, ok := sectionBounds(lines, header)
	if !ok {
		return doc
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[:start+1]...)
	if trimmed := strings.TrimRight(content, " \t\n"); trimmed != "" {
		out = append(out, strings.Split(trimmed, "\n")...)
	}
	if end == len(lines) {
		out = append(out, "")
	} else {
		out = append(out, lines[end:]...)
	}
	return strings.Join(out, "\n")
}

// ExtractSection returns the content of the section opened by the exact
// heading line header, using the same boundary rule as ReplaceSection.
// Trailing newlines are stripped. The second return is false when the
// header isn't present.
func ExtractSection(doc, header string) (string, bool) {
	lines := strings.Split(doc, "\n")
	start, end, ok := sectionBounds(lines, header)
	if !ok {
		return "", false
	}
	return strings.TrimRight(strings.Join(lines[start+1:end], "\n"), "\n"), true
}
