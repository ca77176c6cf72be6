package markdown

import "strings"

// SetField replaces the value of the first line of the form
// "**label**: value" with the given value. The match is anchored to the
// start of the line and is case-sensitive on the label, so mentions of
// the label elsewhere in prose are never touched. If no such line
// exists the document is returned unchanged.
func SetField(doc, label, value string) string {
	prefix := "**" + label + "**:"
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			lines[i] = prefix + " " + value
			return strings.Join(lines, "\n")
		}
	}
	return doc
}

// Field reads the value of the first "**label**: value" line. The
// second return is false when the field isn't present.
func Field(doc, label string) (string, bool) {
	prefix := "**" + label + "**:"
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):]), true
		}
	}
	return "", false
}
