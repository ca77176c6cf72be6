package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sectionsDoc = `# Agenda - Monday

## Focus
- keep me
- and me

## Time
[Run: echo hi]

## Notes
free text here
`

func TestReplaceSection(t *testing.T) {
	got := ReplaceSection(sectionsDoc, "## Time", "10:00 standup\n11:00 review")

	assert.Contains(t, got, "## Time\n10:00 standup\n11:00 review\n## Notes")
	assert.Contains(t, got, "- keep me\n- and me", "sibling sections must be preserved")
	assert.NotContains(t, got, "[Run: echo hi]")
}

func TestReplaceSection_Idempotent(t *testing.T) {
	once := ReplaceSection(sectionsDoc, "## Focus", "new focus")
	twice := ReplaceSection(once, "## Focus", "new focus")
	assert.Equal(t, once, twice)
}

func TestReplaceSection_HeaderNotFound(t *testing.T) {
	assert.Equal(t, sectionsDoc, ReplaceSection(sectionsDoc, "## Missing", "x"))
}

func TestReplaceSection_DeeperHeadingsAreContent(t *testing.T) {
	doc := "## Items\n### [PROJ-1] Fix it\ndetail\n## Next\nkeep\n"
	got := ReplaceSection(doc, "## Items", "replaced")
	assert.Equal(t, "## Items\nreplaced\n## Next\nkeep\n", got)

	content, ok := ExtractSection(doc, "## Items")
	require.True(t, ok)
	assert.Equal(t, "### [PROJ-1] Fix it\ndetail", content)
}

func TestReplaceSection_LastSection(t *testing.T) {
	got := ReplaceSection(sectionsDoc, "## Notes", "replaced notes\n\n\n")
	assert.True(t, len(got) > 0)
	assert.Contains(t, got, "## Notes\nreplaced notes\n")
	assert.Equal(t, "replaced notes\n", got[len(got)-len("replaced notes\n"):],
		"trailing blank lines normalize to one newline at end of document")
}

func TestReplaceSection_EmptyContent(t *testing.T) {
	got := ReplaceSection(sectionsDoc, "## Time", "")
	assert.Contains(t, got, "## Time\n## Notes")
}

func TestExtractSection(t *testing.T) {
	content, ok := ExtractSection(sectionsDoc, "## Focus")
	require.True(t, ok)
	assert.Equal(t, "- keep me\n- and me", content)

	_, ok = ExtractSection(sectionsDoc, "## Missing")
	assert.False(t, ok)
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"# Title", 1},
		{"## Section", 2},
		{"#### Actions", 4},
		{"#notaheading", 0},
		{"plain text", 0},
		{"", 0},
		{"####", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HeadingLevel(tt.line), "line %q", tt.line)
	}
}
