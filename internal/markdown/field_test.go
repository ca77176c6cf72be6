package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fieldDoc = `# PROJ-123: Fix the thing

**Status**: To Do
**Assignee**: Unassigned

The Status of this issue is discussed in **Status**: meetings.
`

func TestSetField(t *testing.T) {
	got := SetField(fieldDoc, "Status", "In Progress")
	assert.Contains(t, got, "**Status**: In Progress\n**Assignee**: Unassigned")
	assert.Contains(t, got, "discussed in **Status**: meetings.",
		"only the line-anchored occurrence is replaced")
}

func TestSetField_Missing(t *testing.T) {
	assert.Equal(t, fieldDoc, SetField(fieldDoc, "Priority", "High"))
}

func TestSetField_CaseSensitive(t *testing.T) {
	assert.Equal(t, fieldDoc, SetField(fieldDoc, "status", "Done"))
}

func TestField(t *testing.T) {
	v, ok := Field(fieldDoc, "Assignee")
	require.True(t, ok)
	assert.Equal(t, "Unassigned", v)

	_, ok = Field(fieldDoc, "Priority")
	assert.False(t, ok)
}
