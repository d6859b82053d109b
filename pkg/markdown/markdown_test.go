package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLRendersHeadingsAndLists(t *testing.T) {
	out, err := ToHTML("## Summary\n- fewer incidents\n- better CICO rate")
	require.NoError(t, err)
	assert.Contains(t, out, "<h2>Summary</h2>")
	assert.Contains(t, out, "<li>fewer incidents</li>")
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	out, err := ToHTML("hello <script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestToHTMLBlank(t *testing.T) {
	out, err := ToHTML("  \n ")
	require.NoError(t, err)
	assert.Empty(t, out)
}
