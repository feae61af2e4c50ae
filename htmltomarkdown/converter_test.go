package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/knowbase/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_converts_basic_elements(t *testing.T) {
	t.Parallel()

	c := htmltomarkdown.NewConverter()
	md, err := c.Convert(`<h1>Title</h1><p>Some <strong>bold</strong> text and a <a href="https://example.com">link</a>.</p>`)
	require.NoError(t, err)

	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "**bold**")
	assert.Contains(t, md, "[link](https://example.com)")
}

func TestConverter_preserves_code_blocks(t *testing.T) {
	t.Parallel()

	c := htmltomarkdown.NewConverter()
	md, err := c.Convert(`<pre><code>func main() {}</code></pre>`)
	require.NoError(t, err)
	assert.Contains(t, md, "func main() {}")
}

func TestConverter_renders_tables(t *testing.T) {
	t.Parallel()

	c := htmltomarkdown.NewConverter()
	md, err := c.Convert(`<table><tr><th>Flag</th><th>Default</th></tr><tr><td>-v</td><td>false</td></tr></table>`)
	require.NoError(t, err)
	assert.Contains(t, md, "| Flag | Default |")
}

func TestConverter_empty_input_is_empty_output(t *testing.T) {
	t.Parallel()

	c := htmltomarkdown.NewConverter()
	md, err := c.Convert("  \n ")
	require.NoError(t, err)
	assert.Empty(t, md)
}
