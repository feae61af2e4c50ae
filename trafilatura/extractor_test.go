package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/knowbase"
	"github.com/fwojciec/knowbase/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Installing the Toolchain</title></head>
<body>
  <nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
  <main>
    <h1>Installing the Toolchain</h1>
    <p>Download the archive for your platform and extract it to /usr/local.
    The installer configures your PATH automatically on most systems, but a
    manual shell profile edit may be needed for older setups.</p>
    <p>Verify the installation by running the version command. If the command
    is not found, restart your shell so the updated PATH takes effect.</p>
  </main>
  <footer>Copyright example.com</footer>
</body>
</html>`

func TestExtractor_extracts_main_content(t *testing.T) {
	t.Parallel()

	e := trafilatura.NewExtractor()
	result, err := e.Extract(articleHTML)
	require.NoError(t, err)

	assert.Contains(t, result.Title, "Installing the Toolchain")
	assert.Contains(t, result.ContentHTML, "Download the archive")
	assert.NotContains(t, result.ContentHTML, "Copyright example.com")
}

func TestExtractor_empty_input(t *testing.T) {
	t.Parallel()

	e := trafilatura.NewExtractor()
	_, err := e.Extract("   ")
	require.Error(t, err)
	assert.Equal(t, knowbase.EINVALID, knowbase.ErrorCode(err))
}
