package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayn2op/vlist/internal/config"
)

func noEnv(string) (string, bool) { return "", false }

func plainConfig() *config.Config {
	cfg := config.Default()
	cfg.Border = "none"
	cfg.Title = ""
	cfg.ScrollBar = false
	return cfg
}

func TestRenderFrame(t *testing.T) {
	rows := newEntries([]string{"alpha", "beta", "gamma"})

	canvas, err := renderFrame(plainConfig(), rows, renderOptions{width: 30, height: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"[ ]      0  alpha",
		"[ ]      1  beta",
		"[ ]      2  gamma",
	}, canvas.Lines())
}

func TestRenderFrame_Offset(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "item"
	}

	canvas, err := renderFrame(plainConfig(), newEntries(lines), renderOptions{offset: 10, width: 30, height: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"[ ]     10  item", "[ ]     11  item"}, canvas.Lines())

	// Offsets past the end show the last rows.
	canvas, err = renderFrame(plainConfig(), newEntries(lines), renderOptions{offset: 1000, width: 30, height: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"[ ]     98  item", "[ ]     99  item"}, canvas.Lines())
}

func TestRenderFrame_Border(t *testing.T) {
	cfg := config.Default()
	cfg.ScrollBar = false

	canvas, err := renderFrame(cfg, newEntries([]string{"alpha"}), renderOptions{width: 30, height: 3})
	require.NoError(t, err)

	lines := canvas.Lines()
	assert.Contains(t, lines[0], "vlist")
	assert.True(t, strings.HasPrefix(lines[0], "╭"))
	assert.Contains(t, lines[1], "0  alpha")
	assert.True(t, strings.HasPrefix(lines[2], "╰"))
	assert.Contains(t, lines[2], " 0-0 of 1 ")
}

func TestRenderFrame_ScrollBar(t *testing.T) {
	cfg := plainConfig()
	cfg.ScrollBar = true
	cfg.ScrollBarArrows = true
	cfg.ScrollBarGlyphs = "unicode"

	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "item"
	}
	canvas, err := renderFrame(cfg, newEntries(lines), renderOptions{width: 30, height: 4})
	require.NoError(t, err)

	got := canvas.Lines()
	assert.True(t, strings.HasSuffix(got[0], "▲"), got[0])
	assert.True(t, strings.HasSuffix(got[3], "▼"), got[3])
}

func TestRenderFrame_InvalidSize(t *testing.T) {
	_, err := renderFrame(plainConfig(), nil, renderOptions{width: 0, height: 3})
	require.Error(t, err)
}

func runRoot(t *testing.T, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	lookup := noEnv
	if env != nil {
		lookup = func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmdWithEnv("test", lookup)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Render(t *testing.T) {
	out, _, err := runRoot(t, nil, "render", "--rows", "3", "--width", "30", "--height", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "Row 0")
	assert.Contains(t, out, "Row 1")
	assert.NotContains(t, out, "Row 2")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestRootCmd_RenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0o600))

	out, _, err := runRoot(t, nil, "render", "--file", path, "--width", "30", "--height", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "0  alpha")
	assert.Contains(t, out, "1  beta")
}

func TestRootCmd_Env(t *testing.T) {
	out, _, err := runRoot(t, map[string]string{config.EnvRows: "1"}, "render", "--width", "30", "--height", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Row 0")
	assert.NotContains(t, out, "Row 1")
}

func TestRootCmd_Debug(t *testing.T) {
	_, stderr, err := runRoot(t, nil, "render", "--debug", "--rows", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "configured")
}

func TestRootCmd_Errors(t *testing.T) {
	_, _, err := runRoot(t, nil, "render", "--row-height", "0")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = runRoot(t, nil, "render", "--file", filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = runRoot(t, nil, "render", "--height", "0")
	require.Error(t, err)
}
