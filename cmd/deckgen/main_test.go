package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckgen/internal/deck"
	"deckgen/internal/preview"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SOURCE_DATE_EPOCH", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--log-level", "error"))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--base-dir", dir)
	require.NoError(t, err)

	target := filepath.Join(dir, "presentation.pptx")
	assert.Equal(t, "✅ Saved "+target+"\n   17 slides generated\n", out)
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestGenerate_OutputFlag(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "deck.pptx")

	_, err := execute(t, "--base-dir", dir, "-o", target)
	require.NoError(t, err)
	assert.FileExists(t, target)
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--base-dir", dir)
	require.NoError(t, err)

	out, err := execute(t, "--base-dir", dir, "inspect", filepath.Join(dir, "presentation.pptx"))
	require.NoError(t, err)

	assert.Contains(t, out, "slides: 17")
	assert.Contains(t, out, "13.333 x 7.500 in (12191695 x 6858000 EMU)")
	assert.Contains(t, out, "title:  "+deck.Title)
	assert.Contains(t, out, "--- 1: Title")
	assert.Contains(t, out, "--- 17: Closing")
	assert.Contains(t, out, "Leaders")
}

func TestInspect_RequiresFile(t *testing.T) {
	_, err := execute(t, "inspect")
	require.Error(t, err)
}

func TestInspect_MissingFile(t *testing.T) {
	_, err := execute(t, "inspect", filepath.Join(t.TempDir(), "absent.pptx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.pptx")
}

func TestRender_FromFile(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--base-dir", dir)
	require.NoError(t, err)

	outDir := filepath.Join(dir, "png")
	out, err := execute(t, "--base-dir", dir, "render",
		"--from", filepath.Join(dir, "presentation.pptx"),
		"--out", outDir,
		"--width", "64")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "17 previews written to "), out)

	for n := 1; n <= 17; n++ {
		assert.FileExists(t, filepath.Join(outDir, preview.FileName(n)))
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deckgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  width: -1\n"), 0o644))

	_, err := execute(t, "--config", path)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "presentation.pptx"))
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "publish")
	require.Error(t, err)
}
