package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dixieflatline76/wallsearch/pkg/wallpaper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func writeTestConfig(t *testing.T) *Globals {
	t.Helper()
	dir := t.TempDir()
	cfg := "cache_dir: " + filepath.Join(dir, "cache") + "\n" +
		"wallpaper_dir: " + filepath.Join(dir, "walls") + "\n" +
		"min_resolution: none\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return &Globals{Config: path}
}

func TestPrintItems(t *testing.T) {
	items := []wallpaper.Item{
		{
			Kind:        wallpaper.KindWallpaper,
			Name:        "1920x1080 - abc123",
			Description: "Colors: #000000",
			Icon:        "/cache/x.jpg",
			Action:      &wallpaper.ApplyRequest{ID: "abc123", URL: "https://w.wallhaven.cc/full/ab/wallhaven-abc123.jpg"},
		},
		{Kind: wallpaper.KindNoResults, Name: "No wallpapers found", Icon: "icon.png"},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printItems(&buf, items, false))
		out := buf.String()
		assert.Contains(t, out, "1920x1080 - abc123\n  Colors: #000000\n  icon: /cache/x.jpg\n")
		assert.Contains(t, out, "apply: wallsearch apply abc123 https://w.wallhaven.cc/full/ab/wallhaven-abc123.jpg")
		assert.Equal(t, 1, strings.Count(out, "apply:"))
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printItems(&buf, items, true))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)

		var first wallpaper.Item
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, wallpaper.KindWallpaper, first.Kind)
		assert.Equal(t, "abc123", first.Action.ID)
		assert.NotContains(t, lines[1], `"action"`)
	})
}

func TestQueryCmd_ShortQuery(t *testing.T) {
	buf := captureStdout(t)
	g := writeTestConfig(t)

	cmd := &QueryCmd{Keywords: []string{"a"}}
	require.NoError(t, cmd.Run(g))
	assert.Contains(t, buf.String(), "Type to search Wallhaven...")
}

func TestQueryCmd_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("results_limit: -1\n"), 0644))

	cmd := &QueryCmd{Keywords: []string{"nature"}}
	assert.Error(t, cmd.Run(&Globals{Config: path}))
}

func TestApplyCmd_InvalidID(t *testing.T) {
	captureStdout(t)
	g := writeTestConfig(t)

	cmd := &ApplyCmd{ID: "../escape", URL: "http://127.0.0.1:1/x.jpg"}
	err := cmd.Run(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prepare")
}

func TestVersionCmd(t *testing.T) {
	buf := captureStdout(t)
	require.NoError(t, (&VersionCmd{}).Run(&Globals{}))
	assert.Equal(t, "WallSearch 0.1.0\n", buf.String())
}

func TestResolveIcon(t *testing.T) {
	g := writeTestConfig(t)
	a, err := newApp(g)
	require.NoError(t, err)

	path := resolveIcon(a.cfg)
	assert.Equal(t, filepath.Join(filepath.Dir(a.cfg.CacheDir), "icon.png"), path)
	assert.FileExists(t, path)

	custom := filepath.Join(t.TempDir(), "mine.png")
	require.NoError(t, os.WriteFile(custom, []byte("png"), 0644))
	a.cfg.Icon = custom
	assert.Equal(t, custom, resolveIcon(a.cfg))
}
