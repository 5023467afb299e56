package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetManager(t *testing.T) {
	am := NewManager()

	t.Run("GetImage", func(t *testing.T) {
		img, err := am.GetImage(IconName)
		assert.NoError(t, err)
		require.NotNil(t, img)
		assert.Equal(t, 64, img.Bounds().Dx())

		_, err = am.GetImage("non_existent.png")
		assert.Error(t, err)
	})

	t.Run("GetRawImage", func(t *testing.T) {
		data, err := am.GetRawImage(IconName)
		assert.NoError(t, err)
		assert.NotEmpty(t, data)

		_, err = am.GetRawImage("")
		assert.Error(t, err)
	})
}

func TestInstallIcon(t *testing.T) {
	am := NewManager()
	dir := filepath.Join(t.TempDir(), "wallsearch")

	path, err := am.InstallIcon(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, IconName), path)

	want, err := am.GetRawImage(IconName)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// An existing file is left alone.
	require.NoError(t, os.WriteFile(path, []byte("custom"), 0644))
	again, err := am.InstallIcon(dir)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(got))
}
