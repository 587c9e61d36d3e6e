package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCover(t *testing.T) {
	dir := t.TempDir()
	track := filepath.Join(dir, "01-song.mp3")

	assert.Empty(t, FindCover(track), "no art yet")

	folder := filepath.Join(dir, "folder.png")
	require.NoError(t, os.WriteFile(folder, []byte{}, 0o600))
	assert.Equal(t, folder, FindCover(track))

	// cover.* wins over folder.*
	cover := filepath.Join(dir, "cover.jpg")
	require.NoError(t, os.WriteFile(cover, []byte{0xFF, 0xD8, 0xFF}, 0o600))
	assert.Equal(t, cover, FindCover(track))
}

func TestFindCover_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "cover.jpg"), 0o700))

	assert.Empty(t, FindCover(filepath.Join(dir, "a.mp3")))
}
