package folderpicker

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StartDirectory(t *testing.T) {
	dir := t.TempDir()

	m := New(dir)
	assert.Equal(t, dir, m.Dir())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, home, New(filepath.Join(dir, "missing")).Dir())
	assert.Equal(t, home, New("").Dir())
}

func TestUpdate_ChooseCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	m := New(dir)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'.'}})
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, SelectedMsg{Path: dir}, msg)
}

func TestUpdate_Cancel(t *testing.T) {
	m := New(t.TempDir())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)

	assert.Equal(t, CanceledMsg{}, cmd())
}

func TestUpdate_EnterSelectsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "album"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.mp3"), []byte("x"), 0o600))

	m := New(dir)
	m.SetSize(80, 20)
	// Feed the directory listing produced by Init.
	m, _ = m.Update(m.Init()())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, SelectedMsg{Path: filepath.Join(dir, "album")}, cmd())
}

func TestView_ShowsDirectory(t *testing.T) {
	dir := t.TempDir()
	m := New(dir)
	m.SetSize(200, 10)

	assert.Contains(t, m.View(), "Open folder")
	assert.Contains(t, m.View(), filepath.Base(dir))
}
