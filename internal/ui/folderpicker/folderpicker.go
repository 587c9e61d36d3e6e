// Package folderpicker wraps the bubbles file picker to choose a directory.
package folderpicker

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/foldplay/internal/ui/render"
	"github.com/llehouerou/foldplay/internal/ui/styles"
)

// SelectedMsg is sent when a folder has been chosen.
type SelectedMsg struct {
	Path string
}

// CanceledMsg is sent when the picker is closed without a choice.
type CanceledMsg struct{}

// headerHeight is the title line, the current directory and the hint.
const headerHeight = 3

var (
	chooseCurrent = key.NewBinding(key.WithKeys("."), key.WithHelp(".", "use this folder"))
	cancel        = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "cancel"))
)

// Model is the folder picker.
type Model struct {
	picker filepicker.Model
	width  int
	height int
}

// New creates a picker rooted at start. An empty or missing start falls
// back to the home directory.
func New(start string) Model {
	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.ShowPermissions = false
	fp.ShowSize = false
	fp.AutoHeight = false
	fp.CurrentDirectory = resolveStart(start)
	// esc belongs to the picker's Back binding; keep q for cancel.
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left", "esc"))
	return Model{picker: fp}
}

func resolveStart(start string) string {
	if start != "" {
		if info, err := os.Stat(start); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(start); err == nil {
				return abs
			}
			return start
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// Init reads the starting directory.
func (m Model) Init() tea.Cmd {
	return m.picker.Init()
}

// SetSize sets the outer dimensions of the picker.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.picker.SetHeight(max(height-headerHeight, 1))
}

// Dir returns the directory currently shown.
func (m Model) Dir() string {
	return m.picker.CurrentDirectory
}

// Update handles navigation. Enter on a directory selects it, "." selects
// the directory being shown.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, chooseCurrent):
			dir := m.picker.CurrentDirectory
			return m, func() tea.Msg { return SelectedMsg{Path: dir} }
		case key.Matches(msg, cancel):
			return m, func() tea.Msg { return CanceledMsg{} }
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		return m, func() tea.Msg { return SelectedMsg{Path: path} }
	}
	return m, cmd
}

// View renders the picker.
func (m Model) View() string {
	t := styles.T().S()
	width := max(m.width, 20)

	title := t.Title.Render("Open folder")
	dir := t.Muted.Render(render.Truncate(m.picker.CurrentDirectory, width))
	hint := t.Subtle.Render(render.Truncate("enter select · l open · h back · . use this folder · q cancel", width))

	return lipgloss.JoinVertical(lipgloss.Left, title, dir, hint, m.picker.View())
}
