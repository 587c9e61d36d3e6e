package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/foldplay/internal/ui/playerbar"
	"github.com/llehouerou/foldplay/internal/ui/render"
	"github.com/llehouerou/foldplay/internal/ui/styles"
)

var helpBindings = newHelpKeys()

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.picking {
		return m.picker.View()
	}

	t := styles.T().S()
	listHeight := max(m.height-playerbar.Height-1, 1)

	var main string
	if m.showHelp {
		h := m.help
		h.ShowAll = true
		main = lipgloss.Place(m.width, listHeight, lipgloss.Center, lipgloss.Center, h.View(helpBindings))
	} else {
		main = m.tracks.View()
	}

	bar := playerbar.Render(playerbar.NewState(m.ctrl.Status(), m.ctrl.Len()), m.width)

	var status string
	if m.errorMsg != "" {
		status = t.Error.Render(render.Truncate(m.errorMsg, m.width))
	} else {
		status = m.help.View(helpBindings)
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, bar, status)
}
