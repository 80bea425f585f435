// internal/app/view.go
package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/podwaves/internal/ui/playerbar"
	"github.com/llehouerou/podwaves/internal/ui/render"
	"github.com/llehouerou/podwaves/internal/ui/styles"
)

const statusHeight = 1

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	parts := []string{
		m.list.View(),
		m.surface.View(m.width),
		m.statusLine(),
		m.helpView(),
	}
	return strings.Join(parts, "\n")
}

func (m Model) statusLine() string {
	s := styles.T().S()
	switch {
	case m.errorMsg != "":
		return s.Error.Render(render.Truncate(m.errorMsg, m.width))
	case m.status != "":
		return s.Muted.Render(render.Truncate(m.status, m.width))
	}
	return ""
}

func (m Model) helpView() string {
	h := m.help
	h.ShowAll = m.showHelp
	h.Width = m.width
	return h.View(helpKeys{})
}

// layout gives the episode list whatever the player bar, status line and
// help leave.
func (m *Model) layout() {
	used := playerbar.Height + statusHeight + lipgloss.Height(m.helpView())
	m.list.SetSize(m.width, max(m.height-used, 0))
}
