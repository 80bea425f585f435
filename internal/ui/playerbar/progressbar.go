package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/podwaves/internal/ui/render"
	"github.com/llehouerou/podwaves/internal/ui/styles"
)

// RenderProgress renders a status symbol, the elapsed time, a bar and the
// total time. Without an episode the bar is drawn empty and dimmed.
// Format: ▶  1:23  ━━━━━─────  4:56
func RenderProgress(position, duration time.Duration, width int, playing, active bool) string {
	s := styles.T().S()

	status := playSymbol
	if playing {
		status = pauseSymbol
	}
	if !active {
		status = s.Subtle.Render(status)
	}

	posStr := render.Clock(position)
	durStr := render.Clock(duration)

	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixed
	if barWidth < 3 {
		return status + "  " + posStr + " / " + durStr
	}

	filled := filledCells(position, duration, barWidth)
	bar := s.BarFill.Render(strings.Repeat("━", filled)) +
		s.BarEmpty.Render(strings.Repeat("─", barWidth-filled))

	return status + "  " + posStr + "  " + bar + "  " + durStr
}

func filledCells(position, duration time.Duration, width int) int {
	if duration <= 0 || position <= 0 {
		return 0
	}
	ratio := float64(position) / float64(duration)
	return min(int(float64(width)*ratio), width)
}
