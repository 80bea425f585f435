// Package playerbar renders the "now playing" panel: the current episode,
// its progress, the transport state and the loop/shuffle modes.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/podwaves/internal/ui/render"
	"github.com/llehouerou/podwaves/internal/ui/styles"
)

// EmptyText is shown when no episode is selected.
const EmptyText = "Select a podcast to listen"

const (
	header       = "Now playing"
	playSymbol   = "▶"
	pauseSymbol  = "⏸"
	loopSymbol   = "⟲"
	shuffleGlyph = "⤮"
)

// State holds everything needed to render the player bar.
type State struct {
	HasEpisode bool
	Title      string
	Members    string
	Position   time.Duration
	Duration   time.Duration
	Playing    bool
	Looping    bool
	Shuffling  bool
	Index      int // zero-based position in the queue
	QueueLen   int
}

// Height is the number of terminal rows Render produces.
const Height = 5 // 3 content rows + 2 border rows

// Render returns the player bar for the given total width.
func Render(s State, width int) string {
	t := styles.T()
	inner := max(width-4, 0) // border + horizontal padding

	lines := make([]string, 3)
	lines[0] = render.Row(
		t.S().Muted.Render(header),
		renderModes(s),
		inner,
	)

	if !s.HasEpisode {
		lines[1] = t.S().Subtle.Render(EmptyText)
		lines[2] = RenderProgress(0, 0, inner, false, false)
	} else {
		lines[1] = renderTitleLine(s, inner)
		lines[2] = RenderProgress(s.Position, s.Duration, inner, s.Playing, true)
	}

	for i, l := range lines {
		lines[i] = render.TruncateEllipsis(l, inner)
	}

	return t.S().Panel.
		Padding(0, 1).
		Width(max(width-2, 0)).
		Render(strings.Join(lines, "\n"))
}

func renderTitleLine(s State, width int) string {
	t := styles.T()

	title := render.Sanitize(s.Title)
	if title == "" {
		title = "Untitled episode"
	}
	styled := styles.Gradient(render.TruncateEllipsis(title, width), t.Primary, t.Secondary)

	var position string
	if s.QueueLen > 1 {
		position = t.S().Subtle.Render(fmt.Sprintf("%d/%d", s.Index+1, s.QueueLen))
	}

	members := render.Sanitize(s.Members)
	if members == "" {
		return render.Row(styled, position, width)
	}

	room := width - lipgloss.Width(styled) - lipgloss.Width(position) - 4
	if room < 4 {
		return render.Row(styled, position, width)
	}
	left := styled + t.S().Muted.Render(" · "+render.TruncateEllipsis(members, room))
	return render.Row(left, position, width)
}

func renderModes(s State) string {
	t := styles.T()
	mode := func(on bool, text string) string {
		if on {
			return t.S().ModeOn.Render(text)
		}
		return t.S().ModeOff.Render(text)
	}
	return mode(s.Shuffling, shuffleGlyph+" shuffle") + "  " + mode(s.Looping, loopSymbol+" loop")
}
