// Package episodelist renders the catalog as a scrollable list and tracks
// which episode the cursor is on.
package episodelist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/podwaves/internal/catalog"
	"github.com/llehouerou/podwaves/internal/episode"
	"github.com/llehouerou/podwaves/internal/keymap"
	"github.com/llehouerou/podwaves/internal/ui"
	"github.com/llehouerou/podwaves/internal/ui/cursor"
	"github.com/llehouerou/podwaves/internal/ui/render"
	"github.com/llehouerou/podwaves/internal/ui/styles"
)

const (
	emptyText     = "No episodes yet. Add folders to library_sources and press r to scan."
	playingMarker = "▶ "
)

// Model is the episode list panel.
type Model struct {
	ui.Base
	entries    []catalog.Entry
	cursor     cursor.Cursor
	playingURL string
	now        func() time.Time
}

// New creates an empty list.
func New() Model {
	return Model{
		cursor: cursor.New(ui.ScrollMargin),
		now:    time.Now,
	}
}

// SetEntries replaces the listed entries and keeps the cursor in range.
func (m *Model) SetEntries(entries []catalog.Entry) {
	m.entries = entries
	m.cursor.ClampToBounds(len(entries), m.listHeight())
}

// SetPlaying marks the entry with the given URL as the loaded one.
func (m *Model) SetPlaying(url string) {
	m.playingURL = url
}

// Len returns the number of entries.
func (m Model) Len() int {
	return len(m.entries)
}

// Cursor returns the cursor position.
func (m Model) Cursor() int {
	return m.cursor.Pos()
}

// Selected returns the episode under the cursor.
func (m Model) Selected() (episode.Episode, bool) {
	if len(m.entries) == 0 {
		return episode.Episode{}, false
	}
	return m.entries[m.cursor.Pos()].Episode, true
}

// Episodes returns the listed episodes in display order.
func (m Model) Episodes() []episode.Episode {
	eps := make([]episode.Episode, len(m.entries))
	for i, e := range m.entries {
		eps[i] = e.Episode
	}
	return eps
}

// HandleAction applies a navigation action. It reports whether the action
// was one the list handles.
func (m *Model) HandleAction(a keymap.Action) bool {
	n, h := len(m.entries), m.listHeight()
	switch a { //nolint:exhaustive // only navigation
	case keymap.ActionMoveUp:
		m.cursor.Move(-1, n, h)
	case keymap.ActionMoveDown:
		m.cursor.Move(1, n, h)
	case keymap.ActionJumpStart:
		m.cursor.Jump(0, n, h)
	case keymap.ActionJumpEnd:
		m.cursor.Jump(n-1, n, h)
	case keymap.ActionPageUp:
		m.cursor.Move(-max(h/2, 1), n, h)
	case keymap.ActionPageDown:
		m.cursor.Move(max(h/2, 1), n, h)
	default:
		return false
	}
	return true
}

func (m Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}

// View renders the panel at its configured size.
func (m Model) View() string {
	s := styles.T().S()
	width := max(m.Width()-4, 0) // border + padding

	header := render.Row(
		s.Title.Render("Episodes"),
		s.Muted.Render(countLabel(len(m.entries))),
		width,
	)
	lines := []string{header, s.Subtle.Render(render.Separator(width))}

	if len(m.entries) == 0 {
		lines = append(lines, s.Muted.Render(render.Truncate(emptyText, width)))
	} else {
		start, end := m.cursor.VisibleRange(len(m.entries), m.listHeight())
		for i := start; i < end; i++ {
			lines = append(lines, m.renderRow(i, width))
		}
	}

	for len(lines) < max(m.Height()-ui.BorderHeight, 0) {
		lines = append(lines, "")
	}

	return s.Panel.
		Padding(0, 1).
		Width(max(m.Width()-2, 0)).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderRow(i, width int) string {
	s := styles.T().S()
	e := m.entries[i]

	marker := "  "
	titleStyle := s.Base
	if e.URL == m.playingURL {
		marker = playingMarker
		titleStyle = s.Playing
	}

	right := s.Muted.Render(fmt.Sprintf("%8s  %s",
		render.Clock(e.Length()),
		humanize.RelTime(e.AddedAt, m.now(), "ago", "from now"),
	))

	room := max(width-lipgloss.Width(marker)-lipgloss.Width(right)-1, 0)
	title := render.Sanitize(e.Title)
	if e.Members != "" {
		title += " · " + render.Sanitize(e.Members)
	}
	left := marker + titleStyle.Render(render.Truncate(title, room))

	row := render.Row(left, right, width)
	if i == m.cursor.Pos() {
		return s.Cursor.Width(width).Render(row)
	}
	return row
}

func countLabel(n int) string {
	if n == 1 {
		return "1 episode"
	}
	return humanize.Comma(int64(n)) + " episodes"
}
