// internal/app/update.go
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/podwaves/internal/errmsg"
	"github.com/llehouerou/podwaves/internal/keymap"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m, TickCmd()

	case PlayerEventMsg:
		m.surface.HandleEvent(msg.Event)
		m.sync()
		return m, WatchPlayer(m.player)

	case PlayerClosedMsg:
		return m, nil

	case StoreChangedMsg:
		m.sync()
		return m, WatchStore(m.storeSub)

	case StoreClosedMsg:
		return m, nil

	case EpisodesLoadedMsg:
		if msg.Err != nil {
			m.setError(errmsg.Format(errmsg.OpCatalogLoad, msg.Err))
			return m, nil
		}
		m.list.SetEntries(msg.Entries)
		return m, nil

	case ScanDoneMsg:
		m.scanning = false
		if msg.Err != nil {
			m.setError(errmsg.Format(errmsg.OpCatalogScan, msg.Err))
			return m, nil
		}
		m.setStatus(scanSummary(msg))
		return m, LoadEpisodesCmd(m.catalog)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())
	if action == "" {
		return m, nil
	}

	switch action { //nolint:exhaustive // navigation falls through to the list
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	case keymap.ActionRefresh:
		return m.startScan()
	}

	if m.handlePlaybackAction(action) {
		return m, nil
	}
	m.list.HandleAction(action)
	return m, nil
}

func (m Model) startScan() (tea.Model, tea.Cmd) {
	if m.scanning {
		return m, nil
	}
	if len(m.sources) == 0 {
		m.setStatus("No library_sources configured")
		return m, nil
	}
	m.scanning = true
	m.setStatus("Scanning library…")
	return m, ScanCmd(m.catalog, m.sources, m.probe)
}

// sync pushes the store state to the player and refreshes the playing marker.
func (m *Model) sync() {
	if err := m.surface.Sync(); err != nil {
		m.setError(errmsg.Format(errmsg.OpEpisodeLoad, err))
	}
	cur, _ := m.store.Current()
	m.list.SetPlaying(cur.URL)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.errorMsg = ""
}

func (m *Model) setError(s string) {
	log.Error().Msg(s)
	m.errorMsg = s
}

func scanSummary(msg ScanDoneMsg) string {
	r := msg.Report
	s := fmt.Sprintf("Scan complete: %d added, %d updated, %d unchanged", r.Added, r.Updated, r.Unchanged)
	if n := len(r.Failed); n > 0 {
		s += fmt.Sprintf(", %d failed", n)
	}
	return s
}
