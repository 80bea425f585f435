// internal/app/app.go
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/podwaves/internal/catalog"
	"github.com/llehouerou/podwaves/internal/episode"
	"github.com/llehouerou/podwaves/internal/keymap"
	"github.com/llehouerou/podwaves/internal/playback"
	"github.com/llehouerou/podwaves/internal/player"
	"github.com/llehouerou/podwaves/internal/surface"
	"github.com/llehouerou/podwaves/internal/ui/episodelist"
)

// Catalog is the episode source the TUI lists and rescans.
type Catalog interface {
	List(ctx context.Context) ([]catalog.Entry, error)
	Scan(ctx context.Context, dirs []string, probe episode.DurationProbe) (catalog.ScanReport, error)
}

// Options wires the model to the rest of the program.
type Options struct {
	Store    *playback.Store
	Player   player.Interface
	Surface  *surface.Surface
	Catalog  Catalog
	Sources  []string              // library folders scanned on refresh
	Probe    episode.DurationProbe // duration reader used by scans
	SeekStep time.Duration
	Scan     bool // rescan sources at startup
}

// Model is the root application model.
type Model struct {
	store       *playback.Store
	player      player.Interface
	surface     *surface.Surface
	catalog     Catalog
	sources     []string
	probe       episode.DurationProbe
	seekStep    time.Duration
	scanOnStart bool

	storeSub *playback.Subscription
	keys     *keymap.Resolver
	help     help.Model
	list     episodelist.Model

	showHelp bool
	scanning bool
	status   string
	errorMsg string
	width    int
	height   int
}

// New creates the root model. The store subscription is taken here so no
// change made before the program starts is missed.
func New(opts Options) Model {
	sf := opts.Surface
	if sf == nil {
		sf = surface.New(opts.Store, opts.Player)
	}
	step := opts.SeekStep
	if step <= 0 {
		step = 10 * time.Second
	}
	return Model{
		store:       opts.Store,
		player:      opts.Player,
		surface:     sf,
		catalog:     opts.Catalog,
		sources:     opts.Sources,
		probe:       opts.Probe,
		seekStep:    step,
		scanOnStart: opts.Scan,
		storeSub:    opts.Store.Subscribe(),
		keys:        keymap.NewResolver(keymap.All),
		help:        help.New(),
		list:        episodelist.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		TickCmd(),
		WatchPlayer(m.player),
		WatchStore(m.storeSub),
		LoadEpisodesCmd(m.catalog),
	}
	if m.scanOnStart && len(m.sources) > 0 {
		cmds = append(cmds, ScanCmd(m.catalog, m.sources, m.probe))
	}
	return tea.Batch(cmds...)
}
