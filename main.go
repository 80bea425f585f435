// Package main provides the podwaves entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/podwaves/internal/app"
	"github.com/llehouerou/podwaves/internal/catalog"
	"github.com/llehouerou/podwaves/internal/config"
	"github.com/llehouerou/podwaves/internal/logger"
	"github.com/llehouerou/podwaves/internal/mpris"
	"github.com/llehouerou/podwaves/internal/notify"
	"github.com/llehouerou/podwaves/internal/playback"
	"github.com/llehouerou/podwaves/internal/player"
	"github.com/llehouerou/podwaves/internal/stderr"
	"github.com/llehouerou/podwaves/internal/surface"
	"github.com/llehouerou/podwaves/internal/ui/render"
)

var (
	cli        = kingpin.New("podwaves", "Terminal podcast player")
	configPath = cli.Flag("config", "Path to config file").Short('c').String()
	logLevel   = cli.Flag("log-level", "Log level (debug, info, warn, error)").String()
	logFile    = cli.Flag("log-file", `Log file path ("-" for stderr)`).String()

	playCmd  = cli.Command("play", "Start the player (default)").Default()
	playScan = playCmd.Flag("scan", "Rescan library sources at startup").Bool()

	scanCmd  = cli.Command("scan", "Add audio files from directories to the catalog")
	scanDirs = scanCmd.Arg("dir", "Directories to scan (default: library_sources)").Strings()

	listCmd = cli.Command("list", "List cataloged episodes").Alias("ls")
)

func main() {
	command := kingpin.MustParse(cli.Parse(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	logCloser, err := logger.Init(logger.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	switch command {
	case scanCmd.FullCommand():
		err = runScan(cfg, *scanDirs)
	case listCmd.FullCommand():
		err = runList(os.Stdout)
	default:
		err = runPlayer(cfg, *playScan)
	}
	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("command failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		logCloser.Close()
		os.Exit(1)
	}
}

// runPlayer starts the TUI. Defers release resources in reverse order even
// when the program returns an error.
func runPlayer(cfg *config.Config, scan bool) error {
	cat, err := catalog.OpenDefault()
	if err != nil {
		return errors.Wrap(err, "open catalog")
	}
	defer cat.Close()

	// The terminal belongs to the TUI from here on.
	if err := stderr.Start(func(line string) {
		log.Warn().Str("source", "stderr").Msg(line)
	}); err != nil {
		log.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	store := playback.New()
	p := player.New()
	defer p.Close()

	sf := surface.New(store, p)

	var adapter *mpris.Adapter
	if cfg.MPRISEnabled() {
		if adapter, err = mpris.New(store, sf); err != nil {
			log.Warn().Err(err).Msg("mpris disabled")
			adapter = nil
		}
	}
	// Closing the store ends the MPRIS forwarder and the notification
	// watcher, so it must happen before Wait.
	defer func() {
		if adapter != nil {
			if err := adapter.Close(); err != nil {
				log.Debug().Err(err).Msg("mpris close")
			}
		}
		store.Close()
		if adapter != nil {
			adapter.Wait()
		}
	}()

	if cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			log.Warn().Err(err).Msg("notifications disabled")
		} else {
			go notify.Watch(store.Subscribe(), n)
		}
	}

	m := app.New(app.Options{
		Store:    store,
		Player:   p,
		Surface:  sf,
		Catalog:  cat,
		Sources:  cfg.LibrarySources,
		Probe:    player.Probe,
		SeekStep: cfg.GetSeekStep(),
		Scan:     scan,
	})

	log.Info().Int("sources", len(cfg.LibrarySources)).Msg("starting player")
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		stderr.WriteOriginal(fmt.Sprintf("Error running program: %v\n", err))
		return errors.Wrap(err, "run program")
	}
	return nil
}

func runScan(cfg *config.Config, dirs []string) error {
	if len(dirs) == 0 {
		dirs = cfg.LibrarySources
	}
	if len(dirs) == 0 {
		return errors.New("no directories given and no library_sources configured")
	}

	cat, err := catalog.OpenDefault()
	if err != nil {
		return errors.Wrap(err, "open catalog")
	}
	defer cat.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := cat.Scan(ctx, dirs, player.Probe)
	if err != nil {
		return errors.Wrap(err, "scan")
	}

	fmt.Printf("Scanned %s files: %s added, %s updated, %s unchanged\n",
		humanize.Comma(int64(report.Total())),
		humanize.Comma(int64(report.Added)),
		humanize.Comma(int64(report.Updated)),
		humanize.Comma(int64(report.Unchanged)))
	for _, f := range report.Failed {
		fmt.Printf("  failed: %s: %v\n", f.Path, f.Err)
	}
	return nil
}

func runList(w io.Writer) error {
	cat, err := catalog.OpenDefault()
	if err != nil {
		return errors.Wrap(err, "open catalog")
	}
	defer cat.Close()

	entries, err := cat.List(context.Background())
	if err != nil {
		return errors.Wrap(err, "list episodes")
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No episodes. Run `podwaves scan DIR` first.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			render.Truncate(e.Title, 50),
			render.Truncate(e.Members, 30),
			render.Clock(e.Length()),
			humanize.Time(e.AddedAt),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TITLE", "MEMBERS", "LENGTH", "ADDED").
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "\n%s episodes\n", humanize.Comma(int64(len(entries))))
	return nil
}
