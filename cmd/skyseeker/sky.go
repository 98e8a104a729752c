package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/skyseeker/internal/logging"
	"github.com/litescript/skyseeker/internal/metrics"
	"github.com/litescript/skyseeker/internal/scheduler"
	"github.com/litescript/skyseeker/internal/sky"
	"github.com/litescript/skyseeker/internal/state"
	"github.com/litescript/skyseeker/internal/ui"
)

// Flags for the sky command
var (
	summaryMode   bool
	eventsMode    bool
	snapshotPath  string
	watchInterval time.Duration
	metricsAddr   string
	trackIDs      []string
	batchSize     int
	workers       int
)

var skyCmd = &cobra.Command{
	Use:   "sky",
	Short: "Track the whole catalog, refreshing a batch of bodies per tick",
	Long: `Track the whole catalog. Each tick refreshes the next batch of bodies,
so every body is revisited within ceil(catalog size / batch size) ticks.

Starts the terminal UI when stdout is a terminal; otherwise, or with any
of --summary, --events or --snapshot-path, prints text after a full pass.`,
	Args: cobra.NoArgs,
	RunE: runSky,
}

func init() {
	f := skyCmd.Flags()
	f.BoolVar(&summaryMode, "summary", false, "Print bodies above the horizon instead of the TUI")
	f.BoolVar(&eventsMode, "events", false, "Print the rise/set log")
	f.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	f.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 30s)")
	f.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g., :9090)")
	f.StringSliceVar(&trackIDs, "track", nil, "Body ids to keep altitude history for")
	f.IntVar(&batchSize, "batch-size", 0, "Bodies refreshed per tick; overrides config")
	f.IntVar(&workers, "workers", 0, "Bodies computed in parallel within a batch; overrides config")
}

func runSky(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	if batchSize > 0 {
		e.cfg.Scheduler.BatchSize = batchSize
	}
	if workers > 0 {
		e.cfg.Scheduler.Workers = workers
	}
	interval, err := e.cfg.TickInterval()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = interval
	stateMgr := state.NewManager(stateCfg)
	for _, id := range trackIDs {
		stateMgr.Track(id)
	}

	schedCfg := e.cfg.SchedulerConfig(e.log)
	if metricsAddr != "" {
		schedCfg.Metrics = metrics.New(prometheus.NewRegistry())
		go serveMetrics(ctx, metricsAddr, schedCfg.Metrics, e.log)
	}
	sched := scheduler.New(e.catalog, e.pipeline, stateMgr, schedCfg)
	r := &refresher{env: e, sched: sched, state: stateMgr}

	headless := summaryMode || eventsMode || snapshotPath != "" || !term.IsTerminal(int(os.Stdout.Fd()))
	if headless {
		return r.runHeadless(ctx)
	}

	p := tea.NewProgram(ui.New(stateMgr, e.catalog.Iterate()), tea.WithAltScreen(), tea.WithContext(ctx))
	go r.loop(ctx, interval, func(err error) {
		if err != nil {
			p.Send(ui.ErrorMsg{Error: err})
			return
		}
		p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
	})

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// refresher drives the scheduler with the current time.
type refresher struct {
	env   *env
	sched *scheduler.Scheduler
	state *state.Manager
}

// tick refreshes one batch at the current instant.
func (r *refresher) tick() (scheduler.TickReport, error) {
	t, err := sky.FromTime(time.Now())
	if err != nil {
		return scheduler.TickReport{}, err
	}
	report := r.sched.Tick(scheduler.Query{
		Observer:         r.env.observer,
		Time:             t,
		EarthOrientation: r.env.eo,
	})
	r.state.RecordTick(report)
	r.env.log.Debug("Tick [%d, %d) of %d: %d refreshed, %d failed",
		report.Start, report.End, report.Total, report.Refreshed, report.Failed)
	return report, nil
}

// fullPass ticks until every body has been refreshed once.
func (r *refresher) fullPass() error {
	batch := max(r.sched.Cursor().BatchSize, 1)
	passes := (r.env.catalog.Len() + batch - 1) / batch
	for i := 0; i < passes; i++ {
		if _, err := r.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (r *refresher) loop(ctx context.Context, interval time.Duration, notify func(error)) {
	notify(r.fullPass())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.env.log.Debug("Refresh loop shutting down")
			return
		case <-ticker.C:
			_, err := r.tick()
			notify(err)
		}
	}
}

func (r *refresher) runHeadless(ctx context.Context) error {
	bodies := r.env.catalog.Iterate()

	outputOnce := func() error {
		if err := r.fullPass(); err != nil {
			return err
		}
		snap := r.state.Snapshot()
		now := time.Now()

		if snapshotPath != "" {
			if err := writeSnapshot(ui.ExportSnapshot(bodies, snap, now)); err != nil {
				return err
			}
		}
		if summaryMode || (!eventsMode && snapshotPath == "") {
			ui.WriteSummaryTable(os.Stdout, bodies, snap, now)
		}
		if eventsMode {
			fmt.Println()
			ui.WriteEvents(os.Stdout, snap.Events, 10)
		}
		return nil
	}

	if err := outputOnce(); err != nil || watchInterval == 0 {
		return err
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(); err != nil {
				r.env.log.Error("Refresh failed: %v", err)
			}
		}
	}
}

func writeSnapshot(export *ui.SnapshotExport) error {
	if snapshotPath == "-" {
		if err := export.WriteJSON(os.Stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}
	f, err := os.Create(snapshotPath)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := export.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics, log *logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Metrics server: %v", err)
	}
}
