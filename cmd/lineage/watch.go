package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/application/handlers"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/ports"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/metrics"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/watcher"
)

const shutdownTimeout = 5 * time.Second

type watchFlags struct {
	focus       string
	metricsAddr string
	debounce    time.Duration
}

func newWatchCmd() *cobra.Command {
	var flags watchFlags

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Relabel a roster file whenever it changes",
		Long: `Watches a JSON or CSV roster file and prints every member's kinship term
relative to --focus each time the file is saved. No tree is needed.

With --metrics-addr, Prometheus metrics are served at /metrics until the
command is interrupted.

Examples:
  lineage watch family.json --focus Ram
  lineage watch family.csv --focus m1 --metrics-addr :9090`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.focus, "focus", "F", "", "Member to label from (id or name)")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", 0, "Quiet period before relabelling (default from config)")
	_ = cmd.MarkFlagRequired("focus")

	return cmd
}

func runWatch(cmd *cobra.Command, filePath string, flags watchFlags) error {
	e, err := loadEnv(true)
	if err != nil {
		return err
	}
	defer e.closer.Close()

	addr := e.cfg.Metrics.Addr
	if flags.metricsAddr != "" {
		addr = flags.metricsAddr
	}
	debounce := e.cfg.Watch.Debounce
	if flags.debounce > 0 {
		debounce = flags.debounce
	}

	var recorder ports.KinshipRecorder = ports.NopRecorder{}
	var reg *prometheus.Registry
	if addr != "" {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder = metrics.NewRecorder(reg)
	}

	handler := handlers.NewFileHandler(e.vocabulary(), recorder)
	render := func(ctx context.Context) error {
		result, err := handler.HandleFile(ctx, filePath, flags.focus)
		if err != nil {
			return err
		}
		printFileLabels(result)
		return nil
	}

	ctx := cmd.Context()
	if err := render(ctx); err != nil {
		return fmt.Errorf("labelling %s: %w", filePath, err)
	}

	w, err := watcher.New(filePath, func(ctx context.Context, change watcher.Change) {
		fmt.Printf("\n%s: %s changed (%s)\n", change.Time.Format("15:04:05"), change.Path, change.Op)
		if err := render(ctx); err != nil {
			e.logger.Warn("relabelling failed", "path", change.Path, "error", err)
			fmt.Printf("Error: %v\n", err)
		}
	}, watcher.Options{Debounce: debounce, Logger: e.logger})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	if err := w.Start(gctx); err != nil {
		return err
	}
	defer w.Stop()

	if reg != nil {
		serveMetrics(gctx, g, addr, reg, e.logger)
		fmt.Printf("Serving metrics on %s/metrics\n", addr)
	}

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", w.Path())

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Println("\nStopped.")
	return nil
}

// serveMetrics runs the metrics endpoint on g until ctx ends.
func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		logger.Info("metrics endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving metrics: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

func printFileLabels(result *handlers.FileLabels) {
	name := result.FamilyName
	if name == "" {
		name = result.FilePath
	}
	fmt.Printf("%s (%d members)\n", name, result.Members)
	printLabels(result.Labels)
}
