package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	lg "github.com/Andrej220/go-utils/zlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ferranSanchezLlado/threadpool"
	"github.com/ferranSanchezLlado/threadpool/internal/config"
	"github.com/ferranSanchezLlado/threadpool/internal/httpd"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	workers := flag.Int("workers", 0, "pool size (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := threadpool.Options{QueueCapacity: cfg.QueueCapacity}
	var reg *prometheus.Registry
	if cfg.MetricsEnabled {
		reg = prometheus.NewRegistry()
		opts.Metrics = threadpool.NewPromMetrics(reg)
	}

	// The pool is process-scoped state: built here, passed down
	// explicitly, torn down on the way out.
	pool, err := threadpool.New(cfg.Workers, opts)
	if err != nil {
		return err
	}

	if reg != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				lg.FromContext(ctx).Error("metrics endpoint failed", lg.Any("error", err))
			}
		}()
	}

	srv := httpd.New(cfg.Addr, cfg.HTMLDir, cfg.SleepDelay, pool)
	err = srv.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if serr := pool.Shutdown(shutdownCtx); serr != nil && err == nil {
		err = fmt.Errorf("pool shutdown: %w", serr)
	}
	return err
}
