package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/recfinder/recording-finder/config"
	"github.com/recfinder/recording-finder/finder"
	"github.com/recfinder/recording-finder/finderserver"
	"github.com/recfinder/recording-finder/finderserver/httpapi"
	"github.com/recfinder/recording-finder/logger"
)

func main() {
	mode := "serve"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	if mode != "serve" && mode != "mcp" {
		fmt.Fprintf(os.Stderr, "Usage: %s [serve|mcp]\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := logger.Config{Level: cfg.LoggingConfig.Level, Development: cfg.LoggingConfig.Development}
	if mode == "mcp" {
		// stdout carries the MCP protocol.
		logCfg.OutputPaths = []string{"stderr"}
	}
	appLog, err := logger.New(logCfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	f, err := finder.New(cfg.BasePath,
		finder.WithDefaultLimit(cfg.DefaultLimit),
		finder.WithZipMemoryLimit(cfg.ZipMemoryLimit),
		finder.WithLogger(appLog.With(logger.String("component", "finder"))),
	)
	if err != nil {
		log.Fatalf("Failed to create finder: %v", err)
	}
	if info, err := os.Stat(f.Base()); err != nil || !info.IsDir() {
		appLog.Warn("base directory is missing, searches will return nothing", logger.String("base", f.Base()))
	}

	if mode == "mcp" {
		fss, err := finderserver.NewFinderServer(f)
		if err != nil {
			log.Fatalf("Failed to create server: %v", err)
		}
		if err := server.ServeStdio(fss); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	if err := serve(cfg, f, appLog); err != nil {
		appLog.Error("server error", logger.Error(err))
		appLog.Sync()
		os.Exit(1)
	}
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests for at most cfg.ShutdownTimeout.
func serve(cfg *config.Config, f *finder.Finder, appLog logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.NewRouter(f, httpapi.Options{
			StaticDir:      cfg.StaticDir,
			RateLimitRPS:   cfg.RateLimitConfig.RPS,
			RateLimitBurst: cfg.RateLimitConfig.Burst,
			Logger:         appLog.With(logger.String("component", "http")),
		}),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLog.Info("listening", logger.String("addr", cfg.Addr), logger.String("base", f.Base()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
