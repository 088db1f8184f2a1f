package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/scalsui/scals"
	scalshttp "github.com/scalsui/scals/pkg/adapters/http"
	"github.com/scalsui/scals/pkg/adapters/memory"
	"github.com/scalsui/scals/pkg/adapters/redis"
	"github.com/scalsui/scals/pkg/document"
	"github.com/scalsui/scals/pkg/observability"
	"github.com/scalsui/scals/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve [file...]",
	Short: "Start the HTTP session server",
	Long: `Starts the engine in server mode, exposing documents and sessions over
a JSON API. Document files given as arguments are preloaded; more can
be registered at runtime via POST /documents. Session state snapshots
live in memory unless --redis points at a Redis instance.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")

		if err := runServe(cmd, args, port, redisAddr); err != nil {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session snapshots (host:port)")
}

func runServe(cmd *cobra.Command, files []string, port, redisAddr string) error {
	logger, err := commandLogger(cmd)
	if err != nil {
		return err
	}

	var snapshots ports.SnapshotStore
	if redisAddr != "" {
		snapshots = redis.New(redisAddr, "", 0)
	} else {
		snapshots = memory.NewStore()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	engine, err := scals.New(
		scals.WithLogger(logger),
		scals.WithSnapshotStore(snapshots),
		scals.WithMetrics(observability.NewMetrics(registry)),
	)
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	docs := make([]*document.Definition, 0, len(files))
	for _, file := range files {
		data, err := loadDocument(file)
		if err != nil {
			return err
		}
		def, err := engine.Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		docs = append(docs, def)
		logger.Info("document preloaded", "document", def.ID, "file", file)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/", scalshttp.NewHandler(engine,
		scalshttp.WithLogger(logger),
		scalshttp.WithDocuments(docs...),
	))

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("Starting scals server on %s\n", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("killing server: %w", err)
			}
		}
		fmt.Println("scals server stopped gracefully")
		return nil
	}
}
