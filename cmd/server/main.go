// File: cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log" // Standard log for shutdown messages after the server returns
	"os"
	"os/signal"
	"syscall"
	"time"

	"adventure_backend/internal/config"
	"adventure_backend/internal/platform/logger"

	"go.uber.org/zap"
)

const usage = `usage: server [command]

commands:
  (none)          start the HTTP server
  seed-rewards    insert the demo rewards when the rewards collection is empty
  sync-profiles   copy every profile document into the search index
`

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "seed-rewards":
			runTool(func(ctx context.Context, t *tools) error {
				n, err := t.Rewards.SeedDemo(ctx)
				if err == nil {
					t.Logger.Info("Reward seeding finished", zap.Int("inserted", n))
				}
				return err
			})
			return
		case "sync-profiles":
			syncCmd := flag.NewFlagSet("sync-profiles", flag.ExitOnError)
			batchSize := syncCmd.Int("batch-size", 100, "Batch size for syncing profiles")
			esRefresh := syncCmd.String("es-refresh", "false", "Elasticsearch refresh policy (true, false, wait_for)")
			_ = syncCmd.Parse(os.Args[2:])

			runTool(func(ctx context.Context, t *tools) error {
				return t.Syncer.Run(ctx, *batchSize, *esRefresh)
			})
			return
		case "-h", "--help", "help":
			fmt.Print(usage)
			return
		default:
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
	}

	startServer()
}

// runTool loads configuration, wires the maintenance dependencies and runs fn.
func runTool(fn func(ctx context.Context, t *tools) error) {
	bootLogger := logger.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		bootLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	t, cleanup, err := initializeTools(cfg)
	if err != nil {
		bootLogger.Fatal("Failed to initialize dependencies", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	err = fn(ctx, t)
	cancel()
	if err != nil {
		t.Logger.Error("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
		cleanup()
		os.Exit(1)
	}
	cleanup()
}

func startServer() {
	bootLogger := logger.NewDefaultLogger()
	cfg, err := config.Load()
	if err != nil {
		bootLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		bootLogger.Fatal("Failed to initialize server", zap.Error(err))
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}
