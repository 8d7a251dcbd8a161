// main.go - HTTP server application
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Elusive7733/upautomate-analytics-be/internal"
	"github.com/Elusive7733/upautomate-analytics-be/internal/seeder"
)

const (
	defaultShutdownTimeout = 30 * time.Second
)

func main() {
	seedCount := flag.Int("seed", 0, "seed N demo users and exit")
	flag.Parse()

	app, err := internal.NewApp()
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	log.Println("Running database migrations...")
	if err := app.DBManager.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed")

	if *seedCount > 0 {
		if err := seeder.NewSeeder(app.DBManager, app.Logger, *seedCount).Seed(); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		return
	}

	log.Println("Starting application...")
	serverErr := app.StartAsync()
	log.Println("Application started successfully")

	waitForShutdownSignal(app, serverErr)
}

// waitForShutdownSignal sets up signal handling and performs graceful shutdown
func waitForShutdownSignal(app *internal.Application, serverErr <-chan error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErr:
		log.Printf("Server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	log.Println("Initiating graceful shutdown...")
	if err := app.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
		os.Exit(1)
	}
	log.Println("Server shutdown complete")
}
