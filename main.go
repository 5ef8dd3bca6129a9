package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/wordflow/internal/api"
	"github.com/example/wordflow/internal/database"
	"github.com/example/wordflow/internal/dictionary"
	"github.com/example/wordflow/internal/ingest"
	"github.com/example/wordflow/internal/notify"
	"github.com/example/wordflow/internal/review"
	"github.com/example/wordflow/internal/scheduler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	store := database.NewStore()
	reviewSvc := review.NewService(store)
	ingestSvc := ingest.NewService(store, dictionary.New())

	// Reminders run only when a bot token is configured
	var reminders *scheduler.Scheduler
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		notifier, err := notify.NewTelegramNotifier(token)
		if err != nil {
			log.Fatalf("Failed to create Telegram notifier: %v", err)
		}
		reminders = scheduler.New(notifier)
		reminders.Start()
		defer reminders.Stop()
	} else {
		log.Println("TELEGRAM_BOT_TOKEN is not set, reminders disabled")
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	server := api.NewServer(store, reviewSvc, ingestSvc)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Handler(),
	}

	go func() {
		log.Printf("Server started on %s. Press Ctrl+C to stop.", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped successfully")
}
