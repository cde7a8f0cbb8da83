package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/l-pommeret/RAG-DiBiSo/internal/config"
	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/events"
	pktNats "github.com/l-pommeret/RAG-DiBiSo/pkg/nats"
)

// Tails the EVENTS stream (document ingestions, live hours refreshes) and
// writes each event to the structured log. Useful while operating the
// ingestion pipeline or debugging the live hours chain.
func main() {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("events.>", "event-log-tail", func(_ context.Context, event events.Event) error {
		sysLogger.Info("events", "event received", map[string]interface{}{
			"subject": event.EventType(),
			"payload": event.Payload(),
		})
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	log.Printf("Tailing events on %s, press Ctrl+C to stop", cfg.App.NatsURL)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
