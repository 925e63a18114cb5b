package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/probelab/lanscope/internal/infrastructure/config"
	"github.com/probelab/lanscope/internal/infrastructure/server"
)

func main() {
	// Parse flags
	port := flag.String("port", "", "Gateway port (overrides PORT)")
	deviceURL := flag.String("device", "", "Companion device URL (overrides DEVICE_URL)")
	dev := flag.Bool("dev", false, "Development mode (colored logs, debug level)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *deviceURL != "" {
		cfg.Device.URL = *deviceURL
	}
	if *dev {
		cfg.Logging.Development = true
	}

	log.Println("lanscope gateway - local network access demo")

	// Create server
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
