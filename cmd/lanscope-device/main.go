package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/probelab/lanscope/internal/device"
	"github.com/probelab/lanscope/internal/infrastructure/config"
	"github.com/probelab/lanscope/internal/infrastructure/logging"
)

func main() {
	// Parse flags
	port := flag.String("port", "", "Device port (overrides DEVICE_PORT)")
	name := flag.String("name", "", "Device name (overrides DEVICE_NAME)")
	dev := flag.Bool("dev", false, "Development mode (colored logs, debug level)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Device.Port = *port
	}
	if *name != "" {
		cfg.Device.Name = *name
	}
	if *dev {
		cfg.Logging.Development = true
	}

	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	log.Println("lanscope device - companion echo server")

	// Create device server
	srv, err := device.NewServer(cfg.Device, logger, cfg.Logging.Development)
	if err != nil {
		log.Fatalf("Failed to create device server: %v", err)
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
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Device server error: %v", err)
	}
}
