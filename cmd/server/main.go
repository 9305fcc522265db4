// Command server is the entry point for the subredit backend.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subredit/internal/bootstrap"
	"subredit/internal/config"
	"subredit/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SeedDemoData: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	srv := server.NewServerWithDeps(cfg, rt.DB, rt.Redis)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := rt.Shutdown(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	log.Fatal(srv.Start())
}
