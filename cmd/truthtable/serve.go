package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lemonberrylabs/truthtable/pkg/api"
	grpcapi "github.com/lemonberrylabs/truthtable/pkg/api/grpc"
	"github.com/lemonberrylabs/truthtable/pkg/engine"
	"github.com/lemonberrylabs/truthtable/pkg/store"
	"github.com/lemonberrylabs/truthtable/web"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s := store.New()
	e := engine.New(cfg.MaxVariables)
	server := api.New(s, e, cfg.ColumnWidth)

	// Register the web UI (non-fatal if template parsing fails)
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Warning: web UI disabled due to template error: %v", r)
			}
		}()
		web.New(s, e).Register(server.App())
	}()

	grpcServer := grpcapi.New(s, e)
	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr())
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			log.Fatalf("gRPC server error: %v", err)
		}
	}()

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down truthtable...")
		grpcServer.GracefulStop()
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("truthtable listening on %s (max variables=%d)", cfg.Addr(), cfg.MaxVariables)
	return server.Listen(cfg.Addr())
}
