package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"todo-notes/internal/config"
	"todo-notes/internal/logger"
	"todo-notes/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP and gRPC servers",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	srv, err := server.NewServer(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	log.Info("starting todo-notes server",
		zap.String("version", version),
		zap.Int("portHTTP", cfg.Server.PortHTTP),
		zap.Int("portGRPC", cfg.Server.PortGRPC),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := srv.Start()

	var runErr error
	select {
	case runErr = <-errChan:
		log.Error("server error", zap.Error(runErr))
	case sig := <-sigChan:
		log.Info("received signal, shutting down", zap.String("signal", sig.String()))
	}

	if err := srv.Shutdown(); err != nil {
		log.Error("shutdown failed", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}
	log.Info("server stopped")
	return runErr
}
