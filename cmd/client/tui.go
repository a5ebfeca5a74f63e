package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	grpcapi "todo-notes/internal/api/grpc"
	"todo-notes/internal/client"
	"todo-notes/internal/confirm"
	"todo-notes/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	todos := client.NewTodoStore(api)
	notes := client.NewNoteStore(api)

	var watcher *client.Watcher
	if cfg.Client.WatchEvents {
		conn, err := dialFeed()
		if err != nil {
			return err
		}
		defer conn.Close()
		watcher = client.NewWatcher(grpcapi.NewFeedClient(conn), todos, notes, log)
		log.Info("change feed enabled", zap.String("addr", cfg.Client.GRPCAddr))
	}

	return tui.Run(cmd.Context(), tui.Options{
		Todos:   todos,
		Notes:   notes,
		Modal:   confirm.NewModal(),
		Log:     log,
		Locale:  cfg.Client.Locale,
		Timeout: timeout(),
	}, watcher)
}

// dialFeed создает соединение с лентой изменений; подключение ленивое,
// поэтому недоступный сервер не мешает старту
func dialFeed() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(cfg.Client.GRPCAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("create gRPC client: %w", err)
	}
	return conn, nil
}
