// Command client терминальный клиент задач и заметок: TUI и разовые команды.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"todo-notes/internal/client"
	"todo-notes/internal/config"
	"todo-notes/internal/logger"
	"todo-notes/internal/tui"
)

var (
	// configFile задается флагом --config
	configFile string

	cfg *config.ClientConfig
	log *zap.Logger
	api *client.API
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, tui.Failure(err.Error()))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "client",
	Short: "Terminal client for todos and notes",
	Long: `Without a subcommand starts the interactive terminal UI.
Subcommands run a single operation against the REST API and exit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.LoadClient(configFile); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if log, err = logger.New(cfg.Logger); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		api = client.NewAPI(cfg.Client.BaseURL, timeout(), nil)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			_ = log.Sync()
		}
		return nil
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "client.yml", "path to the client config file")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(todosCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(watchCmd)
}

func timeout() time.Duration {
	return time.Duration(cfg.Client.Timeout) * time.Second
}
