// Command server запускает REST API, HTML фронтенд и ленту изменений.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version подставляется при сборке через -ldflags "-X main.version=..."
var version = "dev"

// configFile задается флагом --config
var configFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Todo and notes server",
	Long:          `Serves the todos and notes REST API, the HTML frontend, Prometheus metrics and the gRPC change feed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yml", "path to the config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "todo-notes server", version)
	},
}
