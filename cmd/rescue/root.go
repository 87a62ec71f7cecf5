package rescue

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/stdio"
)

var (
	Debug      bool
	apiKey     string
	configPath string
	jsonOutput bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "debug")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "RescueGroups API key (overrides config and env)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config directory")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output raw JSON instead of formatted text")
	rootCmd.PersistentPreRun = initLog
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Err(err).Msg("command execution failed")
	}
}

var rootCmd = &cobra.Command{
	Use:   "rescue-groups-mcp",
	Short: "MCP server for the RescueGroups.org adoptable pet API",
	Long: `rescue-groups-mcp bridges AI assistants to the RescueGroups.org v5 API.
Run without a subcommand it speaks JSON-RPC over stdio; the http
subcommand serves the same protocol over HTTP and SSE.`,
	Args: cobra.MinimumNArgs(0),
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Run: Root,
}

// Root starts the stdio server, the transport desktop clients use when
// they spawn us as a subprocess.
func Root(cmd *cobra.Command, args []string) {
	app, err := newApp()
	if err != nil {
		log.Err(err).Msg("failed to initialize")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := stdio.New(app.dispatcher).Run(ctx); err != nil && err != context.Canceled {
		log.Err(err).Msg("stdio server failed")
	}
}
