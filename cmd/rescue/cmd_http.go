package rescue

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	rescuehttp "github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/http"
)

func init() {
	rootCmd.AddCommand(httpCmd)
	httpCmd.Flags().StringVarP(&httpAddr, "addr", "a", "", "listen address (default 0.0.0.0:3000)")
	httpCmd.Flags().StringVar(&httpAuthToken, "auth-token", "", "bearer token required on the synchronous endpoint")
}

var (
	httpAddr      string
	httpAuthToken string
)

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Start the MCP server in HTTP mode",
	Run: func(cmd *cobra.Command, args []string) {
		overrides := map[string]any{}
		if httpAddr != "" {
			overrides["http_addr"] = httpAddr
		}
		if httpAuthToken != "" {
			overrides["auth_token"] = httpAuthToken
		}

		app, err := newApp(overrides)
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		service := rescuehttp.NewService(app.settings, app.dispatcher)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- service.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			if err := service.Stop(); err != nil {
				log.Err(err).Msg("shutdown failed")
			}
		case err := <-errCh:
			if err != nil {
				log.Err(err).Msg("http server failed")
			}
		}
	},
}
