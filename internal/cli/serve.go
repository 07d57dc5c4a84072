// Package cli holds the hausbot subcommands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/example/hausbot/internal/command"
	"github.com/example/hausbot/internal/config"
	"github.com/example/hausbot/internal/external"
	"github.com/example/hausbot/internal/ranking"
	"github.com/example/hausbot/internal/server"
	"github.com/example/hausbot/internal/slack"
)

// ServeCmd returns the serve command, the long-running HTTP service.
func ServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the hausbot HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Secrets may come from a .env next to the binary; a
			// missing file is fine.
			godotenv.Load()

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			setupLogger(cfg)

			slog.Info("config loaded",
				"listen", cfg.Listen,
				"data_dir", cfg.DataDir,
				"debug", cfg.Debug,
			)

			store := ranking.NewStore(filepath.Join(cfg.DataDir, "schika.json"))
			session := command.NewSession()
			timeout := cfg.Timeout()

			trivia := external.NewOpenTriviaClient(cfg.Providers.TriviaURL, timeout)
			geocoder := external.NewGoogleGeocoder(cfg.Providers.GeocodeURL, timeout)
			currency := external.NewFixerClient(cfg.Providers.CurrencyURL, timeout)
			guardian := external.NewGuardianClient(cfg.Providers.GuardianURL, cfg.Providers.GuardianKey, timeout)

			router := command.NewRouter()
			router.Register(command.NewSchikaHandler(store))
			router.Register(command.NewTriviaHandler(trivia, session))
			router.Register(command.NewSolveHandler(session))
			router.Register(command.NewZuhauseHandler(session))
			router.Register(command.NewSayHandler())
			router.Alias("alle", "say")
			router.Alias("ruf", "say")
			router.Register(command.NewBellHandler())
			router.Register(command.NewKursHandler(currency))
			router.Register(command.NewNewsHandler(guardian))
			router.Register(command.NewHelpHandler())

			srv := server.New(cfg.Listen, cfg.Slack.Token, cfg.DataDir, router,
				slack.NewClient(timeout), geocoder, timeout, slog.Default())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv.Start()
			<-ctx.Done()
			slog.Info("shutting down")
			srv.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	return cmd
}

// setupLogger configures slog based on config settings.
func setupLogger(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		w = io.MultiWriter(os.Stdout, f)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
