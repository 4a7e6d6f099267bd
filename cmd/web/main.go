package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/LumpsRGood/tablet-use-app/pkg/metrics"
	"github.com/LumpsRGood/tablet-use-app/pkg/server"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/config"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/report"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the tablet use report server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the application config file (optional)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	app, err := config.LoadApp(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load app config: %w", err)
	}

	registry, err := app.MappingRegistry()
	if err != nil {
		return fmt.Errorf("failed to load mapping profiles: %w", err)
	}

	profiles, err := registry.Profiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list mapping profiles: %w", err)
	}
	logger.Info().Msgf("Found the following mapping profiles:")
	for _, profile := range profiles {
		logger.Info().Msgf("Name: `%s`", profile)
	}

	addr := net.JoinHostPort(app.Host, app.Port)
	logger.Info().Msgf("starting server on %s", addr)

	api := server.NewWebAPI(server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Processor: report.NewProcessor(app.ReportSettings()),
			Mappings:  registry,
			Metrics:   metrics.NewManager(),
			Logger:    logger,
		},
	})

	return api.Start()
}
