package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/ops-atlas/pkg/alerts"
	"github.com/de-tools/ops-atlas/pkg/collector"
	"github.com/de-tools/ops-atlas/pkg/metrics"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/server"
	"github.com/de-tools/ops-atlas/pkg/services/config"
	"github.com/de-tools/ops-atlas/pkg/services/console"
	"github.com/de-tools/ops-atlas/pkg/sources"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

var (
	profilesPath string
	profileName  string
	cfgPath      string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Ops Atlas web server",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultProfiles := fmt.Sprintf("%s/.opsatlas", usr.HomeDir)

	rootCmd.Flags().StringVarP(&profilesPath, "profiles", "p", defaultProfiles,
		"Path to the profiles file (default is $HOME/.opsatlas)")
	rootCmd.Flags().StringVar(&profileName, "profile", "default", "Backend profile to use")
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the engine config file (optional)")

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

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry, err := config.NewRegistry(profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	logger.Info().Msgf("Profiles found at `%s` successfully loaded.", profilesPath)
	for _, name := range registry.Profiles() {
		logger.Info().Msgf("Profile: `%s`", name)
	}

	profile, err := registry.Get(profileName)
	if err != nil {
		return err
	}

	aggregator, err := buildAggregator(cfg, profile)
	if err != nil {
		return err
	}

	host := cfg.Server.Host
	port := cfg.Server.Port
	if env := os.Getenv("SERVER_HOST"); env != "" {
		host = env
	}
	if env := os.Getenv("SERVER_PORT"); env != "" {
		port = env
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Aggregator: aggregator,
			WindowDays: cfg.Report.WindowDays,
		},
	})

	// Background cycles keep an eye on the alert state between requests.
	// A zero or negative refresh_rate disables them.
	if cfg.Report.RefreshRate > 0 {
		ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
		defer cancel()

		refresher := console.NewRefresher(
			aggregator,
			domain.Principal{User: "background-refresh"},
			cfg.Report.RefreshRate,
			time.Duration(cfg.Report.WindowDays)*24*time.Hour,
		)
		go refresher.Run(ctx, func(cycle *console.Cycle) {
			event := logger.Info()
			for _, alert := range cycle.Alerts {
				if alert.Priority == domain.PriorityCritical {
					event = logger.Warn()
					break
				}
			}
			event.
				Str("cycle_id", cycle.Snapshot.CycleID).
				Int("alerts", len(cycle.Alerts)).
				Msg("background refresh cycle completed")
		})
	}

	return api.Start()
}

func buildAggregator(cfg *config.Config, profile config.Profile) (*console.Service, error) {
	backend := client.New(client.Config{
		BaseURL: profile.APIURL,
		Token:   profile.Token,
		Timeout: cfg.Collector.DefaultTimeout,
	})

	registry := sources.NewRegistry()
	adapters := []sources.Adapter{
		sources.NewOrdersAdapter(backend),
		sources.NewExpensesAdapter(backend),
		sources.NewInvoicesAdapter(backend),
		sources.NewMaterialsAdapter(backend),
		sources.NewMaterialOrdersAdapter(backend),
		sources.NewDeliveriesAdapter(backend),
		sources.NewEmployeesAdapter(backend),
		sources.NewAttendanceAdapter(backend),
		sources.NewNotificationsAdapter(backend),
	}
	for _, adapter := range adapters {
		if err := registry.Register(adapter); err != nil {
			return nil, fmt.Errorf("failed to register adapter: %w", err)
		}
	}

	engine, err := alerts.NewEngine(cfg.Rules())
	if err != nil {
		return nil, fmt.Errorf("failed to compile alert rules: %w", err)
	}

	col := collector.New(registry, collector.Timeouts{
		Default:   cfg.Collector.DefaultTimeout,
		PerDomain: cfg.DomainTimeouts(),
	})

	return console.NewService(col, metrics.NewCalculator(cfg.Report.TopN), alerts.NewGenerator(engine)), nil
}
