package main

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/ops-atlas/pkg/alerts"
	"github.com/de-tools/ops-atlas/pkg/collector"
	"github.com/de-tools/ops-atlas/pkg/export"
	"github.com/de-tools/ops-atlas/pkg/metrics"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/services/config"
	"github.com/de-tools/ops-atlas/pkg/services/console"
	"github.com/de-tools/ops-atlas/pkg/sources"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

type reportCmd struct {
	profilesPath string
	profileName  string
	cfgPath      string
	reportType   string
	duration     int
	format       string
	outPath      string
}

func main() {
	rc := &reportCmd{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run one aggregation cycle and render a report",
		RunE:  rc.run,
	}

	usr, _ := user.Current()
	defaultProfiles := fmt.Sprintf("%s/.opsatlas", usr.HomeDir)

	cmd.Flags().StringVar(&rc.profilesPath, "profiles", defaultProfiles, "Path to the profiles file")
	cmd.Flags().StringVar(&rc.profileName, "profile", "default", "Backend profile to use")
	cmd.Flags().StringVar(&rc.cfgPath, "config", "", "Path to the engine config file (optional)")
	cmd.Flags().StringVar(&rc.reportType, "type", "dashboard", "Report type to render")
	cmd.Flags().IntVar(&rc.duration, "duration", 30, "Window length in days")
	cmd.Flags().StringVar(&rc.format, "format", "text", "Export format (text, csv)")
	cmd.Flags().StringVar(&rc.outPath, "out", "", "Write the export to a file named deterministically in this directory")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (rc *reportCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx, cancel := context.WithTimeout(logger.WithContext(cmd.Context()), 60*time.Second)
	defer cancel()

	cfg, err := config.Load(rc.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry, err := config.NewRegistry(rc.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	profile, err := registry.Get(rc.profileName)
	if err != nil {
		return err
	}

	service, err := buildService(cfg, profile)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	window := domain.TimeRange{From: now.AddDate(0, 0, -rc.duration), To: now}

	cycle, err := service.Run(ctx, domain.Principal{User: rc.profileName}, window)
	if err != nil {
		return fmt.Errorf("aggregation cycle failed: %w", err)
	}

	doc, err := service.Report(cycle, domain.ReportType(rc.reportType), cycle.Snapshot.TakenAt)
	if err != nil {
		return err
	}

	payload, err := export.Render(&doc, export.Format(rc.format))
	if err != nil {
		return err
	}

	if rc.outPath == "" {
		_, err = os.Stdout.Write(payload)
		return err
	}

	filename := export.Filename(doc.Type, doc.Window, doc.GeneratedAt, export.Format(rc.format))
	target := fmt.Sprintf("%s/%s", rc.outPath, filename)
	if err := os.WriteFile(target, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	logger.Info().Str("file", target).Msg("report exported")
	return nil
}

func buildService(cfg *config.Config, profile config.Profile) (*console.Service, error) {
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
