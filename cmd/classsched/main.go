package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/marcusball/class-scheduler/internal/catalog"
	"github.com/marcusball/class-scheduler/internal/config"
	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/render"
	"github.com/marcusball/class-scheduler/internal/scheduler"
	"github.com/marcusball/class-scheduler/internal/slot"
	"github.com/marcusball/class-scheduler/internal/utils"
	"github.com/spf13/cobra"
)

var (
	flagLimit   int
	flagWorkers int
	flagJSON    bool
	flagXLSX    string
)

func main() {
	// stdout carries the schedules, logs go to stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadSchedulerConfig()
	if err != nil {
		logger.Error("cannot load configuration", "error", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:          "classsched",
		Short:        "Enumerate conflict-free weekly class schedules",
		SilenceUsage: true,
		Long: `classsched reads a catalog of classes, each offered in one or more sections
that meet at fixed slots such as "MWF3" or "TR5-6", and prints every way to take
one section of every class without two of them meeting at the same time.`,
	}

	rootCmd.AddCommand(generateCmd(cfg))
	rootCmd.AddCommand(checkCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		logger.Error("classsched failed", "error", err)
		os.Exit(1)
	}
}

func catalogPath(cfg *config.Scheduler, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.CatalogPath
}

func loadCatalog(path string) (*domain.ScheduleOptions, error) {
	options, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}

	// a repeated row is odd but harmless when printing
	if err := utils.ValidateDisplayPeriods(options); err != nil {
		slog.Warn("catalog periods", "path", path, "error", err)
	}

	return options, nil
}

func generateCmd(cfg *config.Scheduler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [catalog]",
		Short: "Print every conflict-free schedule of a catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := catalogPath(cfg, args)
			options, err := loadCatalog(path)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return generate(ctx, cmd.OutOrStdout(), options, &scheduler.Parameters{
				MaxResults: flagLimit,
				Workers:    flagWorkers,
			})
		},
	}

	cmd.Flags().IntVar(&flagLimit, "limit", cfg.MaxResults, "Stop after this many schedules (0 for all)")
	cmd.Flags().IntVar(&flagWorkers, "workers", cfg.Workers, "Search the first class's sections in parallel")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	cmd.Flags().StringVar(&flagXLSX, "xlsx", "", "Also write one worksheet per schedule to this file")

	return cmd
}

func generate(ctx context.Context, out io.Writer, options *domain.ScheduleOptions, params *scheduler.Parameters) error {
	s, err := scheduler.New(params, options)
	if err != nil {
		return err
	}

	var sinks []scheduler.Sink

	collector := &scheduler.Collector{}
	if flagJSON {
		sinks = append(sinks, collector)
	} else {
		sinks = append(sinks, render.NewTable(out))
	}

	var wb *render.Workbook
	if flagXLSX != "" {
		wb = render.NewWorkbook()
		defer wb.Close()
		sinks = append(sinks, wb)
	}

	res, err := s.Schedule(ctx, scheduler.Tee(sinks...))
	if err != nil {
		return err
	}

	slog.Info("search finished", "schedules", res.Count, "truncated", res.Truncated)

	if wb != nil {
		if err := wb.SaveAs(flagXLSX); err != nil {
			return fmt.Errorf("write %s: %w", flagXLSX, err)
		}
	}

	if flagJSON {
		schedules := collector.Schedules()
		if schedules == nil {
			schedules = make([]*domain.Schedule, 0)
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"schedules": schedules,
			"count":     res.Count,
			"truncated": res.Truncated,
		})
	}

	if res.Count == 0 {
		_, err := fmt.Fprintln(out, "No conflict-free schedule found.")
		return err
	}

	return nil
}

func checkCmd(cfg *config.Scheduler) *cobra.Command {
	return &cobra.Command{
		Use:   "check [catalog]",
		Short: "Validate a catalog and show the slots each section expands to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := loadCatalog(catalogPath(cfg, args))
			if err != nil {
				return err
			}
			return check(cmd.OutOrStdout(), options)
		},
	}
}

func check(out io.Writer, options *domain.ScheduleOptions) error {
	for _, class := range options.Classes {
		if _, err := fmt.Fprintf(out, "%s\n", class.Name); err != nil {
			return err
		}

		if len(class.Sections) == 0 {
			if _, err := fmt.Fprintln(out, "  no sections, nothing can be scheduled"); err != nil {
				return err
			}
		}

		for i, section := range class.Sections {
			periods, err := slot.ExpandSection(section)
			if err != nil {
				return err
			}

			slots := make([]string, len(periods))
			for j, p := range periods {
				slots[j] = p.String()
			}

			if _, err := fmt.Fprintf(out, "  %d. %s -> %s\n", i+1, strings.Join(section, ", "), strings.Join(slots, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}
