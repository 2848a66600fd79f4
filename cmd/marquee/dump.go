package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/marquee/internal/app"
	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/report"
)

// errUnknownTheater is returned when --theater or --area matches nothing.
var errUnknownTheater = errors.New("no configured theater matches")

// NewDumpCmd creates the dump command.
func NewDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Collect schedules once and print them",
		Long: `Collect the schedules of the configured theaters once and print them to
stdout without starting the UI. The report is printed even when every
theater fails, but the command then exits non-zero.

Formats:
  text       one table per theater (default)
  json       every theater with its error and movies
  markdown   a summary table followed by one section per theater`,
		Example: `  marquee dump
  marquee dump --format json --theater シネマシティ
  marquee dump -f md --area 立川 > showtimes.md`,
		Args: cobra.NoArgs,
		RunE: runDumpCmd,
	}

	cmd.Flags().StringP("format", "f", string(report.FormatText),
		"output format ("+strings.Join(report.Formats(), ", ")+")")
	cmd.Flags().StringSliceP("theater", "t", nil, "only collect these theaters (repeatable)")
	cmd.Flags().StringSliceP("area", "a", nil, "only collect theaters in these areas (repeatable)")

	return cmd
}

func runDumpCmd(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	theaters, err := cmd.Flags().GetStringSlice("theater")
	if err != nil {
		return fmt.Errorf("failed to get theater flag: %w", err)
	}
	areas, err := cmd.Flags().GetStringSlice("area")
	if err != nil {
		return fmt.Errorf("failed to get area flag: %w", err)
	}

	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}
	writer, err := report.NewWriter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err = selectTheaters(cfg, theaters, areas)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cmd.ErrOrStderr(), verbose)
	listings := app.Collect(cmd.Context(), app.NewClient(cfg), cfg, logger)
	if err := cmd.Context().Err(); err != nil {
		return err
	}

	if err := writer.Write(listings); err != nil {
		return fmt.Errorf("write %s report: %w", format, err)
	}

	// The report still lists each failure; the exit status reports it too.
	if n := len(listings.Theaters); n > 0 && len(listings.Failed()) == n {
		return fmt.Errorf("%w (%d theaters)", app.ErrAllTheatersFailed, n)
	}
	return nil
}

// selectTheaters narrows cfg to the named theaters and areas. With neither
// filter set every theater is kept.
func selectTheaters(cfg config.Config, names, areas []string) (config.Config, error) {
	if len(names) == 0 && len(areas) == 0 {
		return cfg, nil
	}

	selected := make([]config.Theater, 0, len(cfg.Theaters))
	for _, th := range cfg.Theaters {
		if slices.Contains(names, th.Name) || slices.Contains(areas, th.Area) {
			selected = append(selected, th)
		}
	}
	if len(selected) == 0 {
		return cfg, fmt.Errorf("%w: theater=%s area=%s",
			errUnknownTheater, strings.Join(names, ","), strings.Join(areas, ","))
	}

	cfg.Theaters = selected
	return cfg, nil
}
