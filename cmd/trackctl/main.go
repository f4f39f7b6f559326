package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jengzang/tracker-dashboard-go/internal/analysis/sessions"
	"github.com/jengzang/tracker-dashboard-go/internal/analysis/viz"
	"github.com/jengzang/tracker-dashboard-go/internal/app"
	"github.com/jengzang/tracker-dashboard-go/internal/config"
	"github.com/jengzang/tracker-dashboard-go/internal/format"
	"github.com/jengzang/tracker-dashboard-go/internal/models"
	"github.com/jengzang/tracker-dashboard-go/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "trackctl",
		Short:         "Inspect and maintain tracking sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newMigrateCmd(&configPath))
	root.AddCommand(newImportCmd(&configPath))
	root.AddCommand(newSessionsCmd(&configPath))
	root.AddCommand(newPruneCmd(&configPath))
	root.AddCommand(newExportCmd(&configPath))
	return root
}

func loadApp(ctx context.Context, configPath string) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := config.ConfigureLogging(cfg.Log); err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the storage schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			total, err := a.Store.CountLocations(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s), %s records\n",
				a.Config.Storage.Driver, format.Count(int(total)))
			return err
		},
	}
}

func newImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Load location records from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			valid, rejected, err := readLocations(f)
			if err != nil {
				return err
			}

			a, err := loadApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Store.InsertLocations(cmd.Context(), valid); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %s records, rejected %s\n",
				format.Count(len(valid)), format.Count(rejected))
			return err
		},
	}
}

// readLocations decodes a JSON array of rows and keeps the ones that validate
func readLocations(r io.Reader) ([]models.RawLocation, int, error) {
	var rows []models.RawLocation
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, 0, fmt.Errorf("failed to decode locations: %w", err)
	}

	valid := make([]models.RawLocation, 0, len(rows))
	for _, row := range rows {
		if sessions.ValidateRecord(row) != nil {
			continue
		}
		valid = append(valid, row)
	}
	return valid, len(rows) - len(valid), nil
}

func newSessionsCmd(configPath *string) *cobra.Command {
	var minRecords int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List reconstructed tracking sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			opts := service.SessionOptions{}
			if cmd.Flags().Changed("min-records") {
				opts.MinRecords = &minRecords
			}
			list, err := a.Sessions.ListSessions(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderSessions(list.Sessions, time.Local))
			return err
		},
	}
	cmd.Flags().IntVar(&minRecords, "min-records", 0, "minimum pings per session (overrides config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newPruneCmd(configPath *string) *cobra.Command {
	var minRecords int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete every ping of sessions below the size threshold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.Prune.PruneIncomplete(cmd.Context(), minRecords)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"run %s: removed %d sessions (threshold %d), deleted %d of %d records, %d failed\n",
				report.RunID, report.SessionsRemoved, report.MinRecords, report.Deleted, report.Candidates, report.Failed)
			return err
		},
	}
	cmd.Flags().IntVar(&minRecords, "min-records", 0, "minimum pings per session (defaults to config)")
	return cmd
}

func newExportCmd(configPath *string) *cobra.Command {
	var exportFormat, output string

	cmd := &cobra.Command{
		Use:   "export <key>",
		Short: "Export a session trajectory as GeoJSON or KML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportFormat != viz.FormatGeoJSON && exportFormat != viz.FormatKML {
				return fmt.Errorf("unsupported format %q", exportFormat)
			}

			a, err := loadApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := a.Sessions.GetSession(cmd.Context(), args[0], service.SessionOptions{})
			if err != nil {
				return err
			}
			data, err := viz.Export(*summary, exportFormat)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	cmd.Flags().StringVar(&exportFormat, "format", viz.FormatGeoJSON, "geojson or kml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
	return cmd
}
