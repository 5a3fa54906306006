package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jengzang/latlong-terrain/internal/database"
	"github.com/jengzang/latlong-terrain/internal/repository"
	"github.com/jengzang/latlong-terrain/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print road points from an existing database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		exists, err := database.TableExists(ctx, db, database.TableLatLong)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%s has no %s table, run the pipeline first", cfg.DBPath, database.TableLatLong)
		}

		report := service.NewReportService(repository.NewLatLongRepository(db), cfg.ReportInclude, cfg.ReportExclude)
		points, err := report.RoadPoints(ctx)
		if err != nil {
			return err
		}
		return report.Print(cmd.OutOrStdout(), points)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
