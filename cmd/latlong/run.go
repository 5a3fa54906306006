package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jengzang/latlong-terrain/internal/geodesic"
	"github.com/jengzang/latlong-terrain/internal/service"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reset the table, correct the path, classify terrain and print the road report",
	RunE:  runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()
	flags.String("plot", "", "GeoJSON output for the raw path, empty string disables (PLOT_PATH)")
	bindFlags(flags, map[string]string{"PLOT_PATH": "plot"})
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	cfg, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = service.NewPipelineService(db, cfg, geodesic.NewWGS84(), cmd.OutOrStdout()).Run(ctx)
	return err
}
