package main

import (
	"database/sql"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jengzang/latlong-terrain/internal/config"
	"github.com/jengzang/latlong-terrain/internal/database"
)

// v holds flags, environment and defaults for every command
var v = config.New()

// rootCmd runs the pipeline when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "latlong",
	Short: "Correct a GPS path and label its points by terrain",
	Long: `Reads an ordered latitude/longitude path, replaces jumps that exceed the running
baseline distance, stores every point in the lat_long table with its distance and
cumulative distance, then labels each stored point from a terrain milestone table.

Every flag may also be given as an environment variable (DB_PATH, POINTS_CSV, ...).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPipeline,
}

func init() {
	pFlags := rootCmd.PersistentFlags()
	pFlags.String("db", "", "SQLite database path (DB_PATH)")
	pFlags.String("points", "", "CSV of latitude,longitude points (POINTS_CSV)")
	pFlags.String("terrain", "", "CSV of terrain,distance (in km) milestones (TERRAIN_CSV)")

	bindFlags(pFlags, map[string]string{
		"DB_PATH":     "db",
		"POINTS_CSV":  "points",
		"TERRAIN_CSV": "terrain",
	})
}

// bindFlags binds each viper key to its flag; an unset flag falls back to env or default
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			log.Fatalf("[latlong] failed to bind --%s: %v", name, err)
		}
	}
}

// openStore loads the config and opens its database; the caller closes the handle
func openStore() (*config.Config, *sql.DB, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
