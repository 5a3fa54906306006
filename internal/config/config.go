package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	DBPath        string `mapstructure:"DB_PATH"`
	PointsCSV     string `mapstructure:"POINTS_CSV"`
	TerrainCSV    string `mapstructure:"TERRAIN_CSV"`
	PlotPath      string `mapstructure:"PLOT_PATH"` // empty disables the GeoJSON plot
	ReportInclude string `mapstructure:"REPORT_INCLUDE"`
	ReportExclude string `mapstructure:"REPORT_EXCLUDE"`

	Port      string `mapstructure:"PORT"`
	JWTSecret string `mapstructure:"JWT_SECRET"` // empty disables auth on the API
	RateLimit int    `mapstructure:"RATE_LIMIT"` // requests per minute per client
}

// Defaults
var defaults = map[string]interface{}{
	"DB_PATH":        "./data/latlong.db",
	"POINTS_CSV":     "latitude_longitude_details.csv",
	"TERRAIN_CSV":    "terrain_classification_test.csv",
	"PLOT_PATH":      "./data/points.geojson",
	"REPORT_INCLUDE": "%road%",
	"REPORT_EXCLUDE": "%civil station%",
	"PORT":           ":8080",
	"JWT_SECRET":     "",
	"RATE_LIMIT":     120,
}

// New returns a viper instance reading the environment with every default set
func New() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

// Load 加载配置
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("DB_PATH must not be empty")
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("RATE_LIMIT must not be negative, got %d", cfg.RateLimit)
	}
	return &cfg, nil
}
