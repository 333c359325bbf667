package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Match    MatchConfig    `yaml:"match" mapstructure:"match"`
	Scenario ScenarioConfig `yaml:"scenario" mapstructure:"scenario"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the census and boundary inputs.
type DataConfig struct {
	ExtractPath    string `yaml:"extract_path" mapstructure:"extract_path"`
	WorkbookPath   string `yaml:"workbook_path" mapstructure:"workbook_path"`
	PopulationPath string `yaml:"population_path" mapstructure:"population_path"`
	ShapefilePath  string `yaml:"shapefile_path" mapstructure:"shapefile_path"`
	OverridesPath  string `yaml:"overrides_path" mapstructure:"overrides_path"`
	OutputDir      string `yaml:"output_dir" mapstructure:"output_dir"`
}

// MatchConfig configures the name resolver.
type MatchConfig struct {
	NameField   string `yaml:"name_field" mapstructure:"name_field"`
	ExcludeName string `yaml:"exclude_name" mapstructure:"exclude_name"`
	SkipRows    int    `yaml:"skip_rows" mapstructure:"skip_rows"`
	Level       int    `yaml:"level" mapstructure:"level"`
}

// ScenarioConfig holds default simulation parameters.
type ScenarioConfig struct {
	UnlockFraction float64 `yaml:"unlock_fraction" mapstructure:"unlock_fraction"`
	Alpha          float64 `yaml:"alpha" mapstructure:"alpha"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FRICTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.extract_path", "data/census_dwellings.csv")
	v.SetDefault("data.workbook_path", "data/A05_national.xlsx")
	v.SetDefault("data.population_path", "data/population.csv")
	v.SetDefault("data.shapefile_path", "data/gadm41_GRC_3.shp")
	v.SetDefault("data.overrides_path", "data/overrides.yaml")
	v.SetDefault("data.output_dir", "out")
	v.SetDefault("match.name_field", "NAME_3")
	v.SetDefault("match.exclude_name", "Athos")
	v.SetDefault("match.skip_rows", 6)
	v.SetDefault("match.level", 5)
	v.SetDefault("scenario.unlock_fraction", 0.2)
	v.SetDefault("scenario.alpha", 1.4)
	v.SetDefault("store.dsn", "friction.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for the given command mode.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Match.Level <= 0 {
		problems = append(problems, "match.level must be > 0")
	}
	if c.Match.SkipRows < 0 {
		problems = append(problems, "match.skip_rows must be >= 0")
	}
	if c.Scenario.UnlockFraction < 0 || c.Scenario.UnlockFraction > 1 {
		problems = append(problems, "scenario.unlock_fraction must be in [0, 1]")
	}
	if c.Scenario.Alpha <= 0 {
		problems = append(problems, "scenario.alpha must be > 0")
	}

	switch mode {
	case "pipeline":
		if c.Data.ExtractPath == "" {
			problems = append(problems, "data.extract_path is required")
		}
		if c.Data.ShapefilePath == "" {
			problems = append(problems, "data.shapefile_path is required")
		}
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Store.DSN == "" {
			problems = append(problems, "store.dsn is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
