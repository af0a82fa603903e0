package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the configuration of the sqlalias command
type Config struct {
	Strategy    string `mapstructure:"strategy"`
	DSN         string `mapstructure:"dsn"`
	Engine      string `mapstructure:"engine"`
	AliasLength int    `mapstructure:"alias_length"`
	Format      string `mapstructure:"format"`
	LogLevel    string `mapstructure:"log_level"`
	Execute     bool   `mapstructure:"execute"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("strategy", "default")
	v.SetDefault("dsn", "")
	v.SetDefault("engine", "sqlite")
	v.SetDefault("alias_length", 0)
	v.SetDefault("format", "table")
	v.SetDefault("log_level", "warn")
	v.SetDefault("execute", false)
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("sqlalias", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: sqlalias [flags] plan.yaml\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.String("config", "", "Path to config file")
	fs.String("strategy", "", "Alias strategy (default, consistent, table_name)")
	fs.String("dsn", "", "Database DSN, used to detect the engine (mysql, postgresql:// or file:)")
	fs.String("engine", "", "Database engine when no DSN is given (mysql, postgres, sqlite)")
	fs.Int("alias_length", 0, "Override the maximum alias length of the engine")
	fs.String("format", "", "Output format (table, sql, json)")
	fs.String("log_level", "", "Log level (debug, info, warn, error)")
	fs.Bool("execute", false, "Run the generated query against an in-memory SQLite database built from the plan schema")
	return fs
}

// loadConfig loads configuration with the following precedence: flags, environment
// variables (SQLALIAS_*), config file, defaults. It returns the remaining arguments.
func loadConfig(args []string) (*Config, []string, error) {
	v := viper.New()
	setDefaults(v)

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfgPath, _ := fs.GetString("config")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.SetConfigName("sqlalias")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.sqlalias")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if cfgPath != "" {
			return nil, nil, fmt.Errorf("failed to read config file %q: %w", cfgPath, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SQLALIAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// only flags explicitly set override the other sources
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "config":
			return
		case "alias_length":
			val, _ := fs.GetInt(f.Name)
			v.Set(f.Name, val)
		case "execute":
			val, _ := fs.GetBool(f.Name)
			v.Set(f.Name, val)
		default:
			v.Set(f.Name, f.Value.String())
		}
	})

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Format = strings.ToLower(cfg.Format)
	switch cfg.Format {
	case "table", "sql", "json":
	default:
		return nil, nil, fmt.Errorf("invalid output format %q", cfg.Format)
	}
	return &cfg, fs.Args(), nil
}

// Level returns the slog level matching LogLevel, warn if unknown
func (cfg *Config) Level() slog.Level {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func (cfg *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
}
