package configs

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{"config.yaml", "configs/config.yaml"}

// envMappings maps flat environment names onto koanf paths.
var envMappings = map[string]string{
	"host":              "server.host",
	"port":              "server.port",
	"read_timeout":      "server.read_timeout",
	"write_timeout":     "server.write_timeout",
	"idle_timeout":      "server.idle_timeout",
	"request_timeout":   "server.request_timeout",
	"cors_origins":      "server.cors_origins",
	"rate_limit_max":    "server.rate_limit_max",
	"rate_limit_window": "server.rate_limit_window",

	"db_host":                 "database.host",
	"db_port":                 "database.port",
	"db_user":                 "database.user",
	"db_password":             "database.password",
	"db_name":                 "database.name",
	"db_sslmode":              "database.sslmode",
	"db_app_name":             "database.app_name",
	"db_statement_timeout_ms": "database.statement_timeout_ms",
	"db_max_open_conns":       "database.max_open_conns",
	"db_max_idle_conns":       "database.max_idle_conns",
	"db_conn_max_idle_time":   "database.conn_max_idle_time",
	"db_conn_max_lifetime":    "database.conn_max_lifetime",
	"db_slow_threshold":       "database.slow_threshold",

	"jwt_secret": "auth.jwt_secret",
	"jwt_ttl":    "auth.token_ttl",

	"log_level":  "log.level",
	"log_format": "log.format",

	"fine_per_day":             "library.fine_per_day",
	"default_loan_period_days": "library.default_loan_period_days",
	"max_books_per_reader":     "library.max_books_per_reader",
	"enforce_max_books":        "library.enforce_max_books",
	"reminder_days_before":     "library.reminder_days_before",
	"library_timezone":         "library.timezone",
	"recommend_limit":          "library.recommend_limit",
	"recommend_top_genres":     "library.recommend_top_genres",
	"reminder_scan_interval":   "library.reminder_scan_interval",
}

// envTransformFunc returns "" for unmapped variables so they are skipped.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}

// Load layers struct defaults, an optional YAML file and the environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks struct tags plus cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) exceeds max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	return nil
}
