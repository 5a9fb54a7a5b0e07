// file: internals/configs/config.go
package configs

import (
	"fmt"
	"net/url"
	"time"

	"library_backend/internals/helpers/dbtime"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Log      LogConfig      `koanf:"log"`
	Library  LibraryConfig  `koanf:"library"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"gt=0"`
	CORSOrigins     string        `koanf:"cors_origins"`
	RateLimitMax    int           `koanf:"rate_limit_max" validate:"gte=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

func (s ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

type DatabaseConfig struct {
	Host               string        `koanf:"host"`
	Port               int           `koanf:"port"`
	User               string        `koanf:"user"`
	Password           string        `koanf:"password"`
	Name               string        `koanf:"name"`
	SSLMode            string        `koanf:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	AppName            string        `koanf:"app_name"`
	StatementTimeoutMS int           `koanf:"statement_timeout_ms" validate:"gte=0"`
	MaxOpenConns       int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns       int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxIdleTime    time.Duration `koanf:"conn_max_idle_time"`
	ConnMaxLifetime    time.Duration `koanf:"conn_max_lifetime"`
	SlowThreshold      time.Duration `koanf:"slow_threshold"`
}

// DSN builds a pgx URL with statement_timeout applied per connection.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	if d.AppName != "" {
		q.Set("application_name", d.AppName)
	}
	if d.StatementTimeoutMS > 0 {
		q.Set("options", fmt.Sprintf("-c statement_timeout=%d", d.StatementTimeoutMS))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// LibraryConfig holds the lending policy.
type LibraryConfig struct {
	FinePerDay            int64         `koanf:"fine_per_day" validate:"gte=0"`
	DefaultLoanPeriodDays int           `koanf:"default_loan_period_days" validate:"gte=1"`
	MaxBooksPerReader     int           `koanf:"max_books_per_reader" validate:"gte=1"`
	EnforceMaxBooks       bool          `koanf:"enforce_max_books"`
	ReminderDaysBefore    int           `koanf:"reminder_days_before" validate:"gte=0"`
	Timezone              string        `koanf:"timezone" validate:"required"`
	RecommendLimit        int           `koanf:"recommend_limit" validate:"gte=1"`
	RecommendTopGenres    int           `koanf:"recommend_top_genres" validate:"gte=1"`
	ReminderScanInterval  time.Duration `koanf:"reminder_scan_interval" validate:"gte=0"`
}

// Location resolves Timezone, UTC when unknown.
func (l LibraryConfig) Location() *time.Location {
	return dbtime.LoadLocation(l.Timezone)
}

func DefaultLibraryConfig() LibraryConfig {
	return LibraryConfig{
		FinePerDay:            10,
		DefaultLoanPeriodDays: 14,
		MaxBooksPerReader:     5,
		EnforceMaxBooks:       false,
		ReminderDaysBefore:    3,
		Timezone:              "UTC",
		RecommendLimit:        8,
		RecommendTopGenres:    5,
		ReminderScanInterval:  time.Hour,
	}
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     90 * time.Second,
			RequestTimeout:  5 * time.Second,
			CORSOrigins:     "http://localhost:5173",
			RateLimitMax:    100,
			RateLimitWindow: time.Minute,
		},
		Database: DatabaseConfig{
			Host:               "localhost",
			Port:               5432,
			User:               "postgres",
			Name:               "library",
			SSLMode:            "disable",
			AppName:            "library_backend",
			StatementTimeoutMS: 3000,
			MaxOpenConns:       20,
			MaxIdleConns:       10,
			ConnMaxIdleTime:    60 * time.Second,
			ConnMaxLifetime:    10 * time.Minute,
			SlowThreshold:      200 * time.Millisecond,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Library: DefaultLibraryConfig(),
	}
}
