package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/example/vocabreview/internal/database"
	"github.com/example/vocabreview/internal/scheduler"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// DatabaseConfig selects the record store
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // sqlite3 or postgres
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// ReminderConfig controls the due-items reminder job
type ReminderConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	Threshold int           `mapstructure:"threshold"`
	StartHour int           `mapstructure:"start_hour"`
	EndHour   int           `mapstructure:"end_hour"`
}

// TelegramConfig holds the bot token; empty means reminders are only logged
type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

// Load reads configuration from .env, an optional config file and environment variables.
// An empty path searches ./config.yaml and ./config/config.yaml.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")
	// kept for compatibility with the bot's old variable names
	_ = v.BindEnv("reminder.start_hour", "REMINDER_START_HOUR", "NOTIFICATION_START_HOUR")
	_ = v.BindEnv("reminder.end_hour", "REMINDER_END_HOUR", "NOTIFICATION_END_HOUR")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", database.DriverSQLite)
	v.SetDefault("database.dsn", "data/vocabreview.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("reminder.interval", scheduler.DefaultCheckInterval)
	v.SetDefault("reminder.threshold", 3)
	v.SetDefault("reminder.start_hour", scheduler.DefaultNotificationStartHour)
	v.SetDefault("reminder.end_hour", scheduler.DefaultNotificationEndHour)
	v.SetDefault("telegram.token", "")
}

// Validate checks values that would otherwise fail much later
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverSQLite, database.DriverPostgres:
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if c.Reminder.StartHour < 0 || c.Reminder.StartHour > 23 || c.Reminder.EndHour < 0 || c.Reminder.EndHour > 23 {
		return fmt.Errorf("reminder hours must be within 0-23, got %d-%d", c.Reminder.StartHour, c.Reminder.EndHour)
	}
	if c.Reminder.Threshold < 1 {
		return fmt.Errorf("reminder.threshold must be positive, got %d", c.Reminder.Threshold)
	}
	return nil
}

// DatabaseConnection converts the database section into connection settings
func (c *Config) DatabaseConnection() database.Config {
	return database.Config{
		Driver:       c.Database.Driver,
		DSN:          c.Database.DSN,
		MaxOpenConns: c.Database.MaxOpenConns,
	}
}

// SchedulerConfig converts the reminder section into scheduler settings
func (c *Config) SchedulerConfig() scheduler.Config {
	return scheduler.Config{
		Interval:  c.Reminder.Interval,
		Threshold: c.Reminder.Threshold,
		StartHour: c.Reminder.StartHour,
		EndHour:   c.Reminder.EndHour,
		Location:  time.UTC,
	}
}
