package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "landlord.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "LANDLORD_PORT")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "LANDLORD_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "LANDLORD_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "LANDLORD_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "LANDLORD_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "LANDLORD_PG_HEALTH_CHECK")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.Discord.WebhookURL, "DISCORD_WEBHOOK_URL")
	setString(&cfg.Discord.BotToken, "DISCORD_BOT_TOKEN")
	setString(&cfg.Discord.GuildID, "DISCORD_GUILD_ID")
	setString(&cfg.Logging.Level, "LANDLORD_LOG_LEVEL")
	setString(&cfg.Logging.Service, "LANDLORD_LOG_SERVICE")
	setInt64(&cfg.Cache.MaxSizeMB, "LANDLORD_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.MessageTTL, "LANDLORD_CACHE_MESSAGE_TTL")
	setBool(&cfg.Telemetry.Enabled, "LANDLORD_TELEMETRY_ENABLED")
	setString(&cfg.Telemetry.Endpoint, "LANDLORD_OTLP_ENDPOINT")
	setDuration(&cfg.Telemetry.Interval, "LANDLORD_OTLP_INTERVAL")
	setString(&cfg.Economy.LandlordID, "LANDLORD_ID")
	setString(&cfg.Economy.LandlordName, "LANDLORD_NAME")
	setInt64(&cfg.Economy.Wage, "LANDLORD_WAGE")
	setInt64(&cfg.Economy.WageRange, "LANDLORD_WAGE_RANGE")
	setInt(&cfg.Economy.MaxGamble, "LANDLORD_MAX_GAMBLE")
	setInt(&cfg.Economy.MaxSlots, "LANDLORD_MAX_SLOTS")
	setInt64(&cfg.Economy.CostPerFt, "LANDLORD_COST_PER_FT")
	setFloat64(&cfg.Economy.DefaultFt, "LANDLORD_DEFAULT_FT")
	setDuration(&cfg.Economy.ResetInterval, "LANDLORD_RESET_INTERVAL")
}

// validate checks that required fields are set and the economy constants
// are internally consistent.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.NATS.URL == "" {
		return errors.New("nats.url is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Economy.MaxGamble < 1 {
		return errors.New("economy.max_gamble must be >= 1")
	}
	if cfg.Economy.MaxSlots < 1 {
		return errors.New("economy.max_slots must be >= 1")
	}
	if cfg.Economy.CostPerFt < 1 {
		return errors.New("economy.cost_per_ft must be >= 1")
	}
	if cfg.Economy.ResetInterval <= 0 {
		return errors.New("economy.reset_interval must be positive")
	}
	if cfg.Economy.Wage < 1 {
		return errors.New("economy.wage must be >= 1")
	}
	if cfg.Economy.WinMultiplier < 1 || cfg.Economy.JackpotMultiplier < 1 {
		return errors.New("economy.win_multiplier and economy.jackpot_multiplier must be >= 1")
	}
	if len(cfg.Economy.Jobs) == 0 {
		return errors.New("economy.jobs needs at least 1 entry")
	}
	if len(cfg.Economy.SlotSymbols) < 2 {
		return errors.New("economy.slot_symbols needs at least 2 symbols")
	}
	if len(cfg.Economy.Heads) == 0 || len(cfg.Economy.Tails) == 0 {
		return errors.New("economy.heads and economy.tails must both be non-empty")
	}
	for _, h := range cfg.Economy.Heads {
		for _, tl := range cfg.Economy.Tails {
			if h == tl {
				return fmt.Errorf("guess token %q appears in both heads and tails", h)
			}
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
