package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"ENV"`
	AppName        string `mapstructure:"APP_NAME"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogFormat      string `mapstructure:"LOG_FORMAT"`
	DBDSN          string `mapstructure:"DB_DSN"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	ExpansionCron  string `mapstructure:"EXPANSION_CRON"`
	SwaggerEnabled bool   `mapstructure:"SWAGGER_ENABLED"`
}

var keys = []string{
	"PORT",
	"ENV",
	"APP_NAME",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"DB_DSN",
	"DB_MAX_OPEN_CONNS",
	"JWT_SECRET",
	"EXPANSION_CRON",
	"SWAGGER_ENABLED",
}

// Load lee la config desde env (y .env si existe).
// Sin DB_DSN el servicio arranca con repos in-memory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "patient-adherence")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("EXPANSION_CRON", "5 0 * * *")
	v.SetDefault("SWAGGER_ENABLED", true)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.DBDSN = strings.TrimSpace(cfg.DBDSN)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate revisa combinaciones que no deben llegar a arrancar.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DBMaxOpenConns)
	}
	if _, err := cron.ParseStandard(c.ExpansionCron); err != nil {
		return fmt.Errorf("EXPANSION_CRON %q is not a valid cron spec: %w", c.ExpansionCron, err)
	}
	// En prod no se acepta el header de debug: hace falta un verificador real.
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}
