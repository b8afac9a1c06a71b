package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type Config struct {
	AppName    string
	AppVersion string
	AppEnv     string
	AppPort    string

	DbDriver   string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbParams   string
	// DbDSN overrides every other Db* connection field when set.
	DbDSN string

	TrustedProxies     []string
	CorsAllowedOrigins []string
	JWTSecret          string

	UploadDir         string
	UploadMaxMB       int64
	TranslationFolder string
}

// LoadConfig reads .env, then the optional config file, then the process
// environment, which wins.
func LoadConfig(configFile string) (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		AppName:            v.GetString("APP_NAME"),
		AppVersion:         v.GetString("APP_VERSION"),
		AppEnv:             v.GetString("APP_ENV"),
		AppPort:            v.GetString("APP_PORT"),
		DbDriver:           strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DbHost:             v.GetString("DB_HOST"),
		DbPort:             v.GetString("DB_PORT"),
		DbUser:             v.GetString("DB_USER"),
		DbPassword:         v.GetString("DB_PASSWORD"),
		DbName:             v.GetString("DB_NAME"),
		DbParams:           v.GetString("DB_PARAMS"),
		DbDSN:              v.GetString("DB_DSN"),
		TrustedProxies:     parseList(v.GetString("TRUSTED_PROXIES")),
		CorsAllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		JWTSecret:          v.GetString("JWT_SECRET"),
		UploadDir:          v.GetString("UPLOAD_DIR"),
		UploadMaxMB:        v.GetInt64("UPLOAD_MAX_MB"),
		TranslationFolder:  v.GetString("TRANSLATION_FOLDER"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) validate() error {
	switch c.DbDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DbDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.UploadMaxMB <= 0 {
		return fmt.Errorf("UPLOAD_MAX_MB must be positive, got %d", c.UploadMaxMB)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "taskmanager")
	v.SetDefault("APP_VERSION", "dev")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_HOST", "db")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "taskmanager")
	v.SetDefault("DB_PASSWORD", "taskmanager")
	v.SetDefault("DB_NAME", "taskmanager")
	v.SetDefault("DB_PARAMS", "")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_MB", 20)
	v.SetDefault("TRANSLATION_FOLDER", "")
}

func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}
