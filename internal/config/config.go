package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env      string `yaml:"app_env"`
		Version  string `yaml:"version"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr            string        `yaml:"addr"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		Driver string `yaml:"driver"` // mongo | memory
		Mongo  struct {
			URI           string        `yaml:"uri"`
			Database      string        `yaml:"database"`
			Timeout       time.Duration `yaml:"timeout"`
			EnsureIndexes bool          `yaml:"ensure_indexes"`
		} `yaml:"mongo"`
	} `yaml:"storage"`

	Auth struct {
		JWTSecret string        `yaml:"jwt_secret"`
		Issuer    string        `yaml:"issuer"`
		TokenTTL  time.Duration `yaml:"token_ttl"`
		Provider  string        `yaml:"provider"` // local | firebase
		Firebase  struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"firebase"`
	} `yaml:"auth"`

	Cache struct {
		Kind  string        `yaml:"kind"` // memory | redis
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	Rate struct {
		// Disabled apaga el rate limit del login (activo por defecto).
		Disabled bool `yaml:"disabled"`
		Login    struct {
			Limit  int           `yaml:"limit"`
			Window time.Duration `yaml:"window"`
		} `yaml:"login"`
	} `yaml:"rate"`

	Audit struct {
		Driver string `yaml:"driver"` // log | postgres
		DSN    string `yaml:"dsn"`
	} `yaml:"audit"`

	SMTP struct {
		Host               string `yaml:"host"`
		Port               int    `yaml:"port"`
		Username           string `yaml:"username"`
		Password           string `yaml:"password"`
		From               string `yaml:"from"`
		TLS                string `yaml:"tls"`                  // auto | starttls | ssl | none
		InsecureSkipVerify bool   `yaml:"insecure_skip_verify"` // sólo dev
	} `yaml:"smtp"`

	Alerts struct {
		Recipients []string `yaml:"recipients"`
	} `yaml:"alerts"`

	Reports struct {
		DefaultPageSize int `yaml:"default_page_size"`
		MaxPageSize     int `yaml:"max_page_size"`
	} `yaml:"reports"`
}

// Load lee el YAML (si existe), aplica defaults, pisa con env y valida.
// Un path inexistente no es error: el servicio puede configurarse solo por env.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	c.applyDefaults()
	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "mongo"
	}
	if c.Storage.Mongo.Database == "" {
		c.Storage.Mongo.Database = "alquiler"
	}
	if c.Storage.Mongo.Timeout == 0 {
		c.Storage.Mongo.Timeout = 10 * time.Second
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "alquiler"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = time.Hour
	}
	if c.Auth.Provider == "" {
		c.Auth.Provider = "local"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 2 * time.Minute
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "alquiler"
	}
	if c.Rate.Login.Limit == 0 {
		c.Rate.Login.Limit = 10
	}
	if c.Rate.Login.Window == 0 {
		c.Rate.Login.Window = time.Minute
	}
	if c.Audit.Driver == "" {
		c.Audit.Driver = "log"
	}
	if c.SMTP.TLS == "" {
		c.SMTP.TLS = "auto"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.Reports.DefaultPageSize == 0 {
		c.Reports.DefaultPageSize = 10
	}
	if c.Reports.MaxPageSize == 0 {
		c.Reports.MaxPageSize = 100
	}
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvDur(key string) (time.Duration, bool) {
	if s, ok := getEnvStr(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
			return d, true
		}
	}
	return 0, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno. Los nombres
// MONGODB_URI, DATABASE_NAME, SECRET_KEY y FIREBASE_API_KEY son los del
// despliegue existente.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = v
	}

	// SERVER
	if v, ok := getEnvStr("HTTP_ADDR"); ok {
		c.Server.Addr = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("MONGODB_URI"); ok {
		c.Storage.Mongo.URI = v
	}
	if v, ok := getEnvStr("DATABASE_NAME"); ok {
		c.Storage.Mongo.Database = v
	}
	if v, ok := getEnvDur("MONGODB_TIMEOUT"); ok {
		c.Storage.Mongo.Timeout = v
	}
	if v, ok := getEnvBool("MONGODB_ENSURE_INDEXES"); ok {
		c.Storage.Mongo.EnsureIndexes = v
	}

	// AUTH
	if v, ok := getEnvStr("SECRET_KEY"); ok {
		c.Auth.JWTSecret = v
	}
	if v, ok := getEnvDur("TOKEN_TTL"); ok {
		c.Auth.TokenTTL = v
	}
	if v, ok := getEnvStr("AUTH_PROVIDER"); ok {
		c.Auth.Provider = strings.ToLower(v)
	}
	if v, ok := getEnvStr("FIREBASE_API_KEY"); ok {
		c.Auth.Firebase.APIKey = v
	}

	// CACHE / RATE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvBool("RATE_DISABLED"); ok {
		c.Rate.Disabled = v
	}
	if v, ok := getEnvInt("RATE_LOGIN_LIMIT"); ok {
		c.Rate.Login.Limit = v
	}
	if v, ok := getEnvDur("RATE_LOGIN_WINDOW"); ok {
		c.Rate.Login.Window = v
	}

	// AUDIT
	if v, ok := getEnvStr("AUDIT_DRIVER"); ok {
		c.Audit.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("AUDIT_DSN"); ok {
		c.Audit.DSN = v
		if c.Audit.Driver == "log" {
			c.Audit.Driver = "postgres"
		}
	}

	// SMTP
	if v, ok := getEnvStr("SMTP_HOST"); ok {
		c.SMTP.Host = v
	}
	if v, ok := getEnvInt("SMTP_PORT"); ok {
		c.SMTP.Port = v
	}
	if v, ok := getEnvStr("SMTP_USERNAME"); ok {
		c.SMTP.Username = v
	}
	if v, ok := getEnvStr("SMTP_PASSWORD"); ok {
		c.SMTP.Password = v
	}
	if v, ok := getEnvStr("SMTP_FROM"); ok {
		c.SMTP.From = v
	}
	if v, ok := getEnvStr("SMTP_TLS"); ok {
		c.SMTP.TLS = strings.ToLower(v)
	}
	if v, ok := getEnvCSV("ALERT_RECIPIENTS"); ok {
		c.Alerts.Recipients = v
	}
}

// Validate revisa los valores críticos.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case "mongo":
		if strings.TrimSpace(c.Storage.Mongo.URI) == "" {
			errs = append(errs, errors.New("storage.mongo.uri (MONGODB_URI) is required"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q not supported", c.Storage.Driver))
	}

	if len(c.Auth.JWTSecret) < 16 {
		errs = append(errs, errors.New("auth.jwt_secret (SECRET_KEY) must have at least 16 characters"))
	}
	switch c.Auth.Provider {
	case "local":
	case "firebase":
		if c.Auth.Firebase.APIKey == "" {
			errs = append(errs, errors.New("auth.firebase.api_key (FIREBASE_API_KEY) is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("auth.provider %q not supported", c.Auth.Provider))
	}

	if c.Cache.Kind != "memory" && c.Cache.Kind != "redis" {
		errs = append(errs, fmt.Errorf("cache.kind %q not supported", c.Cache.Kind))
	}
	if c.Cache.Kind == "redis" && c.Cache.Redis.Addr == "" {
		errs = append(errs, errors.New("cache.redis.addr (REDIS_ADDR) is required"))
	}
	switch c.Audit.Driver {
	case "log":
	case "postgres":
		if c.Audit.DSN == "" {
			errs = append(errs, errors.New("audit.dsn (AUDIT_DSN) is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("audit.driver %q not supported", c.Audit.Driver))
	}
	if c.Reports.MaxPageSize < 1 || c.Reports.MaxPageSize > 100 {
		errs = append(errs, errors.New("reports.max_page_size must be between 1 and 100"))
	}
	if c.Reports.DefaultPageSize < 1 || c.Reports.DefaultPageSize > c.Reports.MaxPageSize {
		errs = append(errs, errors.New("reports.default_page_size must be between 1 and max_page_size"))
	}
	return errors.Join(errs...)
}

// IsProd indica entorno productivo.
func (c *Config) IsProd() bool { return strings.EqualFold(c.App.Env, "prod") }
