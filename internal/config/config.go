package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/leshachaplin/convrelay/internal/upstream"
)

const (
	defaultPort          = 3000
	defaultReadTimeout   = 5 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultAllowedOrigin = "https://rosane-nails-gravatai.onrender.com"
	defaultLogLevel      = "INFO"
)

// Config is the main config for the application. It is loaded once and never mutated.
type Config struct {
	LogLevel string          `yaml:"log_level"`
	Server   ServerConfig    `yaml:"server"`
	CORS     CORSConfig      `yaml:"cors"`
	Upstream upstream.Config `yaml:"upstream"`
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

func (c ServerConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

type CORSConfig struct {
	AllowedOrigin string `yaml:"allowed_origin"`
}

// envFile is the dotenv file Load reads into the process environment.
var envFile = ".env"

// Load reads an optional YAML file, then .env, then environment overrides.
// An empty path or a missing file is not an error; neither are missing credentials.
// A .env file that exists but cannot be read or parsed is.
func Load(path string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("PIXEL_ID"); v != "" {
		cfg.Upstream.PixelID = v
	}
	if v := os.Getenv("ACCESS_TOKEN"); v != "" {
		cfg.Upstream.AccessToken = v
	}
	if v := os.Getenv("ALLOWED_ORIGIN"); v != "" {
		cfg.CORS.AllowedOrigin = v
	}
	if v := os.Getenv("GRAPH_API_VERSION"); v != "" {
		cfg.Upstream.APIVersion = v
	}
	if v := os.Getenv("GRAPH_BASE_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.CORS.AllowedOrigin == "" {
		cfg.CORS.AllowedOrigin = defaultAllowedOrigin
	}
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = upstream.DefaultBaseURL
	}
	if cfg.Upstream.APIVersion == "" {
		cfg.Upstream.APIVersion = upstream.DefaultAPIVersion
	}
}
