package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	CORSOrigin   string
	IPHashSalt   string
}

type ClientConfig struct {
	BackendURL     string
	RequestTimeout time.Duration
	MinQuestionID  int64
	MaxQuestionID  int64
	LogFile        string
}

// loadDotEnv pulls a .env file into the environment if one exists.
// Variables already set are not overwritten.
func loadDotEnv() {
	_ = godotenv.Load()
}

// ParseFlags validates server flags and sets port number
func ParseFlags(args []string) (Config, error) {
	loadDotEnv()

	var cfg Config

	fs := flag.NewFlagSet("versus-server", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", "", "Allowed CORS origin (default: *)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (want sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "versus.db"
	}

	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = os.Getenv("CORS_ORIGIN")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}

// ParseClientFlags reads the terminal client's settings.
func ParseClientFlags(args []string) (ClientConfig, error) {
	loadDotEnv()

	var cfg ClientConfig

	fs := flag.NewFlagSet("versus", flag.ContinueOnError)
	fs.StringVar(&cfg.BackendURL, "u", "", "Backend base URL")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Per-request timeout")
	fs.Int64Var(&cfg.MinQuestionID, "min-id", 0, "Smallest question id to draw")
	fs.Int64Var(&cfg.MaxQuestionID, "max-id", 0, "Largest question id to draw")
	fs.StringVar(&cfg.LogFile, "log", "", "Diagnostic log file")

	if err := fs.Parse(args); err != nil {
		return ClientConfig{}, err
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = os.Getenv("BACKEND_URL")
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://localhost:3318"
	}

	if cfg.RequestTimeout == 0 {
		if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return ClientConfig{}, errors.New("invalid REQUEST_TIMEOUT env variable")
			}
			cfg.RequestTimeout = d
		} else {
			cfg.RequestTimeout = 10 * time.Second
		}
	}

	var err error
	if cfg.MinQuestionID == 0 {
		if cfg.MinQuestionID, err = envInt64("MIN_QUESTION_ID", 1); err != nil {
			return ClientConfig{}, err
		}
	}
	if cfg.MaxQuestionID == 0 {
		if cfg.MaxQuestionID, err = envInt64("MAX_QUESTION_ID", 10); err != nil {
			return ClientConfig{}, err
		}
	}
	if cfg.MinQuestionID < 1 || cfg.MaxQuestionID < cfg.MinQuestionID {
		return ClientConfig{}, fmt.Errorf("invalid question id range [%d, %d]", cfg.MinQuestionID, cfg.MaxQuestionID)
	}

	if cfg.LogFile == "" {
		cfg.LogFile = os.Getenv("LOG_FILE")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "versus.log"
	}

	return cfg, nil
}

func envInt64(key string, def int64) (int64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}
