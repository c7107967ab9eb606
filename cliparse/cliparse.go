package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/danielhkuo/pollscope/db"
)

type Config struct {
	Port         int
	CatalogPath  string
	DataDir      string
	DatabaseURL  string
	DatabaseType string
	Locale       string
	LogLevel     slog.Level
	Imports      []Import
}

// Import loads a JSON file into the database records of a dataset at startup
type Import struct {
	Dataset string
	Path    string
}

// parseImport reads "dataset=path"
func parseImport(v string) (Import, error) {
	name, path, ok := strings.Cut(v, "=")
	name, path = strings.TrimSpace(name), strings.TrimSpace(path)
	if !ok || name == "" || path == "" {
		return Import{}, fmt.Errorf("invalid import %q, want dataset=file", v)
	}
	return Import{Dataset: name, Path: path}, nil
}

// ParseFlags validates flags and fills the rest from the environment.
// A .env file in the working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var logLevel string

	// Variables already in the environment win over .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	fs := flag.NewFlagSet("pollscope", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.CatalogPath, "catalog", "", "Dataset catalog YAML (default: built in)")
	fs.StringVar(&cfg.DataDir, "data-dir", "", "Directory of dataset JSON files (default: built in)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL for sql sources")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.Locale, "locale", "", "Number formatting locale")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.Func("import", "Import `dataset=file` into the database before serving (repeatable)", func(v string) error {
		imp, err := parseImport(v)
		if err != nil {
			return err
		}
		cfg.Imports = append(cfg.Imports, imp)
		return nil
	})

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
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.CatalogPath == "" {
		cfg.CatalogPath = os.Getenv("CATALOG_PATH")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("DATA_DIR")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = db.TypeSQLite
		}
	}
	if _, err := db.DriverName(cfg.DatabaseType); err != nil {
		return Config{}, err
	}

	// IMPORT is a comma separated list of dataset=file
	if len(cfg.Imports) == 0 {
		if env := os.Getenv("IMPORT"); env != "" {
			for _, v := range strings.Split(env, ",") {
				imp, err := parseImport(v)
				if err != nil {
					return Config{}, err
				}
				cfg.Imports = append(cfg.Imports, imp)
			}
		}
	}
	if len(cfg.Imports) > 0 && cfg.DatabaseURL == "" {
		return Config{}, errors.New("import needs a database URL")
	}

	if cfg.Locale == "" {
		cfg.Locale = os.Getenv("LOCALE")
		if cfg.Locale == "" {
			cfg.Locale = "en-IN"
		}
	}
	if _, err := language.Parse(cfg.Locale); err != nil {
		return Config{}, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	return cfg, nil
}
