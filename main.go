package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pollscope/catalog"
	"github.com/danielhkuo/pollscope/cliparse"
	"github.com/danielhkuo/pollscope/data"
	"github.com/danielhkuo/pollscope/db"
	"github.com/danielhkuo/pollscope/middleware"
	"github.com/danielhkuo/pollscope/router"
	"github.com/danielhkuo/pollscope/store"
	"github.com/danielhkuo/pollscope/viewer"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// Load the dataset catalog
	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		slog.Error("catalog load failed", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}

	var files fs.FS = data.FS
	if cfg.DataDir != "" {
		files = os.DirFS(cfg.DataDir)
	}

	// Connect to the database only when sql sources are configured
	var dbConn *sql.DB
	if cfg.DatabaseURL != "" {
		driver, _ := db.DriverName(cfg.DatabaseType)
		dbConn, err = sql.Open(driver, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Verify connection
		if err := dbConn.Ping(); err != nil {
			slog.Error("database ping failed", "error", err)
			os.Exit(1)
		}

		// Create schema (tables)
		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
	}

	st := store.New(cat, files, dbConn)

	// Fill sql datasets from files given with -import
	for _, imp := range cfg.Imports {
		raw, err := os.ReadFile(imp.Path)
		if err != nil {
			slog.Error("import failed", "dataset", imp.Dataset, "error", err)
			os.Exit(1)
		}
		if _, err := st.Import(context.Background(), imp.Dataset, raw); err != nil {
			slog.Error("import failed", "dataset", imp.Dataset, "path", imp.Path, "error", err)
			os.Exit(1)
		}
	}

	// Read every dataset before serving
	if err := st.Load(context.Background()); err != nil {
		slog.Error("dataset load failed", "error", err)
		os.Exit(1)
	}

	formatter, err := viewer.NewFormatter(cfg.Locale)
	if err != nil {
		slog.Error("formatter setup failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(st, formatter)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "datasets", len(cat.Datasets), "locale", cfg.Locale)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
