package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"padel-projection/internal/audit"
	"padel-projection/internal/auth"
	"padel-projection/internal/observability/metrics"
	"padel-projection/internal/projection/application"
	"padel-projection/internal/projection/infrastructure/reference"
	projectionhttp "padel-projection/internal/projection/interfaces"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)

		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}
	}

	metrics.Init(db, logger)

	store, err := loadReference(cfg.ReferencePath, logger)
	if err != nil {
		logger.Fatalf("reference data error: %v", err)
	}

	var auditLogger audit.Logger
	if db != nil {
		auditRepo := audit.NewRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := auditRepo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			logger.Fatalf("audit schema error: %v", err)
		}
		auditLogger = auditRepo
	} else {
		auditLogger = audit.NewLogLogger(logger)
	}

	service, err := application.NewProjectionService(store, logger, application.SystemClock{})
	if err != nil {
		logger.Fatalf("projection service error: %v", err)
	}
	referenceHandler, err := projectionhttp.NewReferenceHandler(store, cfg.Currency)
	if err != nil {
		logger.Fatalf("reference handler error: %v", err)
	}
	projectionHandler, err := projectionhttp.NewProjectionHandler(service, auditLogger, logger, cfg.Currency)
	if err != nil {
		logger.Fatalf("projection handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), cfg.JWTAudience, policy)
	if cfg.JWTSecret == "" {
		logger.Printf("auth: AUTH_JWT_SECRET not set, api is unauthenticated")
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/reference", referenceHandler)
	mux.Handle("/api/v1/projections", projectionHandler)
	mux.Handle("/api/v1/projections/", projectionHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           loggingMiddleware(authMiddleware.Wrap(mux), logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL       string
	DBMaxOpenConns    int
	HTTPAddr          string
	ReadHeaderTimeout time.Duration
	ReferencePath     string
	Currency          string
	JWTSecret         string
	JWTAudience       string
}

func loadConfig() config {
	return config{
		DatabaseURL:       getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		DBMaxOpenConns:    getenvIntDefault("DB_MAX_OPEN_CONNS", 5),
		HTTPAddr:          getenvDefault("HTTP_ADDR", ":8080"),
		ReadHeaderTimeout: getenvDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReferencePath:     getenvDefault("REFERENCE_DATA_PATH", ""),
		Currency:          getenvDefault("CURRENCY", "IDR"),
		JWTSecret:         getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		JWTAudience:       getenvDefault("AUTH_JWT_AUDIENCE", ""),
	}
}

func loadReference(path string, logger *log.Logger) (*reference.Store, error) {
	source := "builtin"
	if path != "" {
		source = "file"
	}
	store, err := reference.Load(path)
	if err != nil {
		metrics.IncReferenceLoad(source, metrics.ResultError)
		return nil, err
	}
	metrics.IncReferenceLoad(source, metrics.ResultSuccess)
	logger.Printf("reference: loaded %s tables, cash opex %.0f, capex %.0f", source, store.CashOpexMonthly(), store.TotalCapex())
	return store, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		elapsed := time.Since(start)
		metrics.ObserveHTTP(r.Method, resp.status, elapsed)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, elapsed)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
