package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yumyai/seqtool/internal/config"
	"github.com/yumyai/seqtool/logger"
	mydb "github.com/yumyai/seqtool/pkg/db"
	"github.com/yumyai/seqtool/pkg/handler"
	"github.com/yumyai/seqtool/pkg/handler/request"
	"github.com/yumyai/seqtool/pkg/middle"
	"github.com/yumyai/seqtool/pkg/model"
	"github.com/yumyai/seqtool/pkg/render"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const VERSION = "0.1.0"

func main() {

	cfg, err := setup()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // Make sure that the buffered is flushed.

	handler.Version = VERSION
	logger.Info("Start:", zap.String("Version", VERSION))

	tables := model.NewCodeTableRegistry()
	if cfg.CodeTableDB != "" {
		if err := loadCodeTables(cfg.CodeTableDB, tables); err != nil {
			logger.Fatal("Loading code tables failed", zap.String("DB_LOC", cfg.CodeTableDB), zap.Error(err))
		}
	}

	actx := handler.NewAnalyzerContext(
		tables,
		render.ChartOptions{Width: cfg.ChartWidth, Height: cfg.ChartHeight},
		cfg.MaxSequence,
	)

	httpLog := logger.Named("http")
	root := middle.Chain(NewRouter(actx),
		middle.RequestIDMiddleware(httpLog),
		middle.LoggingMiddleware(httpLog, 1*time.Second),
		middle.CORSMiddleware(cfg.AllowOrigins),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Server starting on", zap.String("addr", cfg.Addr))
	httpErr := srv.ListenAndServe()
	if httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
		logger.Error("Error starting server:", zap.String("error message", httpErr.Error()))
	}
	logger.Info("Server stopped")
}

// setup loads .env, starts the logger and only then reads the rest of the
// configuration, so invalid values get reported.
func setup(opts ...zap.Option) (*config.Config, error) {
	dotenvErr := config.LoadDotenv()

	level, levelErr := logger.ParseLevel(config.LogLevelFromEnv())
	if err := logger.InitLogger(level, opts...); err != nil {
		return nil, err
	}

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}
	if levelErr != nil {
		logger.Warn("Falling back to info level", zap.Error(levelErr))
	}

	return config.FromEnv(), nil
}

// Read extra genetic code tables from sqlite into the registry.
func loadCodeTables(path string, tables *model.CodeTableRegistry) error {
	store, err := mydb.OpenCodeTableStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	loaded, err := store.LoadCodeTables(ctx)
	if err != nil {
		return err
	}

	for _, t := range loaded {
		if err := tables.Register(t); err != nil {
			logger.Warn("Skipping code table", zap.Int("table_id", t.ID), zap.String("name", t.Name), zap.Error(err))
			continue
		}
		logger.Info("Loaded code table", zap.Int("table_id", t.ID), zap.String("name", t.Name), zap.Int("codons", len(t.Codons)))
	}
	return nil
}

// Move to router.go in the next iteration
func NewRouter(actx *handler.AnalyzerContext) *http.ServeMux {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// Analysis routes
	mux.HandleFunc("POST "+request.OperationTranslate.Path(), actx.TranslateHandler)
	mux.HandleFunc("POST "+request.OperationGCContent.Path(), actx.GCContentHandler)
	mux.HandleFunc("POST "+request.OperationCodonUsage.Path(), actx.CodonUsageHandler)
	mux.HandleFunc("POST "+request.OperationVisualizeGC.Path(), actx.VisualizeGCHandler)

	// API routes
	mux.HandleFunc("GET /api/v1/health", handler.HealthCheck)
	mux.HandleFunc("GET /api/v1/tables", actx.CodeTablesHandler)

	return mux
}
