package main

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yumyai/seqtool/internal/config"
	mydb "github.com/yumyai/seqtool/pkg/db"
	"github.com/yumyai/seqtool/pkg/handler"
	"github.com/yumyai/seqtool/pkg/model"
	"github.com/yumyai/seqtool/pkg/render"
)

func TestRouter(t *testing.T) {
	mux := NewRouter(handler.NewAnalyzerContext(nil, render.ChartOptions{Width: 400, Height: 300}, 0))

	tests := []struct {
		method      string
		path        string
		status      int
		contentType string
	}{
		{http.MethodPost, "/translate", http.StatusOK, "application/json"},
		{http.MethodPost, "/gc_content", http.StatusOK, "application/json"},
		{http.MethodPost, "/codon_usage", http.StatusOK, "application/json"},
		{http.MethodPost, "/visualize_gc", http.StatusOK, "image/png"},
		{http.MethodGet, "/api/v1/health", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/v1/tables", http.StatusOK, "application/json"},
		{http.MethodGet, "/translate", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/favicon.ico", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+tt.path, func(t *testing.T) {
			form := url.Values{"sequence": {"ATGGCCGCAT"}}
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			if tt.contentType != "" && rr.Header().Get("Content-Type") != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", rr.Header().Get("Content-Type"), tt.contentType)
			}
		})
	}
}

func TestLoadCodeTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := mydb.NewCodeTableStore(db)
	ctx := context.Background()
	if err := store.InitSchema(ctx); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	if err := store.InsertCodeTable(ctx, &model.CodeTable{ID: 77, Name: "lab", Codons: map[string]byte{"ATG": 'M'}}); err != nil {
		t.Fatalf("InsertCodeTable: %v", err)
	}
	db.Close()

	tables := model.NewCodeTableRegistry()
	if err := loadCodeTables(path, tables); err != nil {
		t.Fatalf("loadCodeTables: %v", err)
	}
	if table, err := tables.Lookup(77); err != nil || table.Name != "lab" {
		t.Errorf("Lookup(77) = %v, %v", table, err)
	}

	if err := loadCodeTables(filepath.Join(t.TempDir(), "missing.db"), tables); err == nil {
		t.Errorf("expected an error for a missing database")
	}
}

func TestSetupReportsInvalidConfig(t *testing.T) {
	t.Setenv("SEQTOOL_LOG_LEVEL", "info")
	t.Setenv("SEQTOOL_CHART_WIDTH", "abc")

	core, logs := observer.New(zapcore.WarnLevel)
	tee := zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, core)
	})

	cfg, err := setup(tee)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.ChartWidth != config.DefaultChartWidth {
		t.Errorf("ChartWidth = %d, want default %d", cfg.ChartWidth, config.DefaultChartWidth)
	}

	warnings := logs.FilterMessage("Invalid value, using default").FilterField(zap.String("key", "SEQTOOL_CHART_WIDTH"))
	if warnings.Len() != 1 {
		t.Errorf("expected one warning for SEQTOOL_CHART_WIDTH, got %d (all: %v)", warnings.Len(), logs.All())
	}
}
