package handler

// DI for all handlers.

import (
	"github.com/yumyai/seqtool/pkg/model"
	"github.com/yumyai/seqtool/pkg/render"
)

type AnalyzerContext struct {
	Tables      *model.CodeTableRegistry
	Chart       render.ChartOptions
	MaxSequence int // in characters, 0 means unlimited
}

func NewAnalyzerContext(tables *model.CodeTableRegistry, chart render.ChartOptions, maxSequence int) *AnalyzerContext {
	if tables == nil {
		tables = model.NewCodeTableRegistry()
	}
	return &AnalyzerContext{
		Tables:      tables,
		Chart:       chart,
		MaxSequence: maxSequence,
	}
}
