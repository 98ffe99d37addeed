package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yumyai/seqtool/logger"
	"github.com/yumyai/seqtool/pkg/handler/request"
	"github.com/yumyai/seqtool/pkg/handler/types"
	"github.com/yumyai/seqtool/pkg/middle"
	"github.com/yumyai/seqtool/pkg/model"
	"github.com/yumyai/seqtool/pkg/render"
	"go.uber.org/zap"
)

const maxFormMemory = 32 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Encoding response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, types.ErrorResponse{Error: message})
}

// headerWriter remembers whether the status line has gone out.
type headerWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (hw *headerWriter) WriteHeader(code int) {
	hw.wroteHeader = true
	hw.ResponseWriter.WriteHeader(code)
}

func (hw *headerWriter) Write(b []byte) (int, error) {
	hw.wroteHeader = true
	return hw.ResponseWriter.Write(b)
}

// Request scoped logger when the request-ID middleware ran.
func requestLogger(r *http.Request) *zap.Logger {
	return middle.LoggerFrom(r.Context(), logger.Named("handler"))
}

// serveOperation runs fn and turns a panic inside it into a generic error
// response. Once the status is written the panic is only logged.
func serveOperation(w http.ResponseWriter, r *http.Request, op request.Operation, fn http.HandlerFunc) {
	hw := &headerWriter{ResponseWriter: w}

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		requestLogger(r).Error("Unexpected failure",
			zap.Stringer("operation", op),
			zap.Any("panic", rec),
			zap.Bool("response_started", hw.wroteHeader),
		)
		if hw.wroteHeader {
			return
		}
		writeError(hw, http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %v", rec))
	}()

	fn(hw, r)
}

// readSequence pulls the sequence field from a urlencoded or multipart body.
// It writes the error response itself and reports false on failure.
func (actx *AnalyzerContext) readSequence(w http.ResponseWriter, r *http.Request) (string, bool) {

	err := r.ParseMultipartForm(maxFormMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		requestLogger(r).Debug("Invalid form body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid form body")
		return "", false
	}

	values, ok := r.PostForm[request.SequenceField]
	if !ok || len(values) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "Missing form field: sequence")
		return "", false
	}

	sequence := values[0]
	if actx.MaxSequence > 0 && utf8.RuneCountInString(sequence) > actx.MaxSequence {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Sequence is longer than %d characters", actx.MaxSequence))
		return "", false
	}

	return sequence, true
}

func (actx *AnalyzerContext) lookupTable(r *http.Request) (*model.CodeTable, error) {
	raw := strings.TrimSpace(r.PostFormValue(request.TableField))
	if raw == "" {
		return actx.Tables.Lookup(model.StandardTableID)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownTable, raw)
	}
	return actx.Tables.Lookup(id)
}

func (actx *AnalyzerContext) TranslateHandler(w http.ResponseWriter, r *http.Request) {
	serveOperation(w, r, request.OperationTranslate, actx.translate)
}

func (actx *AnalyzerContext) translate(w http.ResponseWriter, r *http.Request) {
	sequence, ok := actx.readSequence(w, r)
	if !ok {
		return
	}

	table, err := actx.lookupTable(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := model.Translate(sequence, table)

	var terr *model.TranslationError
	switch {
	case err == nil:
	case errors.Is(err, model.ErrEmptySequence):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.As(err, &terr):
		writeError(w, http.StatusBadRequest, "Translation failed: "+terr.Error())
		return
	default:
		requestLogger(r).Error("Translation error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
		return
	}

	requestLogger(r).Debug("Translated",
		zap.Int("length", len(result.Cleaned)),
		zap.Int("protein", len(result.Protein)),
		zap.Int("table", result.TableID),
	)

	writeJSON(w, http.StatusOK, types.TranslateResponse{
		Original: result.Original,
		Cleaned:  result.Cleaned,
		Trimmed:  result.Trimmed,
		Protein:  result.Protein,
		Warning:  result.Warning,
		TableID:  result.TableID,
	})
}

func (actx *AnalyzerContext) GCContentHandler(w http.ResponseWriter, r *http.Request) {
	serveOperation(w, r, request.OperationGCContent, actx.gcContent)
}

func (actx *AnalyzerContext) gcContent(w http.ResponseWriter, r *http.Request) {
	sequence, ok := actx.readSequence(w, r)
	if !ok {
		return
	}

	pct, err := model.GCContent(sequence)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, types.GCContentResponse{GC_Content: model.FormatPercent(pct)})
}

func (actx *AnalyzerContext) CodonUsageHandler(w http.ResponseWriter, r *http.Request) {
	serveOperation(w, r, request.OperationCodonUsage, actx.codonUsage)
}

func (actx *AnalyzerContext) codonUsage(w http.ResponseWriter, r *http.Request) {
	sequence, ok := actx.readSequence(w, r)
	if !ok {
		return
	}

	usage := model.CodonUsage(sequence)
	requestLogger(r).Debug("Codon usage", zap.Int("distinct", len(usage)))

	writeJSON(w, http.StatusOK, types.CodonUsageResponse(usage))
}

func (actx *AnalyzerContext) VisualizeGCHandler(w http.ResponseWriter, r *http.Request) {
	serveOperation(w, r, request.OperationVisualizeGC, actx.visualizeGC)
}

func (actx *AnalyzerContext) visualizeGC(w http.ResponseWriter, r *http.Request) {
	sequence, ok := actx.readSequence(w, r)
	if !ok {
		return
	}

	trace, err := model.GCTrace(sequence)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Render fully before anything goes to the client
	var buf bytes.Buffer
	if err := render.RenderGCChart(&buf, trace, actx.Chart); err != nil {
		requestLogger(r).Error("Rendering GC chart failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		requestLogger(r).Warn("Writing PNG failed", zap.Error(err))
	}
}

func (actx *AnalyzerContext) CodeTablesHandler(w http.ResponseWriter, r *http.Request) {
	tables := actx.Tables.Tables()

	response := make([]types.CodeTableInfo, 0, len(tables))
	for _, t := range tables {
		response = append(response, types.CodeTableInfo{ID: t.ID, Name: t.Name})
	}

	writeJSON(w, http.StatusOK, response)
}
