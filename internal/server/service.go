// Package server is the thin HTTP host around the extraction core:
// request parsing, JSON framing and nothing else.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/enedis-automation/order-extractor/constants"
	"github.com/enedis-automation/order-extractor/internal/common"
	"github.com/enedis-automation/order-extractor/internal/export"
	"github.com/enedis-automation/order-extractor/internal/extract"
)

type Service struct {
	extractor *extract.Extractor
	exporter  *export.Service
	maxUpload int64
	logger    *slog.Logger
}

func NewService(extractor *extract.Extractor, exporter *export.Service, maxUpload int64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUpload <= 0 {
		maxUpload = 32 << 20
	}
	return &Service{extractor: extractor, exporter: exporter, maxUpload: maxUpload, logger: logger}
}

// Routes wires the handlers behind request-ID and logging middleware.
func (s *Service) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /export", s.handleExport)
	return s.withRequestID(s.withLogging(mux))
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": constants.ServiceName,
		"version": constants.ServiceVersion,
	})
}

func (s *Service) handleExtract(w http.ResponseWriter, r *http.Request) {
	content, filename, err := s.readUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res := s.extractor.Extract(r.Context(), content, filename)
	writeJSON(w, http.StatusOK, res)
}

func (s *Service) handleExport(w http.ResponseWriter, r *http.Request) {
	content, filename, err := s.readUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res := s.extractor.Extract(r.Context(), content, filename)
	book, err := s.exporter.ExportXLSX(res)
	if err != nil {
		s.logger.Error("server.export_failed", "file", filename, "error", err)
		writeError(w, common.InternalError("export failed", err))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(book)
}

// readUpload pulls the multipart "file" part out of the request. Input
// errors are rejected here, before any extraction work begins.
func (s *Service) readUpload(r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return nil, "", common.InvalidInputError("No file part in the request")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", common.InvalidInputError("No file part in the request")
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	if header.Filename == "" {
		return nil, "", common.InvalidInputError("No selected file")
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, "", common.InternalError("read upload", err)
	}
	return content, header.Filename, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	msg := err.Error()
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	writeJSON(w, common.HTTPStatus(err), map[string]string{"error": msg})
}
