package chi

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helixrag/internal/domain"
	answeruc "github.com/kailas-cloud/helixrag/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/helixrag/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/helixrag/internal/usecase/ingest"
)

const maxUploadBytes = 32 << 20 // per multipart request

// Server exposes the answer pipeline and ingestion endpoints over HTTP.
type Server struct {
	answer *answeruc.Service
	ingest *ingestuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(answer *answeruc.Service, ingest *ingestuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{
		answer: answer,
		ingest: ingest,
		health: health,
		logger: logger,
	}
}

// Routes mounts all endpoint handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/answer", s.Answer)
	r.Post("/seed", s.Seed)
	r.Post("/upload", s.Upload)
	r.Post("/process-directory", s.ProcessDirectory)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type answerRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type answerResponse struct {
	Text      string      `json:"text"`
	Citations []string    `json:"citations"`
	Debug     answerDebug `json:"debug"`
}

type answerDebug struct {
	TopDocIDs []string `json:"top_doc_ids"`
	LatencyMS int64    `json:"latency_ms"`
}

// Answer handles POST /answer.
func (s *Server) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "query is required")
		return
	}

	result := s.answer.Answer(r.Context(), req.Query, req.TopK)

	citations := result.Citations
	if citations == nil {
		citations = []string{}
	}
	topDocIDs := result.Debug.TopDocIDs
	if topDocIDs == nil {
		topDocIDs = []string{}
	}

	writeJSON(w, http.StatusOK, answerResponse{
		Text:      result.Text,
		Citations: citations,
		Debug: answerDebug{
			TopDocIDs: topDocIDs,
			LatencyMS: result.Debug.LatencyMS,
		},
	})
}

type seedRequest struct {
	Documents []seedDocument `json:"documents"`
}

type seedDocument struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

type ingestResponse struct {
	Inserted int `json:"inserted"`
}

// Seed handles POST /seed. An absent documents field seeds the built-in
// corpus; an explicit empty list seeds nothing.
func (s *Server) Seed(w http.ResponseWriter, r *http.Request) {
	// An empty body is valid and means "seed the defaults".
	var req seedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	var documents []domain.Document
	if req.Documents != nil {
		documents = make([]domain.Document, len(req.Documents))
		for i, d := range req.Documents {
			documents[i] = domain.Document{Source: d.Source, Text: d.Text}
		}
	}

	inserted, err := s.ingest.Seed(r.Context(), documents)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ingestResponse{Inserted: inserted})
}

// Upload handles POST /upload with multipart form files.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid multipart form: "+err.Error())
		return
	}

	var headers []*multipart.FileHeader
	for _, fhs := range r.MultipartForm.File {
		headers = append(headers, fhs...)
	}
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "no files provided")
		return
	}

	uploads := make([]ingestuc.Upload, 0, len(headers))
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			s.logger.Warn("skipping unreadable upload", zap.String("name", fh.Filename), zap.Error(err))
			continue
		}
		opened = append(opened, f)
		uploads = append(uploads, ingestuc.Upload{Name: fh.Filename, Reader: f})
	}

	inserted, err := s.ingest.ProcessUploads(r.Context(), uploads)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ingestResponse{Inserted: inserted})
}

type processDirectoryRequest struct {
	Path       string   `json:"path"`
	Extensions []string `json:"extensions"`
}

// ProcessDirectory handles POST /process-directory.
func (s *Server) ProcessDirectory(w http.ResponseWriter, r *http.Request) {
	var req processDirectoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "path is required")
		return
	}

	inserted, err := s.ingest.ProcessDirectory(r.Context(), req.Path, req.Extensions)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ingestResponse{Inserted: inserted})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("request failed", zap.Error(err))
	switch {
	case errors.Is(err, domain.ErrProvider):
		writeError(w, http.StatusBadGateway, "provider_error", safeDomainMessage(err))
	case errors.Is(err, domain.ErrUnsupportedFileType):
		writeError(w, http.StatusBadRequest, "unsupported_file_type", safeDomainMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", safeDomainMessage(err))
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmbeddingProviderError,
		domain.ErrChatProviderError,
		domain.ErrRerankProviderError,
		domain.ErrProvider,
		domain.ErrUnsupportedFileType,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
