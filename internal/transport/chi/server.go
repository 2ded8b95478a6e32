// Package chi exposes the blog service over HTTP on a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/blogdex/internal/domain"
	domblog "github.com/kailas-cloud/blogdex/internal/domain/blog"
	"github.com/kailas-cloud/blogdex/internal/logger"
	bloguc "github.com/kailas-cloud/blogdex/internal/usecase/blog"
	healthuc "github.com/kailas-cloud/blogdex/internal/usecase/health"
)

// maxBodyBytes caps a blog request body.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements ServerInterface on top of the blog and health services.
type Server struct {
	blogs         *bloguc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	metrics       http.Handler
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(blogs *bloguc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		blogs:   blogs,
		health:  health,
		logger:  logger,
		metrics: promhttp.Handler(),
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeBlogNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, ErrorResponseCodeBlogAlreadyExists),
	}
	return s
}

// WithMetricsHandler replaces the default Prometheus handler served on /metrics.
func (s *Server) WithMetricsHandler(h http.Handler) *Server {
	if h != nil {
		s.metrics = h
	}
	return s
}

// ListBlogs handles GET /blogs.
func (s *Server) ListBlogs(w http.ResponseWriter, r *http.Request) {
	views, err := s.blogs.FindAll(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeList(w, views)
}

// CreateBlog handles POST /blogs.
func (s *Server) CreateBlog(w http.ResponseWriter, r *http.Request) {
	v, ok := decodeView(w, r)
	if !ok {
		return
	}

	saved, err := s.blogs.Save(r.Context(), v)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/blogs/"+strconv.FormatInt(saved.ID, 10))
	writeJSON(w, http.StatusCreated, saved)
}

// GetBlog handles GET /blogs/{id}.
func (s *Server) GetBlog(w http.ResponseWriter, r *http.Request, id BlogID) {
	v, err := s.blogs.FindByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// UpdateBlog handles PUT /blogs/{id}.
func (s *Server) UpdateBlog(w http.ResponseWriter, r *http.Request, id BlogID) {
	v, ok := decodeView(w, r)
	if !ok {
		return
	}

	updated, err := s.blogs.Update(r.Context(), id, v)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteBlog handles DELETE /blogs/{id}.
func (s *Server) DeleteBlog(w http.ResponseWriter, r *http.Request, id BlogID) {
	if err := s.blogs.DeleteByID(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchBlogs handles GET /blogs/{word}/{celebrities}/{year}/{author}.
func (s *Server) SearchBlogs(w http.ResponseWriter, r *http.Request, p SearchParams) {
	views, err := s.blogs.Search(r.Context(), p.Word, p.Celebrities, p.Year, p.Author)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeList(w, views)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	// degraded still answers 200: the engine is up, only the index is missing.
	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

// decodeView reads a blog body. active defaults to true when the body omits it.
func decodeView(w http.ResponseWriter, r *http.Request) (domblog.View, bool) {
	v := domblog.View{Active: true}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return domblog.View{}, false
	}
	return v, true
}

func writeList(w http.ResponseWriter, views []domblog.View) {
	if len(views) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// BadRequestHandler renders path binding failures as 400 responses.
func BadRequestHandler(w http.ResponseWriter, _ *http.Request, err error) {
	var pe *InvalidParamFormatError
	if errors.As(err, &pe) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    ErrorResponseCodeBadRequest,
			Message: "invalid request",
			Fields:  []FieldError{{Field: pe.ParamName, Message: pe.Err.Error()}},
		})
		return
	}
	writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "invalid request")
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrValidation,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler renders a ValidationError with every violated field.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	fields := make([]FieldError, len(ve.Violations))
	for i, v := range ve.Violations {
		fields[i] = FieldError{Field: v.Field, Message: v.Message}
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    ErrorResponseCodeValidationFailed,
		Message: msg,
		Fields:  fields,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
