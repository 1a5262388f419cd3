package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	searchai "github.com/nitinanarwal/Search-AI"
	logpkg "github.com/nitinanarwal/Search-AI/internal/logger"
)

const defaultWaitTimeout = 30 * time.Second

// Engine is the search client the view drives.
type Engine interface {
	Query() *searchai.QueryService
	Submit(ctx context.Context, page ...int) *searchai.Ticket
	State() searchai.State
	Health(ctx context.Context) searchai.HealthStatus
	Business(ctx context.Context, id string) (searchai.Result, error)
	Businesses(ctx context.Context) ([]searchai.Result, error)
}

// Server is a headless JSON view over the search lifecycle.
type Server struct {
	engine      Engine
	logger      *zap.Logger
	validate    *validator.Validate
	waitTimeout time.Duration
}

// NewServer creates a view server.
func NewServer(engine Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine:      engine,
		logger:      logger,
		validate:    newValidator(),
		waitTimeout: defaultWaitTimeout,
	}
}

// WithWaitTimeout bounds how long POST /search?wait=true holds the response.
func (s *Server) WithWaitTimeout(d time.Duration) *Server {
	if d > 0 {
		s.waitTimeout = d
	}
	return s
}

// Register mounts the view routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/state", s.GetState)
	r.Get("/query", s.GetQuery)
	r.Post("/search", s.Search)
	r.Post("/causes/{cause}/toggle", s.ToggleCause)
	r.Get("/vocabulary", s.Vocabulary)
	r.Get("/businesses", s.ListBusinesses)
	r.Get("/businesses/{id}", s.GetBusiness)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stateToView(s.engine.State()))
}

// GetQuery handles GET /query.
func (s *Server) GetQuery(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, queryToView(s.engine.Query().Snapshot()))
}

// Search handles POST /search?page=&wait=.
// The body is optional; present fields replace the current intent before submitting.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var page *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid page parameter")
		return
	}
	var wait *bool
	if err := runtime.BindQueryParameter("form", true, false, "wait", r.URL.Query(), &wait); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid wait parameter")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, validationMessage(err))
		return
	}
	if page != nil && *page < 1 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "page must be >= 1")
		return
	}

	req.apply(s.engine.Query())

	var pages []int
	if page != nil {
		pages = append(pages, *page)
	}
	// The request must outlive this handler when the caller does not wait.
	ticket := s.engine.Submit(context.WithoutCancel(r.Context()), pages...)
	logpkg.FromContext(r.Context(), s.logger).Debug("search submitted from view",
		zap.Uint64("seq", ticket.Seq()),
	)

	if wait == nil || !*wait {
		writeJSON(w, http.StatusAccepted, submitView{Seq: ticket.Seq(), State: stateToView(s.engine.State())})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.waitTimeout)
	defer cancel()
	st, applied, err := ticket.Wait(ctx)
	if err != nil {
		writeError(w, http.StatusGatewayTimeout, codeTimeout, "search still in progress")
		return
	}
	writeJSON(w, http.StatusOK, submitView{
		Seq:        ticket.Seq(),
		Superseded: !applied,
		State:      stateToView(st),
	})
}

// ToggleCause handles POST /causes/{cause}/toggle.
func (s *Server) ToggleCause(w http.ResponseWriter, r *http.Request) {
	cause, err := url.PathUnescape(chi.URLParam(r, "cause"))
	if err != nil || !searchai.IsKnownCause(cause) {
		writeError(w, http.StatusBadRequest, codeValidationFailed, fmt.Sprintf("unknown cause %q", cause))
		return
	}
	q := s.engine.Query()
	q.ToggleCause(cause)
	writeJSON(w, http.StatusOK, queryToView(q.Snapshot()))
}

// Vocabulary handles GET /vocabulary.
func (s *Server) Vocabulary(w http.ResponseWriter, _ *http.Request) {
	sorts := searchai.SortOrders()
	names := make([]string, len(sorts))
	for i, o := range sorts {
		names[i] = string(o)
	}
	writeJSON(w, http.StatusOK, vocabularyView{Causes: searchai.KnownCauses(), Sorts: names})
}

// ListBusinesses handles GET /businesses.
func (s *Server) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	list, err := s.engine.Businesses(r.Context())
	if err != nil {
		s.handleUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, businessListView{Results: resultsToView(list), Count: len(list)})
}

// GetBusiness handles GET /businesses/{id}.
func (s *Server) GetBusiness(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.Business(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resultToView(&res))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h := s.engine.Health(r.Context())
	status := http.StatusOK
	if h.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthView{Status: h.Status, Checks: h.Checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	switch {
	case errors.Is(err, searchai.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	case errors.Is(err, searchai.ErrTransport),
		errors.Is(err, searchai.ErrUpstreamStatus),
		errors.Is(err, searchai.ErrInvalidResponse),
		errors.Is(err, searchai.ErrSearchRejected):
		log.Warn("upstream error", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeUpstream, "search api unavailable")
	default:
		log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
