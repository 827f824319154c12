package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appnutrition "github.com/bryanwahyu/macro-estimator/internal/application/nutrition"
	domain "github.com/bryanwahyu/macro-estimator/internal/domain/nutrition"
	"github.com/bryanwahyu/macro-estimator/internal/middleware"
	"github.com/bryanwahyu/macro-estimator/internal/web"
)

const (
	analysisIDHeader = "X-Analysis-ID"
	maxBodyBytes     = 64 << 10
)

type Options struct {
	Logger         logrus.FieldLogger
	AllowedOrigins []string
	MaxFoodLength  int
}

type Router struct {
	svc     *appnutrition.Service
	logger  logrus.FieldLogger
	maxFood int
}

func NewRouter(svc *appnutrition.Service, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r := &Router{svc: svc, logger: logger, maxFood: opts.MaxFoodLength}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.Logging(logger))
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{analysisIDHeader},
		MaxAge:         300,
	}))

	mux.Get("/", web.IndexHandler)
	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/ready", middleware.ReadinessHandler(map[string]middleware.HealthChecker{
		"credential": r.credentialCheck(),
	}))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/check", r.wrap(r.handleCheck))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// envelope is the body of every /api/analyze response.
type envelope struct {
	OK     bool                     `json:"ok"`
	Result *domain.NutrientEstimate `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
	Raw    *string                  `json:"raw,omitempty"`
}

// wrap maps handler errors to a status and a failure envelope.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		status := statusFor(err)
		out := envelope{OK: false, Error: domain.Message(err)}
		var ufe *domain.UpstreamFormatError
		if errors.As(err, &ufe) {
			raw := ufe.Raw
			out.Raw = &raw
		}

		entry := r.logger.WithError(err).WithFields(logrus.Fields{
			"analysis_id": w.Header().Get(analysisIDHeader),
			"status":      status,
		})
		switch {
		case status == http.StatusInternalServerError:
			entry.Error("analysis failed")
		case status == http.StatusBadGateway:
			entry.Warn("model returned unstructured output")
		default:
			entry.Debug("request rejected")
		}

		writeJSON(w, status, out)
	}
}

func statusFor(err error) int {
	switch {
	case domain.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUpstreamFormat):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// POST /api/analyze
// Body: {"food": "<description>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) (err error) {
	w.Header().Set(analysisIDHeader, uuid.NewString())
	defer func() { middleware.RecordAnalysis(analysisResult(err)) }()

	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidBody, err)
	}
	q, err := domain.ParseQuery(body, r.maxFood)
	if err != nil {
		return err
	}

	out := r.svc.Evaluate(req.Context(), q)
	if !out.OK() {
		return out.Err
	}
	writeJSON(w, http.StatusOK, envelope{OK: true, Result: out.Estimate})
	return nil
}

func analysisResult(err error) middleware.AnalysisResult {
	switch {
	case err == nil:
		return middleware.AnalysisSucceeded
	case domain.IsClientError(err):
		return middleware.AnalysisRejected
	case errors.Is(err, domain.ErrUpstreamFormat):
		return middleware.AnalysisBadFormat
	default:
		return middleware.AnalysisFailed
	}
}

// GET /api/check
func (r *Router) handleCheck(w http.ResponseWriter, req *http.Request) error {
	writeJSON(w, http.StatusOK, r.svc.Check())
	return nil
}

func (r *Router) credentialCheck() middleware.HealthChecker {
	return middleware.CheckFunc(func(_ context.Context) error {
		c := r.svc.Credential
		if !c.Configured() {
			return &domain.ConfigError{Name: c.Name}
		}
		return nil
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
