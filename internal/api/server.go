// Package api exposes the dashboard over HTTP under /api.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"voice-trends-go/internal/copilot"
	"voice-trends-go/internal/dashboard"
	"voice-trends-go/internal/logger"
	"voice-trends-go/internal/metrics"
)

const serviceName = "voice-trends-go"

type Server struct {
	svc     *dashboard.Service
	copilot *copilot.Resolver
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewServer(svc *dashboard.Service, resolver *copilot.Resolver, m *metrics.Metrics, log *logger.Logger) *Server {
	return &Server{svc: svc, copilot: resolver, metrics: m, log: log}
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.health)
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.HandleFunc("GET /api/trends/{name}", s.view(s.svc.Trend))
	mux.HandleFunc("GET /api/insights/{name}", s.view(s.svc.Insight))
	mux.HandleFunc("GET /api/dashboard/{name}", s.view(s.svc.Summary))
	mux.HandleFunc("GET /api/calls", s.listCalls)
	mux.HandleFunc("GET /api/calls/{id}", s.getCall)
	mux.HandleFunc("GET /api/alerts/complaints", s.complaintAlert)
	mux.HandleFunc("POST /api/copilot/visualization", s.visualization)

	return s.instrument(cors(mux))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
}

func (s *Server) view(get func(name, rangeTag string) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		out, err := get(name, r.URL.Query().Get("range"))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) listCalls(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	calls, err := s.svc.Calls(dashboard.CallQuery{
		Range:          q.Get("range"),
		Intent:         q.Get("intent"),
		Topic:          q.Get("topic"),
		ComplaintsOnly: q.Get("complaints") == "true",
		Limit:          limit,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"calls": calls})
}

func (s *Server) getCall(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Call(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) complaintAlert(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.ComplaintAlert()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type visualizationRequest struct {
	Query string `json:"query"`
	Text  string `json:"text"`
}

func (s *Server) visualization(w http.ResponseWriter, r *http.Request) {
	var req visualizationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	q := strings.TrimSpace(req.Query)
	if q == "" {
		q = strings.TrimSpace(req.Text)
	}
	if q == "" {
		writeError(w, http.StatusBadRequest, "Missing query")
		return
	}
	res, err := s.copilot.Resolve(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// fail maps domain errors to status codes and logs server-side failures.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dashboard.ErrUnknownView):
		writeError(w, http.StatusNotFound, "Unknown view")
	case errors.Is(err, dashboard.ErrCallNotFound):
		writeError(w, http.StatusNotFound, "Call not found")
	case errors.Is(err, copilot.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "Missing query")
	default:
		s.log.WithRequest(r).WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "Internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records request count and latency per route pattern and logs
// each request at debug.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		s.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.log.WithRequest(r).WithField("status", rec.status).
			WithField("duration_ms", elapsed.Milliseconds()).Debug("request served")
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		next.ServeHTTP(w, r)
	})
}
