package public

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"github.com/berkocan/genelpara-api/deploy/config"
	"github.com/berkocan/genelpara-api/internal/api_service/ports/http/public/middleware/logger"
	"github.com/berkocan/genelpara-api/internal/entities"
	"github.com/berkocan/genelpara-api/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// OriginHeader tells clients whether a response came from the API, the cache or a snapshot.
const OriginHeader = "X-Rates-Origin"

type Server struct {
	Server  *http.Server
	cfg     config.HTTPServer
	service Service
	checks  []HealthCheck
}

func NewServer(server *http.Server, cfg config.HTTPServer, service Service, checks ...HealthCheck) *Server {
	return &Server{
		Server:  server,
		cfg:     cfg,
		service: service,
		checks:  checks,
	}
}

// NewRouter wires the public routes around a service.
func NewRouter(service Service, cfg config.HTTPServer, checks ...HealthCheck) *chi.Mux {
	s := NewServer(nil, cfg, service, checks...)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.New())
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", s.Health)
	r.Get("/api/rates", s.GetRates)
	r.Get("/", s.Index)

	return r
}

func StartServer(ctx context.Context, service Service, cfg config.HTTPServer, checks ...HealthCheck) <-chan struct{} {
	serverConfig := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      NewRouter(service, cfg, checks...),
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	server := NewServer(serverConfig, cfg, service, checks...)

	doneChan := make(chan struct{})

	go func() {
		if err := server.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to stop server", "error", err)
		}

		close(doneChan)
	}()

	return doneChan
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for _, check := range s.checks {
		if err := check.Ping(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			RespondWithError(w, http.StatusServiceUnavailable, "unhealthy", err.Error())
			return
		}
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) GetRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := s.parseQuery(r)

	resp, origin, err := s.service.GetRates(ctx, query)
	if err != nil {
		code := StatusFor(err)
		slog.Warn("rates request failed", "query", query.Key(), "status", code, "error", err)
		RespondWithError(w, code, http.StatusText(code), err.Error())
		return
	}

	w.Header().Set(OriginHeader, string(origin))
	RespondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := s.parseQuery(r)

	page := render.Page{
		Category:   strings.Join(query.Categories, ","),
		Categories: s.cfg.Categories,
		Symbols:    query.SymbolParam(),
		UpdatedAt:  time.Now(),
	}

	code := http.StatusOK
	resp, origin, err := s.service.GetRates(ctx, query)
	if err != nil {
		code = StatusFor(err)
		page.Error = err.Error()
	} else {
		page.Response = resp
		page.Origin = origin
		w.Header().Set(OriginHeader, string(origin))
	}

	var buf bytes.Buffer
	if err = render.HTML(&buf, page); err != nil {
		slog.Error("Failed to render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)

	if _, err = buf.WriteTo(w); err != nil {
		slog.Error("Failed to write page", "error", err)
	}
}

func (s *Server) parseQuery(r *http.Request) entities.RateQuery {
	category := r.URL.Query().Get("category")
	if strings.TrimSpace(category) == "" {
		category = s.cfg.DefaultCategory
	}

	return entities.ParseQuery(category, r.URL.Query().Get("symbols"))
}

// StatusFor maps a service error to the HTTP status returned to clients.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, entities.ErrTransport):
		return http.StatusServiceUnavailable
	case errors.Is(err, entities.ErrHTTPStatus), errors.Is(err, entities.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func RespondWithJSON(w http.ResponseWriter, code int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if _, err = w.Write(append(body, '\n')); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func RespondWithError(w http.ResponseWriter, code int, message string, details ...string) {
	resp := errorResponse{Error: message}
	if len(details) > 0 {
		resp.Details = details[0]
	}

	RespondWithJSON(w, code, resp)
}
