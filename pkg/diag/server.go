package diag

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/permproof/permproof/pkg/logger"
)

// Server exposes diagnostics endpoints (/healthz, /readyz, /metrics) while a
// long permission-check run is in flight
type Server struct {
	addr      string
	server    *http.Server
	logger    logger.Logger
	checks    map[string]Check
	mu        sync.RWMutex
	startTime time.Time
}

// Check represents a diagnostics check function
type Check func(ctx context.Context) error

// Config holds server configuration
type Config struct {
	// Address to listen on (e.g., ":8080")
	Address string

	// ReadTimeout for HTTP requests
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses
	WriteTimeout time.Duration

	// Logger for the diagnostics server
	Logger logger.Logger
}

// DefaultConfig returns default diagnostics server configuration
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// NewServer creates a new diagnostics server
func NewServer(config Config) *Server {
	if config.Logger == nil {
		config.Logger = logger.Nop()
	}

	s := &Server{
		addr:      config.Address,
		logger:    config.Logger,
		checks:    make(map[string]Check),
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleLiveness)
	mux.HandleFunc("/readyz", s.handleReadiness)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", s.handleRoot)

	s.server = &http.Server{
		Addr:         config.Address,
		Handler:      mux,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// RegisterCheck adds a named diagnostics check
func (s *Server) RegisterCheck(name string, check Check) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[name] = check
	s.logger.Info("Registered diagnostics check",
		logger.String("name", name),
	)
}

// Start starts the diagnostics server
func (s *Server) Start() error {
	s.logger.Info("Starting diagnostics server",
		logger.String("address", s.addr),
	)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Diagnostics server error",
				logger.String("error", err.Error()),
			)
		}
	}()

	return nil
}

// Stop gracefully shuts down the diagnostics server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping diagnostics server")
	return s.server.Shutdown(ctx)
}

// handleRoot provides basic information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	uptime := time.Since(s.startTime)

	response := map[string]interface{}{
		"service":   "permproof",
		"status":    "running",
		"uptime":    uptime.String(),
		"endpoints": []string{"/healthz", "/readyz", "/metrics"},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleLiveness handles liveness probe requests
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	// Liveness is simple - if we can respond, we're alive
	response := StatusResponse{
		Status: "ok",
		Checks: map[string]string{
			"server": "running",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleReadiness runs the registered checks and reports per-check status
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	s.mu.RLock()
	checks := make(map[string]Check, len(s.checks))
	for name, check := range s.checks {
		checks[name] = check
	}
	s.mu.RUnlock()

	results := make(map[string]string)
	allHealthy := true

	for name, check := range checks {
		if err := check(ctx); err != nil {
			results[name] = fmt.Sprintf("failed: %s", err.Error())
			allHealthy = false
			s.logger.Warn("Diagnostics check failed",
				logger.String("check", name),
				logger.String("error", err.Error()),
			)
		} else {
			results[name] = "ok"
		}
	}
	if len(checks) == 0 {
		results["server"] = "ready"
	}

	status := "ok"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	response := StatusResponse{
		Status: status,
		Checks: results,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// StatusResponse represents the diagnostics response body
type StatusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
