// Package api exposes the HTTP surface of the analysis pipeline: batch
// submission plus health and readiness probes.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"credit-pipeline/internal/common/config"
	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/pipeline"
)

// Submitter enqueues an analysis batch. Satisfied by pipeline.Dispatcher.
type Submitter interface {
	Submit(batch *pipeline.Batch) bool
}

type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

func NewServer(cfg config.ServerConfig, dispatcher Submitter, log logger.Logger) *Server {
	mux := http.NewServeMux()

	h := &analyzeHandler{
		dispatcher: dispatcher,
		logger:     log.WithFields(map[string]interface{}{"component": "api"}),
	}
	mux.HandleFunc("/api/v1/analyze", h.handleAnalyze)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/ready", handleHealth)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		logger: log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

func (s *Server) Start() error {
	s.logger.Info("api server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
