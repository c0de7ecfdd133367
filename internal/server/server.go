// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server exposes venue matching over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/someonegg/reviewmatch"
	"github.com/someonegg/reviewmatch/internal/config"
	"github.com/someonegg/reviewmatch/internal/logging"
	"github.com/someonegg/reviewmatch/internal/metrics"
	"github.com/someonegg/reviewmatch/venue"
)

const (
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	cfg     config.Config
	logger  reviewmatch.Logger
	metrics reviewmatch.MetricsCollector
	router  *gin.Engine
}

// New builds the HTTP routes. Metrics are registered on reg and served
// from it; a fresh registry is used when reg is nil.
func New(cfg config.Config, logger reviewmatch.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.NewPrometheus(reg, cfg.Metrics.Namespace),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(s.accessLog())

	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.POST("/v1/match", s.match)

	s.router = router
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []any{
			"request", c.GetString(requestIDHeader),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			s.logger.Error("http request", kv...)
		case status >= 400:
			s.logger.Warn("http request", kv...)
		default:
			s.logger.Debug("http request", kv...)
		}
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) match(c *gin.Context) {
	var req venue.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, &venue.Response{
			RunID:  uuid.NewString(),
			Status: reviewmatch.StatusInvalidInput,
			Detail: "decode request: " + err.Error(),
		})
		return
	}

	timeout := s.cfg.Engine.Timeout
	neutral := s.cfg.Engine.NeutralAffinity
	matcher := &venue.Matcher{
		NeutralAffinity: &neutral,
		Timeout:         &timeout,
		Logger:          s.logger,
		Metrics:         s.metrics,
	}

	resp, err := matcher.Match(c.Request.Context(), &req)
	if err != nil {
		s.logger.Debug("match failed", "request", c.GetString(requestIDHeader), "run", resp.RunID, "error", err)
	}
	c.JSON(httpStatus(resp.Status), resp)
}

func httpStatus(status reviewmatch.Status) int {
	switch status {
	case reviewmatch.StatusComplete:
		return http.StatusOK
	case reviewmatch.StatusInvalidInput:
		return http.StatusBadRequest
	case reviewmatch.StatusInfeasibleSupply, reviewmatch.StatusNoSolution:
		return http.StatusUnprocessableEntity
	case reviewmatch.StatusTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
