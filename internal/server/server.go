// Package server exposes assembly and rendering over HTTP.
package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ukaji3/heatgrid-go/internal"
	"github.com/ukaji3/heatgrid-go/internal/config"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/output"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/render"
)

// Server wires the HTTP routes to the assembler and renderer.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *internal.Logger
}

// New creates a server with all routes registered.
func New(cfg *config.Config, logger *internal.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/api/parse", s.handleParse)
	s.router.Post("/api/render", s.handleRender)
	s.router.Post("/api/heatmap", s.handleHeatmap)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer returns an http.Server configured from cfg.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

// handleParse assembles an uploaded workbook and returns the interchange JSON.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	wb, ok := s.assembleUpload(w, r)
	if !ok {
		return
	}

	data, err := output.ToJSON(wb, r.URL.Query().Get("pretty") == "true")
	if err != nil {
		s.logger.Error("serialization failed: %v", err)
		http.Error(w, "serialization failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleRender renders interchange JSON. Undecodable input renders as empty markup.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	wb, err := output.FromJSON(body)
	if err != nil {
		s.logger.Warn("render input not decodable, rendering empty workbook: %v", err)
		wb = nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, render.Render(wb, s.cfg.Render.Options()))
}

// handleHeatmap assembles an uploaded workbook and renders it in one step.
func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	wb, ok := s.assembleUpload(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, render.Render(wb, s.cfg.Render.Options()))
}

func (s *Server) assembleUpload(w http.ResponseWriter, r *http.Request) (*models.Workbook, bool) {
	body, ok := s.readBody(w, r)
	if !ok {
		return nil, false
	}

	format, err := heatgrid.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	wb, err := heatgrid.AssembleBytes(body, heatgrid.Options{
		Format: format,
		Logger: s.logger.WithPrefix("[assembler] "),
	})
	if err != nil {
		var readErr *heatgrid.SourceReadError
		if errors.As(err, &readErr) {
			http.Error(w, readErr.Error(), http.StatusBadRequest)
			return nil, false
		}
		s.logger.Error("assembly failed: %v", err)
		http.Error(w, "assembly failed", http.StatusInternalServerError)
		return nil, false
	}

	s.logger.Info("assembled %d sheets, %d records", wb.Len(), wb.RecordCount())
	return wb, true
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	s.logger.Trace("%s: read %d bytes", r.URL.Path, len(body))
	return body, true
}
