// Package api implements the laneflow HTTP layout service.
//
// The service accepts diagram descriptors, stores them, and serves rendered
// artifacts:
//
//	POST /v1/diagrams                    store a descriptor, return its id
//	GET  /v1/diagrams/{id}               return the stored descriptor
//	GET  /v1/diagrams/{id}/artifact      render (format query param)
//	DELETE /v1/diagrams/{id}             remove a stored diagram
//	GET  /healthz                        liveness probe
//
// Every render request builds and owns its own graph instance, so requests
// are independent and safe to serve concurrently.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/laneflow/pkg/errors"
	"github.com/matzehuels/laneflow/pkg/export"
	"github.com/matzehuels/laneflow/pkg/input"
	"github.com/matzehuels/laneflow/pkg/pipeline"
)

// maxDescriptorBytes bounds uploaded descriptor size.
const maxDescriptorBytes = 1 << 20

// Server wires the pipeline runner and diagram store into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	store  Store
	logger *log.Logger
	opts   pipeline.Options
}

// NewServer creates a server. A nil logger falls back to log.Default().
func NewServer(runner *pipeline.Runner, store Store, logger *log.Logger, opts pipeline.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: store, logger: logger, opts: opts}
}

// Handler returns the chi route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/diagrams", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleDelete)
		r.Get("/{id}/artifact", s.handleArtifact)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreate validates the descriptor end to end (including layout and
// routing) before storing it, so stored diagrams are always renderable.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDescriptorBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	d, err := input.Parse(body)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if _, err := s.runner.Build(d, s.opts); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	diagram := Diagram{
		ID:         uuid.NewString(),
		Descriptor: body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Put(r.Context(), diagram); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("diagram stored", "id", diagram.ID, "bytes", len(body))
	writeJSON(w, http.StatusCreated, map[string]string{"id": diagram.ID})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleArtifact renders the stored descriptor in the requested format.
// Renders hit the artifact cache when the descriptor and options are
// unchanged.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	raw := r.URL.Query().Get("format")
	if raw == "" {
		raw = pipeline.DefaultFormat
	}
	// Canonicalize aliases (xml, mmd, txt, ...) up front; artifacts are keyed
	// by the canonical format name.
	format, err := export.ParseFormat(raw)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	opts := s.opts
	opts.Formats = []string{string(format)}
	result, err := s.runner.Execute(r.Context(), d.Descriptor, opts)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	data := result.Artifacts[string(format)]
	w.Header().Set("Content-Type", contentType(string(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// statusFor maps structured error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeDiagramNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDirection, errors.ErrCodeInvalidShape,
		errors.ErrCodeInvalidLineStyle, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidID,
		errors.ErrCodeDuplicateID, errors.ErrCodeUnknownReference, errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// contentType maps canonical output formats to response content types.
func contentType(format string) string {
	switch format {
	case "drawio":
		return "application/xml; charset=utf-8"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
