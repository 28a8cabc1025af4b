package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chriserin/specdraw/internal/db"
	"github.com/chriserin/specdraw/internal/diagram"
	"github.com/chriserin/specdraw/internal/llm"
	"github.com/chriserin/specdraw/internal/parser"
)

type markdownRequest struct {
	Markdown string `json:"markdown"`
}

type parseResponse struct {
	ID          int64                 `json:"id,omitempty"`
	Spec        *parser.Specification `json:"spec"`
	Diagnostics []parser.ParseError   `json:"diagnostics"`
	Source      llm.Source            `json:"source"`
}

type diagramsResponse struct {
	diagram.Diagrams
	ParsedSpec *parser.Specification `json:"parsed_spec"`
}

type sequenceRequest struct {
	UseCaseID   string                `json:"use_case_id"`
	UseCaseData *parser.UseCase       `json:"use_case_data"`
	Markdown    string                `json:"markdown"`
	ParsedSpec  *parser.Specification `json:"parsed_spec"`
}

type codeRequest struct {
	ParsedSpec *parser.Specification `json:"parsed_spec"`
	Diagrams   diagramsResponse      `json:"diagrams"`
}

// POST /api/parse
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req markdownRequest
	if !decode(w, r, &req) {
		return
	}
	resp := s.parse(r.Context(), req.Markdown)
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/generate-diagrams
func (s *Server) handleGenerateDiagrams(w http.ResponseWriter, r *http.Request) {
	var req markdownRequest
	if !decode(w, r, &req) {
		return
	}
	parsed := s.parse(r.Context(), req.Markdown)
	writeJSON(w, http.StatusOK, diagramsResponse{
		Diagrams:   s.diagrams.All(r.Context(), parsed.Spec),
		ParsedSpec: parsed.Spec,
	})
}

// POST /api/generate-sequence-diagram
func (s *Server) handleGenerateSequence(w http.ResponseWriter, r *http.Request) {
	var req sequenceRequest
	if !decode(w, r, &req) {
		return
	}

	spec := req.ParsedSpec
	switch {
	case spec != nil:
		parser.Normalize(spec)
	case req.Markdown != "":
		spec = s.parse(r.Context(), req.Markdown).Spec
	default:
		spec = &parser.Specification{}
		parser.Normalize(spec)
	}

	uc := req.UseCaseData
	if uc == nil {
		uc = spec.UseCaseByID(req.UseCaseID)
	}
	if uc == nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("use case %q not found", req.UseCaseID))
		return
	}

	s.logger.Info("Generating sequence diagram", "use_case_id", req.UseCaseID)
	writeJSON(w, http.StatusOK, map[string]string{
		"mermaid": s.diagrams.Sequence(r.Context(), uc, spec),
	})
}

// POST /api/generate-code
func (s *Server) handleGenerateCode(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !decode(w, r, &req) {
		return
	}

	spec := req.ParsedSpec
	if spec == nil {
		spec = req.Diagrams.ParsedSpec
	}
	if spec == nil {
		spec = &parser.Specification{}
	}
	parser.Normalize(spec)

	files, err := s.code.Generate(r.Context(), spec, req.Diagrams.Diagrams)
	if err != nil {
		s.logger.Error("Error generating code", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// GET /api/history
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit: "+raw)
			return
		}
		limit = n
	}

	records, err := s.opts.Store.ListParses(r.Context(), limit)
	if err != nil {
		s.logger.Error("Error listing history", "error", err)
		writeError(w, http.StatusInternalServerError, "listing history failed")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// GET /api/history/{id}
func (s *Server) handleHistoryItem(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id: "+raw)
		return
	}

	record, err := s.opts.Store.GetParse(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("Error reading history", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "reading history failed")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// GET /config/status
func (s *Server) handleConfigStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Status)
}

// parse runs the SpecParser, records metrics and stores the result when a
// store is configured. Storage failures are logged, never returned.
func (s *Server) parse(ctx context.Context, markdown string) parseResponse {
	spec, diags, source := s.specs.Parse(ctx, markdown)
	if diags == nil {
		diags = []parser.ParseError{}
	}

	s.metrics.ObserveParse(string(source), len(diags))
	if s.opts.Completer != nil && source == llm.SourceRegex {
		s.metrics.LLMFallbacksTotal.WithLabelValues("parse").Inc()
	}

	resp := parseResponse{Spec: spec, Diagnostics: diags, Source: source}
	if s.opts.Store != nil {
		id, err := s.opts.Store.SaveParse(ctx, string(source), spec)
		if err != nil {
			s.logger.Error("Error saving parse", "error", err)
		} else {
			resp.ID = id
		}
	}
	return resp
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
