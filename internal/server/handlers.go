package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/matzehuels/aigkit/pkg/aig"
	"github.com/matzehuels/aigkit/pkg/buildinfo"
	"github.com/matzehuels/aigkit/pkg/engine"
	apperrors "github.com/matzehuels/aigkit/pkg/errors"
	"github.com/matzehuels/aigkit/pkg/export"
	"github.com/matzehuels/aigkit/pkg/suite"
	"github.com/matzehuels/aigkit/pkg/toposort"
)

// maxBodyBytes caps request bodies. Industrial circuits run to megabytes
// of AIGER text; anything past this is rejected rather than buffered.
const maxBodyBytes = 8 << 20

// ============================================================================
// Request / Response Types
// ============================================================================

type infoRequest struct {
	Circuit string `json:"circuit"`
}

type infoResponse struct {
	Hash    string         `json:"hash"`
	Circuit export.Circuit `json:"circuit"`
	Stats   engine.Stats   `json:"stats"`
}

type evalRequest struct {
	Circuit string `json:"circuit"`
	Inputs  string `json:"inputs"`

	// Trace includes the full node value map in the response.
	Trace bool `json:"trace,omitempty"`
}

type evalResponse struct {
	Outputs string          `json:"outputs"`
	Values  map[uint32]bool `json:"values,omitempty"`
}

type cnfRequest struct {
	Circuit string `json:"circuit"`
}

type cnfResponse struct {
	DIMACS  string         `json:"dimacs"`
	Vars    map[uint32]int `json:"vars"`
	NumVars int            `json:"num_vars"`
	Clauses int            `json:"clauses"`
}

type solveRequest struct {
	Circuit string `json:"circuit"`
}

type solveResponse struct {
	Verdict string          `json:"verdict"`
	Model   map[uint32]bool `json:"model,omitempty"`
	Cached  bool            `json:"cached"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ============================================================================
// Handlers
// ============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	var req infoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	c, err := s.loadCircuit(r, req.Circuit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	stats, err := s.runner.Stats(c)
	if err != nil {
		s.writeError(w, classify(err))
		return
	}
	s.writeJSON(w, http.StatusOK, infoResponse{
		Hash:    c.Hash,
		Circuit: export.FromFile(c.File),
		Stats:   stats,
	})
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req evalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	c, err := s.loadCircuit(r, req.Circuit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	inputs, err := suite.ParseVector(req.Inputs)
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidVector, err, "parsing inputs"))
		return
	}

	values, err := c.Graph().Eval(inputs)
	if err != nil {
		s.writeError(w, classify(err))
		return
	}
	outs, err := c.Graph().OutputValues(values)
	if err != nil {
		s.writeError(w, classify(err))
		return
	}

	resp := evalResponse{Outputs: suite.FormatVector(outs)}
	if req.Trace {
		resp.Values = values
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCNF(w http.ResponseWriter, r *http.Request) {
	var req cnfRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	c, err := s.loadCircuit(r, req.Circuit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	f, err := s.runner.Encode(r.Context(), c)
	if err != nil {
		s.writeError(w, classify(err))
		return
	}

	var buf bytes.Buffer
	if err := f.WriteDIMACS(&buf); err != nil {
		s.writeError(w, classify(err))
		return
	}
	s.writeJSON(w, http.StatusOK, cnfResponse{
		DIMACS:  buf.String(),
		Vars:    f.Vars,
		NumVars: f.NumVars,
		Clauses: f.NumClauses(),
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	c, err := s.loadCircuit(r, req.Circuit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, cached, err := s.runner.SolveWithCacheInfo(r.Context(), c)
	if err != nil {
		s.writeError(w, classify(err))
		return
	}
	s.writeJSON(w, http.StatusOK, solveResponse{
		Verdict: res.Verdict.String(),
		Model:   res.Model,
		Cached:  cached,
	})
}

// ============================================================================
// Helpers
// ============================================================================

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decoding request body")
	}
	return nil
}

// loadCircuit parses the AIGER text carried in a request.
func (s *Server) loadCircuit(r *http.Request, text string) (*engine.Circuit, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "circuit is required")
	}
	c, err := s.runner.LoadBytes(r.Context(), []byte(text), "request")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidCircuit, err, "parsing circuit")
	}
	return c, nil
}

// classify maps library sentinels onto coded errors so the envelope
// carries the right code and status. Already coded errors pass through.
func classify(err error) error {
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		return err
	}
	switch {
	case errors.Is(err, toposort.ErrCycle):
		return apperrors.Wrap(apperrors.ErrCodeCycle, err, "circuit has a combinational cycle")
	case errors.Is(err, aig.ErrHasLatches):
		return apperrors.Wrap(apperrors.ErrCodeUnsupported, err, "operation requires a combinational circuit")
	case errors.Is(err, aig.ErrInputWidth):
		return apperrors.Wrap(apperrors.ErrCodeInvalidVector, err, "input vector width mismatch")
	case errors.Is(err, aig.ErrDanglingRef):
		return apperrors.Wrap(apperrors.ErrCodeInvalidCircuit, err, "circuit references missing nodes")
	}
	return apperrors.Wrap(apperrors.ErrCodeInternal, err, "internal error")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	status := apperrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	}})
}
