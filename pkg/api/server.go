// Package api exposes the tally pipeline over HTTP.
//
// The server is a thin shell around [pipeline.Runner]: it decodes requests,
// executes the pipeline, and maps structured errors to status codes. Routes:
//
//	GET  /healthz   - liveness probe
//	POST /v1/tally  - full tally, returns the JSON report
//	POST /v1/pairs  - tabulation only, returns the margin groups
package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pairlock/pkg/buildinfo"
	"github.com/matzehuels/pairlock/pkg/election"
	"github.com/matzehuels/pairlock/pkg/errors"
	"github.com/matzehuels/pairlock/pkg/pipeline"
)

// Server handles HTTP requests for tally operations.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server backed by the given runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/tally", s.handleTally)
		r.Post("/pairs", s.handlePairs)
	})

	return r
}

// tallyRequest is the body for POST /v1/tally and POST /v1/pairs.
type tallyRequest struct {
	Ballots      [][]int  `json:"ballots"`
	Candidates   int      `json:"candidates"`
	Names        []string `json:"names,omitempty"`
	Title        string   `json:"title,omitempty"`
	Workers      int      `json:"workers,omitempty"`
	MaxGroupSize int      `json:"max_group_size,omitempty"`
	Detailed     bool     `json:"detailed,omitempty"`
	Refresh      bool     `json:"refresh,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleTally(w http.ResponseWriter, r *http.Request) {
	var req tallyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Ballots:      req.Ballots,
		Candidates:   req.Candidates,
		Names:        req.Names,
		Title:        req.Title,
		Workers:      req.Workers,
		MaxGroupSize: req.MaxGroupSize,
		Detailed:     req.Detailed,
		Refresh:      req.Refresh,
		Formats:      []string{pipeline.FormatJSON},
		Logger:       s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("X-Run-Id", result.RunID)
	if result.CacheInfo.TallyHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
}

// pairsResponse is the body returned by POST /v1/pairs.
type pairsResponse struct {
	Candidates int          `json:"candidates"`
	Victories  []pairsGroup `json:"victories"`
}

type pairsGroup struct {
	Margin int      `json:"margin"`
	Pairs  [][2]int `json:"pairs"` // [winner, loser]
}

func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	var req tallyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}

	tab, err := election.Tabulate(req.Ballots, req.Candidates)
	if err != nil {
		switch {
		case stderrors.Is(err, election.ErrInvalidCandidate):
			writeError(w, errors.Wrap(errors.ErrCodeInvalidCandidate, err, "ballot validation failed"))
		case stderrors.Is(err, election.ErrInvalidBallot):
			writeError(w, errors.Wrap(errors.ErrCodeInvalidBallot, err, "ballot validation failed"))
		default:
			writeError(w, err)
		}
		return
	}

	resp := pairsResponse{
		Candidates: tab.Candidates(),
		Victories:  make([]pairsGroup, 0, tab.GroupCount()),
	}
	for _, m := range tab.Margins() {
		group := pairsGroup{Margin: m}
		for _, e := range tab.Group(m) {
			group.Pairs = append(group.Pairs, [2]int{e.From, e.To})
		}
		resp.Victories = append(resp.Victories, group)
	}

	writeJSON(w, http.StatusOK, resp)
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps a structured error to an HTTP status and JSON body.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidBallot,
		errors.ErrCodeInvalidCandidate, errors.ErrCodeInvalidElection,
		errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeTooManyBranches:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
