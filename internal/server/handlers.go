package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/orbitgen/pkg/degseq"
	"github.com/matzehuels/orbitgen/pkg/errors"
	"github.com/matzehuels/orbitgen/pkg/pipeline"
	"github.com/matzehuels/orbitgen/pkg/render"
)

// GraphsResponse is the body of GET /v1/graphs.
type GraphsResponse struct {
	RunID     string        `json:"run_id"`
	Degrees   []int         `json:"degrees"`
	Count     int           `json:"count"`
	Status    degseq.Status `json:"status"`
	Reason    string        `json:"reason,omitempty"`
	Graphs    []string      `json:"graphs"`
	Graphical bool          `json:"graphical"`
	Cached    bool          `json:"cached"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGraphs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	degrees, err := pipeline.ParseDegrees(q.Get("degrees"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	disconnected, err := boolParam(q.Get("disconnected"), "disconnected")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := intParam(q.Get("max"), "max")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if limit == 0 || limit > s.limit {
		limit = s.limit
	}

	res, err := s.runner.Generate(r.Context(), pipeline.Options{
		Degrees:      degrees,
		Partitioner:  q.Get("partitioner"),
		Disconnected: disconnected,
		MaxResults:   limit,
		Timeout:      s.timeout,
		Logger:       s.logger.With("request", RequestIDFrom(r.Context())),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	body := GraphsResponse{
		RunID:     res.RunID,
		Degrees:   res.Degrees,
		Count:     res.Run.Count,
		Status:    res.Run.Status,
		Reason:    res.Run.Reason,
		Graphs:    make([]string, len(res.Graphs)),
		Graphical: degseq.Sequence(res.Degrees).IsGraphical(),
		Cached:    res.CacheHit,
	}
	for i, g := range res.Graphs {
		body.Graphs[i] = g.String()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleAutomorphisms(w http.ResponseWriter, r *http.Request) {
	g, err := pipeline.ParseGraph(r.URL.Query().Get("graph"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := s.runner.Analyze(r.Context(), g)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

var contentTypes = map[render.Format]string{
	render.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	render.FormatSVG: "image/svg+xml",
	render.FormatPNG: "image/png",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	g, err := pipeline.ParseGraph(q.Get("graph"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	format, err := render.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "format %q", q.Get("format")))
		return
	}
	orbits, err := boolParam(q.Get("orbits"), "orbits")
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := s.runner.Render(r.Context(), g, pipeline.RenderOptions{
		Format:      format,
		ShowDegrees: true,
		ColorOrbits: orbits,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func boolParam(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
	}
	return b, nil
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a non-negative integer, got %q", name, v)
	}
	return n, nil
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

// statusOf maps error codes to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusOf(err), ErrorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
