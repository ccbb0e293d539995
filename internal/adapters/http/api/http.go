// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/rankr/internal/domain/model"
	"github.com/okian/rankr/internal/domain/tournament"
	"github.com/okian/rankr/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Catalog() []string

	CreateSession(ctx context.Context, sel model.Selection) (model.Session, error)
	Get(ctx context.Context, id string) (model.Session, error)
	Delete(ctx context.Context, id string) error

	CurrentPair(ctx context.Context, id string) (types.PairView, error)
	Vote(ctx context.Context, id string, pair types.PairView, choice tournament.Choice) (model.Session, error)
	Back(ctx context.Context, id string) (model.Session, error)

	Ranking(ctx context.Context, id string) ([]Entry, error)
	WriteRanking(ctx context.Context, id string, w io.Writer) error
	Export(ctx context.Context, id string) (string, error)
}

// Entry mirrors the read shape of one ranking row.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	catalogHandler *CatalogHandler
	sessionHandler *SessionHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		catalogHandler: NewCatalogHandler(deps),
		sessionHandler: NewSessionHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	sh := s.sessionHandler
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /catalog", MetricsMiddleware(s.catalogHandler.HandleGetCatalog, "catalog"))

	mux.HandleFunc("POST /sessions", MetricsMiddleware(sh.HandleCreate, "sessions"))
	mux.HandleFunc("GET /sessions/{id}", MetricsMiddleware(sh.HandleGet, "session"))
	mux.HandleFunc("DELETE /sessions/{id}", MetricsMiddleware(sh.HandleDelete, "session"))
	mux.HandleFunc("GET /sessions/{id}/pair", MetricsMiddleware(sh.HandleGetPair, "pair"))
	mux.HandleFunc("POST /sessions/{id}/votes", MetricsMiddleware(sh.HandleVote, "votes"))
	mux.HandleFunc("POST /sessions/{id}/back", MetricsMiddleware(sh.HandleBack, "back"))
	mux.HandleFunc("GET /sessions/{id}/ranking", MetricsMiddleware(sh.HandleGetRanking, "ranking"))
	mux.HandleFunc("POST /sessions/{id}/export", MetricsMiddleware(sh.HandleExport, "export"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	if s, ok := w.(errorCodeSetter); ok {
		s.setErrorCode(code)
	}
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates an upstream error into its HTTP status and code.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
