package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/rankr/internal/domain/model"
	"github.com/okian/rankr/internal/domain/selection"
	"github.com/okian/rankr/internal/domain/tournament"
	"github.com/okian/rankr/internal/domain/types"
)

// Selection bounds reported by the catalog endpoint.
const (
	minItems = selection.MinItems
	maxItems = selection.MaxItems
)

// Request bodies are tiny; anything larger is rejected.
const maxBodyBytes = 64 << 10

// SessionHandler serves the tournament session routes.
type SessionHandler struct {
	deps Dependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps Dependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

// voteRequest mirrors the OpenAPI schema for POST /sessions/{id}/votes.
type voteRequest struct {
	Left   string `json:"left"`
	Right  string `json:"right"`
	Choice string `json:"choice"`
}

func (v voteRequest) validate() error {
	switch {
	case strings.TrimSpace(v.Left) == "":
		return fmt.Errorf("%w: missing left", ErrBadRequest)
	case strings.TrimSpace(v.Right) == "":
		return fmt.Errorf("%w: missing right", ErrBadRequest)
	case strings.TrimSpace(v.Choice) == "":
		return fmt.Errorf("%w: missing choice", ErrBadRequest)
	}
	return nil
}

type exportResponse struct {
	Path string `json:"path"`
}

// HandleCreate handles POST /sessions requests.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var sel model.Selection
	if err := decodeBody(r, &sel); err != nil {
		writeDomainError(w, err)
		return
	}
	sess, err := h.deps.CreateSession(r.Context(), sel)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, sess)
}

// HandleGet handles GET /sessions/{id} requests.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	sess, err := h.deps.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// HandleDelete handles DELETE /sessions/{id} requests.
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.deps.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetPair handles GET /sessions/{id}/pair requests.
func (h *SessionHandler) HandleGetPair(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	pair, err := h.deps.CurrentPair(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

// HandleVote handles POST /sessions/{id}/votes requests. The body names the
// pair being voted on so a retried request cannot land on the next pair.
func (h *SessionHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req voteRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeDomainError(w, err)
		return
	}
	choice, err := tournament.ParseChoice(req.Choice)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	sess, err := h.deps.Vote(r.Context(), id, types.PairView{Left: req.Left, Right: req.Right}, choice)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// HandleBack handles POST /sessions/{id}/back requests.
func (h *SessionHandler) HandleBack(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	sess, err := h.deps.Back(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// HandleGetRanking handles GET /sessions/{id}/ranking requests.
// Clients accepting text/csv receive the export table instead of JSON.
func (h *SessionHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "text/csv") {
		h.writeCSV(w, r, id)
		return
	}
	standings, err := h.deps.Ranking(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

func (h *SessionHandler) writeCSV(w http.ResponseWriter, r *http.Request, id string) {
	// Check first so a not-finished session still gets a JSON error body.
	if _, err := h.deps.Ranking(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ranking.csv"`)
	w.WriteHeader(http.StatusOK)
	_ = h.deps.WriteRanking(r.Context(), id, w)
}

// HandleExport handles POST /sessions/{id}/export requests.
func (h *SessionHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	path, err := h.deps.Export(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Path: path})
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingSession)
		return "", false
	}
	return id, true
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", ErrBadRequest, err)
	}
	return nil
}
