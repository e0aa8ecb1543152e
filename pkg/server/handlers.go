package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// handleIndex renders the catalog server-side through the engine.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := s.view.render(r.Context(), s.library.Snapshot())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// handleSnapshot returns the current catalog as a JSON snapshot. The
// configured poll cadence is advertised so polling clients without a feed
// connection know how often to come back.
func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("X-Poll-Interval", strconv.Itoa(int(s.pollInterval.Seconds())))
	writeJSON(w, http.StatusOK, s.library.Snapshot())
}

// createRequest is the POST /api/apps payload.
type createRequest struct {
	Title       string `json:"title"`
	ThumbKey    string `json:"thumbKey"`
	Description string `json:"description"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	app := s.library.Add(req.Title, req.ThumbKey, req.Description)
	s.logger.Info("app added", "id", app.ID, "title", app.Title)
	writeJSON(w, http.StatusCreated, app)
}

// renameRequest is the PATCH /api/apps/{id} payload.
type renameRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid app id")
		return
	}
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if !s.library.Rename(id, req.Title) {
		writeError(w, http.StatusNotFound, "app not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid app id")
		return
	}
	if !s.library.Remove(id) {
		writeError(w, http.StatusNotFound, "app not found")
		return
	}
	s.logger.Info("app removed", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
