package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/askelund/bgastats/internal/format"
	"github.com/askelund/bgastats/internal/logging"
	"github.com/go-chi/chi/v5"
)

// importRequest is the body of POST /api/import. Type is optional; when
// empty the payload format is detected from its structure.
type importRequest struct {
	Data string `json:"data"`
	Type string `json:"type,omitempty"`
}

// handleImport runs one payload through the import pipeline.
// The response body is always the importer's result structure:
// HTTP 200 on success, 400 when the import was rejected or rolled back.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxPayloadSize)

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Info("import requested", "type", req.Type, "bytes", len(req.Data))

	// One import holds a transaction for its whole duration; cap it
	ctx := r.Context()
	if t := s.cfg.Import.Timeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	result := s.importer.Import(ctx, req.Data, format.Format(req.Type))

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result)
}

// handleListFormats returns the import types the pipeline accepts.
func (s *Server) handleListFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]format.Format{"formats": format.All()})
}

// handleHealth reports server and database liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		respondError(w, r, err, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListGames lists known games, placeholders included.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	games, err := s.store.ListGames(r.Context(), limit, offset)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "failed to list games")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

// handleListPlayers lists imported players.
func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	players, err := s.store.ListPlayers(r.Context(), limit, offset)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "failed to list players")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": players})
}

// handleMatchMoves lists one match's stored move timeline by platform
// table id.
func (s *Server) handleMatchMoves(w http.ResponseWriter, r *http.Request) {
	tableID, err := strconv.ParseInt(chi.URLParam(r, "tableID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "table ID must be numeric")
		return
	}

	match, err := s.store.MatchByBGATableID(r.Context(), tableID)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "failed to load match")
		return
	}
	if match == nil {
		writeError(w, http.StatusNotFound, "match not found")
		return
	}

	moves, err := s.store.MatchMoves(r.Context(), match.ID)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "failed to list moves")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"match": match, "moves": moves})
}

// handleScrapeLogin authenticates against the upstream site with the
// configured credentials and saves the session cookies for later pulls.
func (s *Server) handleScrapeLogin(w http.ResponseWriter, r *http.Request) {
	if err := s.scraper.Login(r.Context()); err != nil {
		respondError(w, r, err, http.StatusBadGateway, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"session_saved": true})
}

// handleScrapeSession reports whether a saved scrape session exists.
func (s *Server) handleScrapeSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"session_saved": s.scraper.HasSession()})
}

// handleClearScrapeSession deletes the saved scrape session.
func (s *Server) handleClearScrapeSession(w http.ResponseWriter, r *http.Request) {
	if err := s.scraper.ClearSession(); err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "failed to clear session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"session_saved": false})
}

// handleScrapeGames pulls the game catalog from the upstream site and
// feeds the generated payload straight through the import pipeline.
func (s *Server) handleScrapeGames(w http.ResponseWriter, r *http.Request) {
	payload, err := s.scraper.PullGameList(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusBadGateway, "scrape failed")
		return
	}

	result := s.importer.Import(r.Context(), payload, format.GameList)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result)
}

// pagination reads limit/offset query parameters with sane bounds.
func pagination(r *http.Request) (limit, offset int) {
	limit = 100
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 1000 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
