package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bdbt/tipsearch/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request",
		zap.String("query", query.Query),
		zap.Int("limit", query.Limit),
		zap.Int("offset", query.Offset),
	)
	response, err := s.engine.Search(r.Context(), &query)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	suggestions := s.engine.Suggest(q, limit)
	if suggestions == nil {
		suggestions = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string][]string{"trending": s.engine.Trending()})
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
		TipID int    `json:"tip_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.engine.RecordClick(body.Query, body.TipID)
	s.respondJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

func (s *Server) handleUpsertTip(w http.ResponseWriter, r *http.Request) {
	var tip models.Tip
	if err := json.NewDecoder(r.Body).Decode(&tip); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if tip.ID <= 0 {
		s.respondError(w, http.StatusBadRequest, "tip requires a positive id")
		return
	}
	if err := s.storage.UpsertTip(r.Context(), &tip); err != nil {
		s.logger.Error("upsert failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Single-tip index mutation is unsupported; the index is rebuilt whole.
	if err := s.engine.Reindex(r.Context()); err != nil {
		s.logger.Error("reindex after upsert failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{"id": tip.ID, "status": "indexed"})
}

func (s *Server) handleGetTip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid tip id")
		return
	}
	tip, err := s.storage.GetTip(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "tip not found")
		return
	}
	s.respondJSON(w, http.StatusOK, tip)
}

func (s *Server) handleDeleteTip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid tip id")
		return
	}
	if err := s.storage.DeleteTip(r.Context(), id); err != nil {
		s.logger.Error("delete failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.engine.Reindex(r.Context()); err != nil {
		s.logger.Error("reindex after delete failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Reindex(r.Context()); err != nil {
		s.logger.Error("reindex failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, s.engine.Stats())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	tipCount, err := s.storage.CountTips(r.Context())
	if err != nil {
		s.logger.Error("status: count tips failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats := s.engine.Stats()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tips":        tipCount,
		"index_tips":  stats.Tips,
		"index_terms": stats.Terms,
		"built_at":    stats.BuiltAt,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
