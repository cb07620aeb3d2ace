// internal/httpserver/routes_leaderboard.go
//
// HTTP routes for the daily leaderboard.
//   - GET /leaderboard          → top results for today (or ?date=YYYY-MM-DD)
//   - GET /leaderboard/me       → best score and games recorded for the caller
//
// Results are written by handleRoll when a game finishes; these routes only read.

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bowling/internal/results"
)

func (s *Server) mountLeaderboard(r chi.Router) {
	r.Route("/leaderboard", func(r chi.Router) {
		r.Get("/", s.handleLeaderboard)
		r.With(s.withOptionalAuth()).Get("/me", s.handleMyBest)
	})
}

type lbRes struct {
	Date string          `json:"date"`
	Top  []results.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
// ?limit is capped at the configured limit.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = results.DateKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return
	}

	limit := s.cfg.Leaderboard.Limit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < limit {
			limit = n
		}
	}

	rows, err := s.results.Leaderboard(r.Context(), date, limit)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}

type myBestRes struct {
	PlayerID string `json:"playerId"`
	Best     int    `json:"best"`
	Games    int    `json:"games"`
}

func (s *Server) handleMyBest(w http.ResponseWriter, r *http.Request) {
	player := s.playerID(r)
	if player == "" {
		writeJSON(w, http.StatusOK, myBestRes{})
		return
	}
	best, games, err := s.results.PlayerBest(r.Context(), player)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, myBestRes{PlayerID: player, Best: best, Games: games})
}
