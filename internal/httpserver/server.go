// internal/httpserver/server.go
//
// HTTP server wiring for the bowling backend.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, access log, JSON, CORS).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Game endpoints (optional auth): POST /games, POST /games/{id}/rolls, GET /games/{id}.
//   - Leaderboard endpoints: mounted under /leaderboard.
//   - Auth + profile endpoints (require auth): /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Live game state goes through store.Store (memory or sqlite).
//   - The games table keeps ownership and progress for history/stats; writes to it
//     are best effort and never fail a roll.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bowling/internal/config"
	"github.com/robalobadob/bowling/internal/game"
	"github.com/robalobadob/bowling/internal/metrics"
	"github.com/robalobadob/bowling/internal/results"
	"github.com/robalobadob/bowling/internal/store"
)

// Server bundles router, game store, and DB handle.
type Server struct {
	r       *chi.Mux
	cfg     *config.Config
	store   store.Store
	db      *sql.DB
	results *results.Store
	tokens  *tokenIssuer

	gameMu sync.Mutex // guards games handed out by the memory store
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, st store.Store, db *sql.DB) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		store:   st,
		db:      db,
		results: results.NewStore(db),
		tokens:  newTokenIssuer(cfg),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.GetRequestTimeout()))
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(s.cors)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "bowling-go",
			"endpoints": []string{"/health", "/metrics", "POST /games", "POST /games/{id}/rolls", "GET /games/{id}", "/leaderboard", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Game endpoints: optional auth, guests can play
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/games", s.handleNewGame)
		r.Get("/games/{id}", s.handleGetGame)
		r.Post("/games/{id}/rolls", s.handleRoll)
	})

	s.mountLeaderboard(s.r)
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.Server.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// ------------------------------ GAME ---------------------------------------

type newGameRes struct {
	GameID string `json:"gameId"`
}

// gameView is the response shape for game reads and rolls.
type gameView struct {
	GameID       string       `json:"gameId"`
	State        game.State   `json:"state"`
	Turn         int          `json:"turn"`
	Score        int          `json:"score"`
	PinsStanding int          `json:"pinsStanding"`
	Frames       []game.Frame `json:"frames"`
}

func viewOf(g *game.Game) gameView {
	return gameView{
		GameID:       g.ID,
		State:        g.State(),
		Turn:         g.CurrentTurn(),
		Score:        g.Score(),
		PinsStanding: g.PinsStanding(),
		Frames:       g.Frames(),
	}
}

// handleNewGame creates a game and records its owner (user or anonymous ID).
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g := game.New()
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	metrics.GameStarted()

	now := time.Now().UTC().Format(time.RFC3339)
	if me := userFrom(r); me != nil {
		if _, err := s.db.ExecContext(r.Context(), `INSERT INTO games (id, user_id, started_at, status) VALUES (?,?,?,?)`,
			g.ID, me.ID, now, string(g.State())); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert user game row")
		}
	} else {
		anon := s.ensureAnonID(w, r)
		if _, err := s.db.ExecContext(r.Context(), `INSERT INTO games (id, anonymous_id, started_at, status) VALUES (?,?,?,?)`,
			g.ID, anon, now, string(g.State())); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert anon game row")
		}
	}

	writeJSON(w, http.StatusCreated, newGameRes{GameID: g.ID})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	s.gameMu.Lock()
	defer s.gameMu.Unlock()

	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(g))
}

type rollReq struct {
	Pins *int `json:"pins"`
}

// handleRoll validates a throw against the pins standing, applies it,
// persists, and on the last throw records the result.
func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	var req rollReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pins == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	s.gameMu.Lock()
	defer s.gameMu.Unlock()

	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	if !s.ownsGame(r, g.ID) {
		writeError(w, http.StatusForbidden, "not_your_game")
		return
	}
	if g.HasFinished() {
		writeError(w, http.StatusConflict, "game_finished")
		return
	}
	if err := game.ValidatePins(*req.Pins, g.PinsStanding()); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_pins")
		return
	}

	turn := g.CurrentTurn()
	if err := g.AddTry(*req.Pins); err != nil {
		if errors.Is(err, game.ErrGameHasFinished) || errors.Is(err, game.ErrTurnHasFinished) {
			writeError(w, http.StatusConflict, "game_finished")
			return
		}
		log.Error().Err(err).Str("gameId", g.ID).Msg("add try")
		writeError(w, http.StatusInternalServerError, "roll_failed")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	metrics.Rolled(g.Turns()[turn-1].Kind())

	s.recordProgress(r, g)
	writeJSON(w, http.StatusOK, viewOf(g))
}

// ownsGame reports whether the caller may roll on gameID. Games without an
// owner row are open to anyone.
func (s *Server) ownsGame(r *http.Request, gameID string) bool {
	var userID, anonID sql.NullString
	err := s.db.QueryRowContext(r.Context(), `SELECT user_id, anonymous_id FROM games WHERE id=?`, gameID).Scan(&userID, &anonID)
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	if err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("load game owner")
		return true
	}
	owner := userID.String
	if owner == "" {
		owner = anonID.String
	}
	return owner == "" || owner == s.playerID(r)
}

// recordProgress updates the games row and, once the game is over, writes the
// leaderboard result and the owner's stats. Failures are logged only.
func (s *Server) recordProgress(r *http.Request, g *game.Game) {
	ctx := r.Context()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE games SET throws=?, score=?, status=? WHERE id=?`,
		len(g.Throws()), g.Score(), string(g.State()), g.ID); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("update game row")
	}

	var finished *results.Result
	if g.HasFinished() {
		score, strikes := g.Score(), g.StrikeThrows()
		metrics.GameFinished(score)

		if _, err := tx.ExecContext(ctx, `UPDATE games SET finished_at=? WHERE id=?`,
			time.Now().UTC().Format(time.RFC3339), g.ID); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}

		var userID, anonID sql.NullString
		_ = tx.QueryRowContext(ctx, `SELECT user_id, anonymous_id FROM games WHERE id=?`, g.ID).Scan(&userID, &anonID)
		player := userID.String
		if player == "" {
			player = anonID.String
		}
		if player == "" {
			player = s.playerID(r)
		}
		if userID.String != "" {
			if err := bumpStats(tx, userID.String, score, strikes); err != nil {
				log.Warn().Err(err).Str("user", userID.String).Msg("bump stats")
			}
		}
		finished = &results.Result{
			GameID:   g.ID,
			PlayerID: player,
			Date:     results.DateKey(time.Now()),
			Score:    score,
			Strikes:  strikes,
			Spares:   g.Count(game.Spare),
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit progress")
	}

	if finished != nil {
		if err := s.results.InsertResult(ctx, *finished); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert result")
		}
		log.Info().Str("gameId", g.ID).Str("player", finished.PlayerID).Int("score", finished.Score).Msg("game finished")
	}
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	log.Error().Err(err).Msg("load game")
	writeError(w, http.StatusInternalServerError, "load_failed")
}
