// internal/httpserver/server.go
//
// HTTP server wiring for `wordle serve`.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/alphabet".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/{id}.
//   - Daily endpoints: POST /daily/new, GET /daily (routes_daily.go).
//
// Notes:
//   - Every game lives in its own session; sessions never share state.
//   - A new game returns a signed token; guess/view require it as a
//     bearer token and it only opens the game it was issued for.
//   - Sessions older than the token TTL are swept periodically.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
	"github.com/robalobadob/wordle/apps/go-cli/internal/session"
	"github.com/robalobadob/wordle/apps/go-cli/internal/store"
	"github.com/robalobadob/wordle/apps/go-cli/internal/words"
)

// Options configures a Server.
type Options struct {
	MaxAttempts  int
	DailySalt    string
	JWTSecret    string
	TokenTTL     time.Duration
	ClientOrigin string
}

// Server bundles router, session store and the candidate pool.
type Server struct {
	r      *chi.Mux
	store  store.Store
	pool   *words.Pool
	opts   Options
	tokens *tokenIssuer
	now    func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, pool *words.Pool, opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		pool:   pool,
		opts:   opts,
		tokens: newTokenIssuer(opts.JWTSecret, opts.TokenTTL),
		now:    time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-go","endpoints":["/health","/alphabet","POST /game/new","POST /game/guess","GET /game/{id}","POST /daily/new","GET /daily"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/alphabet", s.handleAlphabet)

	s.r.Post("/game/new", s.handleNewGame)
	s.r.With(s.requireGameToken).Post("/game/guess", s.handleGuess)
	s.r.With(s.requireGameToken).Get("/game/{id}", s.handleView)

	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	go s.sweepLoop(ctx)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// sweepLoop drops sessions whose tokens have expired.
func (s *Server) sweepLoop(ctx context.Context) {
	t := time.NewTicker(max(s.opts.TokenTTL/4, time.Minute))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.store.Sweep(ctx, s.now().Add(-s.opts.TokenTTL))
			if err != nil {
				log.Warn().Err(err).Msg("sweep sessions")
			} else if n > 0 {
				log.Info().Int("sessions", n).Msg("swept expired sessions")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
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
}

// accessLog logs method, path, status and latency.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

type alphabetRes struct {
	Language string   `json:"language"`
	Length   int      `json:"length"`
	Letters  []string `json:"letters"`
}

func (s *Server) handleAlphabet(w http.ResponseWriter, r *http.Request) {
	letters := s.pool.Alphabet().Letters()
	out := alphabetRes{Language: s.pool.Language, Length: s.pool.Length, Letters: make([]string, len(letters))}
	for i, l := range letters {
		out.Letters[i] = string(l)
	}
	writeJSON(w, http.StatusOK, out)
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Daily bool `json:"daily"`
}
type newGameRes struct {
	GameID      string `json:"gameId"`
	Token       string `json:"token"`
	Length      int    `json:"length"`
	MaxAttempts int    `json:"maxAttempts"`
	Date        string `json:"date,omitempty"`
}

// handleNewGame creates a session with a random (or daily) answer.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	s.startGame(w, r, req.Daily)
}

func (s *Server) startGame(w http.ResponseWriter, r *http.Request, daily bool) {
	var (
		sess *session.Session
		err  error
	)
	if daily {
		sess, err = session.NewDaily(s.pool, s.opts.MaxAttempts, s.now(), s.opts.DailySalt)
	} else {
		sess, err = session.New(s.pool, s.opts.MaxAttempts)
	}
	if err != nil {
		log.Error().Err(err).Msg("new session")
		writeError(w, http.StatusInternalServerError, "new_game_failed", "")
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	tok, err := s.tokens.sign(sess.ID, s.now())
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed", "")
		return
	}

	v := sess.View()
	log.Info().Str("gameId", sess.ID).Bool("daily", daily).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{
		GameID:      sess.ID,
		Token:       tok,
		Length:      v.Length,
		MaxAttempts: v.MaxAttempts,
		Date:        sess.Date,
	})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type markDTO struct {
	Letter string            `json:"letter"`
	Status game.LetterStatus `json:"status"`
}

type guessRes struct {
	Marks     []markDTO                    `json:"marks"`
	State     game.Status                  `json:"state"`
	Remaining int                          `json:"remaining"`
	Letters   map[string]game.LetterStatus `json:"letters"`
	Solution  string                       `json:"solution,omitempty"`
}

func marks(row game.FeedbackRow) []markDTO {
	out := make([]markDTO, len(row))
	for i, m := range row {
		out[i] = markDTO{Letter: string(m.Letter), Status: m.Status}
	}
	return out
}

// handleGuess validates and applies a guess to the caller's session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	sess, ok := s.sessionFor(w, r, req.GameID)
	if !ok {
		return
	}

	row, st, err := sess.Play(req.Guess)
	var rej *game.RejectError
	switch {
	case errors.As(err, &rej):
		writeError(w, http.StatusUnprocessableEntity, "invalid_guess", rej.Error())
		return
	case errors.Is(err, game.ErrGameAlreadyOver):
		writeError(w, http.StatusConflict, "game_over", "")
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", sess.ID).Msg("play")
		writeError(w, http.StatusBadRequest, "bad_guess", err.Error())
		return
	}

	v := sess.View()
	if st.Over() {
		log.Info().Str("gameId", sess.ID).Str("state", st.String()).Int("guesses", len(v.History)).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, guessRes{
		Marks:     marks(row),
		State:     st,
		Remaining: v.Remaining,
		Letters:   v.Letters,
		Solution:  v.Solution,
	})
}

type turnDTO struct {
	Guess string    `json:"guess"`
	Marks []markDTO `json:"marks"`
}

type viewRes struct {
	GameID      string                       `json:"gameId"`
	Language    string                       `json:"language"`
	Date        string                       `json:"date,omitempty"`
	Length      int                          `json:"length"`
	MaxAttempts int                          `json:"maxAttempts"`
	Remaining   int                          `json:"remaining"`
	State       game.Status                  `json:"state"`
	History     []turnDTO                    `json:"history"`
	Letters     map[string]game.LetterStatus `json:"letters"`
	Solution    string                       `json:"solution,omitempty"`
}

// handleView returns the full state of the caller's session.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	v := sess.View()
	out := viewRes{
		GameID:      v.ID,
		Language:    v.Language,
		Date:        v.Date,
		Length:      v.Length,
		MaxAttempts: v.MaxAttempts,
		Remaining:   v.Remaining,
		State:       v.Status,
		History:     make([]turnDTO, len(v.History)),
		Letters:     v.Letters,
		Solution:    v.Solution,
	}
	for i, t := range v.History {
		out.History[i] = turnDTO{Guess: t.Guess, Marks: marks(t.Feedback)}
	}
	writeJSON(w, http.StatusOK, out)
}

// sessionFor loads the session for id after checking the bearer token owns it.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request, id string) (*session.Session, bool) {
	if id == "" || id != tokenGameID(r) {
		writeError(w, http.StatusForbidden, "forbidden", "")
		return nil, false
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return nil, false
	}
	return sess, true
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, reason string) {
	body := map[string]string{"error": errCode}
	if reason != "" {
		body["reason"] = reason
	}
	writeJSON(w, code, body)
}
