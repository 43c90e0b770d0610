// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
//   - POST /daily/new → start a game whose answer is the word of the day.
//   - GET  /daily     → today's date key and the answer-pool size.
//
// The answer is picked by daily.WordIndex(date, salt); guesses go through
// the normal /game/guess route with the returned token.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/apps/go-cli/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Post("/new", func(w http.ResponseWriter, r *http.Request) {
			s.startGame(w, r, true)
		})
	})
}

type dailyInfoRes struct {
	Date    string `json:"date"`
	Answers int    `json:"answers"`
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	answers, _ := s.pool.Stats()
	writeJSON(w, http.StatusOK, dailyInfoRes{Date: daily.DateKey(s.now()), Answers: answers})
}
