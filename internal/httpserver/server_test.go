package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-cli/internal/store"
	"github.com/robalobadob/wordle/apps/go-cli/internal/words"
)

type testServer struct {
	t   *testing.T
	srv *Server
	st  store.Store
}

func newTestServer(t *testing.T, answers ...string) *testServer {
	t.Helper()
	if len(answers) == 0 {
		answers = []string{"CRANE"}
	}
	pool, err := words.NewPool("English", 5, answers, []string{"CRATE", "SPEED", "TOILS", "BUMPY"})
	require.NoError(t, err)
	st := store.NewMemoryStore()
	srv := New(st, pool, Options{MaxAttempts: 3, DailySalt: "salt", JWTSecret: "test-secret", TokenTTL: time.Hour})
	return &testServer{t: t, srv: srv, st: st}
}

func (ts *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.srv.Router().ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func (ts *testServer) newGame(body any) (string, string) {
	ts.t.Helper()
	rec, out := ts.do(http.MethodPost, "/game/new", "", body)
	require.Equal(ts.t, http.StatusOK, rec.Code, rec.Body.String())
	return out["gameId"].(string), out["token"].(string)
}

func TestHealthAndAlphabet(t *testing.T) {
	ts := newTestServer(t)

	rec, out := ts.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])

	rec, out = ts.do(http.MethodGet, "/alphabet", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "English", out["language"])
	assert.Contains(t, out["letters"], "Y")
	assert.NotContains(t, out["letters"], "Z")

	rec, out = ts.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", out["error"])
}

func TestGameFlowWin(t *testing.T) {
	ts := newTestServer(t)
	id, tok := ts.newGame(nil)

	rec, out := ts.do(http.MethodPost, "/game/guess", tok, guessReq{GameID: id, Guess: "crate"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "playing", out["state"])
	assert.EqualValues(t, 2, out["remaining"])
	marks := out["marks"].([]any)
	require.Len(t, marks, 5)
	assert.Equal(t, map[string]any{"letter": "T", "status": "absent"}, marks[3])
	assert.Equal(t, "correct", out["letters"].(map[string]any)["C"])
	assert.Nil(t, out["solution"])

	rec, out = ts.do(http.MethodPost, "/game/guess", tok, guessReq{GameID: id, Guess: "NACRE"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_guess", out["error"])
	assert.Equal(t, "NACRE: is not a valid word", out["reason"])

	rec, out = ts.do(http.MethodPost, "/game/guess", tok, guessReq{GameID: id, Guess: "CRANE"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "won", out["state"])
	assert.Equal(t, "CRANE", out["solution"])

	rec, out = ts.do(http.MethodPost, "/game/guess", tok, guessReq{GameID: id, Guess: "CRANE"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "game_over", out["error"])

	rec, out = ts.do(http.MethodGet, "/game/"+id, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "won", out["state"])
	assert.Len(t, out["history"], 2)
	assert.EqualValues(t, 3, out["maxAttempts"])
}

func TestGameFlowLose(t *testing.T) {
	ts := newTestServer(t)
	id, tok := ts.newGame(map[string]bool{"daily": false})

	var out map[string]any
	for _, g := range []string{"SPEED", "TOILS", "BUMPY"} {
		var rec *httptest.ResponseRecorder
		rec, out = ts.do(http.MethodPost, "/game/guess", tok, guessReq{GameID: id, Guess: g})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, "lost", out["state"])
	assert.EqualValues(t, 0, out["remaining"])
	assert.Equal(t, "CRANE", out["solution"])
}

func TestTokenIsBoundToGame(t *testing.T) {
	ts := newTestServer(t)
	id1, tok1 := ts.newGame(nil)
	id2, _ := ts.newGame(nil)

	rec, _ := ts.do(http.MethodPost, "/game/guess", "", guessReq{GameID: id1, Guess: "CRATE"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = ts.do(http.MethodPost, "/game/guess", "garbage", guessReq{GameID: id1, Guess: "CRATE"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = ts.do(http.MethodPost, "/game/guess", tok1, guessReq{GameID: id2, Guess: "CRATE"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/game/"+id2, tok1, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	other := newTokenIssuer("other-secret", time.Hour)
	forged, err := other.sign(id1, time.Now())
	require.NoError(t, err)
	rec, _ = ts.do(http.MethodGet, "/game/"+id1, forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, err := ts.srv.tokens.sign(id1, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	rec, _ = ts.do(http.MethodGet, "/game/"+id1, expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSweptGameIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	id, tok := ts.newGame(nil)
	require.NoError(t, ts.st.Delete(context.Background(), id))

	rec, out := ts.do(http.MethodPost, "/game/guess", tok, guessReq{GameID: id, Guess: "CRATE"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", out["error"])
}

func TestDailyGamesShareTheAnswer(t *testing.T) {
	ts := newTestServer(t, "CRANE", "SLATE", "TRACE", "IRATE", "STARE")
	fixed := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	ts.srv.now = func() time.Time { return fixed }

	rec, out := ts.do(http.MethodPost, "/daily/new", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-10-19", out["date"])
	id1 := out["gameId"].(string)

	rec, out = ts.do(http.MethodPost, "/game/new", "", map[string]bool{"daily": true})
	require.Equal(t, http.StatusOK, rec.Code)
	id2 := out["gameId"].(string)
	assert.NotEqual(t, id1, id2)

	s1, err := ts.st.Get(context.Background(), id1)
	require.NoError(t, err)
	s2, err := ts.st.Get(context.Background(), id2)
	require.NoError(t, err)
	assert.Equal(t, s1.Solution(), s2.Solution())

	rec, out = ts.do(http.MethodGet, "/daily", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-10-19", out["date"])
	assert.EqualValues(t, 5, out["answers"])
}

func TestBadJSON(t *testing.T) {
	ts := newTestServer(t)
	_, tok := ts.newGame(nil)

	req := httptest.NewRequest(http.MethodPost, "/game/guess", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	ts.srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
