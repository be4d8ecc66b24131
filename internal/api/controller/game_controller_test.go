package controller

import (
	"bytes"
	"ctchen222/Tic-Tac-Toe-Solo/internal/api/service"
	"ctchen222/Tic-Tac-Toe-Solo/internal/bot/botmock"
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"ctchen222/Tic-Tac-Toe-Solo/internal/match"
	"ctchen222/Tic-Tac-Toe-Solo/internal/repository"
	"ctchen222/Tic-Tac-Toe-Solo/pkg/proto"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

func newRouter(t *testing.T) (*gin.Engine, *botmock.MockRand) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rng := botmock.NewMockRand(gomock.NewController(t))
	svc := service.NewGameService(repository.NewMemoryGameRepository(), rng, nil)

	r := gin.New()
	NewGameController(svc).RegisterRoutes(r.Group("/api"))
	return r, rng
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func viewOf(t *testing.T, env envelope) proto.GameView {
	t.Helper()
	var v proto.GameView
	require.NoError(t, json.Unmarshal(env.Extras, &v))
	return v
}

func TestGameController(t *testing.T) {
	r, rng := newRouter(t)

	rng.EXPECT().IntN(2).Return(0)
	code, env := do(t, r, http.MethodPost, "/api/games", "")
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)
	created := viewOf(t, env)
	assert.Equal(t, match.AwaitingHuman, created.State)

	base := "/api/games/" + created.ID

	t.Run("Get", func(t *testing.T) {
		code, env := do(t, r, http.MethodGet, base, "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, created.ID, viewOf(t, env).ID)
	})

	t.Run("Unknown game", func(t *testing.T) {
		code, env := do(t, r, http.MethodGet, "/api/games/nope", "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.False(t, env.Success)
	})

	t.Run("Missing column", func(t *testing.T) {
		code, _ := do(t, r, http.MethodPost, base+"/moves", `{"row": 0}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("Out of bounds", func(t *testing.T) {
		code, _ := do(t, r, http.MethodPost, base+"/moves", `{"row": 0, "col": 5}`)
		assert.Equal(t, http.StatusUnprocessableEntity, code)
	})

	t.Run("Computer out of turn", func(t *testing.T) {
		code, _ := do(t, r, http.MethodPost, base+"/computer-move", "")
		assert.Equal(t, http.StatusConflict, code)
	})

	t.Run("Human then computer", func(t *testing.T) {
		code, env := do(t, r, http.MethodPost, base+"/moves", `{"row": 0, "col": 0}`)
		require.Equal(t, http.StatusOK, code)
		v := viewOf(t, env)
		assert.Equal(t, game.Human, v.Board[0][0])
		assert.Equal(t, match.AwaitingComputer, v.State)

		code, _ = do(t, r, http.MethodPost, base+"/moves", `{"row": 0, "col": 1}`)
		assert.Equal(t, http.StatusConflict, code)

		rng.EXPECT().IntN(8).Return(3)
		code, env = do(t, r, http.MethodPost, base+"/computer-move", "")
		require.Equal(t, http.StatusOK, code)
		v = viewOf(t, env)
		assert.Equal(t, game.Computer, v.Board[1][1])
		assert.Equal(t, match.AwaitingHuman, v.State)

		code, _ = do(t, r, http.MethodPost, base+"/moves", `{"row": 1, "col": 1}`)
		assert.Equal(t, http.StatusConflict, code, "occupied cell")
	})

	t.Run("Reset", func(t *testing.T) {
		rng.EXPECT().IntN(2).Return(1)
		code, env := do(t, r, http.MethodPost, base+"/reset", "")
		require.Equal(t, http.StatusOK, code)
		v := viewOf(t, env)
		assert.Equal(t, match.AwaitingComputer, v.State)
		assert.Equal(t, game.None, v.Board[0][0])
	})
}
