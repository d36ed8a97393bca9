package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccerscope/soccerscope/internal/dataset"
	"github.com/soccerscope/soccerscope/internal/models"
	"github.com/soccerscope/soccerscope/internal/session"
	"github.com/soccerscope/soccerscope/internal/websocket"
)

func handlerPlayer(id int64, name, squad, subPosition string, marketValue int64, minutes float64) models.Player {
	return models.Player{
		ID:           id,
		Name:         name,
		Squad:        squad,
		SubPosition:  subPosition,
		Bucket:       models.BucketForSubPosition(subPosition),
		MarketValue:  marketValue,
		TotalMinutes: minutes,
		Stats:        map[models.StatCategory]float64{models.CategoryGls: float64(id)},
		Ranks:        map[models.StatCategory]float64{models.CategoryGls: float64(id)},
		Norms:        map[models.StatCategory]float64{models.CategoryGls: float64(id) / 10},
	}
}

func sessionRouter() (*gin.Engine, *session.Manager) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	pool := dataset.NewPool([]models.Player{
		handlerPlayer(1, "Alpha Keeper", "Test FC", models.SubPositionGoalkeeper, 10, 2800),
		handlerPlayer(2, "Bravo Wing", "Test FC", models.SubPositionLeftWinger, 100, 2500),
		handlerPlayer(3, "Charlie Forward", "Test FC", models.SubPositionCentreForward, 120, 2400),
		handlerPlayer(4, "Delta Sub", "Test FC", models.SubPositionSecondStriker, 60, 700),
	})

	sessions := session.NewManager(pool, logger)
	handler := NewSessionHandler(sessions, websocket.NewHub(logger))

	router := gin.New()
	router.POST("/sessions", handler.CreateSession)
	router.GET("/sessions/:id", handler.GetSession)
	router.DELETE("/sessions/:id", handler.DeleteSession)
	router.PUT("/sessions/:id/team", handler.SetTeam)
	router.POST("/sessions/:id/players", handler.AddPlayer)
	router.POST("/sessions/:id/categories/:key/toggle", handler.ToggleCategory)
	router.POST("/sessions/:id/drag", handler.PickUp)
	router.POST("/sessions/:id/drop", handler.Drop)
	router.GET("/sessions/:id/chart", handler.GetChart)
	return router, sessions
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Notice  string          `json:"notice"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestCreateSession_WithTeamSeedsLineup(t *testing.T) {
	router, _ := sessionRouter()

	code, env := doJSON(t, router, http.MethodPost, "/sessions", gin.H{"team": "Test FC"})

	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var view session.View
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Test FC", view.Team)
	assert.Equal(t, []int64{1}, view.Manual)
}

func TestGetSession_UnknownID(t *testing.T) {
	router, _ := sessionRouter()

	code, env := doJSON(t, router, http.MethodGet, "/sessions/nope", nil)

	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestSetTeam_UnknownTeamReturnsNotice(t *testing.T) {
	router, sessions := sessionRouter()
	s := sessions.Create("")

	code, env := doJSON(t, router, http.MethodPut, "/sessions/"+s.ID()+"/team", gin.H{"team": "Nowhere FC"})

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Notice)
}

func TestToggleCategory_SixthReturnsConflict(t *testing.T) {
	router, sessions := sessionRouter()
	s := sessions.Create("Test FC")

	active := []models.StatCategory{
		models.CategoryGls, models.CategoryAst, models.CategoryXG,
		models.CategorySoT, models.CategoryInt,
	}
	for _, c := range active {
		code, env := doJSON(t, router, http.MethodPost,
			fmt.Sprintf("/sessions/%s/categories/%s/toggle", s.ID(), c), nil)
		require.Equal(t, http.StatusOK, code)
		require.True(t, env.Success)
	}

	code, env := doJSON(t, router, http.MethodPost,
		"/sessions/"+s.ID()+"/categories/Recov/toggle", nil)

	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SELECTION_LIMIT", env.Error.Code)
	assert.Equal(t, active, s.View().Categories)
}

func TestToggleCategory_UnknownKeyIsBadRequest(t *testing.T) {
	router, sessions := sessionRouter()
	s := sessions.Create("Test FC")

	code, _ := doJSON(t, router, http.MethodPost, "/sessions/"+s.ID()+"/categories/Bogus/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDrop_WithoutPickUpReturnsNotice(t *testing.T) {
	router, sessions := sessionRouter()
	s := sessions.Create("Test FC")

	code, env := doJSON(t, router, http.MethodPost, "/sessions/"+s.ID()+"/drop", gin.H{"target_id": 3})

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "swap could not be applied", env.Notice)
}

func TestDragThenDrop_BenchSwapReturnsImpact(t *testing.T) {
	router, sessions := sessionRouter()
	s := sessions.Create("Test FC")
	require.False(t, s.View().Assignment.HasPlayer(4), "player 4 starts on the bench")

	code, env := doJSON(t, router, http.MethodPost, "/sessions/"+s.ID()+"/drag", gin.H{"player_id": 4})
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	code, env = doJSON(t, router, http.MethodPost, "/sessions/"+s.ID()+"/drop", gin.H{"target_id": 3})
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var result struct {
		Impact *struct {
			OutgoingID int64 `json:"outgoing_id"`
			IncomingID int64 `json:"incoming_id"`
		} `json:"impact"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotNil(t, result.Impact)
	assert.Equal(t, int64(3), result.Impact.OutgoingID)
	assert.Equal(t, int64(4), result.Impact.IncomingID)
	assert.True(t, s.View().Assignment.HasPlayer(4))
}

func TestGetChart_ReturnsLayout(t *testing.T) {
	router, sessions := sessionRouter()
	s := sessions.Create("Test FC")
	require.NoError(t, s.ToggleCategory(models.CategoryGls))

	code, env := doJSON(t, router, http.MethodGet, "/sessions/"+s.ID()+"/chart", nil)

	require.Equal(t, http.StatusOK, code)
	var layout struct {
		Order []int64 `json:"order"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &layout))
	require.NotEmpty(t, layout.Order)
	assert.Equal(t, int64(1), layout.Order[0])
}

func TestDeleteSession(t *testing.T) {
	router, sessions := sessionRouter()
	s := sessions.Create("")

	code, _ := doJSON(t, router, http.MethodDelete, "/sessions/"+s.ID(), nil)
	assert.Equal(t, http.StatusOK, code)

	_, ok := sessions.Get(s.ID())
	assert.False(t, ok)
}
