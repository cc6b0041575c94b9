package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go/internal/api"
	"github.com/mcoot/battleship-go/internal/api/apierr"
	"github.com/mcoot/battleship-go/internal/api/request"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/factory"
	"github.com/mcoot/battleship-go/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLogger(t, testutil.NopLogger())
}

func newTestServerWithLogger(t *testing.T, logger *slog.Logger) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		MatchController: app.MatchController,
		StatsService:    app.StatsService,
		HubManager:      app.HubManager,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any, userID string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func standardShips() []request.Ship {
	var ships []request.Ship
	for _, p := range factory.StandardLayout() {
		ship := request.Ship{Identifier: p.ID, Kind: string(p.Kind)}
		for _, c := range p.Coords {
			ship.Spaces = append(ship.Spaces, request.Coordinate{X: c.X, Y: c.Y})
		}
		ships = append(ships, ship)
	}
	return ships
}

// createMatch starts MATCH1 for user-1 against bot-hunter01
func (ts *testServer) createMatch(t *testing.T) response.Match {
	t.Helper()
	ts.app.MockRandom.QueueString("hunter01", "MATCH1")

	rr := ts.request(http.MethodPost, "/api/v1/matches", request.CreateMatchRequest{
		UserName:       "alice",
		VictoryMessage: "gg",
		Ships:          standardShips(),
	}, "user-1")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var health response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 0, health.ActiveMatches)

	ts.createMatch(t)

	rr = ts.request(http.MethodGet, "/api/v1/health", nil, "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, 1, health.ActiveMatches)
	assert.Equal(t, 0, health.EventHubs)
}

func (ts *testServer) health(t *testing.T) response.Health {
	t.Helper()
	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var health response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	return health
}

func TestRequestsAreLogged(t *testing.T) {
	logger, logs := testutil.BufferLogger()
	ts := newTestServerWithLogger(t, logger)

	ts.createMatch(t)

	entry := logs.Find("http request")
	require.NotNil(t, entry)
	assert.Equal(t, http.MethodPost, entry["method"])
	assert.Equal(t, "/api/v1/matches", entry["path"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, float64(http.StatusCreated), entry["status"])
}

func TestListStrategies(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/strategies", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp []response.Strategy
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []response.Strategy{
		{Name: "hunter", DisplayName: "Hunter"},
		{Name: "random", DisplayName: "Random"},
	}, resp)
}

func TestMatchRoutesRequireUser(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches", request.CreateMatchRequest{AutoPlace: true}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeUnauthorized, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/users/me/stats", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateMatch(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.createMatch(t)
	assert.Equal(t, "MATCH1", resp.ID)
	assert.Equal(t, "in_progress", resp.State)
	assert.Equal(t, "user-1", resp.Viewer)
	assert.Equal(t, "bot-hunter01", resp.Opponent)
	assert.Equal(t, "hunter", resp.OpponentType)
	assert.Equal(t, "user-1", resp.ActivePlayer)
	assert.Len(t, resp.Ships, 4)
	require.Len(t, resp.OwnBoard, 10)
	assert.Equal(t, "SSSSS....S", resp.OwnBoard[0])
	assert.Equal(t, "..........", resp.Observations[0])
	assert.Empty(t, resp.Moves)
}

func TestCreateMatchValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches", request.CreateMatchRequest{}, "user-1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)

	ships := standardShips()[:3]
	rr = ts.request(http.MethodPost, "/api/v1/matches", request.CreateMatchRequest{Ships: ships}, "user-1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidFleet, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/matches", request.CreateMatchRequest{AutoPlace: true, Opponent: "oracle"}, "user-1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeUnknownStrategy, decodeError(t, rr).Code)
}

func TestCreateMatchAutoPlace(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueString("random01", "MATCH2")

	rr := ts.request(http.MethodPost, "/api/v1/matches", request.CreateMatchRequest{
		AutoPlace: true,
		Opponent:  "random",
	}, "user-1")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "random", resp.OpponentType)
	assert.Len(t, resp.Ships, 4)
}

func TestGetMatch(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	rr := ts.request(http.MethodGet, "/api/v1/matches/MATCH1", nil, "user-1")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/matches/MATCH1", nil, "user-2")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotParticipant, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/matches/NOPE", nil, "user-1")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeMatchNotFound, decodeError(t, rr).Code)
}

func TestFire(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches/MATCH1/moves", request.FireRequest{X: 0, Y: 0}, "user-1")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.FireResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Moves, 2)
	assert.Equal(t, "user-1", resp.Moves[0].PlayerID)
	assert.Equal(t, "hit", resp.Moves[0].Outcome)
	assert.Equal(t, "bot-hunter01", resp.Moves[1].PlayerID)
	assert.Equal(t, 2, resp.Match.Turn)
	assert.Equal(t, "X.........", resp.Match.Observations[0])
	assert.Equal(t, "XSSSS....S", resp.Match.OwnBoard[0])
}

func TestFireIllegalMoves(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches/MATCH1/moves", request.FireRequest{X: 10, Y: 10}, "user-1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeOutOfBounds, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/matches/MATCH1/moves", request.FireRequest{X: 7, Y: 7}, "user-1")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/matches/MATCH1/moves", request.FireRequest{X: 7, Y: 7}, "user-1")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeAlreadyResolved, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/matches/MATCH1/moves", request.FireRequest{X: 1, Y: 1}, "user-2")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestUserStats(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/users/me/stats", nil, "user-1")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeUserNotFound, decodeError(t, rr).Code)

	ts.createMatch(t)

	rr = ts.request(http.MethodGet, "/api/v1/users/me/stats", nil, "user-1")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.UserStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, 0, resp.Games)
	assert.Empty(t, resp.Records)
}

func TestSimulation(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueString("a", "b", "SIM1")

	rr := ts.request(http.MethodPost, "/api/v1/simulations", request.SimulationRequest{
		StrategyA: "hunter",
		StrategyB: "random",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.Simulation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "SIM1", resp.MatchID)
	assert.Contains(t, []string{"bot-a", "bot-b"}, resp.Winner)
	assert.Len(t, resp.Players, 2)

	rr = ts.request(http.MethodPost, "/api/v1/simulations", request.SimulationRequest{BoardSize: 3}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMatchEventsWebsocket(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	server := httptest.NewServer(ts.handler)
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/matches/MATCH1/events"

	// Only participants can subscribe
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"X-User-ID": []string{"user-2"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"X-User-ID": []string{"user-1"}})
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var event response.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "connected", event.Type)

	rr := ts.request(http.MethodPost, "/api/v1/matches/MATCH1/moves", request.FireRequest{X: 4, Y: 0}, "user-1")
	require.Equal(t, http.StatusOK, rr.Code)

	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "move_resolved", event.Type)
	assert.Equal(t, "user-1", event.PlayerID)

	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "move_resolved", event.Type)
	assert.Equal(t, "bot-hunter01", event.PlayerID)
}

func TestMatchEventsEndWithMatchOver(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t)

	server := httptest.NewServer(ts.handler)
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/matches/MATCH1/events"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"X-User-ID": []string{"user-1"}})
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var event response.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "connected", event.Type)
	assert.True(t, event.Timestamp.Equal(ts.app.MockClock.Now()))
	assert.Equal(t, 1, ts.health(t).EventHubs)

	// Sink the bot fleet, which lands on (0..8,0) and (0..4,1)
	for y, maxX := range []int{8, 4} {
		for x := 0; x <= maxX; x++ {
			rr := ts.request(http.MethodPost, "/api/v1/matches/MATCH1/moves", request.FireRequest{X: x, Y: y}, "user-1")
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		}
	}

	moves := 0
	for {
		require.NoError(t, conn.ReadJSON(&event))
		if event.Type != "move_resolved" {
			break
		}
		moves++
	}
	assert.Equal(t, "match_over", event.Type)
	assert.Equal(t, 27, moves)

	// The hub hangs up after match_over
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	health := ts.health(t)
	assert.Equal(t, 0, health.ActiveMatches)
	assert.Equal(t, 0, health.EventHubs)
}
