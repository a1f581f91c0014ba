package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantaprof/fantaprof-server/internal/application/command"
	"github.com/fantaprof/fantaprof-server/internal/application/query"
	"github.com/fantaprof/fantaprof-server/internal/domain/scoring"
	"github.com/fantaprof/fantaprof-server/internal/domain/team"
	"github.com/fantaprof/fantaprof-server/internal/domain/user"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/auth"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/messaging"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/persistence/memory"
	httpserver "github.com/fantaprof/fantaprof-server/internal/interface/http"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

// testClock drives the throttle in API tests.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type testEnv struct {
	handler    http.Handler
	professors *memory.ProfessorStore
	teams      *memory.TeamStore
	clock      *testClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := logger.Default()

	professors := memory.NewProfessorStore()
	teams := memory.NewTeamStore()
	users := memory.NewUserStore()

	for _, account := range []struct {
		id, username, password string
		role                   user.Role
	}{
		{"admin-1", "root", "adminpass", user.RoleAdmin},
		{"player-1", "mario", "password1", user.RolePlayer},
	} {
		hash, err := auth.HashPassword(account.password)
		require.NoError(t, err)
		u, err := user.New(account.id, account.username, hash, account.role)
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, u))
	}

	clock := &testClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	throttle := scoring.NewThrottle(time.UTC, scoring.WithClock(clock.Now))
	engine := scoring.NewEngine(professors, teams)
	assembler := team.NewAssembler(professors, teams)
	bus := messaging.NewInMemoryEventBus(log)

	server := httpserver.NewServer(httpserver.DefaultConfig(), httpserver.Dependencies{
		CreateProfessor: command.NewCreateProfessorHandler(professors, bus, log),
		DeleteProfessor: command.NewDeleteProfessorHandler(professors, bus, log),
		UpdateScore:     command.NewUpdateScoreHandler(professors, throttle, bus, log),
		AssembleTeam:    command.NewAssembleTeamHandler(assembler, bus, log),
		GetLeaderboard:  query.NewGetLeaderboardHandler(engine, nil, log),
		GetTeam:         query.NewGetTeamHandler(engine),
		ListProfessors:  query.NewListProfessorsHandler(professors),
		Throttle:        throttle,
		Authenticator:   auth.NewBcryptAuthenticator(users),
		Logger:          log,
	})

	return &testEnv{
		handler:    server.Handler(),
		professors: professors,
		teams:      teams,
		clock:      clock,
	}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any, basicAuth ...string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if len(basicAuth) == 2 {
		req.SetBasicAuth(basicAuth[0], basicAuth[1])
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var parsed apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	return rec, parsed
}

func (e *testEnv) createProfessor(t *testing.T, name string, cost int) string {
	t.Helper()
	rec, resp := e.do(t, http.MethodPost, "/api/v1/professors",
		map[string]any{"name": name, "cost": cost}, "root", "adminpass")
	require.Equal(t, http.StatusCreated, rec.Code)

	var dto struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &dto))
	return dto.ID
}

func TestProfessorEndpoints(t *testing.T) {
	t.Run("create requires credentials", func(t *testing.T) {
		env := newTestEnv(t)
		rec, resp := env.do(t, http.MethodPost, "/api/v1/professors",
			map[string]any{"name": "rossi", "cost": 10})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "unauthorized", resp.Error.Code)
	})

	t.Run("create requires the admin role", func(t *testing.T) {
		env := newTestEnv(t)
		rec, resp := env.do(t, http.MethodPost, "/api/v1/professors",
			map[string]any{"name": "rossi", "cost": 10}, "mario", "password1")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "forbidden", resp.Error.Code)
	})

	t.Run("create and list", func(t *testing.T) {
		env := newTestEnv(t)
		env.createProfessor(t, "rossi", 10)
		env.createProfessor(t, "bianchi", 20)

		rec, resp := env.do(t, http.MethodGet, "/api/v1/professors", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var list []struct {
			Name  string `json:"name"`
			Score int    `json:"score"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		require.Len(t, list, 2)
		assert.Equal(t, "rossi", list[0].Name)
		assert.Zero(t, list[0].Score)
	})

	t.Run("invalid professor payload", func(t *testing.T) {
		env := newTestEnv(t)
		rec, resp := env.do(t, http.MethodPost, "/api/v1/professors",
			map[string]any{"name": "  ", "cost": 10}, "root", "adminpass")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "validation_error", resp.Error.Code)
	})

	t.Run("delete unknown professor", func(t *testing.T) {
		env := newTestEnv(t)
		rec, resp := env.do(t, http.MethodDelete, "/api/v1/professors/ghost", nil, "root", "adminpass")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "not_found", resp.Error.Code)
	})
}

func TestScoreUpdateThrottle(t *testing.T) {
	env := newTestEnv(t)
	id := env.createProfessor(t, "rossi", 10)
	path := fmt.Sprintf("/api/v1/professors/%s/score", id)

	rec, resp := env.do(t, http.MethodPut, path, map[string]any{"delta": 7}, "root", "adminpass")
	require.Equal(t, http.StatusOK, rec.Code)
	var dto struct {
		Score int `json:"score"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &dto))
	assert.Equal(t, 7, dto.Score)

	rec, resp = env.do(t, http.MethodPut, path, map[string]any{"delta": 3}, "root", "adminpass")
	assert.Equal(t, http.StatusTooEarly, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "score_already_updated", resp.Error.Code)

	rec, resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/professors/%s/can-update", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var probe struct {
		CanUpdate bool `json:"can_update"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &probe))
	assert.False(t, probe.CanUpdate)

	// Next local midnight reopens the window.
	env.clock.Set(time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC))

	rec, resp = env.do(t, http.MethodPut, path, map[string]any{"delta": -10}, "root", "adminpass")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &dto))
	assert.Equal(t, -3, dto.Score)
}

func TestTeamEndpoints(t *testing.T) {
	t.Run("assemble and view", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.createProfessor(t, "rossi", 10)
		b := env.createProfessor(t, "bianchi", 20)

		rec, _ := env.do(t, http.MethodPost, "/api/v1/teams", map[string]any{
			"user_id":       "user-1",
			"team_name":     "Squadra",
			"professor_ids": []string{a, b},
			"captain_id":    b,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec, resp := env.do(t, http.MethodGet, "/api/v1/users/user-1/team", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var view struct {
			TeamName   string `json:"team_name"`
			CaptainID  string `json:"captain_id"`
			TotalScore int    `json:"total_score"`
			Members    []struct {
				IsCaptain bool `json:"is_captain"`
			} `json:"members"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &view))
		assert.Equal(t, "Squadra", view.TeamName)
		assert.Equal(t, b, view.CaptainID)
		assert.Len(t, view.Members, 2)
	})

	t.Run("unknown professor in selection", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.createProfessor(t, "rossi", 10)

		rec, resp := env.do(t, http.MethodPost, "/api/v1/teams", map[string]any{
			"user_id":       "user-1",
			"team_name":     "Squadra",
			"professor_ids": []string{a, "ghost"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "invalid_selection", resp.Error.Code)
	})

	t.Run("user without a team", func(t *testing.T) {
		env := newTestEnv(t)
		rec, resp := env.do(t, http.MethodGet, "/api/v1/users/nobody/team", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "no_team", resp.Error.Code)
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	env := newTestEnv(t)
	a := env.createProfessor(t, "rossi", 10)
	b := env.createProfessor(t, "bianchi", 20)

	_, _ = env.do(t, http.MethodPost, "/api/v1/teams", map[string]any{
		"user_id": "user-1", "team_name": "Alpha", "professor_ids": []string{a},
	})
	_, _ = env.do(t, http.MethodPost, "/api/v1/teams", map[string]any{
		"user_id": "user-2", "team_name": "Beta", "professor_ids": []string{b}, "captain_id": b,
	})

	// Give Beta's captain a score so ordering is visible.
	rec, _ := env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/professors/%s/score", b),
		map[string]any{"delta": 25}, "root", "adminpass")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/leaderboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var standings []struct {
		TeamName string `json:"team_name"`
		Score    int    `json:"score"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &standings))
	require.Len(t, standings, 2)
	assert.Equal(t, "Beta", standings[0].TeamName)
	assert.Equal(t, 50, standings[0].Score, "captain doubled")
	assert.Equal(t, "Alpha", standings[1].TeamName)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)

	t.Run("valid credentials", func(t *testing.T) {
		rec, resp := env.do(t, http.MethodPost, "/api/v1/login",
			map[string]any{"username": "mario", "password": "password1"})
		require.Equal(t, http.StatusOK, rec.Code)

		var account struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &account))
		assert.Equal(t, "mario", account.Username)
		assert.Equal(t, "player", account.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec, resp := env.do(t, http.MethodPost, "/api/v1/login",
			map[string]any{"username": "mario", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "invalid_credential", resp.Error.Code)
	})

	t.Run("unknown username", func(t *testing.T) {
		rec, resp := env.do(t, http.MethodPost, "/api/v1/login",
			map[string]any{"username": "ghost", "password": "password1"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "user_not_found", resp.Error.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "no database configured means nothing to wait for")
}
