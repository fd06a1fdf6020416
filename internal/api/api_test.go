package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
	"github.com/shotam27/NoGambleMonsterBattle/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBattles struct {
	battle    *game.Battle
	started   *service.StartRequest
	submitted *game.Action
	role      game.SideRole
	err       error
}

func (f *fakeBattles) StartBattle(_ context.Context, req service.StartRequest) (*game.Battle, error) {
	f.started = &req
	if f.err != nil {
		return nil, f.err
	}
	return f.battle, nil
}

func (f *fakeBattles) SubmitAction(_ context.Context, _ string, role game.SideRole, a *game.Action) (*service.Outcome, error) {
	f.submitted, f.role = a, role
	if f.err != nil {
		return nil, f.err
	}
	return &service.Outcome{Battle: f.battle, Resolved: true, Log: []string{"Turn 1"}}, nil
}

func (f *fakeBattles) CancelAction(_ context.Context, _ string, role game.SideRole) (*game.Battle, error) {
	f.role = role
	return f.battle, f.err
}

func (f *fakeBattles) GetStatus(_ context.Context, id string) (*game.Battle, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id != f.battle.ID {
		return nil, game.NotFound("battle", id)
	}
	return f.battle, nil
}

type fakeCatalog struct{}

func (fakeCatalog) Creatures() []game.CreatureDefinition {
	return []game.CreatureDefinition{{ID: "fire_rabbit", Name: "Fire Rabbit"}}
}
func (fakeCatalog) Moves() []game.MoveDefinition       { return nil }
func (fakeCatalog) Abilities() []game.AbilityDefinition { return nil }

type fakeLeaderboard struct{ limit int }

func (f *fakeLeaderboard) GetTopPlayers(_ context.Context, limit int) ([]game.PlayerProfile, error) {
	f.limit = limit
	return []game.PlayerProfile{{PlayerName: "Ash", Wins: 3}}, nil
}

type testEnv struct {
	router  *gin.Engine
	battles *fakeBattles
	lb      *fakeLeaderboard
	tickets *Tickets
	id      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tickets, err := NewTickets("test-secret", time.Hour)
	require.NoError(t, err)
	id := uuid.NewString()
	battles := &fakeBattles{battle: &game.Battle{ID: id, Status: game.StatusWaitingForActions, TurnNumber: 1}}
	lb := &fakeLeaderboard{}
	h := NewBattleHandler(battles, fakeCatalog{}, lb, tickets, 10)
	return &testEnv{router: NewRouter(h, nil), battles: battles, lb: lb, tickets: tickets, id: id}
}

func (e *testEnv) do(t *testing.T, method, path, ticket string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if ticket != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+ticket)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateBattleIssuesTicket(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/battles", "", CreateBattleRequest{
		PlayerName: "Ash", Roster: []string{"a", "b", "c"}, Rematch: true, ConnectionID: "conn-1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "conn-1", env.battles.started.Identity)
	assert.True(t, env.battles.started.Rematch)

	ticket, err := env.tickets.Parse(decode(t, w)["ticket"].(string))
	require.NoError(t, err)
	assert.Equal(t, env.id, ticket.BattleID)
	assert.Equal(t, game.RolePlayer, ticket.Side)
}

func TestCreateBattleRejectsBadBody(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/battles", "", map[string]string{"player_name": "Ash"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.battles.err = game.Invalidf("roster must have exactly 3 creatures")
	w = env.do(t, http.MethodPost, "/api/battles", "", CreateBattleRequest{PlayerName: "Ash", Roster: []string{"a"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, constants.ErrInvalidRequest, decode(t, w)[constants.JSONKeyError])
}

func TestSubmitRequiresMatchingTicket(t *testing.T) {
	env := newTestEnv(t)
	path := "/api/battles/" + env.id + "/action"

	w := env.do(t, http.MethodPost, path, "", MoveRequest{MoveID: "tackle"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, path, "garbage", MoveRequest{MoveID: "tackle"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other, err := env.tickets.Issue(uuid.NewString(), game.RolePlayer)
	require.NoError(t, err)
	w = env.do(t, http.MethodPost, path, other, MoveRequest{MoveID: "tackle"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	ticket, err := env.tickets.Issue(env.id, game.RoleOpponent)
	require.NoError(t, err)
	w = env.do(t, http.MethodPost, path, ticket, MoveRequest{MoveID: "tackle"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, game.RoleOpponent, env.battles.role)
	assert.Equal(t, game.MoveAction("tackle"), env.battles.submitted)
	assert.Equal(t, true, decode(t, w)["resolved"])
}

func TestSubmitSwitch(t *testing.T) {
	env := newTestEnv(t)
	ticket, err := env.tickets.Issue(env.id, game.RolePlayer)
	require.NoError(t, err)
	path := "/api/battles/" + env.id + "/switch"

	w := env.do(t, http.MethodPost, path, ticket, map[string]int{"target_index": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, game.SwitchAction(0), env.battles.submitted)

	w = env.do(t, http.MethodPost, path, ticket, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	env := newTestEnv(t)
	ticket, err := env.tickets.Issue(env.id, game.RolePlayer)
	require.NoError(t, err)
	path := "/api/battles/" + env.id + "/action"

	cases := []struct {
		err  error
		code int
	}{
		{game.Invalidf("move %q is not known", "x"), http.StatusBadRequest},
		{game.Illegalf("battle is finished"), http.StatusConflict},
		{game.NotFound("battle", env.id), http.StatusNotFound},
		{game.Persistence("update battle", errors.New("disk full")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		env.battles.err = tc.err
		w := env.do(t, http.MethodPost, path, ticket, MoveRequest{MoveID: "tackle"})
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
	assert.Equal(t, constants.ErrFailedStoreAction, decode(t, env.do(t, http.MethodPost, path, ticket, MoveRequest{MoveID: "tackle"}))[constants.JSONKeyError])
}

func TestCancelAction(t *testing.T) {
	env := newTestEnv(t)
	ticket, err := env.tickets.Issue(env.id, game.RoleOpponent)
	require.NoError(t, err)
	w := env.do(t, http.MethodPost, "/api/battles/"+env.id+"/cancel", ticket, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, game.RoleOpponent, env.battles.role)
}

func TestGetStatus(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/battles/"+env.id+"/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, env.id, decode(t, w)["id"])

	w = env.do(t, http.MethodGet, "/api/battles/not-a-uuid/status", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/battles/"+uuid.NewString()+"/status", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReadRoutes(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/creatures", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fire_rabbit")

	w = env.do(t, http.MethodGet, "/api/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, env.lb.limit)
	env.do(t, http.MethodGet, "/api/leaderboard?limit=3", "", nil)
	assert.Equal(t, 3, env.lb.limit)
	env.do(t, http.MethodGet, "/api/leaderboard?limit=1000", "", nil)
	assert.Equal(t, 10, env.lb.limit)

	w = env.do(t, http.MethodGet, "/api/version", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "go_version")
}

func TestTicketExpiry(t *testing.T) {
	tickets, err := NewTickets("", time.Minute)
	require.NoError(t, err)
	tickets.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tok, err := tickets.Issue("b-1", game.RolePlayer)
	require.NoError(t, err)
	_, err = tickets.Parse(tok)
	assert.Error(t, err)

	other, err := NewTickets("other", time.Minute)
	require.NoError(t, err)
	tok, err = other.Issue("b-1", game.RolePlayer)
	require.NoError(t, err)
	_, err = tickets.Parse(tok)
	assert.Error(t, err)
}
