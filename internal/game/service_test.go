// AngelaMos | 2026
// service_test.go

package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/courtkings/api/internal/auth"
	"github.com/courtkings/api/internal/core"
)

type fakeStore struct {
	games  map[string]*Game
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{games: make(map[string]*Game), nextID: 1}
}

func (f *fakeStore) List(
	_ context.Context,
	status Status,
	tournamentID string,
) ([]Game, error) {
	out := make([]Game, 0)
	for _, g := range f.games {
		if status != "" && g.Status != status {
			continue
		}
		if tournamentID != "" && g.TournamentID != tournamentID {
			continue
		}
		out = append(out, *g)
	}
	return out, nil
}

func (f *fakeStore) ListByPlayer(
	_ context.Context,
	playerID string,
) ([]Game, error) {
	out := make([]Game, 0)
	for _, g := range f.games {
		if g.Player1ID == playerID || g.Player2ID == playerID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Game, error) {
	g, ok := f.games[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (f *fakeStore) Insert(_ context.Context, g *Game) (string, error) {
	id := "g" + string(rune('0'+f.nextID))
	f.nextID++

	stored := *g
	stored.ID = id
	f.games[id] = &stored

	return id, nil
}

func (f *fakeStore) Update(
	_ context.Context,
	id string,
	fields bson.M,
) error {
	g, ok := f.games[id]
	if !ok {
		return core.ErrNotFound
	}
	if v, ok := fields["score1"].(int); ok {
		g.Score1 = v
	}
	if v, ok := fields["score2"].(int); ok {
		g.Score2 = v
	}
	if v, ok := fields["status"].(string); ok {
		g.Status = Status(v)
	}
	if v, ok := fields["venue"].(string); ok {
		g.Venue = v
	}
	if v, ok := fields["updated_by"].(string); ok {
		g.UpdatedBy = v
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.games[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.games, id)
	return nil
}

type fakePlayerSource struct {
	names map[string]string
}

func (f *fakePlayerSource) PlayerName(
	_ context.Context,
	id string,
) (string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", core.ErrNotFound
	}
	return name, nil
}

type fakeTournamentSource struct {
	names map[string]string
}

func (f *fakeTournamentSource) TournamentName(
	_ context.Context,
	id string,
) (string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", core.ErrNotFound
	}
	return name, nil
}

var (
	coach = &auth.User{ID: "u1", Username: "coach", Role: auth.RoleComando}
	boss  = &auth.User{ID: "u2", Username: "boss", Role: auth.RoleAdmin}
)

func newTestService(store *fakeStore) *Service {
	return NewService(
		store,
		&fakePlayerSource{names: map[string]string{
			"p1": "Marcus",
			"p2": "Deon",
		}},
		&fakeTournamentSource{names: map[string]string{
			"t1": "Spring Open",
		}},
	)
}

func TestCreateDenormalizesNames(t *testing.T) {
	svc := newTestService(newFakeStore())

	g, err := svc.Create(context.Background(), coach, &CreateGameRequest{
		TournamentID: "t1",
		Player1ID:    "p1",
		Player2ID:    "p2",
		Venue:        "Court 3",
		Date:         time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, "Marcus", g.Player1Name)
	assert.Equal(t, "Deon", g.Player2Name)
	assert.Equal(t, "Spring Open", g.TournamentName)
	assert.Equal(t, "Court 3", g.Venue)
	assert.Equal(t, StatusScheduled, g.Status)
	assert.Equal(t, "coach", g.CreatedBy)
}

func TestCreateWithoutTournamentSkipsLookup(t *testing.T) {
	svc := newTestService(newFakeStore())

	g, err := svc.Create(context.Background(), coach, &CreateGameRequest{
		Player1ID: "p1",
		Player2ID: "p2",
		Date:      time.Now(),
	})
	require.NoError(t, err)
	assert.Empty(t, g.TournamentName)
}

func TestCreateRejectsUnknownPlayer(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(context.Background(), coach, &CreateGameRequest{
		Player1ID: "p1",
		Player2ID: "ghost",
		Date:      time.Now(),
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateRejectsUnknownTournament(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(context.Background(), coach, &CreateGameRequest{
		TournamentID: "ghost",
		Player1ID:    "p1",
		Player2ID:    "p2",
		Date:         time.Now(),
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateRequiresPermission(t *testing.T) {
	svc := newTestService(newFakeStore())
	playerU := &auth.User{ID: "u3", Username: "baller", Role: auth.RolePlayer}

	_, err := svc.Create(context.Background(), playerU, &CreateGameRequest{
		Player1ID: "p1",
		Player2ID: "p2",
		Date:      time.Now(),
	})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestDeleteIsAdminOnly(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	g, err := svc.Create(context.Background(), coach, &CreateGameRequest{
		Player1ID: "p1",
		Player2ID: "p2",
		Date:      time.Now(),
	})
	require.NoError(t, err)

	assert.ErrorIs(t,
		svc.Delete(context.Background(), coach, g.ID), core.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), boss, g.ID))
}

func scheduleGame(t *testing.T, svc *Service, tournamentID string) *Game {
	t.Helper()

	g, err := svc.Create(context.Background(), coach, &CreateGameRequest{
		TournamentID: tournamentID,
		Player1ID:    "p1",
		Player2ID:    "p2",
		Date:         time.Now(),
	})
	require.NoError(t, err)
	return g
}

func setStatus(
	svc *Service,
	id string,
	status Status,
	score1, score2 int,
) (*Game, error) {
	return svc.Update(context.Background(), coach, id, &UpdateGameRequest{
		Score1: &score1,
		Score2: &score2,
		Status: &status,
	})
}

func TestUpdateCompletesGame(t *testing.T) {
	svc := newTestService(newFakeStore())
	created := scheduleGame(t, svc, "")

	g, err := setStatus(svc, created.ID, StatusCompleted, 21, 15)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, g.Status)
	assert.Equal(t, 21, g.Score1)
	assert.Equal(t, 15, g.Score2)
}

func TestUpdateRejectsTieOnCompletion(t *testing.T) {
	svc := newTestService(newFakeStore())
	created := scheduleGame(t, svc, "")

	_, err := setStatus(svc, created.ID, StatusCompleted, 21, 21)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateCannotReopenCompletedGame(t *testing.T) {
	svc := newTestService(newFakeStore())
	created := scheduleGame(t, svc, "")

	_, err := setStatus(svc, created.ID, StatusCompleted, 21, 15)
	require.NoError(t, err)

	status := StatusLive
	_, err = svc.Update(context.Background(), coach, created.ID,
		&UpdateGameRequest{Status: &status})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateCancelsGameWithoutDeleting(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	created := scheduleGame(t, svc, "")

	status := StatusCancelled
	g, err := svc.Update(context.Background(), coach, created.ID,
		&UpdateGameRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, g.Status)
	// The record survives cancellation.
	assert.Contains(t, store.games, created.ID)

	// And stays cancelled.
	reopen := StatusScheduled
	_, err = svc.Update(context.Background(), coach, created.ID,
		&UpdateGameRequest{Status: &reopen})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestGamesForPlayer(t *testing.T) {
	svc := newTestService(newFakeStore())

	finished := scheduleGame(t, svc, "t1")
	_, err := setStatus(svc, finished.ID, StatusCompleted, 21, 12)
	require.NoError(t, err)

	scheduleGame(t, svc, "t1")

	games, err := svc.GamesForPlayer(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, games, 2)

	for _, g := range games {
		assert.Equal(t, "Marcus", g.Player1Name)
		assert.Equal(t, "Spring Open", g.TournamentName)
	}

	completed := 0
	for _, g := range games {
		if g.Status == string(StatusCompleted) {
			completed++
			assert.Equal(t, 21, g.Score1)
		}
	}
	assert.Equal(t, 1, completed)
}
