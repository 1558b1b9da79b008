// AngelaMos | 2026
// service_test.go

package player

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
	players map[string]*Player
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{players: make(map[string]*Player), nextID: 1}
}

func (f *fakeStore) List(_ context.Context) ([]Player, error) {
	out := make([]Player, 0, len(f.players))
	for _, p := range f.players {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) Insert(_ context.Context, p *Player) (string, error) {
	id := "p" + string(rune('0'+f.nextID))
	f.nextID++

	stored := *p
	stored.ID = id
	f.players[id] = &stored

	return id, nil
}

func (f *fakeStore) Update(
	_ context.Context,
	id string,
	fields bson.M,
) error {
	p, ok := f.players[id]
	if !ok {
		return core.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		p.Name = v
	}
	if v, ok := fields["height"].(string); ok {
		p.Height = v
	}
	if v, ok := fields["weight"].(string); ok {
		p.Weight = v
	}
	if v, ok := fields["phone"].(string); ok {
		p.Phone = v
	}
	if v, ok := fields["email"].(string); ok {
		p.Email = v
	}
	if v, ok := fields["updated_by"].(string); ok {
		p.UpdatedBy = v
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.players[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.players, id)
	return nil
}

type fakeGameSource struct {
	games map[string][]PlayerGame
}

func (f *fakeGameSource) GamesForPlayer(
	_ context.Context,
	playerID string,
) ([]PlayerGame, error) {
	return f.games[playerID], nil
}

type fakeTournamentSource struct {
	summaries map[string]TournamentSummary
}

func (f *fakeTournamentSource) SummariesByIDs(
	_ context.Context,
	ids []string,
) ([]TournamentSummary, error) {
	out := make([]TournamentSummary, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.summaries[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func seedPlayer(t *testing.T, store *fakeStore, name string) string {
	t.Helper()

	id, err := store.Insert(context.Background(), &Player{Name: name})
	require.NoError(t, err)
	return id
}

func newTestService(
	store *fakeStore,
	games *fakeGameSource,
) *Service {
	if games == nil {
		games = &fakeGameSource{}
	}
	return NewService(store, games, &fakeTournamentSource{})
}

func completedGame(playerID, opponentID, tournamentID string, own, opp int) PlayerGame {
	return PlayerGame{
		Player1ID:    playerID,
		Player2ID:    opponentID,
		Score1:       own,
		Score2:       opp,
		Status:       "completed",
		TournamentID: tournamentID,
	}
}

func TestCreateRequiresPermission(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)
	req := &CreatePlayerRequest{Name: "Marcus"}

	_, err := svc.Create(
		context.Background(),
		&auth.User{Username: "baller", Role: auth.RolePlayer},
		req,
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Empty(t, store.players)

	p, err := svc.Create(
		context.Background(),
		&auth.User{Username: "coach", Role: auth.RoleComando},
		req,
	)
	require.NoError(t, err)
	assert.Equal(t, "Marcus", p.Name)
	assert.Equal(t, "coach", p.CreatedBy)
	assert.Equal(t, "coach", p.UpdatedBy)
	assert.WithinDuration(t, time.Now(), p.CreatedAt, time.Minute)
}

func TestCreateCarriesFullShape(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)

	p, err := svc.Create(
		context.Background(),
		&auth.User{Username: "coach", Role: auth.RoleComando},
		&CreatePlayerRequest{
			Name:     "Marcus",
			Age:      24,
			Height:   "6'2\"",
			Weight:   "185 lbs",
			Position: "Guard",
			Phone:    "555-0142",
			Email:    "marcus@example.com",
		},
	)
	require.NoError(t, err)

	assert.Equal(t, "6'2\"", p.Height)
	assert.Equal(t, "185 lbs", p.Weight)
	assert.Equal(t, "555-0142", p.Phone)
	assert.Equal(t, "marcus@example.com", p.Email)
}

func TestDeleteIsAdminOnly(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)
	id := seedPlayer(t, store, "Marcus")

	err := svc.Delete(
		context.Background(),
		&auth.User{Username: "coach", Role: auth.RoleComando},
		id,
	)
	assert.ErrorIs(t, err, core.ErrForbidden)

	err = svc.Delete(
		context.Background(),
		&auth.User{Username: "boss", Role: auth.RoleAdmin},
		id,
	)
	require.NoError(t, err)
	assert.Empty(t, store.players)
}

func TestCalculateStats(t *testing.T) {
	store := newFakeStore()
	id := seedPlayer(t, store, "Marcus")

	games := &fakeGameSource{games: map[string][]PlayerGame{
		id: {
			completedGame(id, "p9", "", 21, 15),
			{Player1ID: "p9", Player2ID: id, Score1: 21, Score2: 18,
				Status: "completed"},
			completedGame(id, "p7", "", 21, 19),
			// Unfinished games never count.
			{Player1ID: id, Player2ID: "p9", Score1: 4, Score2: 2,
				Status: "live"},
			{Player1ID: id, Player2ID: "p7", Status: "cancelled"},
		},
	}}

	svc := newTestService(store, games)

	stats, err := svc.CalculateStats(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.GamesPlayed)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 60, stats.TotalPoints)
	assert.InDelta(t, 20.0, stats.AvgPointsPerGame, 0.001)
	assert.InDelta(t, 2.0/3.0, stats.WinRatio, 0.001)
}

func TestCalculateStatsNoGames(t *testing.T) {
	store := newFakeStore()
	id := seedPlayer(t, store, "Rookie")
	svc := newTestService(store, nil)

	stats, err := svc.CalculateStats(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.GamesPlayed)
	assert.Equal(t, 0.0, stats.AvgPointsPerGame)
	assert.Equal(t, 0.0, stats.WinRatio)
}

func TestCalculateStatsUnknownPlayer(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	_, err := svc.CalculateStats(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListGames(t *testing.T) {
	store := newFakeStore()
	id := seedPlayer(t, store, "Marcus")

	games := &fakeGameSource{games: map[string][]PlayerGame{
		id: {
			{ID: "g2", Player1ID: id, Player2ID: "p9", Status: "scheduled"},
			{ID: "g1", Player1ID: id, Player2ID: "p7", Status: "completed"},
		},
	}}

	svc := newTestService(store, games)

	list, err := svc.ListGames(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "g2", list[0].ID)

	_, err = svc.ListGames(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestTournamentHistoryPerTournamentRecords(t *testing.T) {
	store := newFakeStore()
	id := seedPlayer(t, store, "Marcus")

	games := &fakeGameSource{games: map[string][]PlayerGame{
		id: {
			// Newest first, as the game source delivers them.
			completedGame(id, "p9", "t2", 21, 15),
			completedGame(id, "p7", "t2", 18, 21),
			completedGame(id, "p9", "t1", 21, 10),
			{Player1ID: id, Player2ID: "p7", TournamentID: "t1",
				Status: "scheduled"},
		},
	}}
	tournaments := &fakeTournamentSource{summaries: map[string]TournamentSummary{
		"t1": {ID: "t1", Name: "Spring Open", Status: "completed"},
		"t2": {ID: "t2", Name: "Summer Slam", Status: "active"},
	}}

	svc := NewService(store, games, tournaments)

	history, err := svc.TournamentHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Ordered by most recent appearance.
	summer := history[0]
	assert.Equal(t, "Summer Slam", summer.Tournament.Name)
	assert.Equal(t, 2, summer.Stats.GamesPlayed)
	assert.Equal(t, 1, summer.Stats.Wins)
	assert.Equal(t, 1, summer.Stats.Losses)
	assert.Equal(t, 39, summer.Stats.TotalPoints)
	assert.Len(t, summer.Games, 2)

	spring := history[1]
	assert.Equal(t, "Spring Open", spring.Tournament.Name)
	// The scheduled game appears in the bundle but not in the record.
	assert.Len(t, spring.Games, 2)
	assert.Equal(t, 1, spring.Stats.GamesPlayed)
	assert.Equal(t, 1, spring.Stats.Wins)
}

func TestProfileForMatchesNameCaseInsensitively(t *testing.T) {
	store := newFakeStore()
	id := seedPlayer(t, store, "Marcus")
	svc := newTestService(store, nil)

	p, err := svc.ProfileFor(context.Background(),
		&auth.User{ID: "u1", Username: "marcus", Role: auth.RolePlayer})
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
}

func TestProfileForFallsBackToEmail(t *testing.T) {
	store := newFakeStore()
	_, err := store.Insert(context.Background(), &Player{
		Name:  "Marcus Webb",
		Email: "marcus@example.com",
	})
	require.NoError(t, err)

	svc := newTestService(store, nil)

	p, err := svc.ProfileFor(context.Background(),
		&auth.User{Username: "MARCUS@example.com", Role: auth.RolePlayer})
	require.NoError(t, err)
	assert.Equal(t, "Marcus Webb", p.Name)
}

func TestProfileForWithoutRosterRecord(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	_, err := svc.ProfileFor(context.Background(),
		&auth.User{Username: "ghost", Role: auth.RolePlayer})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateProfileAllowsPlayer(t *testing.T) {
	store := newFakeStore()
	seedPlayer(t, store, "Marcus")
	svc := newTestService(store, nil)

	phone := "555-0199"
	height := "6'4\""
	p, err := svc.UpdateProfile(
		context.Background(),
		&auth.User{ID: "u1", Username: "marcus", Role: auth.RolePlayer},
		&UpdateProfileRequest{Phone: &phone, Height: &height},
	)
	require.NoError(t, err)

	assert.Equal(t, "555-0199", p.Phone)
	assert.Equal(t, "6'4\"", p.Height)
	assert.Equal(t, "marcus", p.UpdatedBy)
	// The roster name never changes through the profile path.
	assert.Equal(t, "Marcus", p.Name)
}

func TestUpdateProfileRequiresAuthentication(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	_, err := svc.UpdateProfile(context.Background(), nil,
		&UpdateProfileRequest{})
	assert.ErrorIs(t, err, core.ErrForbidden)
}
