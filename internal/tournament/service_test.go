// AngelaMos | 2026
// service_test.go

package tournament

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
	tournaments map[string]*Tournament
	nextID      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{tournaments: make(map[string]*Tournament), nextID: 1}
}

func (f *fakeStore) List(_ context.Context) ([]Tournament, error) {
	out := make([]Tournament, 0, len(f.tournaments))
	for _, t := range f.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Tournament, error) {
	t, ok := f.tournaments[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeStore) GetByIDs(
	_ context.Context,
	ids []string,
) ([]Tournament, error) {
	out := make([]Tournament, 0, len(ids))
	for _, id := range ids {
		if t, ok := f.tournaments[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeStore) Insert(_ context.Context, t *Tournament) (string, error) {
	id := "t" + string(rune('0'+f.nextID))
	f.nextID++

	stored := *t
	stored.ID = id
	f.tournaments[id] = &stored

	return id, nil
}

func (f *fakeStore) Update(
	_ context.Context,
	id string,
	fields bson.M,
) error {
	t, ok := f.tournaments[id]
	if !ok {
		return core.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		t.Name = v
	}
	if v, ok := fields["location"].(string); ok {
		t.Location = v
	}
	if v, ok := fields["status"].(string); ok {
		t.Status = Status(v)
	}
	if v, ok := fields["players"].([]string); ok {
		t.Players = v
	}
	if v, ok := fields["player_names"].([]string); ok {
		t.PlayerNames = v
	}
	if v, ok := fields["updated_by"].(string); ok {
		t.UpdatedBy = v
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.tournaments[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.tournaments, id)
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

var (
	coach = &auth.User{ID: "u1", Username: "coach", Role: auth.RoleComando}
	boss  = &auth.User{ID: "u2", Username: "boss", Role: auth.RoleAdmin}
)

func newTestService(store *fakeStore) *Service {
	return NewService(store, &fakePlayerSource{names: map[string]string{
		"p1": "Marcus",
		"p2": "Deon",
	}})
}

func TestCreateIsAdminOnly(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := &CreateTournamentRequest{
		Name:      "Spring Open",
		StartDate: time.Now().Add(24 * time.Hour),
	}

	_, err := svc.Create(context.Background(), coach, req)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Empty(t, store.tournaments)

	created, err := svc.Create(context.Background(), boss, req)
	require.NoError(t, err)
	assert.Equal(t, StatusUpcoming, created.Status)
	assert.Equal(t, "boss", created.CreatedBy)
}

func TestCreateEnrichesRosterNames(t *testing.T) {
	svc := newTestService(newFakeStore())

	created, err := svc.Create(context.Background(), boss,
		&CreateTournamentRequest{
			Name:      "Spring Open",
			Location:  "Venice Beach",
			StartDate: time.Now(),
			Players:   []string{"p2", "p1"},
		})
	require.NoError(t, err)

	assert.Equal(t, "Venice Beach", created.Location)
	assert.Equal(t, []string{"p2", "p1"}, created.Players)
	// Names follow roster order.
	assert.Equal(t, []string{"Deon", "Marcus"}, created.PlayerNames)
}

func TestCreateRejectsUnknownRosterPlayer(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(context.Background(), boss,
		&CreateTournamentRequest{
			Name:      "Spring Open",
			StartDate: time.Now(),
			Players:   []string{"p1", "ghost"},
		})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateRosterReResolvesNames(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), boss,
		&CreateTournamentRequest{
			Name:      "Spring Open",
			StartDate: time.Now(),
			Players:   []string{"p1"},
		})
	require.NoError(t, err)

	roster := []string{"p1", "p2"}
	updated, err := svc.Update(context.Background(), boss, created.ID,
		&UpdateTournamentRequest{Players: &roster})
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2"}, updated.Players)
	assert.Equal(t, []string{"Marcus", "Deon"}, updated.PlayerNames)
}

func TestUpdateAndDeleteAreAdminOnly(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), boss,
		&CreateTournamentRequest{Name: "Spring Open", StartDate: time.Now()})
	require.NoError(t, err)

	name := "Summer Slam"
	_, err = svc.Update(context.Background(), coach, created.ID,
		&UpdateTournamentRequest{Name: &name})
	assert.ErrorIs(t, err, core.ErrForbidden)

	assert.ErrorIs(t,
		svc.Delete(context.Background(), coach, created.ID), core.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), boss, created.ID))
}
