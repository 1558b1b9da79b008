// AngelaMos | 2026
// service.go

package tournament

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/courtkings/api/internal/auth"
	"github.com/courtkings/api/internal/core"
	"github.com/courtkings/api/internal/player"
)

// PlayerSource resolves roster ids so player names travel with the
// tournament record.
type PlayerSource interface {
	PlayerName(ctx context.Context, id string) (string, error)
}

// Store is the persistence surface the tournament service needs.
type Store interface {
	List(ctx context.Context) ([]Tournament, error)
	GetByID(ctx context.Context, id string) (*Tournament, error)
	GetByIDs(ctx context.Context, ids []string) ([]Tournament, error)
	Insert(ctx context.Context, t *Tournament) (string, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

// Tournament writes are admin-only per the permission matrix; comando can
// run games inside a tournament but not reshape the bracket itself.
type Service struct {
	repo    Store
	players PlayerSource
}

var _ player.TournamentSource = (*Service)(nil)

func NewService(repo Store, players PlayerSource) *Service {
	return &Service{repo: repo, players: players}
}

func (s *Service) List(ctx context.Context) ([]Tournament, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Tournament, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(
	ctx context.Context,
	actor *auth.User,
	req *CreateTournamentRequest,
) (*Tournament, error) {
	if !auth.CanPerformAction(actor, auth.ActionCreate, auth.ResourceTournaments) {
		return nil, core.ErrForbidden
	}

	names, err := s.resolveRoster(ctx, req.Players)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &Tournament{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Status:      StatusUpcoming,
		StartDate:   req.StartDate,
		Players:     req.Players,
		PlayerNames: names,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   actor.Username,
		UpdatedBy:   actor.Username,
	}

	id, err := s.repo.Insert(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("create tournament: %w", err)
	}

	t.ID = id
	return t, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor *auth.User,
	id string,
	req *UpdateTournamentRequest,
) (*Tournament, error) {
	if !auth.CanPerformAction(actor, auth.ActionUpdate, auth.ResourceTournaments) {
		return nil, core.ErrForbidden
	}

	fields := bson.M{
		"updated_at": time.Now().UTC(),
		"updated_by": actor.Username,
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Status != nil {
		fields["status"] = string(*req.Status)
	}
	if req.StartDate != nil {
		fields["start_date"] = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		fields["end_date"] = req.EndDate.UTC()
	}
	if req.Players != nil {
		names, err := s.resolveRoster(ctx, *req.Players)
		if err != nil {
			return nil, err
		}
		fields["players"] = *req.Players
		fields["player_names"] = names
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor *auth.User, id string) error {
	if !auth.CanPerformAction(actor, auth.ActionDelete, auth.ResourceTournaments) {
		return core.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

// resolveRoster maps player ids to names, in roster order. An id that does
// not resolve rejects the whole write.
func (s *Service) resolveRoster(
	ctx context.Context,
	ids []string,
) ([]string, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, err := s.players.PlayerName(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown player %q",
					core.ErrInvalidInput, id)
			}
			return nil, fmt.Errorf("resolve player %q: %w", id, err)
		}
		names = append(names, name)
	}
	return names, nil
}

// SummariesByIDs serves player tournament histories.
func (s *Service) SummariesByIDs(
	ctx context.Context,
	ids []string,
) ([]player.TournamentSummary, error) {
	tournaments, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]player.TournamentSummary, 0, len(tournaments))
	for _, t := range tournaments {
		summaries = append(summaries, player.TournamentSummary{
			ID:        t.ID,
			Name:      t.Name,
			Status:    string(t.Status),
			StartDate: t.StartDate,
		})
	}

	return summaries, nil
}
