// AngelaMos | 2026
// service.go

package game

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/courtkings/api/internal/auth"
	"github.com/courtkings/api/internal/core"
	"github.com/courtkings/api/internal/player"
)

// PlayerSource resolves roster ids at game creation so names travel with
// the game record.
type PlayerSource interface {
	PlayerName(ctx context.Context, id string) (string, error)
}

// TournamentSource resolves a tournament id to its display name.
type TournamentSource interface {
	TournamentName(ctx context.Context, id string) (string, error)
}

// Store is the persistence surface the game service needs.
type Store interface {
	List(ctx context.Context, status Status, tournamentID string) ([]Game, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Game, error)
	GetByID(ctx context.Context, id string) (*Game, error)
	Insert(ctx context.Context, g *Game) (string, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo        Store
	players     PlayerSource
	tournaments TournamentSource
}

var _ player.GameSource = (*Service)(nil)

func NewService(
	repo Store,
	players PlayerSource,
	tournaments TournamentSource,
) *Service {
	return &Service{repo: repo, players: players, tournaments: tournaments}
}

func (s *Service) List(
	ctx context.Context,
	status Status,
	tournamentID string,
) ([]Game, error) {
	return s.repo.List(ctx, status, tournamentID)
}

func (s *Service) Get(ctx context.Context, id string) (*Game, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(
	ctx context.Context,
	actor *auth.User,
	req *CreateGameRequest,
) (*Game, error) {
	if !auth.CanPerformAction(actor, auth.ActionCreate, auth.ResourceGames) {
		return nil, core.ErrForbidden
	}

	name1, err := s.players.PlayerName(ctx, req.Player1ID)
	if err != nil {
		return nil, fmt.Errorf("resolve player1: %w", err)
	}

	name2, err := s.players.PlayerName(ctx, req.Player2ID)
	if err != nil {
		return nil, fmt.Errorf("resolve player2: %w", err)
	}

	var tournamentName string
	if req.TournamentID != "" {
		tournamentName, err = s.tournaments.TournamentName(ctx, req.TournamentID)
		if err != nil {
			return nil, fmt.Errorf("resolve tournament: %w", err)
		}
	}

	now := time.Now().UTC()
	g := &Game{
		TournamentID:   req.TournamentID,
		TournamentName: tournamentName,
		Player1ID:      req.Player1ID,
		Player2ID:      req.Player2ID,
		Player1Name:    name1,
		Player2Name:    name2,
		Status:         StatusScheduled,
		Venue:          req.Venue,
		Date:           req.Date,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      actor.Username,
		UpdatedBy:      actor.Username,
	}

	id, err := s.repo.Insert(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	g.ID = id
	return g, nil
}

// Update records scores and status changes. A game never leaves a terminal
// status, and completing a game requires a winner.
func (s *Service) Update(
	ctx context.Context,
	actor *auth.User,
	id string,
	req *UpdateGameRequest,
) (*Game, error) {
	if !auth.CanPerformAction(actor, auth.ActionUpdate, auth.ResourceGames) {
		return nil, core.ErrForbidden
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status.terminal() && req.Status != nil &&
		*req.Status != current.Status {
		return nil, fmt.Errorf("%w: a %s game cannot change status",
			core.ErrInvalidInput, current.Status)
	}

	fields := bson.M{
		"updated_at": time.Now().UTC(),
		"updated_by": actor.Username,
	}

	score1, score2 := current.Score1, current.Score2
	if req.Score1 != nil {
		score1 = *req.Score1
		fields["score1"] = score1
	}
	if req.Score2 != nil {
		score2 = *req.Score2
		fields["score2"] = score2
	}
	if req.Venue != nil {
		fields["venue"] = *req.Venue
	}
	if req.Date != nil {
		fields["date"] = req.Date.UTC()
	}

	if req.Status != nil {
		if *req.Status == StatusCompleted && score1 == score2 {
			return nil, fmt.Errorf("%w: a completed game cannot end in a tie",
				core.ErrInvalidInput)
		}
		fields["status"] = string(*req.Status)
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor *auth.User, id string) error {
	if !auth.CanPerformAction(actor, auth.ActionDelete, auth.ResourceGames) {
		return core.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

// GamesForPlayer feeds the roster's schedule, stats, and history views with
// every game the player appears in, newest first.
func (s *Service) GamesForPlayer(
	ctx context.Context,
	playerID string,
) ([]player.PlayerGame, error) {
	games, err := s.repo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	out := make([]player.PlayerGame, 0, len(games))
	for _, g := range games {
		out = append(out, player.PlayerGame{
			ID:             g.ID,
			TournamentID:   g.TournamentID,
			TournamentName: g.TournamentName,
			Player1ID:      g.Player1ID,
			Player2ID:      g.Player2ID,
			Player1Name:    g.Player1Name,
			Player2Name:    g.Player2Name,
			Score1:         g.Score1,
			Score2:         g.Score2,
			Status:         string(g.Status),
			Venue:          g.Venue,
			Date:           g.Date,
		})
	}

	return out, nil
}
