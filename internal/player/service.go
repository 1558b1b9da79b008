// AngelaMos | 2026
// service.go

package player

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/courtkings/api/internal/auth"
	"github.com/courtkings/api/internal/core"
)

// statusCompleted is the only game status that counts toward a record.
const statusCompleted = "completed"

// GameSource supplies every game a player appears in, newest first.
type GameSource interface {
	GamesForPlayer(ctx context.Context, playerID string) ([]PlayerGame, error)
}

// TournamentSource resolves tournament ids to display summaries.
type TournamentSource interface {
	SummariesByIDs(
		ctx context.Context,
		ids []string,
	) ([]TournamentSummary, error)
}

// Store is the persistence surface the roster service needs.
type Store interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id string) (*Player, error)
	Insert(ctx context.Context, p *Player) (string, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

// Service is the trusted write path for the roster. Permission checks
// happen here, not in handlers, so no caller can reach the store without
// passing through them.
type Service struct {
	repo        Store
	games       GameSource
	tournaments TournamentSource
}

func NewService(
	repo Store,
	games GameSource,
	tournaments TournamentSource,
) *Service {
	return &Service{repo: repo, games: games, tournaments: tournaments}
}

func (s *Service) List(ctx context.Context) ([]Player, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Player, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(
	ctx context.Context,
	actor *auth.User,
	req *CreatePlayerRequest,
) (*Player, error) {
	if !auth.CanPerformAction(actor, auth.ActionCreate, auth.ResourcePlayers) {
		return nil, core.ErrForbidden
	}

	now := time.Now().UTC()
	p := &Player{
		Name:      req.Name,
		PhotoURL:  req.PhotoURL,
		Age:       req.Age,
		Height:    req.Height,
		Weight:    req.Weight,
		Position:  req.Position,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actor.Username,
		UpdatedBy: actor.Username,
	}

	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}

	p.ID = id
	return p, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor *auth.User,
	id string,
	req *UpdatePlayerRequest,
) (*Player, error) {
	if !auth.CanPerformAction(actor, auth.ActionUpdate, auth.ResourcePlayers) {
		return nil, core.ErrForbidden
	}

	fields := bson.M{
		"updated_at": time.Now().UTC(),
		"updated_by": actor.Username,
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	applyProfileFields(fields, &UpdateProfileRequest{
		PhotoURL: req.PhotoURL,
		Age:      req.Age,
		Height:   req.Height,
		Weight:   req.Weight,
		Position: req.Position,
		Phone:    req.Phone,
		Email:    req.Email,
	})

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor *auth.User, id string) error {
	if !auth.CanPerformAction(actor, auth.ActionDelete, auth.ResourcePlayers) {
		return core.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

// ProfileFor resolves the roster record backing an account. The link is the
// player name matching the username case-insensitively, with the email as a
// fallback; accounts without a roster record get core.ErrNotFound.
func (s *Service) ProfileFor(
	ctx context.Context,
	actor *auth.User,
) (*Player, error) {
	if actor == nil {
		return nil, core.ErrUnauthorized
	}

	players, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	for i := range players {
		if strings.EqualFold(players[i].Name, actor.Username) {
			return &players[i], nil
		}
	}
	for i := range players {
		if players[i].Email != "" &&
			strings.EqualFold(players[i].Email, actor.Username) {
			return &players[i], nil
		}
	}

	return nil, core.ErrNotFound
}

// UpdateProfile lets an account edit its own roster record. This is the one
// write every role may perform.
func (s *Service) UpdateProfile(
	ctx context.Context,
	actor *auth.User,
	req *UpdateProfileRequest,
) (*Player, error) {
	if !auth.CanPerformAction(actor, auth.ActionUpdate, auth.ResourceProfile) {
		return nil, core.ErrForbidden
	}

	p, err := s.ProfileFor(ctx, actor)
	if err != nil {
		return nil, err
	}

	fields := bson.M{
		"updated_at": time.Now().UTC(),
		"updated_by": actor.Username,
	}
	applyProfileFields(fields, req)

	if err := s.repo.Update(ctx, p.ID, fields); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, p.ID)
}

func applyProfileFields(fields bson.M, req *UpdateProfileRequest) {
	if req.PhotoURL != nil {
		fields["photo_url"] = *req.PhotoURL
	}
	if req.Age != nil {
		fields["age"] = *req.Age
	}
	if req.Height != nil {
		fields["height"] = *req.Height
	}
	if req.Weight != nil {
		fields["weight"] = *req.Weight
	}
	if req.Position != nil {
		fields["position"] = *req.Position
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
}

// ListGames returns every game a player appears in, for the schedule and
// results views.
func (s *Service) ListGames(
	ctx context.Context,
	playerID string,
) ([]PlayerGame, error) {
	if _, err := s.repo.GetByID(ctx, playerID); err != nil {
		return nil, err
	}

	games, err := s.games.GamesForPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}

	return games, nil
}

// CalculateStats aggregates a player's completed games across all
// tournaments. A player with no finished games has an all-zero record
// rather than an error.
func (s *Service) CalculateStats(
	ctx context.Context,
	playerID string,
) (*Stats, error) {
	if _, err := s.repo.GetByID(ctx, playerID); err != nil {
		return nil, err
	}

	games, err := s.games.GamesForPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("load game results: %w", err)
	}

	return statsFromGames(playerID, games), nil
}

func statsFromGames(playerID string, games []PlayerGame) *Stats {
	stats := &Stats{}
	for _, g := range games {
		if g.Status != statusCompleted {
			continue
		}

		var own, opp int
		switch playerID {
		case g.Player1ID:
			own, opp = g.Score1, g.Score2
		case g.Player2ID:
			own, opp = g.Score2, g.Score1
		default:
			continue
		}

		stats.GamesPlayed++
		stats.TotalPoints += own
		if own > opp {
			stats.Wins++
		} else {
			stats.Losses++
		}
	}

	if stats.GamesPlayed > 0 {
		played := float64(stats.GamesPlayed)
		stats.AvgPointsPerGame = float64(stats.TotalPoints) / played
		stats.WinRatio = float64(stats.Wins) / played
	}

	return stats
}

// TournamentHistory groups a player's games by tournament, newest game
// first, and computes their record inside each one.
func (s *Service) TournamentHistory(
	ctx context.Context,
	playerID string,
) ([]TournamentRecord, error) {
	if _, err := s.repo.GetByID(ctx, playerID); err != nil {
		return nil, err
	}

	games, err := s.games.GamesForPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}

	ids := make([]string, 0)
	byTournament := make(map[string][]PlayerGame)
	for _, g := range games {
		if g.TournamentID == "" {
			continue
		}
		if _, ok := byTournament[g.TournamentID]; !ok {
			ids = append(ids, g.TournamentID)
		}
		byTournament[g.TournamentID] = append(byTournament[g.TournamentID], g)
	}

	if len(ids) == 0 {
		return []TournamentRecord{}, nil
	}

	summaries, err := s.tournaments.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load tournaments: %w", err)
	}

	records := make([]TournamentRecord, 0, len(summaries))
	for _, summary := range summaries {
		tg := byTournament[summary.ID]
		records = append(records, TournamentRecord{
			Tournament: summary,
			Stats:      *statsFromGames(playerID, tg),
			Games:      tg,
		})
	}

	return records, nil
}
