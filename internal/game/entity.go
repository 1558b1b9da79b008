// AngelaMos | 2026
// entity.go

package game

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// terminal statuses can never be left. Cancellation voids a game without
// deleting it, which matters because comando cannot delete at all.
func (s Status) terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Game is a 1v1 matchup. Player and tournament names are denormalized at
// write time so listings render without per-row lookups.
type Game struct {
	ID             string    `json:"id"`
	TournamentID   string    `json:"tournament_id,omitempty"`
	TournamentName string    `json:"tournament_name,omitempty"`
	Player1ID      string    `json:"player1_id"`
	Player2ID      string    `json:"player2_id"`
	Player1Name    string    `json:"player1_name"`
	Player2Name    string    `json:"player2_name"`
	Score1         int       `json:"score1"`
	Score2         int       `json:"score2"`
	Status         Status    `json:"status"`
	Venue          string    `json:"venue,omitempty"`
	Date           time.Time `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	CreatedBy      string    `json:"created_by,omitempty"`
	UpdatedBy      string    `json:"updated_by,omitempty"`
}

type CreateGameRequest struct {
	TournamentID string    `json:"tournament_id" validate:"omitempty,max=64"`
	Player1ID    string    `json:"player1_id" validate:"required"`
	Player2ID    string    `json:"player2_id" validate:"required,nefield=Player1ID"`
	Venue        string    `json:"venue" validate:"omitempty,max=128"`
	Date         time.Time `json:"date" validate:"required"`
}

type UpdateGameRequest struct {
	Score1 *int       `json:"score1" validate:"omitempty,gte=0"`
	Score2 *int       `json:"score2" validate:"omitempty,gte=0"`
	Status *Status    `json:"status" validate:"omitempty,oneof=scheduled live completed cancelled"`
	Venue  *string    `json:"venue" validate:"omitempty,max=128"`
	Date   *time.Time `json:"date"`
}
