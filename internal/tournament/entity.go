// AngelaMos | 2026
// entity.go

package tournament

import "time"

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Tournament carries its roster as player ids, with names denormalized at
// write time the same way games carry player names.
type Tournament struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Status      Status     `json:"status"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Players     []string   `json:"players"`
	PlayerNames []string   `json:"player_names"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CreatedBy   string     `json:"created_by,omitempty"`
	UpdatedBy   string     `json:"updated_by,omitempty"`
}

type CreateTournamentRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=128"`
	Description string    `json:"description" validate:"omitempty,max=1024"`
	Location    string    `json:"location" validate:"omitempty,max=256"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	Players     []string  `json:"players" validate:"omitempty,max=256,dive,required"`
}

type UpdateTournamentRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=128"`
	Description *string    `json:"description" validate:"omitempty,max=1024"`
	Location    *string    `json:"location" validate:"omitempty,max=256"`
	Status      *Status    `json:"status" validate:"omitempty,oneof=upcoming active completed"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Players     *[]string  `json:"players" validate:"omitempty,max=256,dive,required"`
}
