// AngelaMos | 2026
// entity.go

package player

import "time"

type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Age       int       `json:"age,omitempty"`
	Height    string    `json:"height,omitempty"`
	Weight    string    `json:"weight,omitempty"`
	Position  string    `json:"position,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

type CreatePlayerRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=128"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url,max=512"`
	Age      int    `json:"age" validate:"omitempty,gte=5,lte=100"`
	Height   string `json:"height" validate:"omitempty,max=32"`
	Weight   string `json:"weight" validate:"omitempty,max=32"`
	Position string `json:"position" validate:"omitempty,max=64"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
}

type UpdatePlayerRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=128"`
	PhotoURL *string `json:"photo_url" validate:"omitempty,url,max=512"`
	Age      *int    `json:"age" validate:"omitempty,gte=5,lte=100"`
	Height   *string `json:"height" validate:"omitempty,max=32"`
	Weight   *string `json:"weight" validate:"omitempty,max=32"`
	Position *string `json:"position" validate:"omitempty,max=64"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
}

// UpdateProfileRequest is the self-service subset of an update. Name stays
// fixed: it is the link between the account and its roster record.
type UpdateProfileRequest struct {
	PhotoURL *string `json:"photo_url" validate:"omitempty,url,max=512"`
	Age      *int    `json:"age" validate:"omitempty,gte=5,lte=100"`
	Height   *string `json:"height" validate:"omitempty,max=32"`
	Weight   *string `json:"weight" validate:"omitempty,max=32"`
	Position *string `json:"position" validate:"omitempty,max=64"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
}

// Stats covers completed games only; scheduled, live, and cancelled games
// never count toward a player's record.
type Stats struct {
	GamesPlayed      int     `json:"games_played"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	TotalPoints      int     `json:"total_points"`
	AvgPointsPerGame float64 `json:"avg_points_per_game"`
	WinRatio         float64 `json:"win_ratio"`
}

// PlayerGame is a game as seen from the roster side: the full display shape
// for a player's schedule and results views.
type PlayerGame struct {
	ID             string    `json:"id"`
	TournamentID   string    `json:"tournament_id,omitempty"`
	TournamentName string    `json:"tournament_name,omitempty"`
	Player1ID      string    `json:"player1_id"`
	Player2ID      string    `json:"player2_id"`
	Player1Name    string    `json:"player1_name"`
	Player2Name    string    `json:"player2_name"`
	Score1         int       `json:"score1"`
	Score2         int       `json:"score2"`
	Status         string    `json:"status"`
	Venue          string    `json:"venue,omitempty"`
	Date           time.Time `json:"date"`
}

// TournamentSummary is the display shape of a tournament inside a player's
// history.
type TournamentSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
}

// TournamentRecord bundles one tournament a player appeared in with their
// record inside it.
type TournamentRecord struct {
	Tournament TournamentSummary `json:"tournament"`
	Stats      Stats             `json:"stats"`
	Games      []PlayerGame      `json:"games"`
}
