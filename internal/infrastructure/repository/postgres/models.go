package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type playerTableModel struct {
	ID                 int64          `db:"id"`
	PublicID           string         `db:"public_id"`
	Name               string         `db:"name"`
	Email              string         `db:"email"`
	PasswordHash       string         `db:"password_hash"`
	Role               string         `db:"role"`
	DivisionID         sql.NullString `db:"division_id"`
	TournamentIDs      pq.StringArray `db:"tournament_ids"`
	Availability       pq.StringArray `db:"availability"`
	PreferredLocations pq.StringArray `db:"preferred_locations"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

type playerInsertModel struct {
	PublicID           string         `db:"public_id"`
	Name               string         `db:"name"`
	Email              string         `db:"email"`
	PasswordHash       string         `db:"password_hash"`
	Role               string         `db:"role"`
	DivisionID         sql.NullString `db:"division_id"`
	TournamentIDs      pq.StringArray `db:"tournament_ids"`
	Availability       pq.StringArray `db:"availability"`
	PreferredLocations pq.StringArray `db:"preferred_locations"`
	CreatedAt          time.Time      `db:"created_at"`
}

type matchResultTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	TournamentID   string    `db:"tournament_id"`
	DivisionID     string    `db:"division_id"`
	Player1ID      string    `db:"player1_id"`
	Player1Name    string    `db:"player1_name"`
	Player2ID      string    `db:"player2_id"`
	Player2Name    string    `db:"player2_name"`
	Sets           []byte    `db:"sets"`
	HadPint        bool      `db:"had_pint"`
	PintCount      int       `db:"pint_count"`
	Player1Games   int       `db:"player1_games"`
	Player2Games   int       `db:"player2_games"`
	Player1SetsWon int       `db:"player1_sets_won"`
	Player2SetsWon int       `db:"player2_sets_won"`
	CreatedAt      time.Time `db:"created_at"`
}

type matchResultInsertModel struct {
	PublicID       string    `db:"public_id"`
	TournamentID   string    `db:"tournament_id"`
	DivisionID     string    `db:"division_id"`
	Player1ID      string    `db:"player1_id"`
	Player1Name    string    `db:"player1_name"`
	Player2ID      string    `db:"player2_id"`
	Player2Name    string    `db:"player2_name"`
	Sets           string    `db:"sets"`
	HadPint        bool      `db:"had_pint"`
	PintCount      int       `db:"pint_count"`
	Player1Games   int       `db:"player1_games"`
	Player2Games   int       `db:"player2_games"`
	Player1SetsWon int       `db:"player1_sets_won"`
	Player2SetsWon int       `db:"player2_sets_won"`
	CreatedAt      time.Time `db:"created_at"`
}

type setScoreColumn struct {
	Player1 *int `json:"player1"`
	Player2 *int `json:"player2"`
}

type scheduledMatchTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	TournamentID string         `db:"tournament_id"`
	DivisionID   string         `db:"division_id"`
	Player1ID    string         `db:"player1_id"`
	Player1Name  string         `db:"player1_name"`
	Player2ID    sql.NullString `db:"player2_id"`
	Player2Name  string         `db:"player2_name"`
	Location     string         `db:"location"`
	MatchDate    string         `db:"match_date"`
	TimeSlot     string         `db:"time_slot"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type scheduledMatchInsertModel struct {
	PublicID     string         `db:"public_id"`
	TournamentID string         `db:"tournament_id"`
	DivisionID   string         `db:"division_id"`
	Player1ID    string         `db:"player1_id"`
	Player1Name  string         `db:"player1_name"`
	Player2ID    sql.NullString `db:"player2_id"`
	Player2Name  string         `db:"player2_name"`
	Location     string         `db:"location"`
	MatchDate    string         `db:"match_date"`
	TimeSlot     string         `db:"time_slot"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
}

type sessionStateInsertModel struct {
	ID              int       `db:"id"`
	CurrentPlayerID string    `db:"current_player_id"`
	UpdatedAt       time.Time `db:"updated_at"`
}
