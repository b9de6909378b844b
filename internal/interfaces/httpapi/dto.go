package httpapi

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

type setScoreRequest struct {
	Player1 *int `json:"player1"`
	Player2 *int `json:"player2"`
}

type recordResultRequest struct {
	TournamentID string            `json:"tournament_id" validate:"required"`
	DivisionID   string            `json:"division_id" validate:"required"`
	Player1ID    string            `json:"player1_id" validate:"required"`
	Player2ID    string            `json:"player2_id" validate:"required,nefield=Player1ID"`
	Sets         []setScoreRequest `json:"sets" validate:"required,min=1"`
	HadPint      bool              `json:"had_pint"`
	PintCount    int               `json:"pint_count" validate:"min=0"`
}

type scheduleMatchRequest struct {
	TournamentID string `json:"tournament_id" validate:"required"`
	DivisionID   string `json:"division_id" validate:"required"`
	Player1ID    string `json:"player1_id" validate:"required"`
	Player2ID    string `json:"player2_id"`
	Location     string `json:"location" validate:"required,max=200"`
	Date         string `json:"date" validate:"required"`
	TimeSlot     string `json:"time" validate:"required"`
}

type joinMatchRequest struct {
	PlayerID string `json:"player_id"`
}

type registerRequest struct {
	Name               string   `json:"name" validate:"required,max=100"`
	Email              string   `json:"email" validate:"required,email"`
	Password           string   `json:"password" validate:"required"`
	Role               string   `json:"role" validate:"omitempty,oneof=admin player"`
	DivisionID         string   `json:"division_id"`
	TournamentIDs      []string `json:"tournament_ids"`
	Availability       []string `json:"availability"`
	PreferredLocations []string `json:"preferred_locations"`
}

type setSessionRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type tournamentDTO struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Capacity  int           `json:"division_capacity"`
	Divisions []divisionDTO `json:"divisions"`
}

type divisionDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type standingDTO struct {
	Position         int    `json:"position"`
	PlayerID         string `json:"player_id"`
	Name             string `json:"name"`
	MatchesPlayed    int    `json:"matches_played"`
	Wins             int    `json:"wins"`
	Draws            int    `json:"draws"`
	Losses           int    `json:"losses"`
	Points           int    `json:"points"`
	GamesWon         int    `json:"games_won"`
	GamesLost        int    `json:"games_lost"`
	SetsWon          int    `json:"sets_won"`
	SetsLost         int    `json:"sets_lost"`
	SetsDifference   int    `json:"sets_difference"`
	Pints            int    `json:"pints"`
	MatchesScheduled int    `json:"matches_scheduled"`
	MatchesPending   int    `json:"matches_pending"`
}

type divisionTableDTO struct {
	Division  divisionDTO   `json:"division"`
	Capacity  int           `json:"capacity"`
	Standings []standingDTO `json:"standings"`
}

type divisionRosterDTO struct {
	Division divisionDTO `json:"division"`
	Capacity int         `json:"capacity"`
	Players  []playerDTO `json:"players"`
}

type headToHeadDTO struct {
	PlayerA  string `json:"player_a"`
	PlayerB  string `json:"player_b"`
	WinsA    int    `json:"wins_a"`
	WinsB    int    `json:"wins_b"`
	WinnerID string `json:"winner_id,omitempty"`
	Played   bool   `json:"played"`
}

type setScoreDTO struct {
	Player1 *int `json:"player1"`
	Player2 *int `json:"player2"`
}

type resultDTO struct {
	ID             string        `json:"id"`
	TournamentID   string        `json:"tournament_id"`
	DivisionID     string        `json:"division_id"`
	Player1ID      string        `json:"player1_id"`
	Player1Name    string        `json:"player1_name"`
	Player2ID      string        `json:"player2_id"`
	Player2Name    string        `json:"player2_name"`
	Sets           []setScoreDTO `json:"sets"`
	Player1Games   int           `json:"player1_games"`
	Player2Games   int           `json:"player2_games"`
	Player1SetsWon int           `json:"player1_sets_won"`
	Player2SetsWon int           `json:"player2_sets_won"`
	HadPint        bool          `json:"had_pint"`
	PintCount      int           `json:"pint_count"`
	CreatedAtUTC   string        `json:"created_at_utc"`
}

type scheduledMatchDTO struct {
	ID           string `json:"id"`
	TournamentID string `json:"tournament_id"`
	DivisionID   string `json:"division_id"`
	Player1ID    string `json:"player1_id"`
	Player1Name  string `json:"player1_name"`
	Player2ID    string `json:"player2_id,omitempty"`
	Player2Name  string `json:"player2_name"`
	Location     string `json:"location"`
	Date         string `json:"date"`
	TimeSlot     string `json:"time"`
	Status       string `json:"status"`
	CreatedAtUTC string `json:"created_at_utc"`
}

type playerDTO struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Role               string   `json:"role"`
	DivisionID         string   `json:"division_id,omitempty"`
	TournamentIDs      []string `json:"tournament_ids"`
	Availability       []string `json:"availability"`
	PreferredLocations []string `json:"preferred_locations"`
	CreatedAtUTC       string   `json:"created_at_utc"`
}

type registrationAvailabilityDTO struct {
	TournamentID string `json:"tournament_id"`
	DivisionID   string `json:"division_id"`
	CanRegister  bool   `json:"can_register"`
}

type sessionDTO struct {
	Player *playerDTO `json:"player"`
}

func tournamentToDTO(v tournament.Tournament) tournamentDTO {
	divisions := make([]divisionDTO, 0, len(v.Divisions))
	for _, d := range v.Divisions {
		divisions = append(divisions, divisionToDTO(d))
	}
	return tournamentDTO{ID: v.ID, Name: v.Name, Capacity: v.Capacity(), Divisions: divisions}
}

func divisionToDTO(v tournament.Division) divisionDTO {
	return divisionDTO{ID: v.ID, Name: v.Name}
}

func standingsToDTO(rows []standing.PlayerStats) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingToDTO(row))
	}
	return out
}

func standingToDTO(v standing.PlayerStats) standingDTO {
	return standingDTO{
		Position:         v.Position,
		PlayerID:         v.PlayerID,
		Name:             v.Name,
		MatchesPlayed:    v.MatchesPlayed,
		Wins:             v.Wins,
		Draws:            v.Draws,
		Losses:           v.Losses,
		Points:           v.Points,
		GamesWon:         v.GamesWon,
		GamesLost:        v.GamesLost,
		SetsWon:          v.SetsWon,
		SetsLost:         v.SetsLost,
		SetsDifference:   v.SetsDifference,
		Pints:            v.Pints,
		MatchesScheduled: v.MatchesScheduled,
		MatchesPending:   v.MatchesPending,
	}
}

func divisionTableToDTO(v usecase.DivisionTable) divisionTableDTO {
	return divisionTableDTO{
		Division:  divisionToDTO(v.Division),
		Capacity:  v.Capacity,
		Standings: standingsToDTO(v.Standings),
	}
}

func resultToDTO(v matchresult.Result) resultDTO {
	sets := make([]setScoreDTO, 0, len(v.Sets))
	for _, s := range v.Sets {
		sets = append(sets, setScoreDTO{Player1: s.Player1, Player2: s.Player2})
	}
	return resultDTO{
		ID:             v.ID,
		TournamentID:   v.TournamentID,
		DivisionID:     v.DivisionID,
		Player1ID:      v.Player1ID,
		Player1Name:    v.Player1Name,
		Player2ID:      v.Player2ID,
		Player2Name:    v.Player2Name,
		Sets:           sets,
		Player1Games:   v.Player1Games,
		Player2Games:   v.Player2Games,
		Player1SetsWon: v.Player1SetsWon,
		Player2SetsWon: v.Player2SetsWon,
		HadPint:        v.HadPint,
		PintCount:      v.PintCount,
		CreatedAtUTC:   formatUTC(v.CreatedAt),
	}
}

func scheduledMatchToDTO(v schedule.Match) scheduledMatchDTO {
	return scheduledMatchDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		DivisionID:   v.DivisionID,
		Player1ID:    v.Player1ID,
		Player1Name:  v.Player1Name,
		Player2ID:    v.Player2ID,
		Player2Name:  v.Player2Name,
		Location:     v.Location,
		Date:         v.Date,
		TimeSlot:     v.TimeSlot,
		Status:       string(v.Status),
		CreatedAtUTC: formatUTC(v.CreatedAt),
	}
}

// playerToDTO never exposes the password hash.
func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:                 v.ID,
		Name:               v.Name,
		Email:              v.Email,
		Role:               string(v.Role),
		DivisionID:         v.DivisionID,
		TournamentIDs:      nonNilStrings(v.TournamentIDs),
		Availability:       nonNilStrings(v.Availability),
		PreferredLocations: nonNilStrings(v.PreferredLocations),
		CreatedAtUTC:       formatUTC(v.CreatedAt),
	}
}

func setsFromRequest(items []setScoreRequest) []matchresult.SetScore {
	out := make([]matchresult.SetScore, 0, len(items))
	for _, item := range items {
		out = append(out, matchresult.SetScore{Player1: item.Player1, Player2: item.Player2})
	}
	return out
}

func formatUTC(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func nonNilStrings(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
