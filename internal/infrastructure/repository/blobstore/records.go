package blobstore

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
)

// Key names one of the persisted documents.
type Key string

const (
	KeyResults       Key = "results"
	KeySchedule      Key = "schedule"
	KeyRoster        Key = "roster"
	KeyCurrentPlayer Key = "current_player"
)

var AllKeys = []Key{KeyResults, KeySchedule, KeyRoster, KeyCurrentPlayer}

func (k Key) Valid() bool {
	switch k {
	case KeyResults, KeySchedule, KeyRoster, KeyCurrentPlayer:
		return true
	default:
		return false
	}
}

type setRecord struct {
	Player1 *int `json:"player1"`
	Player2 *int `json:"player2"`
}

type resultRecord struct {
	ID             string      `json:"id"`
	TournamentID   string      `json:"tournament_id"`
	DivisionID     string      `json:"division_id"`
	Player1ID      string      `json:"player1_id"`
	Player1Name    string      `json:"player1_name"`
	Player2ID      string      `json:"player2_id"`
	Player2Name    string      `json:"player2_name"`
	Sets           []setRecord `json:"sets"`
	HadPint        bool        `json:"had_pint"`
	PintCount      int         `json:"pint_count"`
	Player1Games   int         `json:"player1_games"`
	Player2Games   int         `json:"player2_games"`
	Player1SetsWon int         `json:"player1_sets_won"`
	Player2SetsWon int         `json:"player2_sets_won"`
	CreatedAt      time.Time   `json:"created_at"`
}

type matchRecord struct {
	ID           string    `json:"id"`
	TournamentID string    `json:"tournament_id"`
	DivisionID   string    `json:"division_id"`
	Player1ID    string    `json:"player1_id"`
	Player1Name  string    `json:"player1_name"`
	Player2ID    string    `json:"player2_id,omitempty"`
	Player2Name  string    `json:"player2_name"`
	Location     string    `json:"location"`
	Date         string    `json:"date"`
	TimeSlot     string    `json:"time"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type playerRecord struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"password_hash"`
	Role               string    `json:"role"`
	DivisionID         string    `json:"division_id"`
	TournamentIDs      []string  `json:"tournament_ids"`
	Availability       []string  `json:"availability"`
	PreferredLocations []string  `json:"preferred_locations"`
	CreatedAt          time.Time `json:"created_at"`
}

type sessionRecord struct {
	PlayerID string `json:"player_id"`
}

func toResultRecord(r matchresult.Result) resultRecord {
	sets := make([]setRecord, 0, len(r.Sets))
	for _, s := range r.Sets {
		sets = append(sets, setRecord{Player1: s.Player1, Player2: s.Player2})
	}
	return resultRecord{
		ID:             r.ID,
		TournamentID:   r.TournamentID,
		DivisionID:     r.DivisionID,
		Player1ID:      r.Player1ID,
		Player1Name:    r.Player1Name,
		Player2ID:      r.Player2ID,
		Player2Name:    r.Player2Name,
		Sets:           sets,
		HadPint:        r.HadPint,
		PintCount:      r.PintCount,
		Player1Games:   r.Player1Games,
		Player2Games:   r.Player2Games,
		Player1SetsWon: r.Player1SetsWon,
		Player2SetsWon: r.Player2SetsWon,
		CreatedAt:      r.CreatedAt,
	}
}

// toDomain recomputes the derived totals so stale aggregates in older files
// never leak into standings.
func (r resultRecord) toDomain() matchresult.Result {
	sets := make([]matchresult.SetScore, 0, len(r.Sets))
	for _, s := range r.Sets {
		sets = append(sets, matchresult.SetScore{Player1: s.Player1, Player2: s.Player2})
	}
	out := matchresult.Result{
		ID:           r.ID,
		TournamentID: r.TournamentID,
		DivisionID:   r.DivisionID,
		Player1ID:    r.Player1ID,
		Player1Name:  r.Player1Name,
		Player2ID:    r.Player2ID,
		Player2Name:  r.Player2Name,
		Sets:         sets,
		HadPint:      r.HadPint,
		PintCount:    r.PintCount,
		CreatedAt:    r.CreatedAt,
	}
	out.ApplyTotals()
	return out
}

func toMatchRecord(m schedule.Match) matchRecord {
	return matchRecord{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		DivisionID:   m.DivisionID,
		Player1ID:    m.Player1ID,
		Player1Name:  m.Player1Name,
		Player2ID:    m.Player2ID,
		Player2Name:  m.Player2Name,
		Location:     m.Location,
		Date:         m.Date,
		TimeSlot:     m.TimeSlot,
		Status:       string(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}

func (r matchRecord) toDomain() schedule.Match {
	return schedule.Match{
		ID:           r.ID,
		TournamentID: r.TournamentID,
		DivisionID:   r.DivisionID,
		Player1ID:    r.Player1ID,
		Player1Name:  r.Player1Name,
		Player2ID:    r.Player2ID,
		Player2Name:  r.Player2Name,
		Location:     r.Location,
		Date:         r.Date,
		TimeSlot:     r.TimeSlot,
		Status:       schedule.NormalizeStatus(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

func toPlayerRecord(p player.Player) playerRecord {
	return playerRecord{
		ID:                 p.ID,
		Name:               p.Name,
		Email:              p.Email,
		PasswordHash:       p.PasswordHash,
		Role:               string(p.Role),
		DivisionID:         p.DivisionID,
		TournamentIDs:      p.TournamentIDs,
		Availability:       p.Availability,
		PreferredLocations: p.PreferredLocations,
		CreatedAt:          p.CreatedAt,
	}
}

func (r playerRecord) toDomain() player.Player {
	role := player.Role(r.Role)
	if role == "" {
		role = player.RolePlayer
	}
	return player.Player{
		ID:                 r.ID,
		Name:               r.Name,
		Email:              r.Email,
		PasswordHash:       r.PasswordHash,
		Role:               role,
		DivisionID:         r.DivisionID,
		TournamentIDs:      r.TournamentIDs,
		Availability:       r.Availability,
		PreferredLocations: r.PreferredLocations,
		CreatedAt:          r.CreatedAt,
	}
}
