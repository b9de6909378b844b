package standing

// League points awarded per match outcome, decided on sets won.
const (
	PointsForWin  = 3
	PointsForDraw = 1
	PointsForLoss = 0
)

// PlayerStats is one player's league-table row for a tournament division.
//
// GamesWon and GamesLost are game totals across all valid sets. SetsDifference
// is measured in games as well (GamesWon - GamesLost); it is the second
// tie-break. SetsWon and SetsLost count actual sets and are informational.
type PlayerStats struct {
	PlayerID         string
	Name             string
	Position         int
	MatchesPlayed    int
	Wins             int
	Draws            int
	Losses           int
	Points           int
	GamesWon         int
	GamesLost        int
	SetsWon          int
	SetsLost         int
	SetsDifference   int
	Pints            int
	MatchesScheduled int
	MatchesPending   int
}

// HeadToHeadRecord is the pairwise match tally between two players.
// WinnerID is empty when the tally is level.
type HeadToHeadRecord struct {
	PlayerA  string
	PlayerB  string
	WinsA    int
	WinsB    int
	WinnerID string
}
