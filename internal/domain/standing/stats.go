package standing

import (
	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
)

// ComputeStats aggregates one player's row from the results and schedule of a
// single division. rosterSize is the number of active players in that
// division; every player is expected to meet every other player once.
//
// A player with no matches gets a zeroed row carrying playerID and name.
func ComputeStats(playerID, name string, results []matchresult.Result, scheduled []schedule.Match, rosterSize int) PlayerStats {
	out := PlayerStats{PlayerID: playerID, Name: name}

	for _, r := range results {
		own, opp, ok := r.SideOf(playerID)
		if !ok {
			continue
		}

		out.MatchesPlayed++
		out.GamesWon += own.Games
		out.GamesLost += opp.Games
		out.SetsWon += own.SetsWon
		out.SetsLost += opp.SetsWon

		switch {
		case own.SetsWon > opp.SetsWon:
			out.Wins++
			out.Points += PointsForWin
		case own.SetsWon < opp.SetsWon:
			out.Losses++
			out.Points += PointsForLoss
		default:
			out.Draws++
			out.Points += PointsForDraw
		}

		if r.HadPint {
			out.Pints += r.PintCount
		}
	}

	out.SetsDifference = out.GamesWon - out.GamesLost

	for _, m := range scheduled {
		if m.Status == schedule.StatusConfirmed && m.Involves(playerID) {
			out.MatchesScheduled++
		}
	}

	out.MatchesPending = max(0, rosterSize-1-out.MatchesPlayed-out.MatchesScheduled)

	return out
}
