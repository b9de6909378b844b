package standing

import "github.com/riskibarqy/league-standings/internal/domain/matchresult"

// HeadToHead tallies the matches played between a and b. ok is false when the
// pair never met.
//
// Only a match a won outright on sets counts for a. Every other match, draws
// included, counts for b. League tables have always been ranked this way, so
// the asymmetry is kept until the draw rule is settled.
func HeadToHead(results []matchresult.Result, a, b string) (HeadToHeadRecord, bool) {
	rec := HeadToHeadRecord{PlayerA: a, PlayerB: b}
	met := false

	for _, r := range results {
		if !r.SamePair(a, b) {
			continue
		}
		met = true

		own, opp, _ := r.SideOf(a)
		if own.SetsWon > opp.SetsWon {
			rec.WinsA++
		} else {
			rec.WinsB++
		}
	}
	if !met {
		return HeadToHeadRecord{}, false
	}

	switch {
	case rec.WinsA > rec.WinsB:
		rec.WinnerID = a
	case rec.WinsB > rec.WinsA:
		rec.WinnerID = b
	}

	return rec, true
}
