package standing

import (
	"sort"

	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two rows of the same division. It returns a negative
// value when a ranks above b.
//
// The cascade is points, then SetsDifference, then the head-to-head record,
// then display name. Head-to-head makes the order non-transitive (A beats B,
// B beats C, C beats A is a legal league), which tournament rules accept.
type Comparator struct {
	results  []matchresult.Result
	collator *collate.Collator
}

// NewComparator builds a comparator over the division's results. A
// Comparator is not safe for concurrent use.
func NewComparator(results []matchresult.Result) *Comparator {
	return &Comparator{
		results:  results,
		collator: collate.New(language.Und),
	}
}

func (c *Comparator) Compare(a, b PlayerStats) int {
	if a.Points != b.Points {
		return b.Points - a.Points
	}
	if a.SetsDifference != b.SetsDifference {
		return b.SetsDifference - a.SetsDifference
	}
	if rec, ok := HeadToHead(c.results, a.PlayerID, b.PlayerID); ok {
		// a level tally falls to b
		if rec.WinnerID == a.PlayerID {
			return -1
		}
		return 1
	}
	return c.collator.CompareString(a.Name, b.Name)
}

// Rank sorts rows into league order and assigns 1-based positions. The input
// slice is left untouched.
func Rank(rows []PlayerStats, results []matchresult.Result) []PlayerStats {
	out := append([]PlayerStats(nil), rows...)
	cmp := NewComparator(results)
	sort.SliceStable(out, func(i, j int) bool {
		return cmp.Compare(out[i], out[j]) < 0
	})
	assignPositions(out)
	return out
}

// RankByPints orders rows by drinks shared, most first. It is a side table and
// has no bearing on league positions.
func RankByPints(rows []PlayerStats) []PlayerStats {
	out := append([]PlayerStats(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pints > out[j].Pints
	})
	assignPositions(out)
	return out
}

func assignPositions(rows []PlayerStats) {
	for i := range rows {
		rows[i].Position = i + 1
	}
}
