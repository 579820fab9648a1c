package scorecard

import "sort"

// DefaultMinGradRate drops schools graduating fewer than a third of students.
const DefaultMinGradRate = 0.34

// Criteria selects schools for one score band of a data page.
type Criteria struct {
	Test        string // "SAT" or "ACT"
	ScoreMin    int
	ScoreMax    int
	Level       int
	CostMax     int // 0 means no limit
	MinGradRate float64
}

// Match is a school that passed Filter with the values it was judged on.
type Match struct {
	School   School
	Cost     int
	Score    int
	GradRate float64
}

// Filter returns the four-year public and private nonprofit schools whose
// score falls within [ScoreMin, ScoreMax], sorted by net price at Level.
func Filter(schools []School, c Criteria) []Match {
	var out []Match
	for _, s := range schools {
		gr, ok := s.GradRate()
		if !ok || gr < c.MinGradRate {
			continue
		}

		if !s.IsPublic() && !s.IsPrivate() {
			continue
		}

		if !s.IsFourYear() {
			continue
		}

		score, ok := s.Score(c.Test)
		if !ok || score < c.ScoreMin || score > c.ScoreMax {
			continue
		}

		cost, ok := s.Cost(c.Level)
		if !ok {
			continue
		}

		if c.CostMax > 0 && cost > c.CostMax {
			continue
		}

		out = append(out, Match{School: s, Cost: cost, Score: score, GradRate: gr})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Cost < out[j].Cost
	})

	return out
}

// Inversion is a school whose net price drops when income rises.
type Inversion struct {
	School   School
	Level    int
	Cost     int
	Previous int
}

// CostInversions lists every school and income level 2..maxLevel where the
// net price is lower than at the level below.
func CostInversions(schools []School, maxLevel int) []Inversion {
	var out []Inversion
	for _, s := range schools {
		prev, prevOK := s.Cost(1)
		for level := 2; level <= maxLevel; level++ {
			cost, ok := s.Cost(level)
			if ok && prevOK && cost < prev {
				out = append(out, Inversion{School: s, Level: level, Cost: cost, Previous: prev})
			}

			prev, prevOK = cost, ok
		}
	}

	return out
}
