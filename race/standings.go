package race

import (
	"sort"
	"strconv"
)

// Standing is one row of the leaderboard.
type Standing struct {
	ID       RacerID
	Name     string
	Laps     int
	Progress float64
	Place    int
}

// Standings orders racers by laps, then by progress around the current lap,
// then by registration order. progress may be nil.
func (r *Race) Standings(progress func(RacerID) float64) []Standing {
	out := make([]Standing, 0, len(r.racers))
	for _, rc := range r.racers {
		s := Standing{ID: rc.id, Name: rc.name, Laps: rc.laps}
		if progress != nil {
			s.Progress = progress(rc.id)
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Laps != out[j].Laps {
			return out[i].Laps > out[j].Laps
		}
		return out[i].Progress > out[j].Progress
	})

	for i := range out {
		out[i].Place = i + 1
	}
	return out
}

// Place returns the 1-based place of id, or 0 when it isn't registered.
func (r *Race) Place(id RacerID, progress func(RacerID) float64) int {
	for _, s := range r.Standings(progress) {
		if s.ID == id {
			return s.Place
		}
	}
	return 0
}

// Ordinal formats a place for the HUD: 1st, 2nd, 3rd, 4th...
func Ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}
