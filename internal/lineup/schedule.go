package lineup

import (
	"fmt"
	"sort"
)

// playerTrack accumulates one player's playing time during a multi-inning run.
// Tracks live only for the duration of a FieldingPlan call.
type playerTrack struct {
	InningsPlayed int
	Positions     []string
	LastSatOut    int // inning number, 0 = never sat out
}

// trackerState maps player ID to track. Transitions return a fresh map rather
// than mutating shared entries, keeping each inning's bookkeeping auditable.
type trackerState map[string]playerTrack

func newTracker(players []Player) trackerState {
	tracks := make(trackerState, len(players))
	for _, p := range players {
		tracks[p.ID] = playerTrack{}
	}
	return tracks
}

// advance returns the state after an inning: assigned players gain an inning
// and a position; every confirmed player left out records the sit-out.
func (t trackerState) advance(confirmed []Player, assignments []FieldingAssignment, inning int) trackerState {
	assigned := make(map[string]string, len(assignments)) // player ID -> position
	for _, a := range assignments {
		assigned[a.PlayerID] = a.Position
	}

	next := make(trackerState, len(t))
	for _, p := range confirmed {
		track := t[p.ID]
		if pos, ok := assigned[p.ID]; ok {
			track.InningsPlayed++
			track.Positions = append(append([]string(nil), track.Positions...), pos)
		} else {
			track.LastSatOut = inning
		}
		next[p.ID] = track
	}
	return next
}

// FieldingPlan generates a complete 7-inning fielding plan that balances
// playing time: each inning the least-played confirmed players are selected
// first, recently-rested players sit before those who have played straight
// through, and (when the roster can absorb it) nobody plays more than 6 of
// the 7 innings. Any infeasible inning aborts the whole run; there is no
// partial result.
func (e *Engine) FieldingPlan(players []Player, attendance []AttendanceRecord) ([]FieldingAssignment, error) {
	confirmed, err := Confirmed(players, attendance)
	if err != nil {
		return nil, err
	}

	// A 6-inning cap needs confirmed*6 >= 63 total appearances. With 9 or 10
	// confirmed players the cap is infeasible and everyone may play all 7.
	limit := InningsPerGame
	if len(confirmed)*maxInningsPerPlayer >= InningsPerGame*FieldersPerInning {
		limit = maxInningsPerPlayer
	}

	tracks := newTracker(confirmed)
	plan := make([]FieldingAssignment, 0, InningsPerGame*FieldersPerInning)

	for inning := 1; inning <= InningsPerGame; inning++ {
		ranked := rankByPriority(confirmed, tracks)

		var eligible []Player
		for _, p := range ranked {
			if tracks[p.ID].InningsPlayed < limit {
				eligible = append(eligible, p)
			}
		}

		females, males := splitByGender(eligible)
		selected, err := selectSplitPreferring(females, males, femaleMajorityNext(confirmed, tracks, limit, inning))
		if err != nil {
			return nil, fmt.Errorf("inning %d: %w", inning, err)
		}

		assignments := assignWithPriority(selected, tracks, inning)
		tracks = tracks.advance(confirmed, assignments, inning)
		plan = append(plan, assignments...)
	}

	return plan, nil
}

// femaleMajorityNext decides which gender gets the 5-player majority for an
// inning. The gender behind on aggregate innings is preferred, which is what
// keeps the final innings spread within one across a full run - but only when
// its remaining capacity under the innings cap can cover the majority now plus
// the 4-player minimum in every later inning. A group of exactly 5 under a
// 6-inning cap has 30 appearances to give and the minimums alone consume 28,
// so it can absorb at most two majorities; past that the extra slot goes to
// the other gender.
func femaleMajorityNext(confirmed []Player, tracks trackerState, limit, inning int) bool {
	var femalePlayed, malePlayed, femaleLeft, maleLeft int
	for _, p := range confirmed {
		played := tracks[p.ID].InningsPlayed
		if p.Gender == GenderFemale {
			femalePlayed += played
			femaleLeft += limit - played
		} else {
			malePlayed += played
			maleLeft += limit - played
		}
	}

	remaining := InningsPerGame - inning
	need := MajoritySize + MinoritySize*remaining

	preferFemale := femalePlayed < malePlayed
	if preferFemale && femaleLeft < need {
		return false
	}
	if !preferFemale && maleLeft < need {
		return true
	}
	return preferFemale
}

// rankByPriority orders players by selection priority: fewest innings played
// first, ties broken by most recent sit-out, then by ID for determinism.
func rankByPriority(players []Player, tracks trackerState) []Player {
	ranked := append([]Player(nil), players...)
	sort.Slice(ranked, func(i, j int) bool {
		ti, tj := tracks[ranked[i].ID], tracks[ranked[j].ID]
		if ti.InningsPlayed != tj.InningsPlayed {
			return ti.InningsPlayed < tj.InningsPlayed
		}
		if ti.LastSatOut != tj.LastSatOut {
			return ti.LastSatOut > tj.LastSatOut
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// assignWithPriority is the balanced variant of position assignment. Pass 1
// gives each position to the preferring candidate with the best (lowest)
// preference rank - the one place rank is actually compared. Pass 2 fills the
// remainder with whoever has the fewest innings played.
func assignWithPriority(selected []Player, tracks trackerState, inning int) []FieldingAssignment {
	taken := make(map[string]string, FieldersPerInning) // position -> player ID
	used := make([]bool, len(selected))

	for _, pos := range Positions {
		best := -1
		bestRank := 0
		for i, p := range selected {
			if used[i] {
				continue
			}
			rank, ok := p.prefers(pos)
			if !ok {
				continue
			}
			if best == -1 || rank < bestRank {
				best = i
				bestRank = rank
			}
		}
		if best >= 0 {
			taken[pos] = selected[best].ID
			used[best] = true
		}
	}

	for _, pos := range Positions {
		if _, ok := taken[pos]; ok {
			continue
		}
		fewest := -1
		for i, p := range selected {
			if used[i] {
				continue
			}
			if fewest == -1 || tracks[p.ID].InningsPlayed < tracks[selected[fewest].ID].InningsPlayed {
				fewest = i
			}
		}
		if fewest >= 0 {
			taken[pos] = selected[fewest].ID
			used[fewest] = true
		}
	}

	assignments := make([]FieldingAssignment, 0, FieldersPerInning)
	for _, pos := range Positions {
		assignments = append(assignments, FieldingAssignment{
			Inning:    inning,
			Position:  pos,
			PlayerID:  taken[pos],
			Generated: true,
		})
	}
	return assignments
}
