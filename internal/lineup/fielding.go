package lineup

import "fmt"

// FieldingInning selects 9 confirmed players honoring the 5-4 gender split and
// assigns them to the fixed position list for one inning. Draws are random
// within each gender group; preferences are honored first-fit, remaining spots
// filled arbitrarily.
func (e *Engine) FieldingInning(players []Player, attendance []AttendanceRecord, inning int) ([]FieldingAssignment, error) {
	confirmed, err := Confirmed(players, attendance)
	if err != nil {
		return nil, err
	}

	females, males := splitByGender(confirmed)
	e.shuffle(females)
	e.shuffle(males)

	selected, err := selectSplit(females, males)
	if err != nil {
		return nil, err
	}

	return assignPositions(selected, inning), nil
}

// selectSplit draws 9 players: 5 males + 4 females if possible, otherwise
// 5 females + 4 males. The first N of each list are taken, so callers control
// draw priority through list order (shuffled or priority-sorted).
func selectSplit(females, males []Player) ([]Player, error) {
	return selectSplitPreferring(females, males, false)
}

// selectSplitPreferring is selectSplit with a caller-chosen majority gender
// for the first attempt. The multi-inning scheduler hands the extra slot to
// whichever gender has accumulated less playing time, capacity permitting.
func selectSplitPreferring(females, males []Player, femaleMajority bool) ([]Player, error) {
	first, second := males, females
	if femaleMajority {
		first, second = females, males
	}

	var majority, minority []Player
	switch {
	case len(first) >= MajoritySize && len(second) >= MinoritySize:
		majority, minority = first, second
	case len(second) >= MajoritySize && len(first) >= MinoritySize:
		majority, minority = second, first
	default:
		return nil, fmt.Errorf("%w: %d female, %d male available", ErrGenderSplit, len(females), len(males))
	}

	selected := make([]Player, 0, FieldersPerInning)
	selected = append(selected, majority[:MajoritySize]...)
	selected = append(selected, minority[:MinoritySize]...)
	return selected, nil
}

// assignPositions maps 9 selected players onto the fixed position list.
//
// Pass 1 walks positions in list order and gives each to the first
// still-unassigned player whose preferences mention it. First-fit by iteration
// order, deliberately: preference rank is not compared here. Pass 2 fills
// whatever remains with the unassigned players in list order.
func assignPositions(selected []Player, inning int) []FieldingAssignment {
	taken := make(map[string]string, FieldersPerInning) // position -> player ID
	used := make([]bool, len(selected))

	for _, pos := range Positions {
		for i, p := range selected {
			if used[i] {
				continue
			}
			if _, ok := p.prefers(pos); ok {
				taken[pos] = p.ID
				used[i] = true
				break
			}
		}
	}

	for _, pos := range Positions {
		if _, ok := taken[pos]; ok {
			continue
		}
		for i, p := range selected {
			if !used[i] {
				taken[pos] = p.ID
				used[i] = true
				break
			}
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
