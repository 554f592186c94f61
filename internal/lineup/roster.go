package lineup

import "fmt"

// Confirmed joins attendance records to the roster and keeps active players
// whose RSVP is "going". Roster order is preserved. Returns
// ErrInsufficientPlayers when fewer than 9 remain.
func Confirmed(players []Player, attendance []AttendanceRecord) ([]Player, error) {
	going := make(map[string]bool, len(attendance))
	for _, rec := range attendance {
		if rec.Status == StatusGoing {
			going[rec.PlayerID] = true
		}
	}

	var confirmed []Player
	for _, p := range players {
		if p.Active && going[p.ID] {
			confirmed = append(confirmed, p)
		}
	}

	if len(confirmed) < FieldersPerInning {
		return nil, fmt.Errorf("%w: have %d going, need %d", ErrInsufficientPlayers, len(confirmed), FieldersPerInning)
	}

	return confirmed, nil
}

// splitByGender partitions players into female and male lists,
// preserving relative order within each.
func splitByGender(players []Player) (females, males []Player) {
	for _, p := range players {
		if p.Gender == GenderFemale {
			females = append(females, p)
		} else {
			males = append(males, p)
		}
	}
	return females, males
}
