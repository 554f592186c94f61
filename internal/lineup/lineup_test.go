package lineup

import "fmt"

// stubRand keeps list order untouched and returns a fixed coin flip so tests
// can assert exact outputs.
type stubRand struct {
	coin int
}

func (s *stubRand) Shuffle(n int, swap func(i, j int)) {}

func (s *stubRand) Intn(n int) int { return s.coin % n }

func testPlayer(id string, gender Gender, prefs ...Preference) Player {
	return Player{
		ID:          id,
		Name:        "Player " + id,
		Gender:      gender,
		Active:      true,
		Preferences: prefs,
	}
}

// testRoster builds nMale + nFemale active players with IDs m01.., f01..
func testRoster(nMale, nFemale int) []Player {
	players := make([]Player, 0, nMale+nFemale)
	for i := 1; i <= nMale; i++ {
		players = append(players, testPlayer(fmt.Sprintf("m%02d", i), GenderMale))
	}
	for i := 1; i <= nFemale; i++ {
		players = append(players, testPlayer(fmt.Sprintf("f%02d", i), GenderFemale))
	}
	return players
}

func allGoing(players []Player) []AttendanceRecord {
	records := make([]AttendanceRecord, 0, len(players))
	for _, p := range players {
		records = append(records, AttendanceRecord{PlayerID: p.ID, Status: StatusGoing})
	}
	return records
}
