package lineup

import (
	"errors"
	"testing"
)

func assertValidInning(t *testing.T, assignments []FieldingAssignment, inning int) map[string]string {
	t.Helper()

	if len(assignments) != FieldersPerInning {
		t.Fatalf("expected %d assignments, got %d", FieldersPerInning, len(assignments))
	}

	byPosition := map[string]string{}
	players := map[string]bool{}
	for _, a := range assignments {
		if a.Inning != inning {
			t.Fatalf("assignment inning %d, want %d", a.Inning, inning)
		}
		if _, ok := byPosition[a.Position]; ok {
			t.Fatalf("position %s assigned twice", a.Position)
		}
		byPosition[a.Position] = a.PlayerID
		if players[a.PlayerID] {
			t.Fatalf("player %s fielding twice", a.PlayerID)
		}
		players[a.PlayerID] = true
	}

	for _, pos := range Positions {
		if _, ok := byPosition[pos]; !ok {
			t.Fatalf("position %s unfilled", pos)
		}
	}

	return byPosition
}

func TestFieldingInningNinePlayersNinePositions(t *testing.T) {
	players := testRoster(6, 5)
	engine := NewEngine(&stubRand{})

	assignments, err := engine.FieldingInning(players, allGoing(players), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertValidInning(t, assignments, 3)
}

func TestFieldingInningHonorsPreferences(t *testing.T) {
	players := testRoster(5, 4)
	players[2].Preferences = []Preference{{Position: "SS", Rank: 1}} // m03
	players[7].Preferences = []Preference{{Position: "C", Rank: 1}}  // f03

	engine := NewEngine(&stubRand{})
	assignments, err := engine.FieldingInning(players, allGoing(players), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byPosition := assertValidInning(t, assignments, 1)
	if byPosition["SS"] != "m03" {
		t.Fatalf("SS went to %s, want m03", byPosition["SS"])
	}
	if byPosition["C"] != "f03" {
		t.Fatalf("C went to %s, want f03", byPosition["C"])
	}
}

func TestFieldingInningFirstFitIgnoresRank(t *testing.T) {
	// Both m01 and m02 list catcher; m02 ranks it higher but m01 comes first
	// in draw order. Single-inning assignment is first-fit, so m01 wins.
	players := testRoster(5, 4)
	players[0].Preferences = []Preference{{Position: "C", Rank: 2}}
	players[1].Preferences = []Preference{{Position: "C", Rank: 1}}

	engine := NewEngine(&stubRand{})
	assignments, err := engine.FieldingInning(players, allGoing(players), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byPosition := assertValidInning(t, assignments, 1)
	if byPosition["C"] != "m01" {
		t.Fatalf("C went to %s, want m01 (first fit)", byPosition["C"])
	}
}

func TestFieldingInningFiveFemaleSplit(t *testing.T) {
	players := testRoster(4, 7)
	engine := NewEngine(&stubRand{})

	assignments, err := engine.FieldingInning(players, allGoing(players), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	females := 0
	for _, a := range assignments {
		if genderOf(players, a.PlayerID) == GenderFemale {
			females++
		}
	}
	if females != MajoritySize {
		t.Fatalf("expected %d females fielding, got %d", MajoritySize, females)
	}
}

func TestFieldingInningGenderSplitInfeasible(t *testing.T) {
	// Scenario: 9 confirmed but only 3 female - neither 5-4 nor 4-5 works.
	players := testRoster(6, 3)
	engine := NewEngine(&stubRand{})

	_, err := engine.FieldingInning(players, allGoing(players), 1)
	if !errors.Is(err, ErrGenderSplit) {
		t.Fatalf("expected ErrGenderSplit, got %v", err)
	}
}

func TestFieldingInningInsufficientPlayers(t *testing.T) {
	players := testRoster(4, 4)
	engine := NewEngine(&stubRand{})

	_, err := engine.FieldingInning(players, allGoing(players), 1)
	if !errors.Is(err, ErrInsufficientPlayers) {
		t.Fatalf("expected ErrInsufficientPlayers, got %v", err)
	}
}
