package lineup

// BattingOrder produces a full batting order for the game's confirmed players:
// genders alternate while both groups have members, then the longer group's
// tail bats in sequence. The larger gender group bats first; equal-sized
// groups are broken by a coin flip from the injected random source. When the
// roster carries exactly two pitchers, a single best-effort swap spreads their
// slots roughly a third of the order apart.
func (e *Engine) BattingOrder(players []Player, attendance []AttendanceRecord) ([]BattingSlot, error) {
	confirmed, err := Confirmed(players, attendance)
	if err != nil {
		return nil, err
	}

	females, males := splitByGender(confirmed)
	e.shuffle(females)
	e.shuffle(males)

	primary, secondary := males, females
	switch {
	case len(females) > len(males):
		primary, secondary = females, males
	case len(females) == len(males) && e.rng.Intn(2) == 0:
		primary, secondary = females, males
	}

	order := interleave(primary, secondary)
	spacePitchers(order)

	slots := make([]BattingSlot, len(order))
	for i, p := range order {
		slots[i] = BattingSlot{
			PlayerID:  p.ID,
			Position:  i + 1,
			Generated: true,
		}
	}

	return slots, nil
}

// interleave emits primary[0], secondary[0], primary[1], ... and appends the
// remainder of whichever group outlasts the other.
func interleave(primary, secondary []Player) []Player {
	order := make([]Player, 0, len(primary)+len(secondary))
	for i := 0; i < len(primary) || i < len(secondary); i++ {
		if i < len(primary) {
			order = append(order, primary[i])
		}
		if i < len(secondary) {
			order = append(order, secondary[i])
		}
	}
	return order
}

// spacePitchers applies the pitcher-spacing rule in place. It only acts when
// exactly two pitchers are present: if their slots sit closer than N/3, the
// second pitcher trades places with whoever occupies the slot N/3 after the
// first. No further adjustment is attempted, and the swap is skipped outright
// when the target slot falls past the end of the order.
func spacePitchers(order []Player) {
	var idx []int
	for i, p := range order {
		if p.Pitcher {
			idx = append(idx, i)
		}
	}
	if len(idx) != 2 {
		return
	}

	ideal := len(order) / 3
	if idx[1]-idx[0] >= ideal {
		return
	}

	target := idx[0] + ideal
	if target >= len(order) {
		return
	}

	order[target], order[idx[1]] = order[idx[1]], order[target]
}
