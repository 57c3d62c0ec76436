package game

// FindFork returns the lowest empty cell where side s would open two or more
// winning threats at once. For the opponent's side this is the cell O has to
// take to stop the fork.
func FindFork(b Board, s Mark) (int, bool) {
	if !s.isSide() {
		return 0, false
	}
	return newPosition(b).fork(s)
}

func (p position) fork(s Mark) (int, bool) {
	own, opp := p.of(s), p.of(s.Opponent())
	for c := 0; c < Size; c++ {
		if !p.empty.has(c) {
			continue
		}
		threats := 0
		for _, l := range lineSets {
			// a threat needs c, none of the opponent and some of our own
			if l.has(c) && l&opp == 0 && l&own != 0 {
				threats++
			}
		}
		if threats > 1 {
			return c, true
		}
	}
	return 0, false
}
