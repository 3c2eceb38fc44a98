package game

// reaches reports whether a piece of the given kind, owner and
// promotion status, sitting at from, can move to to in one step.
// Every piece in this game moves exactly one square, so this single
// function is both the attack pattern and the move pattern — no
// sliding, no blockers, no distinction between the two.
func reaches(kind Kind, owner Owner, promoted bool, from, to Square) bool {
	if !from.OnBoard() || !to.OnBoard() || from == to {
		return false
	}
	dc := to.Col() - from.Col()
	dr := to.Row() - from.Row()
	switch kind {
	case Lion:
		return abs(dc) <= 1 && abs(dr) <= 1
	case Giraffe:
		return (dc == 0 && abs(dr) == 1) || (dr == 0 && abs(dc) == 1)
	case Elephant:
		return abs(dc) == 1 && abs(dr) == 1
	case Chick:
		forward := forwardDir(owner)
		if promoted {
			if dc == 0 && dr == -forward {
				return true // straight backward, like a gold general
			}
			if dr == 0 && abs(dc) == 1 {
				return true // sideways
			}
			return dr == forward && abs(dc) <= 1 // forward + forward diagonals
		}
		return dc == 0 && dr == forward
	}
	return false
}
