package docset

// Intersect and Union are the boolean collaborators spec.md §2 calls
// "analogous and assumed present" alongside Exclude, needed once a
// boolean query layer composes more than one Must/Not clause.

// Intersect yields docs present in every member docset.
type Intersect struct {
	members []DocSet
}

// NewIntersect builds an Intersect over two or more docsets.
func NewIntersect(members ...DocSet) *Intersect {
	return &Intersect{members: members}
}

func (it *Intersect) Advance() bool {
	if len(it.members) == 0 {
		return false
	}
	if !it.members[0].Advance() {
		return false
	}
	return it.align(0, it.members[0].Doc())
}

func (it *Intersect) SkipNext(target uint32) SkipResult {
	if len(it.members) == 0 {
		return End
	}
	if it.members[0].SkipNext(target) == End {
		return End
	}
	if !it.align(0, it.members[0].Doc()) {
		return End
	}
	if it.Doc() == target {
		return Reached
	}
	return OverStep
}

// align sweeps every member except source (which already sits on
// candidate) up to candidate. Whenever a member overshoots and raises the
// candidate, the sweep restarts from the beginning against the new
// candidate, this time including the original source.
func (it *Intersect) align(source int, candidate uint32) bool {
	for i := 0; i < len(it.members); i++ {
		if i == source {
			continue
		}
		switch it.members[i].SkipNext(candidate) {
		case Reached:
			continue
		case End:
			return false
		default: // OverStep: raise the candidate and restart the sweep
			candidate = it.members[i].Doc()
			source = i
			i = -1
		}
	}
	return true
}

func (it *Intersect) Doc() uint32 { return it.members[0].Doc() }

// SizeHint returns the smallest member's hint, since intersection can
// never exceed any one operand.
func (it *Intersect) SizeHint() int {
	min := it.members[0].SizeHint()
	for _, m := range it.members[1:] {
		if h := m.SizeHint(); h < min {
			min = h
		}
	}
	return min
}

// Union yields the ascending merge of every member docset's docs,
// de-duplicated.
type Union struct {
	members []DocSet
	alive   []bool
	cur     uint32
	started bool
}

// NewUnion builds a Union over two or more docsets.
func NewUnion(members ...DocSet) *Union {
	return &Union{members: members, alive: make([]bool, len(members))}
}

func (u *Union) Advance() bool {
	if !u.started {
		u.started = true
		for i, m := range u.members {
			u.alive[i] = m.Advance()
		}
	} else {
		for i, m := range u.members {
			if u.alive[i] && m.Doc() == u.cur {
				u.alive[i] = m.Advance()
			}
		}
	}
	return u.advanceToMin()
}

func (u *Union) SkipNext(target uint32) SkipResult {
	if !u.started {
		u.started = true
		for i, m := range u.members {
			u.alive[i] = m.SkipNext(target) != End
		}
	} else {
		for i, m := range u.members {
			if u.alive[i] && m.Doc() < target {
				u.alive[i] = m.SkipNext(target) != End
			}
		}
	}
	if !u.advanceToMin() {
		return End
	}
	if u.cur == target {
		return Reached
	}
	return OverStep
}

func (u *Union) advanceToMin() bool {
	found := false
	var min uint32
	for i, m := range u.members {
		if !u.alive[i] {
			continue
		}
		if !found || m.Doc() < min {
			min = m.Doc()
			found = true
		}
	}
	if !found {
		return false
	}
	u.cur = min
	return true
}

func (u *Union) Doc() uint32 { return u.cur }

// SizeHint returns the sum of member hints: a loose upper bound before
// de-duplication.
func (u *Union) SizeHint() int {
	var total int
	for _, m := range u.members {
		total += m.SizeHint()
	}
	return total
}
