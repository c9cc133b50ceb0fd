package docset

// Exclude yields every doc from an underlying docset that is not present
// in an excluding docset (U \ E), preserving U's order (§4.4).
type Exclude struct {
	underlying DocSet
	excluding  DocSet

	finished    bool
	excludedDoc uint32
}

// NewExclude builds an Exclude combinator over underlying and excluding.
// The excluding docset is pre-advanced once to seed the exclusion state.
func NewExclude(underlying, excluding DocSet) *Exclude {
	e := &Exclude{underlying: underlying, excluding: excluding}
	if excluding.Advance() {
		e.excludedDoc = excluding.Doc()
	} else {
		e.finished = true
	}
	return e
}

// accept reports whether doc survives exclusion, updating the exclusion
// state as a side effect (§4.4's acceptance test).
func (e *Exclude) accept(doc uint32) bool {
	if e.finished {
		return true
	}
	if e.excludedDoc > doc {
		return true
	}
	if e.excludedDoc == doc {
		return false
	}
	switch e.excluding.SkipNext(doc) {
	case OverStep:
		e.excludedDoc = e.excluding.Doc()
		return true
	case End:
		e.finished = true
		return true
	default: // Reached
		return false
	}
}

// Advance moves to the next doc present in underlying but not excluding.
func (e *Exclude) Advance() bool {
	for e.underlying.Advance() {
		if e.accept(e.underlying.Doc()) {
			return true
		}
	}
	return false
}

// SkipNext advances to the smallest surviving doc >= target.
func (e *Exclude) SkipNext(target uint32) SkipResult {
	result := e.underlying.SkipNext(target)
	if result == End {
		return End
	}
	if e.accept(e.underlying.Doc()) {
		return result
	}
	for {
		if !e.underlying.Advance() {
			return End
		}
		if e.accept(e.underlying.Doc()) {
			return OverStep
		}
	}
}

// Doc returns the current doc id.
func (e *Exclude) Doc() uint32 { return e.underlying.Doc() }

// SizeHint returns the underlying's hint unchanged; exclusions are not
// discounted (§4.4).
func (e *Exclude) SizeHint() int { return e.underlying.SizeHint() }
