package analyzer

// Analyzer chains a Tokenizer with zero or more TokenFilters.
type Analyzer struct {
	Tokenizer Tokenizer
	Filters   []TokenFilter
}

// New builds an Analyzer from a tokenizer and an ordered filter chain.
func New(tokenizer Tokenizer, filters ...TokenFilter) *Analyzer {
	return &Analyzer{Tokenizer: tokenizer, Filters: filters}
}

// Analyze tokenizes text and runs it through every filter in order.
func (a *Analyzer) Analyze(text string) TokenStream {
	ts := a.Tokenizer.Tokenize(text)
	for _, f := range a.Filters {
		ts = f.Wrap(ts)
	}
	return ts
}

// Clone returns an independent copy of a, deep enough that mutating the
// copy's tokenizer/filter state (as stateful ones do per use) never
// affects a itself. Registry.Get hands out clones for exactly this reason.
func (a *Analyzer) Clone() *Analyzer {
	filters := make([]TokenFilter, len(a.Filters))
	for i, f := range a.Filters {
		filters[i] = f.Clone()
	}
	return &Analyzer{Tokenizer: a.Tokenizer.Clone(), Filters: filters}
}
