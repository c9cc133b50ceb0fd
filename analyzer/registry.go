package analyzer

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"
)

// Registry is a concurrency-safe, name-keyed set of Analyzers. Get hands
// out a deep clone so a caller mutating the token stream it drives (some
// tokenizers/filters carry per-use scratch state) never corrupts the
// registry's master copy for the next caller (§7).
type Registry struct {
	mu        sync.RWMutex
	analyzers map[string]*Analyzer
	gets      atomic.Uint64 // total Get calls served, for diagnostics
}

// NewRegistry returns a Registry pre-populated with the standard "raw",
// "default", "en_stem", and "ja" analyzers.
func NewRegistry() *Registry {
	r := &Registry{analyzers: make(map[string]*Analyzer)}
	r.Register("raw", New(RawTokenizer{}))
	r.Register("default", New(SimpleTokenizer{}, RemoveLongFilter(40), LowerCaseFilter()))
	r.Register("en_stem", New(SimpleTokenizer{}, RemoveLongFilter(40), LowerCaseFilter(), EnStemFilter()))
	r.Register("ja", New(JaTokenizer{}, RemoveLongFilter(40)))
	return r
}

// Gets returns the number of Get calls served so far.
func (r *Registry) Gets() uint64 { return r.gets.Load() }

// Register adds or replaces the analyzer under name.
func (r *Registry) Register(name string, a *Analyzer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyzers[name] = a
}

// Get returns a clone of the named analyzer, or an error if unregistered.
func (r *Registry) Get(name string) (*Analyzer, error) {
	r.mu.RLock()
	a, ok := r.analyzers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("analyzer: unknown analyzer %q", name)
	}
	r.gets.Inc()
	return a.Clone(), nil
}
