package query

import (
	"fmt"

	"github.com/Dylan-DPC/tantivy/docset"
	"github.com/Dylan-DPC/tantivy/segment"
)

// Plan compiles a parsed query into a Weight tree. defaultField is used for
// any Literal carrying no explicit "field:" prefix.
func Plan(q Query, defaultField string) (Weight, error) {
	switch n := q.(type) {
	case Literal:
		return literalWeight(n, defaultField), nil
	case Must:
		return Plan(n.Inner, defaultField)
	case Not:
		// A bare Not outside a Clause excludes from nothing and so matches
		// nothing; Not only contributes meaningfully inside a Clause, which
		// routes it to ClauseWeight.Negatives instead of calling Plan on it
		// directly.
		return nil, fmt.Errorf("query: bare Not has no positive clause to exclude from")
	case Clause:
		return planClause(n, defaultField)
	default:
		return nil, fmt.Errorf("query: unknown node type %T", q)
	}
}

func literalWeight(lit Literal, defaultField string) *TermWeight {
	field := lit.Field
	if field == "" {
		field = defaultField
	}
	return NewTermWeight(field, []byte(lit.Phrase))
}

func planClause(c Clause, defaultField string) (Weight, error) {
	cw := &ClauseWeight{}
	for _, sub := range c.Clauses {
		switch n := sub.(type) {
		case Not:
			w, err := planPositive(n.Inner, defaultField)
			if err != nil {
				return nil, err
			}
			cw.Negatives = append(cw.Negatives, w)
		case Must:
			w, err := planPositive(n.Inner, defaultField)
			if err != nil {
				return nil, err
			}
			cw.Positives = append(cw.Positives, w)
		default:
			w, err := planPositive(n, defaultField)
			if err != nil {
				return nil, err
			}
			cw.Positives = append(cw.Positives, w)
		}
	}
	return cw, nil
}

func planPositive(q Query, defaultField string) (Weight, error) {
	switch n := q.(type) {
	case Literal:
		return literalWeight(n, defaultField), nil
	case Clause:
		return planClause(n, defaultField)
	default:
		return nil, fmt.Errorf("query: %T cannot appear as a Must/Not operand", q)
	}
}

// ClauseWeight is the Weight produced for a Clause: every Positives member
// intersected, then every Negatives member excluded from that intersection
// (§6). A Clause with no Positives matches nothing.
type ClauseWeight struct {
	Positives []Weight
	Negatives []Weight
}

// Scorer resolves every member against reader and composes the result.
func (w *ClauseWeight) Scorer(reader segment.Reader) (Scorer, error) {
	if len(w.Positives) == 0 {
		return emptyScorer{}, nil
	}

	posScorers := make([]Scorer, 0, len(w.Positives))
	for _, pw := range w.Positives {
		s, err := pw.Scorer(reader)
		if err != nil {
			return nil, err
		}
		posScorers = append(posScorers, s)
	}

	var combined docset.DocSet
	if len(posScorers) == 1 {
		combined = posScorers[0]
	} else {
		members := make([]docset.DocSet, len(posScorers))
		for i, s := range posScorers {
			members[i] = s
		}
		combined = docset.NewIntersect(members...)
	}

	if len(w.Negatives) > 0 {
		negScorers := make([]docset.DocSet, 0, len(w.Negatives))
		for _, nw := range w.Negatives {
			s, err := nw.Scorer(reader)
			if err != nil {
				return nil, err
			}
			negScorers = append(negScorers, s)
		}
		var excluding docset.DocSet
		if len(negScorers) == 1 {
			excluding = negScorers[0]
		} else {
			excluding = docset.NewUnion(negScorers...)
		}
		combined = docset.NewExclude(combined, excluding)
	}

	return &clauseScorer{DocSet: combined, positives: posScorers}, nil
}

// clauseScorer sums the score of every positive member currently
// positioned on the combined docset's current doc.
type clauseScorer struct {
	docset.DocSet
	positives []Scorer
}

func (c *clauseScorer) Score() float32 {
	doc := c.Doc()
	var sum float32
	for _, p := range c.positives {
		if p.Doc() == doc {
			sum += p.Score()
		}
	}
	return sum
}
