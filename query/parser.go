package query

import "strings"

// Parse reads a whitespace-separated query string into a Clause. Each
// token is either a bare term (possibly "field:phrase"), a "+"-prefixed
// Must, or a "-"-prefixed Not; there is no further grouping syntax (§6).
func Parse(input string) Clause {
	tokens := strings.Fields(input)
	clauses := make([]Query, 0, len(tokens))
	for _, tok := range tokens {
		clauses = append(clauses, parseToken(tok))
	}
	return Clause{Clauses: clauses}
}

func parseToken(tok string) Query {
	switch {
	case strings.HasPrefix(tok, "+"):
		return Must{Inner: parseLiteral(tok[1:])}
	case strings.HasPrefix(tok, "-"):
		return Not{Inner: parseLiteral(tok[1:])}
	default:
		return parseLiteral(tok)
	}
}

func parseLiteral(s string) Literal {
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		return Literal{Field: s[:idx], Phrase: s[idx+1:]}
	}
	return Literal{Phrase: s}
}
