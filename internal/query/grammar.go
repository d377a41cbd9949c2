package query

import "strings"

// clauseKind distinguishes the grammar's token kinds.
type clauseKind int

const (
	clauseTerm clauseKind = iota
	clausePhrase
	clauseExt
)

// clause is one parsed grammar token, with the combinator joining it to the
// clause before it ("AND" is the default; "OR" flips it for this clause).
type clause struct {
	kind clauseKind
	text string
	or   bool
}

// parse tokenizes a query string: whitespace-separated tokens,
// double-quoted phrases kept intact, "ext:<term>" filters, and the bare
// keyword "OR" flipping the combinator for the clause that follows it.
func parse(q string) []clause {
	var clauses []clause
	pendingOr := false

	for _, tok := range splitTokens(q) {
		if tok == "" {
			continue
		}
		if tok == "OR" {
			pendingOr = true
			continue
		}
		c := clause{or: pendingOr}
		pendingOr = false

		switch {
		case strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) && len(tok) >= 2:
			c.kind = clausePhrase
			c.text = tok[1 : len(tok)-1]
		case strings.HasPrefix(strings.ToLower(tok), "ext:"):
			c.kind = clauseExt
			c.text = strings.ToLower(tok[len("ext:"):])
		default:
			c.kind = clauseTerm
			c.text = tok
		}
		if c.text == "" {
			continue
		}
		clauses = append(clauses, c)
	}
	return clauses
}

// splitTokens splits on whitespace while keeping each double-quoted phrase,
// its quotes and inner spaces included, as a single token.
func splitTokens(q string) []string {
	var toks []string
	var cur strings.Builder
	inQuote := false

	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}

	for _, r := range q {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case !inQuote && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}
