package query

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	bq "github.com/blevesearch/bleve/v2/search/query"

	"github.com/nkvale/quickfind/internal/schema"
	"github.com/nkvale/quickfind/pkg/types"
)

// Boost weights: prefix ≈ 4× tokenized-name ≈ 10× content.
const (
	boostContent       = 1.0
	boostNameTok       = 10.0
	boostNameRawPrefix = 40.0
)

// buildBleveQuery translates a parsed clause list into a bleve query tree,
// scoped per the name/content/both expansion.
func buildBleveQuery(clauses []clause, scope types.Scope) bq.Query {
	var scoring bq.Query
	var extFilters []bq.Query

	for _, c := range clauses {
		if c.kind == clauseExt {
			t := bleve.NewTermQuery(c.text)
			t.SetField(schema.FieldExt)
			extFilters = append(extFilters, t)
			continue
		}

		q := expandClause(c, scope)
		if q == nil {
			continue
		}
		if scoring == nil {
			scoring = q
			continue
		}
		if c.or {
			scoring = bleve.NewDisjunctionQuery(scoring, q)
		} else {
			scoring = bleve.NewConjunctionQuery(scoring, q)
		}
	}

	if scoring == nil && len(extFilters) == 0 {
		return bleve.NewMatchNoneQuery()
	}
	if scoring == nil {
		// ext-only query: match every document, filter applied below.
		scoring = bleve.NewMatchAllQuery()
	}
	if len(extFilters) == 0 {
		return scoring
	}

	must := append([]bq.Query{scoring}, extFilters...)
	return bleve.NewConjunctionQuery(must...)
}

// expandClause implements the scope expansion for a single term or phrase.
func expandClause(c clause, scope types.Scope) bq.Query {
	var disjuncts []bq.Query

	if scope == types.ScopeName || scope == types.ScopeBoth {
		disjuncts = append(disjuncts, namePrefixQuery(c), nameTokQuery(c))
	}
	if scope == types.ScopeContent || scope == types.ScopeBoth {
		disjuncts = append(disjuncts, contentQuery(c))
	}
	if len(disjuncts) == 0 {
		return nil
	}
	if len(disjuncts) == 1 {
		return disjuncts[0]
	}
	return bleve.NewDisjunctionQuery(disjuncts...)
}

func namePrefixQuery(c clause) bq.Query {
	if c.kind == clausePhrase {
		p := bleve.NewMatchPhraseQuery(c.text)
		p.SetField(schema.FieldNameRaw)
		p.SetBoost(boostNameRawPrefix)
		return p
	}
	// name_raw's analyzer lower-cases every indexed term, but PrefixQuery is
	// unanalyzed, so the query text must be lower-cased here or a mixed-case
	// term silently fails to prefix-match and loses its boost.
	q := bleve.NewPrefixQuery(strings.ToLower(c.text))
	q.SetField(schema.FieldNameRaw)
	q.SetBoost(boostNameRawPrefix)
	return q
}

func nameTokQuery(c clause) bq.Query {
	if c.kind == clausePhrase {
		p := bleve.NewMatchPhraseQuery(c.text)
		p.SetField(schema.FieldNameTok)
		p.SetBoost(boostNameTok)
		return p
	}
	m := bleve.NewMatchQuery(c.text)
	m.SetField(schema.FieldNameTok)
	m.SetBoost(boostNameTok)
	return m
}

func contentQuery(c clause) bq.Query {
	if c.kind == clausePhrase {
		p := bleve.NewMatchPhraseQuery(c.text)
		p.SetField(schema.FieldContent)
		p.SetBoost(boostContent)
		return p
	}
	m := bleve.NewMatchQuery(c.text)
	m.SetField(schema.FieldContent)
	m.SetBoost(boostContent)
	return m
}

// newSearchRequest builds the bleve.SearchRequest for a parsed query,
// requesting 4× `limit` hits (at most 10,000) so the post-score glob filter
// has spare candidates after dropping non-matches. A glob that drops more
// than that leaves fewer than `limit` results.
func newSearchRequest(bleveQuery bq.Query, limit int) *bleve.SearchRequest {
	fetch := limit * 4
	if fetch < limit {
		fetch = limit // overflow guard for pathological limits
	}
	if fetch > 10000 {
		fetch = 10000
	}
	req := bleve.NewSearchRequestOptions(bleveQuery, fetch, 0, false)
	req.Fields = []string{schema.FieldPath, schema.FieldMTime, schema.FieldSize}
	return req
}
