package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_BareWords(t *testing.T) {
	got := parse("alpha beta")
	assert.Equal(t, []clause{
		{kind: clauseTerm, text: "alpha"},
		{kind: clauseTerm, text: "beta"},
	}, got)
}

func TestParse_ExtFilter(t *testing.T) {
	got := parse("ext:GO report")
	assert.Equal(t, []clause{
		{kind: clauseExt, text: "go"},
		{kind: clauseTerm, text: "report"},
	}, got)
}

func TestParse_QuotedPhrase(t *testing.T) {
	got := parse(`"hello world" budget`)
	assert.Equal(t, []clause{
		{kind: clausePhrase, text: "hello world"},
		{kind: clauseTerm, text: "budget"},
	}, got)
}

func TestParse_OrFlipsCombinatorForNextClause(t *testing.T) {
	got := parse("alpha OR beta gamma")
	assert.Equal(t, []clause{
		{kind: clauseTerm, text: "alpha"},
		{kind: clauseTerm, text: "beta", or: true},
		{kind: clauseTerm, text: "gamma"},
	}, got)
}

func TestMatchGlob(t *testing.T) {
	assert.True(t, matchGlob("*.go", "a/b/main.go"))
	assert.True(t, matchGlob("*.GO", "a/b/main.go"))
	assert.False(t, matchGlob("*.go", "a/b/main.txt"))
	assert.True(t, matchGlob("**/vendor/**", "a/vendor/b/c.go"))
	assert.True(t, matchGlob("", "/anything"))
}
