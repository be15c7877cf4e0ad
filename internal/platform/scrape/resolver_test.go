package scrape

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resolverFixture = `<html><body>
<div class="fixture"><span>a</span></div>
<div class="fixture"><span>b</span></div>
<table class="items"><tbody><tr><td>1</td></tr></tbody></table>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := ParseDocument([]byte(html))
	require.NoError(t, err)
	return doc
}

func TestResolve_FirstNonEmptyMatcherWins(t *testing.T) {
	doc := mustDoc(t, resolverFixture)

	res := Resolve(doc.Selection, CSSList(".match-row", ".fixture", "table.items tbody tr")...)
	require.True(t, res.Found)
	assert.Equal(t, ".fixture", res.Matcher)
	assert.Equal(t, 2, res.Len())

	var texts []string
	res.Each(func(_ int, sel *goquery.Selection) { texts = append(texts, sel.Text()) })
	assert.Equal(t, []string{"a", "b"}, texts)
}

func TestResolve_NoneFoundIsNotAnError(t *testing.T) {
	doc := mustDoc(t, resolverFixture)

	res := Resolve(doc.Selection, CSSList(".live-match", ".event__match")...)
	assert.False(t, res.Found)
	assert.Zero(t, res.Len())
	assert.NotPanics(t, func() { res.Each(func(int, *goquery.Selection) { t.Fatal("unexpected row") }) })
}

func TestResolve_CustomMatcher(t *testing.T) {
	doc := mustDoc(t, resolverFixture)

	tables := Matcher{
		Name: "tables with rows",
		Find: func(root *goquery.Selection) *goquery.Selection {
			return root.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
				return s.Find("tr").Length() > 0
			})
		},
	}
	res := Resolve(doc.Selection, Matcher{Name: "nil find"}, tables)
	require.True(t, res.Found)
	assert.Equal(t, "tables with rows", res.Matcher)
	assert.False(t, Resolve(nil, tables).Found)
}
