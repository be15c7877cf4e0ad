package scrape

import "github.com/PuerkitoBio/goquery"

// Matcher is one selector strategy. Matchers are tried in priority order.
type Matcher struct {
	Name string
	Find func(root *goquery.Selection) *goquery.Selection
}

// CSS builds a matcher from a plain CSS selector.
func CSS(selector string) Matcher {
	return Matcher{
		Name: selector,
		Find: func(root *goquery.Selection) *goquery.Selection {
			return root.Find(selector)
		},
	}
}

// CSSList builds one matcher per selector, keeping order.
func CSSList(selectors ...string) []Matcher {
	out := make([]Matcher, 0, len(selectors))
	for _, selector := range selectors {
		out = append(out, CSS(selector))
	}
	return out
}

// MatchResult is the tagged outcome of Resolve. Found is false when every
// matcher came back empty; that is a "no rows" signal, not an error.
type MatchResult struct {
	Found     bool
	Matcher   string
	Selection *goquery.Selection
}

func (r MatchResult) Len() int {
	if !r.Found || r.Selection == nil {
		return 0
	}
	return r.Selection.Length()
}

// Each iterates the matched set; it is a no-op when nothing was found.
func (r MatchResult) Each(fn func(i int, sel *goquery.Selection)) {
	if r.Len() == 0 {
		return
	}
	r.Selection.Each(fn)
}

// Resolve returns the first matcher with a non-zero match count.
func Resolve(root *goquery.Selection, matchers ...Matcher) MatchResult {
	if root == nil {
		return MatchResult{}
	}
	for _, m := range matchers {
		if m.Find == nil {
			continue
		}
		sel := m.Find(root)
		if sel != nil && sel.Length() > 0 {
			return MatchResult{Found: true, Matcher: m.Name, Selection: sel}
		}
	}
	return MatchResult{}
}
