package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/matchday-feed/internal/platform/normalize"
)

// TextField describes how to pull one string out of a matched element.
type TextField struct {
	Selectors []string
	// ImageLabel falls back to the alt, then title, of the first image.
	ImageLabel bool
	Default    string
}

// Extract walks Selectors, then the image label, then Default.
func (f TextField) Extract(sel *goquery.Selection) string {
	if sel == nil {
		return f.Default
	}
	if text := FirstText(sel, f.Selectors...); text != "" {
		return text
	}
	if f.ImageLabel {
		if label := ImageLabel(sel); label != "" {
			return label
		}
	}
	return f.Default
}

// FirstText returns the trimmed text of the first selector with non-empty text.
func FirstText(sel *goquery.Selection, selectors ...string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(sel.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// FirstAttr returns the first non-empty attr value among selectors.
func FirstAttr(sel *goquery.Selection, attr string, selectors ...string) string {
	for _, selector := range selectors {
		if value := strings.TrimSpace(sel.Find(selector).First().AttrOr(attr, "")); value != "" {
			return value
		}
	}
	return ""
}

func ImageLabel(sel *goquery.Selection) string {
	img := sel.Find("img").First()
	if alt := strings.TrimSpace(img.AttrOr("alt", "")); alt != "" {
		return alt
	}
	return strings.TrimSpace(img.AttrOr("title", ""))
}

// Cells returns the th/td children of a table row.
func Cells(row *goquery.Selection) []*goquery.Selection {
	cells := row.Find("th, td")
	out := make([]*goquery.Selection, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		out = append(out, cell)
	})
	return out
}

// DataCells returns only the td children of a row.
func DataCells(row *goquery.Selection) []*goquery.Selection {
	cells := row.Find("td")
	out := make([]*goquery.Selection, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		out = append(out, cell)
	})
	return out
}

// CellText is the trimmed text of cells[i], or "" when out of range.
func CellText(cells []*goquery.Selection, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i].Text())
}

// CellInt coerces cells[i] with the normalizer, logging substitutions.
func CellInt(n *normalize.Normalizer, cells []*goquery.Selection, i int) int {
	return n.Int(CellText(cells, i))
}

// AbsoluteURL prefixes protocol-relative links with https.
func AbsoluteURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	return raw
}
