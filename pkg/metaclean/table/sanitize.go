package table

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML extracts the visible text from a string that may carry embedded
// markup. Scraped metadata occasionally contains anchor tags or entity
// escapes; the decomposer expects plain text.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}

// SanitizeColumn strips markup from every cell of the named column in place.
// Returns a configuration error if the column is absent.
func (t *Table) SanitizeColumn(name string) error {
	col, err := t.RequireColumn(name)
	if err != nil {
		return err
	}
	for i := range t.Rows {
		t.Rows[i][col] = StripHTML(t.Rows[i][col])
	}
	return nil
}
