package program

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/confgrab/internal/talk"
	"golang.org/x/net/html"
)

// rowspan returns the cell's rowspan, or 1 when absent or malformed.
func rowspan(cell *goquery.Selection) int {
	v, ok := cell.Attr("rowspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// fillFromCell sets title, authors and url on rec from a talk cell.
//
// A linked cell takes its title from the link text. Authors come from a
// nested paragraph when there is one (an empty one leaves them unset),
// otherwise from the last text fragment of the cell if it has more than one.
// A cell without a link is a panel or BoF description and its whole text
// becomes the title.
func fillFromCell(rec *talk.Record, cell *goquery.Selection) {
	link := cell.Find("a[href]").First()
	if link.Length() == 0 {
		rec.Title = talk.Normalize(cell.Text())
		return
	}

	rec.Title = talk.Normalize(link.Text())
	if href := strings.TrimSpace(link.AttrOr("href", "")); href != "" {
		rec.URL = href
	}

	if p := cell.Find("p").First(); p.Length() > 0 {
		if authors := talk.Normalize(p.Text()); authors != "" {
			rec.Authors = authors
		}
		return
	}

	if fragments := textFragments(cell); len(fragments) > 1 {
		rec.Authors = fragments[len(fragments)-1]
	}
}

// textFragments returns the non-blank text nodes under sel in document
// order, each whitespace-normalised.
func textFragments(sel *goquery.Selection) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := talk.Normalize(n.Data); text != "" {
				out = append(out, text)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return out
}
