package details

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/confgrab/internal/talk"
)

// Placeholder strings returned instead of an abstract
const (
	NoLink          = "No details link provided."
	NoWrapper       = "Could not find content wrapper on the page."
	NotOnPage       = "Details not found on this page."
	NoAbstract      = "No abstract or details found."
	EmptyContent    = "Failed to load HTML content."
	fetchFailedFmt  = "Failed to fetch details: %v"
	parseFailedFmt  = "Error parsing HTML: %v"
	cacheMissingFmt = "Cached file not found: tried %v"
)

// ContentSelector locates the abstract on a talk page.
const ContentSelector = "div.gt-site-inner div.gt-content"

// BoilerplateMarker appears in the scheduling notice some talk pages show in
// place of an abstract.
const BoilerplateMarker = "Please note the program"

// Extract pulls the abstract out of a talk detail page.
func Extract(markup []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return fmt.Sprintf(parseFailedFmt, err)
	}
	return ExtractDocument(doc)
}

// ExtractDocument is Extract for an already parsed page.
func ExtractDocument(doc *goquery.Document) string {
	content := doc.Find(ContentSelector).First()
	if content.Length() == 0 {
		return NoWrapper
	}

	paragraphs := make([]string, 0)
	content.Find("p").Each(func(i int, p *goquery.Selection) {
		paragraphs = append(paragraphs, talk.Normalize(p.Text()))
	})
	text := strings.Join(paragraphs, "\n")

	if strings.Contains(text, BoilerplateMarker) {
		return NotOnPage
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return NoAbstract
	}
	return text
}

// ExtractFile runs Extract against a saved page. name may omit the .html
// extension.
func ExtractFile(name string) string {
	candidates := []string{name}
	if !strings.HasSuffix(name, ".html") {
		candidates = append(candidates, name+".html")
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return Extract(data)
	}

	return fmt.Sprintf(cacheMissingFmt, candidates)
}
