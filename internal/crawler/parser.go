package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is the readable part of a product page.
type Page struct {
	Title string
	Text  string
}

// ParsePage keeps the visible text of a product page, one element per line.
// Spec sheets are usually tables, so cells are kept too. The title is the
// first h1, or the document title when there is none.
func ParsePage(html string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Page{}, err
	}

	var content []string
	doc.Find("h1, h2, h3, p, li, tr").Each(func(_ int, s *goquery.Selection) {
		var text string
		if cells := s.Find("th, td"); cells.Length() > 0 {
			var parts []string
			cells.Each(func(_ int, cell *goquery.Selection) {
				parts = append(parts, strings.TrimSpace(cell.Text()))
			})
			text = strings.Join(parts, ": ")
		} else {
			text = strings.TrimSpace(s.Text())
		}
		if text != "" {
			content = append(content, text)
		}
	})

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	return Page{
		Title: strings.Join(strings.Fields(title), " "),
		Text:  strings.Join(content, "\n"),
	}, nil
}

func (c *Client) FetchPage(ctx context.Context, url string) (Page, error) {
	html, err := c.Fetch(ctx, url)
	if err != nil {
		return Page{}, err
	}
	return ParsePage(html)
}
