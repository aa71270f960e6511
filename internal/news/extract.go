package news

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// truncationMarker is appended when an article body exceeds the size cap.
const truncationMarker = "\n...(content truncated)..."

// ExtractText pulls readable article text out of a raw HTML document.
// Boilerplate containers are stripped and paragraph text is joined; very
// short paragraphs (cookie banners, captions) are dropped.
func ExtractText(html []byte, maxChars int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, footer, header").Remove()

	paragraphs := []string{}
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > 10 {
			paragraphs = append(paragraphs, text)
		}
	})

	full := strings.Join(paragraphs, "\n\n")
	if maxChars > 0 && len(full) > maxChars {
		full = full[:maxChars] + truncationMarker
	}

	return full, nil
}
