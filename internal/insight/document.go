package insight

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Anchor is one <a href> element in document order.
type Anchor struct {
	Href string
	Text string
}

// Document wraps a parsed HTML page and exposes the queries the extractors
// need: the title, anchors in document order, case-folded visible text,
// and the raw markup for pattern-based extraction.
type Document struct {
	doc *goquery.Document
	raw []byte
}

// ParseDocument decodes the body to UTF-8 if needed and parses it into a
// navigable document. The raw (decoded) bytes are retained so regexp
// extractors can see markup that the visible-text view hides.
func ParseDocument(body []byte) (*Document, error) {
	data := body
	enc, _, _ := charset.DetermineEncoding(body, "")
	if decoded, err := enc.NewDecoder().Bytes(body); err == nil {
		data = decoded
	} else if !utf8.Valid(body) {
		return nil, fmt.Errorf("decode page body: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse page body: %w", err)
	}
	return &Document{doc: doc, raw: data}, nil
}

// Title returns the first <title> text, or nil when the page has none.
func (d *Document) Title() *string {
	sel := d.doc.Find("title").First()
	if sel.Length() == 0 {
		return nil
	}
	title := strings.TrimSpace(sel.Text())
	if title == "" {
		return nil
	}
	return &title
}

// Anchors returns every <a> element carrying an href, in document order.
// Anchor text is the trimmed visible text of the element.
func (d *Document) Anchors() []Anchor {
	var anchors []Anchor
	d.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		anchors = append(anchors, Anchor{
			Href: href,
			Text: strings.TrimSpace(s.Text()),
		})
	})
	return anchors
}

// LowerText returns the page's full visible text, lower-cased for keyword
// matching.
func (d *Document) LowerText() string {
	return strings.ToLower(d.doc.Text())
}

// StrippedText returns the visible text with every run of whitespace
// collapsed to a single space, trimmed at both ends.
func (d *Document) StrippedText() string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(d.doc.Text(), " "))
}

// RawHTML returns the decoded page markup.
func (d *Document) RawHTML() []byte {
	return d.raw
}
