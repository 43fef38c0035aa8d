package html

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parser represents an HTML parser
type Parser struct{}

// Document represents a parsed HTML document
type Document struct {
	root *html.Node
}

// NewParser creates a new HTML parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseString parses HTML from a string
func (p *Parser) ParseString(content string) (*Document, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse parses HTML from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// attribute returns the value of the named attribute, matched case-insensitively
func attribute(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// ImageSources returns the src of every <img> element in document order.
// Images without a src are skipped.
func (d *Document) ImageSources() []string {
	var sources []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "img") {
			if src, ok := attribute(n, "src"); ok {
				if src = strings.TrimSpace(src); src != "" {
					sources = append(sources, src)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if d.root != nil {
		walk(d.root)
	}
	return sources
}

// ImageSources parses r and returns the src of every <img> element
func ImageSources(r io.Reader) ([]string, error) {
	doc, err := NewParser().Parse(r)
	if err != nil {
		return nil, err
	}
	return doc.ImageSources(), nil
}
