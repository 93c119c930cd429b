package htmlscan

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Link is an anchor element. Href is resolved against the document base.
type Link struct {
	Href    string
	RawHref string
	Text    string
	Class   string
}

// Image is an img element. Src is resolved against the document base.
type Image struct {
	Src    string
	RawSrc string
	Alt    string
}

// Heading is an h1-h6 element.
type Heading struct {
	Level int
	Text  string
}

// Document is a flat, document-ordered view of the parts of a page the
// checks inspect.
type Document struct {
	Links    []Link
	Images   []Image
	Headings []Heading
	// Texts holds every non-blank text node outside script, style and template.
	Texts []string
}

// Parse reads an HTML document from r. base may be nil, in which case
// relative URLs are kept as written.
func Parse(r io.Reader, base *url.URL) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	walk(root, base, doc)
	return doc, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(s string, base *url.URL) (*Document, error) {
	return Parse(strings.NewReader(s), base)
}

func walk(n *html.Node, base *url.URL, doc *Document) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Template, atom.Noscript:
			return
		case atom.A:
			raw, ok := attr(n, "href")
			l := Link{RawHref: raw, Text: textOf(n), Class: attrOr(n, "class")}
			if ok {
				l.Href = resolve(base, raw)
			}
			doc.Links = append(doc.Links, l)
		case atom.Img:
			raw, _ := attr(n, "src")
			doc.Images = append(doc.Images, Image{Src: resolve(base, raw), RawSrc: raw, Alt: attrOr(n, "alt")})
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			doc.Headings = append(doc.Headings, Heading{Level: int(n.Data[1] - '0'), Text: textOf(n)})
		}
	}
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			doc.Texts = append(doc.Texts, t)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, base, doc)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return strings.TrimSpace(a.Val), true
		}
	}
	return "", false
}

func attrOr(n *html.Node, key string) string {
	v, _ := attr(n, key)
	return v
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(c *html.Node) {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Script || c.DataAtom == atom.Style) {
			return
		}
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			collect(cc)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func resolve(base *url.URL, raw string) string {
	if raw == "" || base == nil {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(u).String()
}
