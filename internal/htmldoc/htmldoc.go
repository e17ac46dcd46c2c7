// Package htmldoc provides structural queries over parsed HTML documents.
// Checks use it to assert that elements identified by tag, id, class, or
// exact text content are present in a page.
package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

// Document wraps a parsed HTML tree.
type Document struct {
	root *html.Node
}

// Parse parses an HTML document from its body text. The x/net/html parser
// is forgiving: it never fails on real-world markup, but a truncated or
// binary body can still produce an error.
func Parse(body string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// FindByTag returns the first element with the given tag name, or nil.
func (d *Document) FindByTag(tag string) *html.Node {
	return d.find(func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	})
}

// FindByID returns the first element with the given id attribute, or nil.
func (d *Document) FindByID(id string) *html.Node {
	return d.find(func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	})
}

// FindByClass returns the first element carrying the given class, or nil.
// The class attribute is treated as a space-separated list.
func (d *Document) FindByClass(class string) *html.Node {
	return d.find(func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	})
}

// FindByText returns the first element whose own text content, trimmed,
// equals the given string, or nil.
func (d *Document) FindByText(text string) *html.Node {
	return d.find(func(n *html.Node) bool {
		return n.Type == html.ElementNode && strings.TrimSpace(Text(n)) == text
	})
}

// StyleText returns the concatenated text of all inline <style> elements.
func (d *Document) StyleText() string {
	var sb strings.Builder
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "style" {
			sb.WriteString(Text(n))
		}
		return false
	})
	return sb.String()
}

// Text returns the concatenated text content of a node and its descendants.
func Text(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

// find returns the first node in document order matching the predicate.
func (d *Document) find(match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if match(n) {
			found = n
			return true
		}
		return false
	})
	return found
}

// walk traverses the tree in document order until visit returns true.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, visit) {
			return true
		}
	}
	return false
}

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
