package preview

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val string
}

// Node is the declarative view model of a preview fragment. A Node with an empty Tag is a
// text node; its Text is escaped when serialized.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// El builds an element node.
func El(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Tag: tag, Attrs: attrs, Children: children}
}

// Text builds a text node.
func Text(s string) *Node {
	return &Node{Text: s}
}

// Class is shorthand for a class attribute list.
func Class(class string) []Attr {
	return []Attr{{Key: "class", Val: class}}
}

// List builds a <ul> with one <li> per item.
func List(class string, items []string) *Node {
	ul := El("ul", Class(class))
	for _, item := range items {
		ul.Children = append(ul.Children, El("li", nil, Text(item)))
	}
	return ul
}

// HTML converts the node tree into x/net/html nodes.
func (n *Node) HTML() *html.Node {
	if n.Tag == "" {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if n.Text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children {
		el.AppendChild(c.HTML())
	}
	return el
}
