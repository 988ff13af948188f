package apply

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Renderer performs every mutation the runtime makes to the node tree.
type Renderer interface {
	CreateText(value string) *html.Node
	CreateElement(tag string) *html.Node
	CreateComment(value string) *html.Node
	AppendChild(parent, child *html.Node)
	// InsertBefore inserts child in front of ref, or appends it when ref is
	// nil or not a child of parent.
	InsertBefore(parent, child, ref *html.Node)
	RemoveChild(child *html.Node)
	SetText(node *html.Node, value string)
	SetAttribute(el *html.Node, name, value string)
}

// DOMRenderer renders into an x/net/html tree.
type DOMRenderer struct{}

var _ Renderer = DOMRenderer{}

func (DOMRenderer) CreateText(value string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: value}
}

func (DOMRenderer) CreateElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func (DOMRenderer) CreateComment(value string) *html.Node {
	return &html.Node{Type: html.CommentNode, Data: value}
}

func (r DOMRenderer) AppendChild(parent, child *html.Node) {
	detach(child)
	parent.AppendChild(child)
}

func (r DOMRenderer) InsertBefore(parent, child, ref *html.Node) {
	detach(child)
	if ref == nil || ref.Parent != parent {
		parent.AppendChild(child)
		return
	}
	parent.InsertBefore(child, ref)
}

func (DOMRenderer) RemoveChild(child *html.Node) {
	detach(child)
}

func (DOMRenderer) SetText(node *html.Node, value string) {
	node.Data = value
}

func (DOMRenderer) SetAttribute(el *html.Node, name, value string) {
	for i := range el.Attr {
		if el.Attr[i].Key == name {
			el.Attr[i].Val = value
			return
		}
	}
	el.Attr = append(el.Attr, html.Attribute{Key: name, Val: value})
}

// detach removes n from its parent, if any. html.Node panics when a node with
// a parent is attached again.
func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
