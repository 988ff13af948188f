package sanitization

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InertFragmentParser turns untrusted markup into a node tree without
// executing or loading anything. The returned root's children are the
// top-level nodes of the fragment.
type InertFragmentParser interface {
	ParseFragment(markup string) (*html.Node, error)
}

// InertBodyHelper parses markup as the content of a detached <body> element.
// Malformed markup is repaired by the HTML5 tree construction rules rather
// than rejected.
type InertBodyHelper struct{}

// ParseFragment implements InertFragmentParser.
func (InertBodyHelper) ParseFragment(markup string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("parse inert fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body, nil
}
