// Package dom provides a small read-only element tree over parsed XML.
//
// Element names are kept exactly as written in the source document,
// including their namespace prefix ("dc:title", "oai_dc:dc"), so lookups
// match on the qualified name rather than on a resolved namespace URI.
package dom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Document is a parsed XML document.
type Document struct {
	Root *Element
}

// Element is a single XML element and its content.
type Element struct {
	Name   string
	Attrs  []Attr
	Parent *Element

	nodes []node
}

// Attr is an attribute with its qualified name.
type Attr struct {
	Name  string
	Value string
}

// node is either a child element or a run of character data.
type node struct {
	elem *Element
	text string
}

// Parse reads a complete XML document.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = true

	var root *Element
	var stack []*Element

	for {
		tok, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: qualifiedName(t.Name)}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: qualifiedName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("parsing XML: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				el.Parent = parent
				parent.nodes = append(parent.nodes, node{elem: el})
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parsing XML: unexpected end element %q", qualifiedName(t.Name))
			}
			top := stack[len(stack)-1]
			if name := qualifiedName(t.Name); name != top.Name {
				return nil, fmt.Errorf("parsing XML: element %q closed by %q", top.Name, name)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.nodes = append(parent.nodes, node{text: string(t)})
		}
	}

	if root == nil {
		return nil, errors.New("parsing XML: no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("parsing XML: element %q not closed", stack[len(stack)-1].Name)
	}

	return &Document{Root: root}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// GetElementsByTagName returns every element in the document with the given
// qualified name, in document order. The root element is included.
// The name "*" matches all elements.
func (d *Document) GetElementsByTagName(name string) []*Element {
	if d == nil || d.Root == nil {
		return nil
	}
	var out []*Element
	if matchName(d.Root, name) {
		out = append(out, d.Root)
	}
	return d.Root.collect(name, out)
}

// GetElementsByTagName returns the descendants of e with the given qualified
// name, in document order. The element itself is not included.
func (e *Element) GetElementsByTagName(name string) []*Element {
	return e.collect(name, nil)
}

func (e *Element) collect(name string, out []*Element) []*Element {
	for _, n := range e.nodes {
		if n.elem == nil {
			continue
		}
		if matchName(n.elem, name) {
			out = append(out, n.elem)
		}
		out = n.elem.collect(name, out)
	}
	return out
}

// Children returns the direct child elements of e.
func (e *Element) Children() []*Element {
	var out []*Element
	for _, n := range e.nodes {
		if n.elem != nil {
			out = append(out, n.elem)
		}
	}
	return out
}

// LocalName returns the element name without its namespace prefix.
func (e *Element) LocalName() string {
	if i := strings.IndexByte(e.Name, ':'); i >= 0 {
		return e.Name[i+1:]
	}
	return e.Name
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	v, _ := e.LookupAttr(name)
	return v
}

// LookupAttr returns the value of the named attribute and whether it exists.
func (e *Element) LookupAttr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the concatenated character data of e and all its descendants.
func (e *Element) Text() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	for _, n := range e.nodes {
		if n.elem != nil {
			n.elem.writeText(b)
			continue
		}
		b.WriteString(n.text)
	}
}

// FirstChildText returns the character data directly under e up to the
// first child element.
func (e *Element) FirstChildText() (string, bool) {
	if len(e.nodes) == 0 || e.nodes[0].elem != nil {
		return "", false
	}
	return e.nodes[0].text, true
}

func matchName(e *Element, name string) bool {
	return name == "*" || e.Name == name
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
