package content

import (
	"encoding/json"
	"log"
)

// RichText is an ordered sequence of typed nodes. Unknown node types are
// skipped during decode (logged, never an error) so the model tolerates
// schema evolution on the content source side.
type RichText []Node

// Node is implemented by every rich text node kind.
type Node interface {
	NodeType() string
}

// TextNode is a paragraph, heading or list entry made of styled spans.
type TextNode struct {
	Key      string    `json:"_key"`
	Style    string    `json:"style"` // normal, h2..h6, blockquote
	ListItem string    `json:"listItem"`
	Level    int       `json:"level"`
	Children []Span    `json:"children"`
	MarkDefs []MarkDef `json:"markDefs"`
}

func (*TextNode) NodeType() string { return "block" }

// PlainText concatenates the node's span text, useful for heading anchors.
func (n *TextNode) PlainText() string {
	var out string
	for _, s := range n.Children {
		out += s.Text
	}
	return out
}

// Span is a run of text with zero or more mark references.
type Span struct {
	Key   string   `json:"_key"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

// UnmarshalJSON scrubs zero-width characters at the decode boundary so no
// renderer ever sees them.
func (s *Span) UnmarshalJSON(data []byte) error {
	type alias Span
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	a.Text = CleanText(a.Text)
	*s = Span(a)
	return nil
}

// MarkDef is an annotation referenced by span marks, currently only links.
type MarkDef struct {
	Key          string `json:"_key"`
	Type         string `json:"_type"`
	Href         string `json:"href"`
	OpenInNewTab bool   `json:"openInNewTab"`
}

// ImageNode is an inline figure.
type ImageNode struct {
	Key     string `json:"_key"`
	Image   Image  `json:"-"`
	Caption string `json:"caption"`
}

func (*ImageNode) NodeType() string { return "image" }

func (n *ImageNode) UnmarshalJSON(data []byte) error {
	type alias struct {
		Key     string `json:"_key"`
		Caption string `json:"caption"`
		Image
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	n.Key = a.Key
	n.Caption = a.Caption
	n.Image = a.Image
	return nil
}

// BlockquoteNode is a standalone attributed quote.
type BlockquoteNode struct {
	Key         string `json:"_key"`
	Quote       string `json:"quote"`
	Attribution string `json:"attribution"`
	Source      string `json:"source"`
}

func (*BlockquoteNode) NodeType() string { return "blockquote" }

// CodeNode is a fenced code listing.
type CodeNode struct {
	Key      string `json:"_key"`
	Code     string `json:"code"`
	Language string `json:"language"`
	Filename string `json:"filename"`
}

func (*CodeNode) NodeType() string { return "codeBlock" }

// TableNode is a simple grid; the first row is treated as the header.
type TableNode struct {
	Key  string     `json:"_key"`
	Rows [][]string `json:"rows"`
}

func (*TableNode) NodeType() string { return "table" }

// BreakNode is a horizontal rule or section divider.
type BreakNode struct {
	Key   string `json:"_key"`
	Style string `json:"style"`
}

func (*BreakNode) NodeType() string { return "break" }

var nodeDecoders = map[string]func([]byte) (Node, error){
	"block":      decodeNode[*TextNode],
	"image":      decodeNode[*ImageNode],
	"blockquote": decodeNode[*BlockquoteNode],
	"codeBlock":  decodeNode[*CodeNode],
	"table":      decodeNode[*TableNode],
	"break":      decodeNode[*BreakNode],
}

func decodeNode[T Node](data []byte) (Node, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// UnmarshalJSON decodes the node array, dropping entries whose type has no
// decoder or whose payload fails to parse.
func (rt *RichText) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	nodes := make(RichText, 0, len(raws))
	for _, raw := range raws {
		var env struct {
			Type string `json:"_type"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Printf("content: skipping malformed rich text node: %v", err)
			continue
		}
		decode, ok := nodeDecoders[env.Type]
		if !ok {
			log.Printf("content: skipping unknown rich text node type %q", env.Type)
			continue
		}
		node, err := decode(raw)
		if err != nil {
			log.Printf("content: skipping rich text node %q: %v", env.Type, err)
			continue
		}
		nodes = append(nodes, node)
	}
	*rt = nodes
	return nil
}

// Empty reports whether the rich text has no renderable nodes.
func (rt RichText) Empty() bool {
	return len(rt) == 0
}
