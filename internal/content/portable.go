package content

import (
	"encoding/json"
	"strings"
)

const (
	BlockType = "block"
	SpanType  = "span"
)

// Block is a rich-text node. Text blocks carry their spans in Children.
// The decoded object is kept in Raw: nodes of any other type are written
// back unchanged, text blocks have their known fields laid over it so that
// formatting such as listItem and level survives.
type Block struct {
	Type     string          `json:"_type"`
	Key      string          `json:"_key,omitempty"`
	Style    string          `json:"style,omitempty"`
	Children []Span          `json:"children,omitempty"`
	MarkDefs json.RawMessage `json:"markDefs,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// Span is a leaf inside a text block. Non-span inline nodes are kept in Raw
// verbatim, spans keep any extra fields the same way blocks do.
type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key,omitempty"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`

	Raw json.RawMessage `json:"-"`
}

type blockAlias Block
type spanAlias Span

func (b *Block) UnmarshalJSON(data []byte) error {
	var a blockAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*b = Block(a)
	b.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	if b.Type != BlockType && b.Raw != nil {
		return b.Raw, nil
	}
	return overlay(b.Raw, blockAlias(b), "_type", "_key", "style", "children", "markDefs")
}

func (s *Span) UnmarshalJSON(data []byte) error {
	var a spanAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Span(a)
	s.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (s Span) MarshalJSON() ([]byte, error) {
	if s.Type != SpanType && s.Raw != nil {
		return s.Raw, nil
	}
	return overlay(s.Raw, spanAlias(s), "_type", "_key", "text", "marks")
}

// overlay encodes v on top of the object in raw. The known keys are taken
// from v alone, so a field v leaves empty is dropped rather than kept stale.
func overlay(raw json.RawMessage, v any, known ...string) ([]byte, error) {
	enc, err := json.Marshal(v)
	if err != nil || raw == nil {
		return enc, err
	}
	var base, fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &base); err != nil || base == nil {
		return enc, nil
	}
	if err := json.Unmarshal(enc, &fields); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(base, k)
	}
	for k, f := range fields {
		base[k] = f
	}
	return json.Marshal(base)
}

func (b Block) clone() Block {
	c := b
	if b.Children != nil {
		c.Children = make([]Span, len(b.Children))
		for i, s := range b.Children {
			c.Children[i] = s
			if s.Marks != nil {
				c.Children[i].Marks = append([]string(nil), s.Marks...)
			}
		}
	}
	return c
}

// Text joins the text of all spans in a text block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Children {
		if s.Type == SpanType {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

// Paragraph builds a single normal-style text block.
func Paragraph(text string) Block {
	return Block{
		Type:     BlockType,
		Style:    "normal",
		Children: []Span{{Type: SpanType, Text: text}},
	}
}

// Paragraphs splits text on blank lines into text blocks.
func Paragraphs(text string) []Block {
	var blocks []Block
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		blocks = append(blocks, Paragraph(p))
	}
	return blocks
}

// Markdown renders text blocks as markdown. Non-text nodes are skipped.
func Markdown(blocks []Block) string {
	var out []string
	for _, b := range blocks {
		if b.Type != BlockType {
			continue
		}
		var sb strings.Builder
		for _, s := range b.Children {
			if s.Type != SpanType {
				continue
			}
			sb.WriteString(markSpan(s))
		}
		text := sb.String()
		switch b.Style {
		case "h1":
			text = "# " + text
		case "h2":
			text = "## " + text
		case "h3":
			text = "### " + text
		case "h4":
			text = "#### " + text
		case "blockquote":
			text = "> " + text
		}
		out = append(out, text)
	}
	return strings.Join(out, "\n\n")
}

func markSpan(s Span) string {
	text := s.Text
	if strings.TrimSpace(text) == "" {
		return text
	}
	for _, m := range s.Marks {
		switch m {
		case "strong":
			text = "**" + text + "**"
		case "em":
			text = "_" + text + "_"
		case "code":
			text = "`" + text + "`"
		}
	}
	return text
}
