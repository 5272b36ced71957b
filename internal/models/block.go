package models

// Block is one renderable piece of a brief section.
//
// A Block with an empty Heading is a plain line. A Block with Items is a bulleted sub-list
// under Heading. Text holds the scalar or flattened value.
type Block struct {
	Heading string   `json:"heading,omitempty"`
	Text    string   `json:"text,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// IsList reports whether the block renders as a bulleted list.
func (b Block) IsList() bool {
	return len(b.Items) > 0
}
