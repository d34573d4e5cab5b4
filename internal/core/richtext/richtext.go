// Package richtext unwraps a rich-text document (the nested node format
// issue trackers use for descriptions) down to plain text.
package richtext

import (
	"encoding/json"
	"strings"
)

// Placeholder is returned whenever a document cannot be unwrapped:
// empty input, a shape that is not a node tree, or a tree with no text.
const Placeholder = "No description provided"

// node is the minimal slice of the rich-text document shape we care
// about: text leaves and nested content.
type node struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Content []node `json:"content"`
}

// FromJSON extracts plain text from a raw rich-text document. The result
// is all text-leaf values in document order joined by single spaces,
// trimmed. A plain JSON string is returned as-is. Anything unrecognized
// yields Placeholder rather than an error; a bad description must never
// fail a whole sync.
func FromJSON(raw []byte) string {
	if len(raw) == 0 {
		return Placeholder
	}

	// Older API versions return the description as a plain string.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return Placeholder
		}
		return s
	}

	var doc node
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Placeholder
	}

	var leaves []string
	collect(doc, &leaves)
	text := strings.TrimSpace(strings.Join(leaves, " "))
	if text == "" {
		return Placeholder
	}
	return text
}

func collect(n node, leaves *[]string) {
	if n.Text != "" {
		*leaves = append(*leaves, n.Text)
	}
	for _, child := range n.Content {
		collect(child, leaves)
	}
}
