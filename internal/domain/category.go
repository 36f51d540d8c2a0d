package domain

import "strings"

// Category is a named keyword set matched against a text corpus.
// For the level-1 layer the "keywords" are level-2 category-name tokens.
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Dictionary holds both keyword layers in their configured order.
type Dictionary struct {
	Level2 []Category `json:"level2"` // Fine-grained, matched against canonical names
	Level1 []Category `json:"level1"` // Coarse-grained, matched against level-2 tokens
}

// Match is the per-item result of one keyword mapping pass. Tokens are kept
// as ordered slices and only joined into display strings at the output
// boundary.
type Match struct {
	Keywords   []string // Matched keyword literals, quoted, category iteration order
	Categories []string // Matched category names, category iteration order
}

func (m Match) KeywordString() string {
	return strings.Join(m.Keywords, " ")
}

func (m Match) CategoryString() string {
	return strings.Join(m.Categories, " ")
}
