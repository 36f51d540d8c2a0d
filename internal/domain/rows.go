package domain

// Level1Row is one export record per classified node.
type Level1Row struct {
	GroupID         string `json:"group_id"`
	ID              string `json:"id"`
	Title           string `json:"title"`
	CanonicalName   string `json:"canonical_name"`
	MatchedKeywords string `json:"matched_keywords"`
	Level1Category  string `json:"level1_category"`
}

// Level2Row is one export record per matched level-2 category per node. A
// node with no level-2 match still produces exactly one row with
// CategoryIndex 1 and the "Unmapped" category.
type Level2Row struct {
	GroupID         string `json:"group_id"`
	ID              string `json:"id"`
	Title           string `json:"title"`
	CanonicalName   string `json:"canonical_name"`
	MatchedKeywords string `json:"matched_keywords"`
	CategoryIndex   int    `json:"category_index"`
	Level2Category  string `json:"level2_category"`
}
