// Package pipeline wires the hierarchy resolver, the keyword mapping engine
// and the category consolidator into the full classification transform:
// canonical names -> level-2 keyword pass -> level-1 pass over the level-2
// tokens -> consolidation -> shaped export rows.
package pipeline

import (
	"fmt"

	"wbs/classifier/internal/consolidate"
	"wbs/classifier/internal/domain"
	"wbs/classifier/internal/hierarchy"
	"wbs/classifier/internal/mapping"
	"wbs/classifier/internal/ruleset"
)

// Options tunes the pure transform. Zero values fall back to the defaults
// used by the original exports (depth 3, case-insensitive matching is set
// explicitly by the caller).
type Options struct {
	MaxDepth        int
	CaseInsensitive bool
}

// Result holds both shaped record sets, in input node order.
type Result struct {
	Level1 []domain.Level1Row
	Level2 []domain.Level2Row
}

// Classify runs the whole batch transform. It is a pure function of its
// inputs: no I/O, no retries, and any dictionary error aborts before any
// row is produced.
func Classify(nodes []domain.Node, dict domain.Dictionary, rs ruleset.Ruleset, opts Options) (*Result, error) {
	maxDepth := opts.MaxDepth
	if maxDepth < 1 {
		maxDepth = hierarchy.DefaultMaxDepth
	}

	names := hierarchy.ResolveNames(nodes, maxDepth)

	items := make([]string, len(nodes))
	for i, node := range nodes {
		items[i] = names[node.Key()]
	}

	level2, err := mapping.MapCategories(items, dict.Level2, opts.CaseInsensitive)
	if err != nil {
		return nil, fmt.Errorf("level-2 mapping failed: %w", err)
	}

	// The level-1 corpus is the level-2 matched-category strings; level-1
	// "keywords" are level-2 category-name tokens.
	level2Tokens := make([]string, len(nodes))
	for i, match := range level2 {
		level2Tokens[i] = match.CategoryString()
	}

	level1, err := mapping.MapCategories(level2Tokens, dict.Level1, opts.CaseInsensitive)
	if err != nil {
		return nil, fmt.Errorf("level-1 mapping failed: %w", err)
	}

	labels := make([]string, len(nodes))
	for i, match := range level1 {
		labels[i] = match.CategoryString()
	}
	final := consolidate.Consolidate(labels, rs)

	result := &Result{
		Level1: make([]domain.Level1Row, 0, len(nodes)),
		Level2: make([]domain.Level2Row, 0, len(nodes)),
	}

	for i, node := range nodes {
		result.Level1 = append(result.Level1, domain.Level1Row{
			GroupID:         node.GroupID,
			ID:              node.ID,
			Title:           node.RawTitle,
			CanonicalName:   items[i],
			MatchedKeywords: level1[i].KeywordString(),
			Level1Category:  final[i],
		})

		if len(level2[i].Categories) == 0 {
			result.Level2 = append(result.Level2, domain.Level2Row{
				GroupID:        node.GroupID,
				ID:             node.ID,
				Title:          node.RawTitle,
				CanonicalName:  items[i],
				CategoryIndex:  1,
				Level2Category: ruleset.Unmapped,
			})
			continue
		}

		for j, category := range level2[i].Categories {
			result.Level2 = append(result.Level2, domain.Level2Row{
				GroupID:         node.GroupID,
				ID:              node.ID,
				Title:           node.RawTitle,
				CanonicalName:   items[i],
				MatchedKeywords: level2[i].KeywordString(),
				CategoryIndex:   j + 1,
				Level2Category:  rs.DisplayName(category),
			})
		}
	}

	return result, nil
}
