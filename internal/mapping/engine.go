package mapping

import (
	"errors"
	"fmt"
	"strings"

	"wbs/classifier/internal/domain"
)

// ErrInvalidInput marks structurally broken dictionary data. Errors of this
// class are fatal: the run must stop before producing any output.
var ErrInvalidInput = errors.New("invalid mapping input")

// MapCategories runs one keyword mapping pass over the corpus. Categories
// are iterated in the caller-supplied order; per category, every item is
// substring-searched for each of the category's deduplicated keywords. A
// matching item collects one quoted keyword literal per matched category --
// the last keyword in set order that hit, later hits overwrite earlier ones
// within the same category -- plus the category name once. Matches across
// categories are independent, so an item may end up with zero, one or many
// category tokens.
//
// With caseInsensitive set, corpus and keywords are case-folded
// symmetrically; folding only one side would produce false negatives.
// An empty categories slice is not an error: every item simply stays
// unmatched.
func MapCategories(items []string, categories []domain.Category, caseInsensitive bool) ([]domain.Match, error) {
	for i, category := range categories {
		if strings.TrimSpace(category.Name) == "" {
			return nil, fmt.Errorf("%w: category at position %d has no name", ErrInvalidInput, i)
		}
	}

	folded := items
	if caseInsensitive {
		folded = make([]string, len(items))
		for i, item := range items {
			folded[i] = strings.ToLower(item)
		}
	}

	matches := make([]domain.Match, len(items))

	for _, category := range categories {
		keywords := dedupe(category.Keywords)
		if caseInsensitive {
			for i, keyword := range keywords {
				keywords[i] = strings.ToLower(keyword)
			}
		}

		for i, item := range folded {
			lastHit := ""
			for _, keyword := range keywords {
				if keyword == "" {
					continue
				}
				if strings.Contains(item, keyword) {
					lastHit = keyword
				}
			}
			if lastHit != "" {
				matches[i].Keywords = append(matches[i].Keywords, "'"+lastHit+"'")
				matches[i].Categories = append(matches[i].Categories, category.Name)
			}
		}
	}

	return matches, nil
}

// dedupe removes duplicate keywords while preserving first-seen order.
func dedupe(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if _, ok := seen[keyword]; ok {
			continue
		}
		seen[keyword] = struct{}{}
		out = append(out, keyword)
	}
	return out
}
