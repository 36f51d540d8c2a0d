package consolidate

import (
	"regexp"
	"strings"

	"wbs/classifier/internal/ruleset"
)

var whitespace = regexp.MustCompile(`\s+`)

func squeeze(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// Consolidate reduces each item's multi-token level-1 label to exactly one
// category and translates it to its display name. The steps run in a fixed
// order and each step sees the output of the previous one:
//
//  1. Trim; an empty label becomes "Unmapped".
//  2. Absolute overrides, in list order. Each override replaces the whole
//     label with its own token when the token is present anywhere in the
//     current label. A replacement erases every other token, so whichever
//     override runs first on a multiply-matched label settles it.
//  3. Pairwise rules, in list order. A rule fires only when the current
//     label contains both of its tokens; it strips them, appends the winner
//     and squeezes whitespace. Labels with three or more tokens resolve
//     incrementally, rule by rule.
//  4. Display renaming via the ruleset table.
//
// No step returns an error; "Unmapped" carries through untouched because no
// override or rule token ever matches it.
func Consolidate(labels []string, rs ruleset.Ruleset) []string {
	out := make([]string, len(labels))

	for i, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			label = ruleset.Unmapped
		}

		for _, token := range rs.Overrides {
			if strings.Contains(label, token) {
				label = token
			}
		}

		for _, rule := range rs.PairwiseRules {
			if strings.Contains(label, rule.A) && strings.Contains(label, rule.B) {
				label = strings.ReplaceAll(label, rule.A, "")
				label = strings.ReplaceAll(label, rule.B, "")
				label = squeeze(label + " " + rule.Winner)
			}
		}

		out[i] = rs.DisplayName(label)
	}

	return out
}
