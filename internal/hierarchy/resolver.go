package hierarchy

import (
	"regexp"
	"strings"

	"wbs/classifier/internal/domain"
)

// Separator joins the title segments of a canonical name.
const Separator = " || "

// DefaultMaxDepth is the number of title segments a canonical name may
// contain, counting the node itself.
const DefaultMaxDepth = 3

var nonAlphanumeric = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// CleanTitle lower-cases a raw title, collapses runs of non-alphanumeric
// characters to single spaces and trims the result.
func CleanTitle(raw string) string {
	cleaned := nonAlphanumeric.ReplaceAllString(strings.ToLower(raw), " ")
	return strings.TrimSpace(cleaned)
}

type indexEntry struct {
	title    string
	parentID string
}

// ResolveNames builds the canonical searchable name for every node. The name
// is the node's cleaned title followed by up to maxDepth-1 ancestor cleaned
// titles, most specific first, joined by Separator.
//
// Depth-1 nodes are seeded up front and skipped by the walk: they are roots
// by definition, so their canonical name is exactly their cleaned title.
// The ancestor walk is an explicit loop bounded by maxDepth; a cyclic parent
// reference therefore truncates at the depth limit instead of recursing
// forever. An empty parent reference or one missing from the index ends the
// walk and contributes nothing further.
func ResolveNames(nodes []domain.Node, maxDepth int) map[domain.NodeKey]string {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}

	index := make(map[domain.NodeKey]indexEntry, len(nodes))
	for _, node := range nodes {
		index[node.Key()] = indexEntry{
			title:    CleanTitle(node.RawTitle),
			parentID: node.ParentID,
		}
	}

	names := make(map[domain.NodeKey]string, len(nodes))

	// Roots first, no walk needed.
	for _, node := range nodes {
		if node.DepthLevel == 1 {
			names[node.Key()] = index[node.Key()].title
		}
	}

	for _, node := range nodes {
		if node.DepthLevel == 1 {
			continue
		}

		segments := make([]string, 0, maxDepth)
		segments = append(segments, index[node.Key()].title)

		parentID := node.ParentID
		for len(segments) < maxDepth {
			if parentID == "" {
				break
			}
			parent, ok := index[domain.NodeKey{GroupID: node.GroupID, ID: parentID}]
			if !ok {
				break
			}
			segments = append(segments, parent.title)
			parentID = parent.parentID
		}

		names[node.Key()] = strings.Join(segments, Separator)
	}

	return names
}
