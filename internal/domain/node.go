package domain

// Node is one element of a project's work breakdown structure.
type Node struct {
	GroupID    string `json:"group_id"`    // Which tree the node belongs to
	ID         string `json:"id"`          // Unique within its group
	ParentID   string `json:"parent_id"`   // Empty for a root
	RawTitle   string `json:"raw_title"`   // Original text, may be empty
	DepthLevel int    `json:"depth_level"` // 1 = root-most
}

// NodeKey identifies a node across all groups.
type NodeKey struct {
	GroupID string
	ID      string
}

func (n Node) Key() NodeKey {
	return NodeKey{GroupID: n.GroupID, ID: n.ID}
}
