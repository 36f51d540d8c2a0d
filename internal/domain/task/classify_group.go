package task

// ClassifyGroupTask asks a worker to classify every node of one WBS group.
type ClassifyGroupTask struct {
	GroupID string `json:"group_id"`
}

func (t *ClassifyGroupTask) TaskType() string {
	return "ClassifyGroupTask"
}

func (t *ClassifyGroupTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
