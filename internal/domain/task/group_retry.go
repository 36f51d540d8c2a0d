package task

// GroupRetryTask re-queues a group whose classification run failed.
type GroupRetryTask struct {
	GroupID    string `json:"group_id"`
	RetryCount int    `json:"retry_count"`
	Error      string `json:"error"` // Error message from the original failure
}

func (t *GroupRetryTask) TaskType() string {
	return "GroupRetryTask"
}

func (t *GroupRetryTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
