package contract

import "time"

// SweepFailure records one task the sweeper could not update.
type SweepFailure struct {
	InstanceID string `json:"instanceId"`
	TaskID     string `json:"taskId"`
	Err        string `json:"error"`
}

type SweepResult struct {
	At               time.Time      `json:"at"`
	InstancesScanned int            `json:"instancesScanned"`
	TasksScanned     int            `json:"tasksScanned"`
	Escalated        int            `json:"escalated"`
	Warned           int            `json:"warned"`
	Failures         []SweepFailure `json:"failures,omitempty"`
}

// Changed reports whether the sweep mutated any task.
func (r SweepResult) Changed() bool {
	return r.Escalated > 0 || r.Warned > 0
}
