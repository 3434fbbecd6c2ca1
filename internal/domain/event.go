package domain

// Event types pushed to a tenant's change stream.
const (
	EventProjectCreated = "project.created"
	EventTaskCreated    = "task.created"
	EventTaskToggled    = "task.toggled"
)

// Event describes a change to a tenant's data. Exactly one of Project or Task
// is set.
type Event struct {
	Type    string   `json:"type"`
	Project *Project `json:"project,omitempty"`
	Task    *Task    `json:"task,omitempty"`
}
