// Package project holds the digital-twin task plan shown on the dashboard:
// the task dependency graph, its summary and the due-date countdown.
package project

// Status is the lifecycle state of a task.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusAtRisk     Status = "at-risk"
	StatusPending    Status = "pending"
)

// AllStatuses returns statuses in display order.
func AllStatuses() []Status {
	return []Status{StatusCompleted, StatusInProgress, StatusAtRisk, StatusPending}
}

// Label returns a human-readable name for a status.
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusInProgress:
		return "In Progress"
	case StatusAtRisk:
		return "At Risk"
	case StatusPending:
		return "Pending"
	default:
		return string(s)
	}
}

// Task is one node of the project plan.
type Task struct {
	ID           string
	Name         string
	Status       Status
	Completion   int // percent, 0-100
	Dependencies []string
}

// DefaultTasks returns the eight-task plan.
func DefaultTasks() []Task {
	return []Task{
		{ID: "1", Name: "Planning", Status: StatusCompleted, Completion: 100},
		{ID: "2", Name: "Design", Status: StatusCompleted, Completion: 100, Dependencies: []string{"1"}},
		{ID: "3", Name: "Development", Status: StatusInProgress, Completion: 65, Dependencies: []string{"2"}},
		{ID: "4", Name: "Testing", Status: StatusPending, Completion: 15, Dependencies: []string{"3"}},
		{ID: "5", Name: "Frontend", Status: StatusInProgress, Completion: 80, Dependencies: []string{"2"}},
		{ID: "6", Name: "Backend", Status: StatusAtRisk, Completion: 45, Dependencies: []string{"2"}},
		{ID: "7", Name: "Integration", Status: StatusPending, Completion: 5, Dependencies: []string{"5", "6"}},
		{ID: "8", Name: "Deployment", Status: StatusPending, Completion: 0, Dependencies: []string{"4", "7"}},
	}
}
