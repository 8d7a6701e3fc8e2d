package project

import "math"

// Summary aggregates the plan for the dashboard.
type Summary struct {
	Total      int
	Completion int // mean task completion, rounded
	ByStatus   map[Status]int
	Order      []Task // dependency order
}

// Summarize validates the plan and computes its summary.
func Summarize(tasks []Task) (Summary, error) {
	if err := Validate(tasks); err != nil {
		return Summary{}, err
	}

	s := Summary{
		Total:    len(tasks),
		ByStatus: make(map[Status]int, len(AllStatuses())),
	}
	sum := 0
	for _, t := range tasks {
		sum += t.Completion
		s.ByStatus[t.Status]++
	}
	if len(tasks) > 0 {
		s.Completion = int(math.Round(float64(sum) / float64(len(tasks))))
	}
	s.Order, _ = topoSort(tasks)
	return s, nil
}

// Blocked returns the tasks with at least one dependency that is not completed.
func Blocked(tasks []Task) []Task {
	done := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.Status == StatusCompleted {
			done[t.ID] = true
		}
	}
	var out []Task
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if !done[dep] {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
