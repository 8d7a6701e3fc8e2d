package project

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPlan = errors.New("invalid project plan")

// Validate performs all structural checks on the task set.
// Returns a combined error describing every problem found, or nil if valid.
func Validate(tasks []Task) error {
	var errs []string

	idSet := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("task %q has no ID", t.Name))
			continue
		}
		if idSet[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate task ID: %q", t.ID))
		}
		idSet[t.ID] = true
	}

	for _, t := range tasks {
		if t.Completion < 0 || t.Completion > 100 {
			errs = append(errs, fmt.Sprintf("task %q: completion must be in [0, 100], got %d", t.ID, t.Completion))
		}
		for _, dep := range t.Dependencies {
			if !idSet[dep] {
				errs = append(errs, fmt.Sprintf("task %q references nonexistent dependency %q", t.ID, dep))
			}
		}
	}

	order, leftover := topoSort(tasks)
	if len(order) < len(tasks) && len(leftover) > 0 {
		errs = append(errs, fmt.Sprintf("cycle detected involving tasks: %s", strings.Join(leftover, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidPlan, strings.Join(errs, "\n  "))
	}
	return nil
}

// topoSort orders tasks with Kahn's algorithm. Ties break by catalog
// position. Tasks left on a cycle are returned as leftover. Dependencies on
// unknown IDs are ignored here; Validate reports them.
func topoSort(tasks []Task) (order []Task, leftover []string) {
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		index[t.ID] = i
	}

	inDegree := make([]int, len(tasks))
	dependents := make([][]int, len(tasks))
	for i, t := range tasks {
		for _, dep := range t.Dependencies {
			j, ok := index[dep]
			if !ok {
				continue
			}
			inDegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	var queue []int
	for i := range tasks {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, tasks[i])
		for _, d := range dependents[i] {
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	for i, t := range tasks {
		if inDegree[i] > 0 {
			leftover = append(leftover, t.ID)
		}
	}
	return order, leftover
}
