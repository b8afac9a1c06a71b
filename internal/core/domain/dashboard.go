package domain

import (
	"io"
	"time"
)

type TaskFilter struct {
	// Stage filters on the effective stage, so "overdue" matches tasks whose
	// deadline passed after their last write.
	Stage       *Stage
	Trashed     bool
	Search      string
	MemberID    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type PriorityCount struct {
	Priority Priority
	Total    int
}

type Dashboard struct {
	TotalTasks int
	LastTasks  []Task
	ByStage    map[Stage]int
	ByPriority []PriorityCount
	Users      []User
}

const dashboardRecentTasks = 10

// Summarize counts tasks by effective stage and derived priority. Tasks are
// expected newest first.
func Summarize(tasks []Task, now time.Time) Dashboard {
	d := Dashboard{
		TotalTasks: len(tasks),
		ByStage:    map[Stage]int{},
	}
	byPriority := map[Priority]int{}
	for i := range tasks {
		d.ByStage[tasks[i].EffectiveStage(now)]++
		byPriority[tasks[i].Priority(now)]++
	}
	for _, p := range Priorities {
		if n := byPriority[p]; n > 0 {
			d.ByPriority = append(d.ByPriority, PriorityCount{Priority: p, Total: n})
		}
	}
	d.LastTasks = tasks[:min(len(tasks), dashboardRecentTasks)]
	return d
}

// TaskDetails is a task plus the users it references, keyed by id.
type TaskDetails struct {
	Task  Task
	Users map[string]User
}

type TaskListing struct {
	Tasks           []Task
	TrashedSubtasks []TrashedSubtask
	Users           map[string]User
}

// Upload is one document handed to the blob store.
type Upload struct {
	Name    string
	Content io.Reader
}
