package models

import "time"

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// AllStatuses in workflow order.
var AllStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	AssigneeID  *string      `json:"assignee_id"`
	Taxonomy    *TaxonomyRef `json:"cti"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Notes       []Note       `json:"notes"`

	// resolved on read, never stored
	Assignee      *UserRef       `json:"assignee"`
	TaxonomyLabel *TaxonomyLabel `json:"cti_label"`
}

// Note is owned by exactly one task.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"note"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskFilter selects a page of tasks.
type TaskFilter struct {
	Statuses []TaskStatus
	Page     int
	Limit    int
}

// TaskPage is one page of a filtered task listing.
type TaskPage struct {
	Tasks      []Task `json:"tasks"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}
