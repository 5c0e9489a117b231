package domain

import "time"

type Todo struct {
	ID        string
	Text      string
	Completed bool
	// CompletedAt is epoch milliseconds, nil unless Completed is true.
	CompletedAt *int64
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PublicTodo is the HTTP-facing shape of a todo.
type PublicTodo struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	OwnerID     string `json:"_creator"`
}

func (t Todo) Public() PublicTodo {
	return PublicTodo{
		ID:          t.ID,
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		OwnerID:     t.OwnerID,
	}
}

// TodoPatch carries the caller-supplied fields of an update request.
// Only text and completed are accepted; the boundary layer constructs
// this struct so the core never sees arbitrary fields.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// TodoChange is the resolved set of fields an update writes. Completed
// and CompletedAt are always written as a pair so the flag and the
// timestamp cannot drift apart.
type TodoChange struct {
	Text        *string
	Completed   bool
	CompletedAt *int64
}

// Apply resolves a patch against the current time. An explicit
// completed=true stamps CompletedAt; completed=false or an absent flag
// forces the todo back to incomplete and clears the timestamp, even if
// the caller did not ask for that. The asymmetry keeps the pair
// consistent without requiring clients to manage the timestamp.
func (p TodoPatch) Apply(now time.Time) TodoChange {
	change := TodoChange{Text: p.Text}

	if p.Completed != nil && *p.Completed {
		millis := now.UnixMilli()
		change.Completed = true
		change.CompletedAt = &millis
	}

	return change
}
