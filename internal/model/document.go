package model

// CompletionRecord counts the tasks completed on one calendar day.
// The date is a DateLayout key; Count never goes below zero.
type CompletionRecord struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Document is the persisted aggregate: the entire application state,
// read and rewritten wholesale on every mutation.
type Document struct {
	Tasks    []Task             `json:"tasks"`
	Projects []Project          `json:"projects"`
	Stats    []CompletionRecord `json:"stats"`

	// Deleted is the single-slot undo buffer. It holds the most recently
	// deleted task; a second deletion overwrites it, and restoring clears it.
	Deleted *Task `json:"deleted"`
}

// NewDocument returns an empty document with non-nil slices so the
// persisted JSON always carries the full shape.
func NewDocument() *Document {
	return &Document{
		Tasks:    []Task{},
		Projects: []Project{},
		Stats:    []CompletionRecord{},
	}
}

// Clone returns a deep copy of the document. Mutations are applied to a
// copy so a failed save leaves the loaded state untouched.
func (d *Document) Clone() *Document {
	c := &Document{
		Tasks:    make([]Task, len(d.Tasks)),
		Projects: make([]Project, len(d.Projects)),
		Stats:    make([]CompletionRecord, len(d.Stats)),
	}
	copy(c.Projects, d.Projects)
	copy(c.Stats, d.Stats)
	for i, t := range d.Tasks {
		c.Tasks[i] = cloneTask(t)
	}
	if d.Deleted != nil {
		t := cloneTask(*d.Deleted)
		c.Deleted = &t
	}
	return c
}

func cloneTask(t Task) Task {
	subtasks := make([]Subtask, len(t.Subtasks))
	copy(subtasks, t.Subtasks)
	for i, s := range t.Subtasks {
		if s.Priority != nil {
			p := *s.Priority
			subtasks[i].Priority = &p
		}
		if s.Order != nil {
			o := *s.Order
			subtasks[i].Order = &o
		}
	}
	t.Subtasks = subtasks
	if t.ProjectID != nil {
		id := *t.ProjectID
		t.ProjectID = &id
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		t.CompletedAt = &at
	}
	return t
}
