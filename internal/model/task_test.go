package model

import (
	"testing"
	"time"
)

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("  HIGH ")
	if err != nil {
		t.Fatalf("ParsePriority: %v", err)
	}
	if p != PriorityHigh {
		t.Fatalf("expected high, got %s", p)
	}

	if _, err := ParsePriority("urgent"); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Fatal("priority ranks must order high < medium < low")
	}
	if Priority("bogus").Rank() <= PriorityLow.Rank() {
		t.Fatal("unknown priorities sort last")
	}
}

func TestSubtaskEffectivePriority(t *testing.T) {
	high := PriorityHigh

	own := Subtask{Priority: &high}
	if got := own.EffectivePriority(PriorityLow); got != PriorityHigh {
		t.Fatalf("subtask priority wins, got %s", got)
	}

	inherit := Subtask{}
	if got := inherit.EffectivePriority(PriorityLow); got != PriorityLow {
		t.Fatalf("unset subtask priority inherits the parent's, got %s", got)
	}
}

func TestCompletedOnComparesLocalCalendarDay(t *testing.T) {
	at := time.Date(2026, 3, 10, 23, 50, 0, 0, time.Local)
	task := Task{Status: StatusDone, CompletedAt: &at}

	if !task.CompletedOn(time.Date(2026, 3, 10, 0, 10, 0, 0, time.Local)) {
		t.Fatal("same local day must match regardless of clock time")
	}
	if task.CompletedOn(time.Date(2026, 3, 11, 0, 10, 0, 0, time.Local)) {
		t.Fatal("next day must not match")
	}

	open := Task{Status: StatusTodo, CompletedAt: &at}
	if open.CompletedOn(at) {
		t.Fatal("only done tasks count as completed")
	}
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc := NewDocument()
	doc.Tasks = append(doc.Tasks, Task{
		ID:       "t1",
		Title:    "original",
		Subtasks: []Subtask{{ID: "s1", Title: "sub"}},
	})
	deleted := Task{ID: "t2", Title: "buffered"}
	doc.Deleted = &deleted

	c := doc.Clone()
	c.Tasks[0].Title = "changed"
	c.Tasks[0].Subtasks[0].Completed = true
	c.Deleted.Title = "changed too"

	if doc.Tasks[0].Title != "original" {
		t.Fatal("clone must not share task storage")
	}
	if doc.Tasks[0].Subtasks[0].Completed {
		t.Fatal("clone must not share subtask storage")
	}
	if doc.Deleted.Title != "buffered" {
		t.Fatal("clone must not share the undo buffer")
	}
}
