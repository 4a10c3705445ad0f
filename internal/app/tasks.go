package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/model"
)

// taskMutatedMsg is sent after any task write completes.
type taskMutatedMsg struct{ err error }

// statsLoadedMsg carries the completion history for the stats bar.
type statsLoadedMsg struct {
	records []model.CompletionRecord
}

// createTask persists a new task.
func (m *Model) createTask(task model.Task) tea.Cmd {
	r := m.repo
	return func() tea.Msg {
		_, err := r.AddTask(context.Background(), task)
		return taskMutatedMsg{err: err}
	}
}

// updateTask persists an edited task.
func (m *Model) updateTask(task model.Task) tea.Cmd {
	r := m.repo
	return func() tea.Msg {
		_, err := r.UpdateTask(context.Background(), task)
		return taskMutatedMsg{err: err}
	}
}

// quickAddTask creates a task from a bare title, due today.
func (m *Model) quickAddTask(title string) tea.Cmd {
	r := m.repo
	return func() tea.Msg {
		task := model.Task{
			Title:    title,
			Priority: model.PriorityMedium,
			Status:   model.StatusTodo,
			DueDate:  time.Now().Format(model.DateLayout),
		}
		_, err := r.AddTask(context.Background(), task)
		return taskMutatedMsg{err: err}
	}
}

// toggleTask flips a task's completion state.
func (m *Model) toggleTask(id string) tea.Cmd {
	r := m.repo
	return func() tea.Msg {
		_, err := r.ToggleTask(context.Background(), id)
		return taskMutatedMsg{err: err}
	}
}

// deleteTask removes a task, keeping it in the undo buffer.
func (m *Model) deleteTask(id string) tea.Cmd {
	r := m.repo
	return func() tea.Msg {
		_, err := r.DeleteTask(context.Background(), id)
		return taskMutatedMsg{err: err}
	}
}

// restoreDeleted brings back the last deleted task.
func (m *Model) restoreDeleted() tea.Cmd {
	r := m.repo
	return func() tea.Msg {
		_, err := r.RestoreDeleted(context.Background())
		return taskMutatedMsg{err: err}
	}
}

// loadStats reads the completion history.
func (m Model) loadStats() tea.Cmd {
	r := m.repo
	return func() tea.Msg {
		records, err := r.Stats(context.Background())
		if err != nil {
			return statsLoadedMsg{}
		}
		return statsLoadedMsg{records: records}
	}
}
