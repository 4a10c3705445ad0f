package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"taskdeck/internal/model"
	"taskdeck/internal/theme"
)

// TaskCreatedMsg is dispatched when a new task is created via the form.
type TaskCreatedMsg struct {
	Task model.Task
}

// TaskUpdatedMsg is dispatched when an existing task is updated via the form.
type TaskUpdatedMsg struct {
	Task model.Task
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    string
	dueDate     string
	recurrence  string
	status      string
	projectID   string
	subtasks    string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editing  model.Task
	projects []model.Project
	width    int
	height   int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb: &formBindings{
			priority:   string(model.PriorityMedium),
			recurrence: string(model.RecurrenceNone),
			status:     string(model.StatusTodo),
		},
		width:  width,
		height: height,
	}
}

// SetProjects sets the available projects for the form selector.
func (m *Model) SetProjects(projects []model.Project) {
	m.projects = projects
}

// StartCreate initializes the form for creating a new task. The projectID
// preselects the project field, matching the view the task is created from.
func (m *Model) StartCreate(projectID string) tea.Cmd {
	m.editMode = false
	m.editing = model.Task{}
	m.fb.title = ""
	m.fb.description = ""
	m.fb.priority = string(model.PriorityMedium)
	m.fb.dueDate = ""
	m.fb.recurrence = string(model.RecurrenceNone)
	m.fb.status = string(model.StatusTodo)
	m.fb.projectID = projectID
	m.fb.subtasks = ""
	m.form = m.buildCreateForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.editing = task
	m.fb.title = task.Title
	m.fb.description = task.Description
	m.fb.priority = string(task.Priority)
	m.fb.dueDate = task.DueDate
	m.fb.recurrence = string(task.Recurrence)
	m.fb.status = string(task.Status)
	if task.ProjectID != nil {
		m.fb.projectID = *task.ProjectID
	} else {
		m.fb.projectID = ""
	}
	m.fb.subtasks = renderSubtasks(task.Subtasks)
	m.form = m.buildEditForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildCreateForm() *huh.Form {
	fields := m.coreFields()
	fields = append(fields, m.projectField())

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildEditForm() *huh.Form {
	fields := m.coreFields()
	fields = append(fields, m.projectField())
	fields = append(fields,
		huh.NewSelect[string]().
			Title("Status").
			Options(
				huh.NewOption("To do", string(model.StatusTodo)),
				huh.NewOption("In progress", string(model.StatusInProgress)),
				huh.NewOption("Done", string(model.StatusDone)),
			).
			Value(&m.fb.status),
	)

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) coreFields() []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("High", string(model.PriorityHigh)),
				huh.NewOption("Medium", string(model.PriorityMedium)),
				huh.NewOption("Low", string(model.PriorityLow)),
			).
			Value(&m.fb.priority),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewSelect[string]().
			Title("Repeat").
			Options(
				huh.NewOption("Never", string(model.RecurrenceNone)),
				huh.NewOption("Daily", string(model.RecurrenceDaily)),
				huh.NewOption("Weekly", string(model.RecurrenceWeekly)),
				huh.NewOption("Monthly", string(model.RecurrenceMonthly)),
			).
			Value(&m.fb.recurrence),
		huh.NewText().
			Title("Subtasks").
			Placeholder("One per line, prefix with [x] when done").
			Value(&m.fb.subtasks),
	}
}

func (m *Model) projectField() huh.Field {
	opts := []huh.Option[string]{
		huh.NewOption("None (Inbox)", ""),
	}
	for _, p := range m.projects {
		opts = append(opts, huh.NewOption(p.Name, p.ID))
	}
	return huh.NewSelect[string]().
		Title("Project").
		Options(opts...).
		Value(&m.fb.projectID)
}

func (m Model) handleSubmit() tea.Cmd {
	task := model.Task{
		Title:       strings.TrimSpace(m.fb.title),
		Description: m.fb.description,
		Priority:    model.Priority(m.fb.priority),
		Status:      model.Status(m.fb.status),
		DueDate:     strings.TrimSpace(m.fb.dueDate),
		Recurrence:  model.Recurrence(m.fb.recurrence),
	}

	if m.fb.projectID != "" {
		pid := m.fb.projectID
		task.ProjectID = &pid
	}

	task.Subtasks = parseSubtasks(m.fb.subtasks, m.editing.Subtasks)

	if m.editMode {
		task.ID = m.editing.ID
		task.Order = m.editing.Order
		task.CreatedAt = m.editing.CreatedAt
		task.CompletedAt = m.editing.CompletedAt
		return func() tea.Msg { return TaskUpdatedMsg{Task: task} }
	}
	return func() tea.Msg { return TaskCreatedMsg{Task: task} }
}

// renderSubtasks flattens subtasks into the line-based editor format.
func renderSubtasks(subs []model.Subtask) string {
	var b strings.Builder
	for _, s := range subs {
		if s.Completed {
			b.WriteString("[x] ")
		}
		b.WriteString(s.Title)
		b.WriteString("\n")
	}
	return b.String()
}

// parseSubtasks rebuilds the subtask list from the editor text. Lines that
// match an existing subtask by title keep its identity.
func parseSubtasks(text string, existing []model.Subtask) []model.Subtask {
	byTitle := make(map[string]model.Subtask, len(existing))
	for _, s := range existing {
		byTitle[s.Title] = s
	}

	var subs []model.Subtask
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		completed := false
		if strings.HasPrefix(line, "[x]") || strings.HasPrefix(line, "[X]") {
			completed = true
			line = strings.TrimSpace(line[3:])
		} else if strings.HasPrefix(line, "[ ]") {
			line = strings.TrimSpace(line[3:])
		}
		if line == "" {
			continue
		}
		sub, ok := byTitle[line]
		if !ok {
			sub = model.Subtask{ID: uuid.New().String(), Title: line}
		}
		sub.Completed = completed
		subs = append(subs, sub)
	}
	return subs
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
