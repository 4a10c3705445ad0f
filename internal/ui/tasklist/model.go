package tasklist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/keys"
	"taskdeck/internal/model"
	"taskdeck/internal/repo"
	"taskdeck/internal/theme"
	"taskdeck/internal/view"
)

// ItemsLoadedMsg is sent when tasks and projects have been loaded.
type ItemsLoadedMsg struct {
	Tasks    []model.Task
	Projects []model.Project
	Deleted  *model.Task
}

// EditRequestMsg is sent when the user selects a task to edit.
type EditRequestMsg struct {
	Task model.Task
}

// QuickAddMsg is sent when the user submits the quick-add input. The
// task carries only a title; the due date defaults to today.
type QuickAddMsg struct {
	Title string
}

// cycleModes is the view rotation for Tab, before per-project views.
var cycleModes = []view.Mode{
	view.ModeInbox,
	view.ModeToday,
	view.ModeTomorrow,
	view.ModeWeek,
	view.ModeMonth,
}

// dateFilters is the rotation for the secondary date filter key.
var dateFilters = []view.DateFilter{
	view.DateFilterNone,
	view.DateFilterToday,
	view.DateFilterTomorrow,
	view.DateFilterWeek,
	view.DateFilterOverdue,
	view.DateFilterNoDate,
}

// priorityFilters is the rotation for the priority filter key.
var priorityFilters = []model.Priority{
	"", model.PriorityHigh, model.PriorityMedium, model.PriorityLow,
}

// Model is the main task list view component.
type Model struct {
	list  list.Model
	repo  *repo.Repository
	keys  *keys.KeyMap
	now   time.Time

	mode      view.Mode
	modeIdx   int
	projectID string

	tasks    []model.Task
	projects []model.Project
	deleted  *model.Task

	filters       view.Filters
	dateFilterIdx int
	prioFilterIdx int

	searchMode  bool
	searchInput textinput.Model
	quickMode   bool
	quickInput  textinput.Model

	showCompleted bool

	width  int
	height int
}

// New creates a new task list model.
func New(r *repo.Repository, k *keys.KeyMap, width, height int) Model {
	delegate := itemDelegate{projects: map[string]model.Project{}, now: time.Now()}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = "search tasks..."
	si.Prompt = "/ "
	si.Width = width - 4

	qi := textinput.New()
	qi.Placeholder = "quick add: task title, due today"
	qi.Prompt = "+ "
	qi.Width = width - 4

	return Model{
		list:          l,
		repo:          r,
		keys:          k,
		now:           time.Now(),
		mode:          view.ModeInbox,
		searchInput:   si,
		quickInput:    qi,
		showCompleted: true,
		width:         width,
		height:        height,
	}
}

// InputActive reports whether a text input currently has focus. Global
// shortcuts must not fire while the user is typing.
func (m Model) InputActive() bool {
	return m.searchMode || m.quickMode
}

// SetShowCompleted sets whether done tasks are rendered.
func (m *Model) SetShowCompleted(show bool) {
	m.showCompleted = show
}

// ToggleShowCompleted flips done-task visibility and refilters.
func (m *Model) ToggleShowCompleted() tea.Cmd {
	m.showCompleted = !m.showCompleted
	return m.rebuild()
}

// ShowProject switches the list to the given project's view.
func (m *Model) ShowProject(p model.Project) tea.Cmd {
	for i, pr := range m.projects {
		if pr.ID == p.ID {
			m.modeIdx = len(cycleModes) + i
			break
		}
	}
	m.mode = view.ModeProject
	m.projectID = p.ID
	return m.rebuild()
}

// Init returns a command that loads the initial set of items.
func (m Model) Init() tea.Cmd {
	return m.LoadItems()
}

// LoadItems returns a tea.Cmd that reads tasks and projects.
func (m Model) LoadItems() tea.Cmd {
	r := m.repo
	return func() tea.Msg {
		ctx := context.Background()
		tasks, err := r.Tasks(ctx)
		if err != nil {
			return ItemsLoadedMsg{}
		}
		projects, _ := r.Projects(ctx)
		deleted, _ := r.Deleted(ctx)
		return ItemsLoadedMsg{Tasks: tasks, Projects: projects, Deleted: deleted}
	}
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ItemsLoadedMsg:
		m.now = time.Now()
		m.tasks = msg.Tasks
		m.projects = msg.Projects
		m.deleted = msg.Deleted
		cmd := m.rebuild()
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		if m.quickMode {
			return m.handleQuickAddKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.filters.Search = m.searchInput.Value()
		cmd := m.rebuild()
		return m, cmd

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filters.Search = ""
		cmd := m.rebuild()
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleQuickAddKeys processes key input while the quick-add bar is open.
func (m Model) handleQuickAddKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.quickInput.Value())
		m.quickMode = false
		m.quickInput.Reset()
		if title == "" {
			return m, nil
		}
		return m, func() tea.Msg { return QuickAddMsg{Title: title} }

	case "esc":
		m.quickMode = false
		m.quickInput.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.quickInput, cmd = m.quickInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return EditRequestMsg{Task: task} }

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.QuickAdd):
		m.quickMode = true
		m.quickInput.Reset()
		return m, m.quickInput.Focus()

	case key.Matches(msg, m.keys.NextView):
		m.cycleView(1)
		cmd := m.rebuild()
		return m, cmd

	case key.Matches(msg, m.keys.PrevView):
		m.cycleView(-1)
		cmd := m.rebuild()
		return m, cmd

	case key.Matches(msg, m.keys.CycleDateFilter):
		m.dateFilterIdx = (m.dateFilterIdx + 1) % len(dateFilters)
		m.filters.Date = dateFilters[m.dateFilterIdx]
		cmd := m.rebuild()
		return m, cmd

	case key.Matches(msg, m.keys.CyclePriority):
		m.prioFilterIdx = (m.prioFilterIdx + 1) % len(priorityFilters)
		m.filters.Priority = priorityFilters[m.prioFilterIdx]
		cmd := m.rebuild()
		return m, cmd

	case key.Matches(msg, m.keys.ClearFilters):
		m.filters = view.Filters{}
		m.dateFilterIdx = 0
		m.prioFilterIdx = 0
		m.searchInput.Reset()
		cmd := m.rebuild()
		return m, cmd
	}

	before := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.skipHeader(m.list.Index() >= before)
	return m, cmd
}

// skipHeader moves the cursor off section header rows, continuing in
// the direction of travel.
func (m *Model) skipHeader(forward bool) {
	items := m.list.Items()
	for {
		idx := m.list.Index()
		if idx < 0 || idx >= len(items) {
			return
		}
		row, ok := items[idx].(rowItem)
		if !ok || !row.isHeader() {
			return
		}
		if forward {
			if idx == len(items)-1 {
				m.list.CursorUp()
				return
			}
			m.list.CursorDown()
		} else {
			if idx == 0 {
				m.list.CursorDown()
				return
			}
			m.list.CursorUp()
		}
	}
}

// cycleView advances through the bucket views and then each project.
func (m *Model) cycleView(dir int) {
	total := len(cycleModes) + len(m.projects)
	m.modeIdx = (m.modeIdx + dir + total) % total
	if m.modeIdx < len(cycleModes) {
		m.mode = cycleModes[m.modeIdx]
		m.projectID = ""
	} else {
		m.mode = view.ModeProject
		m.projectID = m.projects[m.modeIdx-len(cycleModes)].ID
	}
}

// rebuild refilters the tasks and replaces the list rows.
func (m *Model) rebuild() tea.Cmd {
	filtered := view.Apply(m.tasks, m.mode, m.projectID, m.filters, m.now)
	if !m.showCompleted {
		visible := filtered[:0:0]
		for _, t := range filtered {
			if !t.IsDone() {
				visible = append(visible, t)
			}
		}
		filtered = visible
	}

	projects := make(map[string]model.Project, len(m.projects))
	for _, p := range m.projects {
		projects[p.ID] = p
	}
	m.list.SetDelegate(itemDelegate{projects: projects, now: m.now})

	var rows []list.Item
	if m.mode == view.ModeWeek {
		for _, day := range view.WeekDays(filtered, m.now) {
			label := day.Date.Format("Mon Jan 2")
			if view.SameDay(day.Date, m.now) {
				label += " ← today"
			}
			rows = append(rows, rowItem{header: label})
			for _, t := range day.Tasks {
				rows = append(rows, rowItem{task: t})
			}
		}
	} else {
		for _, g := range view.GroupByPriority(filtered) {
			rows = append(rows, rowItem{header: g.Label})
			for _, t := range g.Tasks {
				rows = append(rows, rowItem{task: t})
			}
		}
	}

	cmd := m.list.SetItems(rows)
	m.skipHeader(true)
	return cmd
}

// SelectedTask returns the task under the cursor, if any.
func (m Model) SelectedTask() (model.Task, bool) {
	row, ok := m.list.SelectedItem().(rowItem)
	if !ok || row.isHeader() {
		return model.Task{}, false
	}
	return row.task, true
}

// Mode returns the active view mode.
func (m Model) Mode() view.Mode { return m.mode }

// Tasks returns the full unfiltered task set from the last load.
func (m Model) Tasks() []model.Task { return m.tasks }

// Projects returns the projects from the last load.
func (m Model) Projects() []model.Project { return m.projects }

// ProjectID returns the active project filter, or "" outside project view.
func (m Model) ProjectID() string { return m.projectID }

// Title returns the header title for the active view.
func (m Model) Title() string {
	if m.mode == view.ModeProject {
		for _, p := range m.projects {
			if p.ID == m.projectID {
				return p.Icon + " " + p.Name
			}
		}
	}
	return view.ModeTitles[m.mode]
}

// Badges returns the open-task counts shown in the header.
func (m Model) Badges() string {
	c := view.CountOpen(m.tasks, m.now)
	return fmt.Sprintf("inbox %d · today %d · tomorrow %d · week %d · month %d",
		c.Inbox, c.Today, c.Tomorrow, c.Week, c.Month)
}

// HasDeleted reports whether the undo buffer holds a task.
func (m Model) HasDeleted() bool { return m.deleted != nil }

// FilterSummary describes the active filters for the status bar, or ""
// when none are active.
func (m Model) FilterSummary() string {
	if m.filters.IsZero() {
		return ""
	}
	var parts []string
	if m.filters.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", m.filters.Search))
	}
	if m.filters.Priority != "" {
		parts = append(parts, "priority "+string(m.filters.Priority))
	}
	if m.filters.Status != "" {
		parts = append(parts, "status "+string(m.filters.Status))
	}
	if m.filters.Date != view.DateFilterNone {
		parts = append(parts, "date "+string(m.filters.Date))
	}
	return strings.Join(parts, " | ")
}

// View renders the task list view.
func (m Model) View() string {
	if m.searchMode {
		bar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, bar, m.list.View())
	}
	if m.quickMode {
		bar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.quickInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, bar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks match.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if !m.filters.IsZero() {
		return style.Render("No matching tasks.\nTry adjusting your filters.")
	}

	return style.Render(
		"Nothing here.\n\n" +
			"Press n for a full task, or a for a quick one due today.",
	)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
	m.quickInput.Width = width - 4
}
