package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/keys"
	"taskdeck/internal/model"
	"taskdeck/internal/repo"
	"taskdeck/internal/ui"
	helpview "taskdeck/internal/ui/help"
	"taskdeck/internal/ui/projectmgr"
	"taskdeck/internal/ui/statsbar"
	"taskdeck/internal/ui/taskform"
	"taskdeck/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewTaskCreate
	ViewTaskEdit
	ViewProjectList
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the persistence layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	repo         *repo.Repository
	keys         *keys.KeyMap
	taskList     tasklist.Model
	taskForm     taskform.Model
	projectView  projectmgr.Model
	helpView     helpview.Model
	stats        []model.CompletionRecord
	statusMsg    string
	ready        bool
}

// New creates a new root application model backed by the given repository.
func New(r *repo.Repository, cfg model.DisplayConfig) Model {
	k := keys.DefaultKeyMap()

	tl := tasklist.New(r, k, 80, 24)
	tl.SetShowCompleted(cfg.ShowCompleted)

	return Model{
		currentView: ViewList,
		repo:        r,
		keys:        k,
		taskList:    tl,
		taskForm:    taskform.New(80, 24),
		projectView: projectmgr.New(r, k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
	}
}

// Init returns the initial commands to load tasks and stats.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.taskList.Init(),
		m.loadStats(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.taskForm.SetSize(contentWidth, contentHeight)
		m.projectView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case statsLoadedMsg:
		m.stats = msg.records
		return m, nil

	case tasklist.EditRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewTaskEdit
		m.taskForm.SetProjects(m.taskList.Projects())
		return m, m.taskForm.StartEdit(msg.Task)

	case tasklist.QuickAddMsg:
		return m, m.quickAddTask(msg.Title)

	case taskform.TaskCreatedMsg:
		m.currentView = ViewList
		return m, m.createTask(msg.Task)

	case taskform.TaskUpdatedMsg:
		m.currentView = ViewList
		return m, m.updateTask(msg.Task)

	case taskform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case taskMutatedMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			return m, nil
		}
		m.statusMsg = ""
		return m, tea.Batch(m.taskList.LoadItems(), m.loadStats())

	case projectmgr.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case projectmgr.ProjectChangedMsg:
		return m, m.taskList.LoadItems()

	case projectmgr.SelectedMsg:
		m.currentView = ViewList
		cmd := m.taskList.ShowProject(msg.Project)
		return m, cmd

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKey(msg); handled {
			return mdl, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKey processes shortcuts that work regardless of the
// focused component, except while a text input is active.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}
	if m.currentView == ViewList && m.taskList.InputActive() {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewList {
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case "n":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewTaskCreate
			m.taskForm.SetProjects(m.taskList.Projects())
			return true, m, m.taskForm.StartCreate(m.taskList.ProjectID())
		}

	case "e":
		if m.currentView == ViewList {
			if task, ok := m.taskList.SelectedTask(); ok {
				m.previousView = m.currentView
				m.currentView = ViewTaskEdit
				m.taskForm.SetProjects(m.taskList.Projects())
				return true, m, m.taskForm.StartEdit(task)
			}
		}

	case "x":
		if m.currentView == ViewList {
			if task, ok := m.taskList.SelectedTask(); ok {
				return true, m, m.toggleTask(task.ID)
			}
		}

	case "d":
		if m.currentView == ViewList {
			if task, ok := m.taskList.SelectedTask(); ok {
				return true, m, m.deleteTask(task.ID)
			}
		}

	case "u":
		if m.currentView == ViewList && m.taskList.HasDeleted() {
			return true, m, m.restoreDeleted()
		}

	case "H":
		if m.currentView == ViewList {
			cmd := m.taskList.ToggleShowCompleted()
			return true, m, cmd
		}

	case "p":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewProjectList
			return true, m, m.projectView.Init()
		}
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewTaskCreate, ViewTaskEdit:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewProjectList:
		m.projectView, cmd = m.projectView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.taskList.Title(), m.taskList.Badges())
	stats := statsbar.Render(m.stats, m.taskList.Tasks(), time.Now(), m.layout.ContentWidth())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, stats, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewTaskCreate, ViewTaskEdit:
		return m.taskForm.View()
	case ViewProjectList:
		return m.projectView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMsg != "" && m.currentView == ViewList {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewTaskCreate, ViewTaskEdit:
		return "enter submit | esc cancel"
	case ViewProjectList:
		return "n new | e edit | d delete | enter browse | esc back"
	default:
		filterSummary := m.taskList.FilterSummary()
		if filterSummary != "" {
			return filterSummary + " | 0 clear"
		}
		hints := "q quit | ? help | n new | a quick add | x done | / search | tab view"
		if m.taskList.HasDeleted() {
			hints += " | u undo"
		}
		return hints
	}
}
