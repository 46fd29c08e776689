// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for calendar sync:
//  1. [RecordListView] : Browse the imported birthday records
//  2. [ScheduleView] : Preview computed occurrences before sync
//  3. [ConfirmView] : Confirm the calendar write
//  4. [SyncView] : Monitor real-time progress updates
//  5. [ResultView] : Display created, skipped, and failed counts
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the BirthdayEngine, providing non-blocking status reporting during syncs.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	RecordListView ViewState = iota
	ScheduleView
	ConfirmView
	SyncView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.BirthdayEngine
	records      []models.BirthdayRecord
	planOpts     tasks.PlanOpts
	syncOpts     tasks.SyncOpts
	width        int
	height       int
	recordList   list.Model
	scheduleList list.Model
	plan         *tasks.PlanResult
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *tasks.SyncResult
	err          error
	help         help.Model
	keys         keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	yes     key.Binding
	no      key.Binding
	restart key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.yes, k.no},
		{k.restart, k.quit},
	}
}

type planComputedMsg struct {
	plan *tasks.PlanResult
	err  error
}

type progressUpdateMsg tasks.ProgressUpdate

type syncCompleteMsg struct {
	result *tasks.SyncResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.BirthdayEngine, records []models.BirthdayRecord, planOpts tasks.PlanOpts, syncOpts tasks.SyncOpts) *Model {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = recordItem{record: r}
	}
	recordList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	recordList.Title = "Hebrew Birthdays"

	return &Model{
		ctx:        ctx,
		view:       RecordListView,
		engine:     engine,
		records:    records,
		planOpts:   planOpts,
		syncOpts:   syncOpts,
		recordList: recordList,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recordList.SetSize(msg.Width-4, msg.Height-8)
		if m.scheduleList.Width() == 0 {
			m.scheduleList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case RecordListView:
			return m.handleRecordListKeys(msg)
		case ScheduleView:
			return m.handleScheduleKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case planComputedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.plan = msg.plan
		items := make([]list.Item, len(msg.plan.Schedule.Occurrences))
		for i, occ := range msg.plan.Schedule.Occurrences {
			items[i] = occurrenceItem{occurrence: occ}
		}
		m.scheduleList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.scheduleList.Title = fmt.Sprintf("Occurrences %d-%d", m.planOpts.StartYear, m.planOpts.StartYear+m.planOpts.Years-1)
		m.scheduleList.SetSize(m.width-4, m.height-8)
		m.view = ScheduleView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case syncCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case RecordListView:
		return m.renderRecordList()
	case ScheduleView:
		return m.renderSchedule()
	case ConfirmView:
		return m.renderConfirm()
	case SyncView:
		return m.renderSync()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleRecordListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		return m, m.computePlan()
	}

	var cmd tea.Cmd
	m.recordList, cmd = m.recordList.Update(msg)
	return m, cmd
}

func (m *Model) handleScheduleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = RecordListView
		return m, nil
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.scheduleList, cmd = m.scheduleList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n":
		m.view = ScheduleView
		return m, nil
	case "y":
		m.view = SyncView
		return m, m.startSync()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = RecordListView
		m.plan = nil
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case RecordListView:
		m.recordList, cmd = m.recordList.Update(msg)
	case ScheduleView:
		m.scheduleList, cmd = m.scheduleList.Update(msg)
	}
	return m, cmd
}

func (m *Model) computePlan() tea.Cmd {
	return func() tea.Msg {
		plan, err := m.engine.Plan(m.ctx, nil, m.records, m.planOpts)
		return planComputedMsg{plan: plan, err: err}
	}
}

func (m *Model) startSync() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	go func() {
		result, err := m.engine.Sync(m.ctx, progress, m.records, m.planOpts, m.syncOpts)
		m.result = result
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return syncCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return syncCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderRecordList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.recordList.View(), helpView)
}

func (m *Model) renderSchedule() string {
	syncKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sync"))
	helpKeys := []key.Binding{syncKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	summary := ""
	if m.plan != nil && len(m.plan.Failures) > 0 {
		summary = styles.warn.Render(fmt.Sprintf("\n%d records failed to parse", len(m.plan.Failures)))
	}
	return fmt.Sprintf("%s%s\n\n%s", m.scheduleList.View(), summary, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Push %d events to %q?", len(m.plan.Schedule.Occurrences), m.syncOpts.CalendarName))
	info := fmt.Sprintf("\nRecords: %d\nYears: %d-%d\n", len(m.records), m.planOpts.StartYear, m.planOpts.StartYear+m.planOpts.Years-1)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderSync() string {
	title := styles.title.Render("Syncing Calendar")

	var phase string
	switch m.progress.Phase {
	case tasks.ComputeSchedule:
		phase = "Computing occurrences..."
	case tasks.EnsureCalendar:
		phase = "Preparing calendar..."
	case tasks.InsertEvents:
		phase = fmt.Sprintf("Inserting events (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.ShareCalendar:
		phase = "Sharing calendar..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Sync failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Sync Complete!")
	info := fmt.Sprintf(
		"\nCreated: %d\nSkipped: %d\nFailed: %d",
		m.result.Created,
		m.result.Skipped,
		m.result.Failed,
	)
	if m.result.Shared {
		info += fmt.Sprintf("\nShared with %s", m.syncOpts.ShareEmail)
	}

	var failed string
	if len(m.result.Failures) > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render("Failures:"))
		for _, f := range m.result.Failures {
			failed += fmt.Sprintf("\n  • %s: %v", f.Name, f.Err)
		}
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
