// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/skyseeker/internal/body"
	"github.com/litescript/skyseeker/internal/state"
	"github.com/litescript/skyseeker/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewTable ViewMode = iota
	ViewSky
	ViewEvents
	viewCount
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic redraws.
	TickMsg time.Time

	// AnimTickMsg drives the footer spinner.
	AnimTickMsg time.Time

	// DataUpdateMsg carries positions published since the last update.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg reports a refresh failure.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state  *state.Manager
	bodies []body.CelestialBody
	now    func() time.Time

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int
	err      error

	table   TableModel
	skyView SkyViewModel

	snapshot state.Snapshot
}

// New creates the root model. bodies is the catalog as materialized at
// startup; positions for them arrive through DataUpdateMsg.
func New(stateMgr *state.Manager, bodies []body.CelestialBody) Model {
	return Model{
		state:    stateMgr,
		bodies:   bodies,
		now:      time.Now,
		viewMode: ViewTable,
		table:    NewTableModel(),
		skyView:  NewSkyViewModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), animTickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "t":
			m.viewMode = ViewTable
		case "2", "s":
			m.viewMode = ViewSky
		case "3", "e":
			m.viewMode = ViewEvents
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := msg.Height - 6
		m.table = m.table.SetSize(msg.Width, contentHeight)
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m = m.applySnapshot(m.state.Snapshot())

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case DataUpdateMsg:
		m.err = nil
		m = m.applySnapshot(msg.Snapshot)

	case ErrorMsg:
		m.err = msg.Error

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) applySnapshot(snap state.Snapshot) Model {
	m.snapshot = snap
	m.table = m.table.UpdateData(m.bodies, snap, m.now())
	m.skyView = m.skyView.UpdateData(m.bodies, snap)
	return m
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewTable:
		m.table, cmd = m.table.Update(msg)
	case ViewSky:
		m.skyView, cmd = m.skyView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewTable:
		content = m.table.View()
	case ViewSky:
		content = m.skyView.View()
	case ViewEvents:
		content = m.renderEvents()
	}
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9D4EDD"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	title := titleStyle.Render("  skyseeker") + muted.Render(" v"+version.Version)
	return title + "\n" + m.renderTabs() + "\n"
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Table", "[2] Sky", "[3] Events"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderEvents() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	riseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	setStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	var b strings.Builder
	b.WriteString(headerStyle.Render("Horizon crossings"))
	b.WriteString("\n")

	events := m.snapshot.Events
	if len(events) == 0 {
		b.WriteString(dimStyle.Render("  No rises or sets observed yet"))
		return b.String()
	}

	names := make(map[string]string, len(m.bodies))
	for _, bd := range m.bodies {
		names[bd.ID()] = bd.DisplayName()
	}

	limit := max(m.height-8, 1)
	for i := len(events) - 1; i >= 0 && len(events)-i <= limit; i-- {
		e := events[i]
		name := names[e.BodyID]
		if name == "" {
			name = e.BodyID
		}
		style := riseStyle
		if e.Type == state.EventSet {
			style = setStyle
		}
		b.WriteString(fmt.Sprintf("  %s  %s  %-20s az %s\n",
			dimStyle.Render(e.Timestamp.Format("15:04:05")),
			style.Render(fmt.Sprintf("%-4s", e.Type)),
			name, formatAngle(e.Azimuth)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.err != nil:
		status = errorStyle.Render("ERROR: " + m.err.Error())
	case m.snapshot.Ticks > 0:
		r := m.snapshot.LastTick
		status = accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(
			" tick %d | [%d, %d) of %d | %d failed",
			m.snapshot.Ticks, r.Start, r.End, r.Total, r.Failed))
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" waiting for first refresh...")
	}

	var help string
	switch m.viewMode {
	case ViewTable:
		help = "↑↓: navigate | o: sort | v: above horizon | tab: switch view"
	case ViewSky:
		help = "j/k: focus | l: labels | tab: switch view"
	default:
		help = "tab: switch view | q: quit"
	}
	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
