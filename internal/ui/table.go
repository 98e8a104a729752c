package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/litescript/skyseeker/internal/body"
	"github.com/litescript/skyseeker/internal/state"
	"github.com/litescript/skyseeker/internal/visibility"
)

// SortMode orders table rows.
type SortMode int

const (
	SortCatalog SortMode = iota
	SortBrightness
	SortAltitude
)

func (s SortMode) String() string {
	switch s {
	case SortBrightness:
		return "brightness"
	case SortAltitude:
		return "altitude"
	default:
		return "catalog"
	}
}

// row is one body in the table. Bodies without a published position
// have hasPos false.
type row struct {
	id     string
	name   string
	kind   body.Kind
	mag    float64
	az     float64
	alt    float64
	hasPos bool
	age    time.Duration
}

// TableModel lists every catalog body with its last published position.
type TableModel struct {
	width  int
	height int

	rows     []row
	cursor   int
	offset   int
	sortMode SortMode
	onlyUp   bool
}

// NewTableModel creates an empty table.
func NewTableModel() TableModel {
	return TableModel{}
}

// SetSize updates the viewport size.
func (m TableModel) SetSize(width, height int) TableModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData rebuilds the rows from the materialized bodies and snapshot.
// now is used for the age column.
func (m TableModel) UpdateData(bodies []body.CelestialBody, snap state.Snapshot, now time.Time) TableModel {
	m.rows = buildRows(bodies, snap, now, m.onlyUp)
	m.sortRows()
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	m.clampOffset()
	return m
}

func buildRows(bodies []body.CelestialBody, snap state.Snapshot, now time.Time, onlyUp bool) []row {
	rows := make([]row, 0, len(bodies))
	for _, b := range bodies {
		r := row{
			id:   b.ID(),
			name: b.DisplayName(),
			kind: b.Kind(),
			mag:  b.VisualMagnitude(),
		}
		if p, ok := snap.Positions[r.id]; ok {
			r.az, r.alt, r.hasPos = p.Position.Azimuth, p.Position.Altitude, true
			r.age = now.Sub(p.UpdatedAt)
		}
		if onlyUp && !(r.hasPos && r.alt > 0) {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}

func (m *TableModel) sortRows() {
	switch m.sortMode {
	case SortBrightness:
		slices.SortStableFunc(m.rows, func(a, b row) int {
			return cmp.Compare(Luminance(b.mag), Luminance(a.mag))
		})
	case SortAltitude:
		slices.SortStableFunc(m.rows, func(a, b row) int {
			if a.hasPos != b.hasPos {
				if a.hasPos {
					return -1
				}
				return 1
			}
			return cmp.Compare(b.alt, a.alt)
		})
	}
}

// Update handles navigation keys.
func (m TableModel) Update(msg tea.Msg) (TableModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "pgdown":
		m.cursor = min(m.cursor+m.visibleRows(), max(len(m.rows)-1, 0))
	case "pgup":
		m.cursor = max(m.cursor-m.visibleRows(), 0)
	case "o":
		m.sortMode = (m.sortMode + 1) % 3
		m.sortRows()
	case "v":
		m.onlyUp = !m.onlyUp
	}
	m.clampOffset()
	return m, nil
}

// SelectedID returns the id under the cursor, or "".
func (m TableModel) SelectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].id
}

func (m TableModel) visibleRows() int {
	return max(m.height-3, 1)
}

func (m *TableModel) clampOffset() {
	n := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+n {
		m.offset = m.cursor - n + 1
	}
	m.offset = max(m.offset, 0)
}

// View renders the table.
func (m TableModel) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)

	var b strings.Builder
	filter := "all"
	if m.onlyUp {
		filter = "above horizon"
	}
	b.WriteString(headerStyle.Render("Bodies"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d shown | sort: %s | filter: %s", len(m.rows), m.sortMode, filter)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-10s %-18s %-7s %6s %16s %16s %7s", "ID", "NAME", "KIND", "MAG", "AZIMUTH", "ALTITUDE", "AGE")))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("  No bodies"))
		return b.String()
	}

	end := min(m.offset+m.visibleRows(), len(m.rows))
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		line := formatRow(r)
		if i == m.cursor {
			b.WriteString(selStyle.Render("▶ " + line))
		} else {
			b.WriteString(rowStyle(r).Render("  " + line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// rowStyle brightens rows with altitude.
func rowStyle(r row) lipgloss.Style {
	tier := visibility.TierNone
	if r.hasPos {
		tier = visibility.AltitudeTier(r.alt)
	}
	color := map[visibility.Tier]string{
		visibility.TierNone:   "240",
		visibility.TierLow:    "246",
		visibility.TierMedium: "250",
		visibility.TierHigh:   "255",
	}[tier]
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func formatRow(r row) string {
	az, alt, age := "-", "-", "-"
	if r.hasPos {
		az = formatAngle(r.az)
		alt = formatAngle(r.alt)
		age = r.age.Round(100 * time.Millisecond).String()
	}
	return fmt.Sprintf("%-10s %-18s %-7s %6.2f %16s %16s %7s",
		truncate(r.id, 10), truncate(r.name, 18), r.kind, r.mag, az, alt, age)
}

// formatAngle renders decimal degrees as degrees, minutes and seconds.
func formatAngle(deg float64) string {
	return fmt.Sprint(sexa.FmtAngle(unit.AngleFromDeg(deg)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
