package ui

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/skyseeker/internal/body"
	"github.com/litescript/skyseeker/internal/state"
)

const (
	// Field of view in degrees
	fovAz = 120.0
	fovEl = 60.0

	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	glyphFocused = '◆'
	glyphSun     = '☉'
	glyphMoon    = '☾'
	glyphPlanet  = '●'

	glyphStarBright  = '✶' // mag < 1.5
	glyphStarMedium  = '✸' // mag 1.5-3.0
	glyphStarDim     = '·'
	glyphStarVeryDim = '·'

	colorFocused     = "229"
	colorSun         = "220"
	colorMoon        = "254"
	colorPlanet      = "#d0c8ff"
	colorStarBright  = "255"
	colorStarMedium  = "250"
	colorStarDim     = "244"
	colorStarVeryDim = "240"
	colorLabel       = "#d0c8ff"
)

// LabelMode controls which bodies are labeled.
type LabelMode int

const (
	LabelNone LabelMode = iota
	LabelFocused
	LabelAll
)

// skyObject is a body above the horizon with its last published position.
type skyObject struct {
	id            string
	name          string
	kind          body.Kind
	mag           float64
	constellation string
	az, alt       float64
}

// SkyViewModel renders the visible sky from the observer's horizon.
type SkyViewModel struct {
	width  int
	height int

	// Camera position (center of view)
	camAz float64
	camEl float64

	animating   bool
	animStartAz float64
	animStartEl float64
	animTargAz  float64
	animTargEl  float64
	animStart   time.Time

	// Brightest first; focus cycles through these.
	objects  []skyObject
	focusIdx int

	labelMode LabelMode
}

// NewSkyViewModel creates a sky view looking south at 45°.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{
		camAz:     180,
		camEl:     45,
		labelMode: LabelFocused,
	}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData rebuilds the visible set. Focus follows the same body
// across updates while it stays above the horizon.
func (m SkyViewModel) UpdateData(bodies []body.CelestialBody, snap state.Snapshot) SkyViewModel {
	var focusedID string
	if f, ok := m.focused(); ok {
		focusedID = f.id
	}

	m.objects = visibleObjects(bodies, snap)
	m.focusIdx = 0
	for i, o := range m.objects {
		if o.id == focusedID {
			m.focusIdx = i
			break
		}
	}

	if f, ok := m.focused(); ok && !m.animating {
		m.camAz, m.camEl = f.az, clampCamEl(f.alt)
	}
	return m
}

func visibleObjects(bodies []body.CelestialBody, snap state.Snapshot) []skyObject {
	var out []skyObject
	for _, b := range bodies {
		p, ok := snap.Positions[b.ID()]
		if !ok || !p.Position.Above() {
			continue
		}
		out = append(out, skyObject{
			id:            b.ID(),
			name:          b.DisplayName(),
			kind:          b.Kind(),
			mag:           b.VisualMagnitude(),
			constellation: b.Constellation(),
			az:            p.Position.Azimuth,
			alt:           p.Position.Altitude,
		})
	}
	slices.SortStableFunc(out, func(a, b skyObject) int {
		return cmp.Compare(Luminance(b.mag), Luminance(a.mag))
	})
	return out
}

func (m SkyViewModel) focused() (skyObject, bool) {
	if m.focusIdx < 0 || m.focusIdx >= len(m.objects) {
		return skyObject{}, false
	}
	return m.objects[m.focusIdx], true
}

// FocusedID returns the id of the focused body, or "".
func (m SkyViewModel) FocusedID() string {
	f, _ := m.focused()
	return f.id
}

// animTickMsg is sent during camera animation.
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			return m.focusPrev()
		case "down", "j":
			return m.focusNext()
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		}
	case animTickMsg:
		if m.animating {
			return m.updateAnimation()
		}
	}
	return m, nil
}

func (m SkyViewModel) focusNext() (SkyViewModel, tea.Cmd) {
	if len(m.objects) == 0 {
		return m, nil
	}
	m.focusIdx = (m.focusIdx + 1) % len(m.objects)
	return m.startAnimation()
}

func (m SkyViewModel) focusPrev() (SkyViewModel, tea.Cmd) {
	if len(m.objects) == 0 {
		return m, nil
	}
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = len(m.objects) - 1
	}
	return m.startAnimation()
}

func (m SkyViewModel) startAnimation() (SkyViewModel, tea.Cmd) {
	f, ok := m.focused()
	if !ok {
		return m, nil
	}
	m.animating = true
	m.animStartAz = m.camAz
	m.animStartEl = m.camEl
	m.animTargAz = f.az
	m.animTargEl = clampCamEl(f.alt)
	m.animStart = time.Now()
	return m, animTick()
}

func (m SkyViewModel) updateAnimation() (SkyViewModel, tea.Cmd) {
	t := float64(time.Since(m.animStart)) / float64(animDuration)
	if t >= 1.0 {
		m.animating = false
		m.camAz = m.animTargAz
		m.camEl = m.animTargEl
		return m, nil
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)
	m.camAz = lerpAngle(m.animStartAz, m.animTargAz, t)
	m.camEl = lerp(m.animStartEl, m.animTargEl, t)
	return m, animTick()
}

// clampCamEl keeps the horizon inside the frame.
func clampCamEl(el float64) float64 {
	return min(max(el, fovEl/2), 90-fovEl/4)
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas(m.width, m.height-4))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel))

	var labelStr string
	switch m.labelMode {
	case LabelNone:
		labelStr = dimStyle.Render("Labels: off")
	case LabelFocused:
		labelStr = accentStyle.Render("Labels: focus")
	case LabelAll:
		labelStr = accentStyle.Render("Labels: all")
	}

	visible := dimStyle.Render(fmt.Sprintf("%d above horizon", len(m.objects)))
	camera := dimStyle.Render(fmt.Sprintf("Az:%.0f° Alt:%.0f°", m.camAz, m.camEl))
	return fmt.Sprintf("%s | %s | %s | %s", titleStyle.Render("Sky View"), visible, labelStr, camera)
}

func (m SkyViewModel) renderStatus() string {
	f, ok := m.focused()
	if !ok {
		return "Nothing above the horizon yet"
	}

	line := fmt.Sprintf(">>> %s [%s] | Az %s Alt %s | mag %.2f",
		f.name, f.kind, formatAngle(f.az), formatAngle(f.alt), f.mag)
	if f.constellation != "" {
		line += " | " + f.constellation
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorFocused)).Render(line)
}

// labelPos tracks a drawn glyph for label placement.
type labelPos struct {
	x, y      int
	name      string
	isFocused bool
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	horizonY := height - 2
	var labels []labelPos

	// Faintest first so brighter bodies overwrite shared cells.
	for i := len(m.objects) - 1; i >= 0; i-- {
		o := m.objects[i]
		x, y, visible := m.projectToScreen(o.az, o.alt, width, height)
		if !visible || x < 0 || x >= width || y < 0 || y >= horizonY {
			continue
		}

		isFocused := i == m.focusIdx
		glyph, color := objectGlyph(o)
		if isFocused {
			glyph, color = glyphFocused, colorFocused
		}
		canvas[y][x] = glyph
		colors[y][x] = color
		labels = append(labels, labelPos{x: x, y: y, name: o.name, isFocused: isFocused})
	}

	for x := 0; x < width; x++ {
		canvas[horizonY][x] = '─'
		colors[horizonY][x] = "60"
	}
	m.drawCardinal(canvas, colors, width, height, "N", 0)
	m.drawCardinal(canvas, colors, width, height, "E", 90)
	m.drawCardinal(canvas, colors, width, height, "S", 180)
	m.drawCardinal(canvas, colors, width, height, "W", 270)

	m.renderLabels(canvas, colors, width, horizonY, labels)

	// Observer marker
	if x, y := width/2, height-1; y >= 0 && x < width {
		canvas[y][x] = '▲'
		colors[y][x] = "46"
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderLabels writes names to the right of their glyphs. The focused
// label is drawn last so it is never overwritten.
func (m SkyViewModel) renderLabels(canvas [][]rune, colors [][]lipgloss.Color, width, horizonY int, labels []labelPos) {
	slices.SortStableFunc(labels, func(a, b labelPos) int {
		switch {
		case a.isFocused == b.isFocused:
			return 0
		case a.isFocused:
			return 1
		default:
			return -1
		}
	})

	for _, l := range labels {
		switch m.labelMode {
		case LabelNone:
			continue
		case LabelFocused:
			if !l.isFocused {
				continue
			}
		}

		text, color := l.name, lipgloss.Color(colorLabel)
		if l.isFocused {
			text, color = "◄ "+l.name, colorFocused
		}
		for i, r := range []rune(text) {
			x := l.x + 2 + i
			if x >= width || l.y < 0 || l.y >= horizonY {
				break
			}
			canvas[l.y][x] = r
			colors[l.y][x] = color
		}
	}
}

// objectGlyph picks a glyph by kind, and for stars by magnitude.
func objectGlyph(o skyObject) (rune, lipgloss.Color) {
	switch o.kind {
	case body.KindSun:
		return glyphSun, colorSun
	case body.KindMoon:
		return glyphMoon, colorMoon
	case body.KindPlanet:
		return glyphPlanet, colorPlanet
	}

	switch {
	case o.mag < 1.5:
		return glyphStarBright, colorStarBright
	case o.mag < 3.0:
		return glyphStarMedium, colorStarMedium
	case o.mag < 4.0:
		return glyphStarDim, colorStarDim
	default:
		return glyphStarVeryDim, colorStarVeryDim
	}
}

func (m SkyViewModel) drawCardinal(canvas [][]rune, colors [][]lipgloss.Color, width, height int, label string, az float64) {
	x, _, visible := m.projectToScreen(az, m.camEl, width, height)
	if !visible {
		return
	}
	y := height - 2
	if x >= 0 && x < width && y >= 0 {
		canvas[y][x] = rune(label[0])
		colors[y][x] = "252"
	}
}

// projectToScreen converts az/alt to canvas coordinates relative to the
// camera. The horizon line sits at height-2.
func (m SkyViewModel) projectToScreen(az, alt float64, width, height int) (int, int, bool) {
	dAz := normalizeAngle(az - m.camAz)
	dEl := alt - m.camEl

	if dAz < -fovAz/2 || dAz > fovAz/2 {
		return 0, 0, false
	}
	if dEl < -fovEl/2 || dEl > fovEl/2 {
		return 0, 0, false
	}

	horizonY := height - 2
	x := int((dAz + fovAz/2) / fovAz * float64(width))
	y := int((fovEl/2 - dEl) / fovEl * float64(horizonY))
	return x, y, true
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

// lerpAngle interpolates between angles, taking shortest path
func lerpAngle(a, b, t float64) float64 {
	return a + normalizeAngle(b-a)*t
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
