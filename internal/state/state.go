// Package state holds the positions published by the scheduler for the
// render side, with thread-safe access.
package state

import (
	"maps"
	"sync"
	"time"

	"github.com/litescript/skyseeker/internal/scheduler"
	"github.com/litescript/skyseeker/internal/sky"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventRise EventType = "RISE"
	EventSet  EventType = "SET"
)

// Event represents a body crossing the horizon between two publications.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	BodyID    string    `json:"body_id"`
	Azimuth   float64   `json:"azimuth"`
}

// Published is the last position published for a body.
type Published struct {
	Position  sky.Position
	UpdatedAt time.Time
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager stores published positions and derived history.
type Manager struct {
	mu sync.RWMutex

	positions map[string]Published

	// Altitude history for tracked bodies
	tracked    map[string][]TimeSeries
	maxHistory int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	lastTick        scheduler.TickReport
	ticks           int
	refreshInterval time.Duration

	now func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen   int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   240, // one minute at 4 ticks/s
		MaxEvents:       50,
		RefreshInterval: 250 * time.Millisecond,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		positions:       make(map[string]Published),
		tracked:         make(map[string][]TimeSeries),
		maxHistory:      cfg.MaxHistoryLen,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		now:             time.Now,
	}
}

// Publish records the position of a body. It implements
// scheduler.Publisher.
func (m *Manager) Publish(id string, pos sky.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if prev, ok := m.positions[id]; ok {
		m.detectCrossing(id, prev.Position, pos, now)
	}
	m.positions[id] = Published{Position: pos, UpdatedAt: now}

	if hist, ok := m.tracked[id]; ok {
		hist = append(hist, TimeSeries{Timestamp: now, Value: pos.Altitude})
		if m.maxHistory > 0 && len(hist) > m.maxHistory {
			hist = hist[1:]
		}
		m.tracked[id] = hist
	}
}

// detectCrossing emits rise/set events when altitude changes sign.
func (m *Manager) detectCrossing(id string, prev, cur sky.Position, now time.Time) {
	switch {
	case prev.Altitude <= 0 && cur.Altitude > 0:
		m.addEvent(Event{Type: EventRise, Timestamp: now, BodyID: id, Azimuth: cur.Azimuth})
	case prev.Altitude > 0 && cur.Altitude <= 0:
		m.addEvent(Event{Type: EventSet, Timestamp: now, BodyID: id, Azimuth: cur.Azimuth})
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// RecordTick stores the report of the latest scheduler tick.
func (m *Manager) RecordTick(r scheduler.TickReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastTick = r
	m.ticks++
}

// Track starts recording altitude history for a body.
func (m *Manager) Track(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tracked[id]; !ok {
		m.tracked[id] = make([]TimeSeries, 0, max(m.maxHistory, 0))
	}
}

// Get returns the last published position of a body.
func (m *Manager) Get(id string) (Published, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.positions[id]
	return p, ok
}

// Forget drops a body, e.g. after it left the catalog.
func (m *Manager) Forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, id)
	delete(m.tracked, id)
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Positions map[string]Published
	LastTick  scheduler.TickReport
	Ticks     int
	Events    []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Positions: maps.Clone(m.positions),
		LastTick:  m.lastTick,
		Ticks:     m.ticks,
		Events:    m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// AltitudeHistory returns a copy of the history of a tracked body.
func (m *Manager) AltitudeHistory(id string) []TimeSeries {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist, ok := m.tracked[id]
	if !ok {
		return nil
	}
	out := make([]TimeSeries, len(hist))
	copy(out, hist)
	return out
}

// AltitudeRate estimates the altitude change in degrees per second from
// the last two history points of a tracked body.
func (m *Manager) AltitudeRate(id string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist := m.tracked[id]
	if len(hist) < 2 {
		return 0
	}
	p1 := hist[len(hist)-2]
	p2 := hist[len(hist)-1]

	dt := p2.Timestamp.Sub(p1.Timestamp).Seconds()
	if dt <= 0 {
		return 0
	}
	return (p2.Value - p1.Value) / dt
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once any position has been published.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.positions) > 0
}
