package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/skyseeker/internal/body"
	"github.com/litescript/skyseeker/internal/scheduler"
	"github.com/litescript/skyseeker/internal/state"
)

// SnapshotExport is the JSON form of the published positions.
type SnapshotExport struct {
	Timestamp time.Time            `json:"timestamp"`
	Tick      scheduler.TickReport `json:"last_tick"`
	Bodies    []BodyExport         `json:"bodies"`
	Events    []state.Event        `json:"events,omitempty"`
}

// BodyExport is one body with its last published position.
type BodyExport struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Magnitude float64   `json:"magnitude"`
	Azimuth   float64   `json:"azimuth"`
	Altitude  float64   `json:"altitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExportSnapshot pairs the published positions with body metadata, in
// body order. Bodies never published are left out.
func ExportSnapshot(bodies []body.CelestialBody, snap state.Snapshot, ts time.Time) *SnapshotExport {
	export := &SnapshotExport{
		Timestamp: ts,
		Tick:      snap.LastTick,
		Events:    snap.Events,
	}
	for _, b := range bodies {
		p, ok := snap.Positions[b.ID()]
		if !ok {
			continue
		}
		export.Bodies = append(export.Bodies, BodyExport{
			ID:        b.ID(),
			Name:      b.DisplayName(),
			Kind:      b.Kind().String(),
			Magnitude: b.VisualMagnitude(),
			Azimuth:   p.Position.Azimuth,
			Altitude:  p.Position.Altitude,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return export
}

// WriteJSON writes the snapshot as indented JSON.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSummaryTable writes the bodies currently above the horizon,
// brightest first.
func WriteSummaryTable(w io.Writer, bodies []body.CelestialBody, snap state.Snapshot, ts time.Time) {
	table := TableModel{sortMode: SortBrightness, onlyUp: true}.UpdateData(bodies, snap, ts)

	fmt.Fprintf(w, "Sky @ %s\n", ts.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 90))

	if len(table.rows) == 0 {
		fmt.Fprintln(w, "Nothing above the horizon")
		return
	}

	fmt.Fprintf(w, "%-10s %-18s %-7s %6s %16s %16s %7s\n",
		"ID", "Name", "Kind", "Mag", "Azimuth", "Altitude", "Age")
	fmt.Fprintln(w, strings.Repeat("─", 90))
	for _, r := range table.rows {
		fmt.Fprintln(w, formatRow(r))
	}

	fmt.Fprintf(w, "\nTotal: %d of %d bodies above the horizon\n", len(table.rows), len(bodies))
}

// WriteEvents writes up to n of the most recent horizon crossings,
// newest last.
func WriteEvents(w io.Writer, events []state.Event, n int) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	for _, e := range events {
		fmt.Fprintf(w, "%s  %-4s  %-12s  az %s\n",
			e.Timestamp.Format("15:04:05"), e.Type, e.BodyID, formatAngle(e.Azimuth))
	}
}
