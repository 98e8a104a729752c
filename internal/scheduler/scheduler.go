// Package scheduler refreshes catalog positions a bounded batch at a time
// so each host frame stays cheap regardless of catalog size.
package scheduler

import (
	"sync"
	"time"

	"github.com/litescript/skyseeker/internal/body"
	"github.com/litescript/skyseeker/internal/logging"
	"github.com/litescript/skyseeker/internal/metrics"
	"github.com/litescript/skyseeker/internal/sky"
)

// DefaultBatchSize is the number of bodies refreshed per tick.
const DefaultBatchSize = 50

// Source enumerates bodies in a stable order. catalog.Catalog satisfies it.
type Source interface {
	// Window returns up to n bodies from start and the current total.
	Window(start, n int) ([]body.CelestialBody, int)
}

// Positioner computes the position of a body. body.Pipeline satisfies it.
type Positioner interface {
	Position(b body.CelestialBody, o sky.Observer, t sky.Time, eo sky.EarthOrientation) (sky.Position, error)
}

// Publisher receives each freshly computed position.
type Publisher interface {
	Publish(id string, pos sky.Position)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(id string, pos sky.Position)

// Publish implements Publisher.
func (f PublisherFunc) Publish(id string, pos sky.Position) { f(id, pos) }

// Query is the context shared by every body in a tick. Time is captured
// once by the caller.
type Query struct {
	Observer         sky.Observer
	Time             sky.Time
	EarthOrientation sky.EarthOrientation
}

// BatchCursor is the position of the scheduler in the enumeration order.
type BatchCursor struct {
	Index     int
	BatchSize int
}

// TickReport summarizes one tick. The processed range is [Start, End).
type TickReport struct {
	Start     int
	End       int
	Total     int
	Refreshed int
	Failed    int
}

// Config holds scheduler settings.
type Config struct {
	BatchSize int
	Workers   int // bodies computed in parallel within a batch; <= 1 is serial
	Logger    *logging.Logger
	Metrics   *metrics.Metrics
}

// Scheduler drives the batched refresh.
type Scheduler struct {
	mu       sync.Mutex
	cursor   BatchCursor
	workers  int
	source   Source
	pipeline Positioner
	out      Publisher
	log      *logging.Logger
	metrics  *metrics.Metrics
}

// New creates a scheduler. A non-positive batch size selects
// DefaultBatchSize.
func New(src Source, p Positioner, out Publisher, cfg Config) *Scheduler {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Scheduler{
		cursor:   BatchCursor{BatchSize: batch},
		workers:  max(cfg.Workers, 1),
		source:   src,
		pipeline: p,
		out:      out,
		log:      log,
		metrics:  cfg.Metrics,
	}
}

// Cursor returns the current cursor.
func (s *Scheduler) Cursor() BatchCursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Tick refreshes the next batch. Bodies whose position fails keep their
// previously published position.
func (s *Scheduler) Tick(q Query) TickReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()

	bodies, total := s.source.Window(s.cursor.Index, s.cursor.BatchSize)
	if total == 0 {
		return TickReport{}
	}
	if s.cursor.Index >= total {
		s.cursor.Index = 0
		bodies, total = s.source.Window(0, s.cursor.BatchSize)
		if total == 0 {
			return TickReport{}
		}
	}

	report := TickReport{
		Start: s.cursor.Index,
		End:   s.cursor.Index + len(bodies),
		Total: total,
	}

	for i, r := range s.compute(bodies, q) {
		b := bodies[i]
		if r.err != nil {
			report.Failed++
			s.metrics.ObserveFailure(b.Kind().String())
			s.log.With("body", b.ID()).Debug("position skipped: %v", r.err)
			continue
		}
		s.out.Publish(b.ID(), r.pos)
		report.Refreshed++
	}

	s.cursor.Index = report.End
	s.metrics.ObserveTick(report.Refreshed, total, s.cursor.Index, time.Since(started))
	return report
}

type result struct {
	pos sky.Position
	err error
}

// compute positions a batch, in parallel when configured. Results are
// indexed like bodies so publication order stays deterministic.
func (s *Scheduler) compute(bodies []body.CelestialBody, q Query) []result {
	results := make([]result, len(bodies))
	if s.workers <= 1 || len(bodies) < 2 {
		for i, b := range bodies {
			results[i].pos, results[i].err = s.pipeline.Position(b, q.Observer, q.Time, q.EarthOrientation)
		}
		return results
	}

	jobs := make(chan int, len(bodies))
	for i := range bodies {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < min(s.workers, len(bodies)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i].pos, results[i].err = s.pipeline.Position(bodies[i], q.Observer, q.Time, q.EarthOrientation)
			}
		}()
	}
	wg.Wait()
	return results
}
