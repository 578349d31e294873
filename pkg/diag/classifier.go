// Package diag classifies decoded distance records and keeps running
// counts for a monitoring session.
package diag

import (
	"sync"
	"sync/atomic"

	"github.com/obslite/obsmon/pkg/event"
)

// Class is the outcome of classifying one distance record.
type Class int

const (
	// OK is a usable distance reading.
	OK Class = iota
	// ZeroExplicit means the distance field was present and exactly
	// zero: the sensor itself reported nothing in range.
	ZeroExplicit
	// ZeroNoField means the distance field was missing entirely,
	// pointing at the link or firmware rather than the measurement.
	ZeroNoField

	numClasses
)

// String returns the class name used in reports and metric labels.
func (c Class) String() string {
	switch c {
	case OK:
		return "ok"
	case ZeroExplicit:
		return "zero_explicit"
	case ZeroNoField:
		return "zero_no_field"
	}
	return "invalid"
}

// Classify maps a decoded measurement to its class.
func Classify(m event.Measurement) Class {
	switch {
	case m.Distance != 0:
		return OK
	case m.HasDistance:
		return ZeroExplicit
	default:
		return ZeroNoField
	}
}

// SourceCounts is the per-source tally of ok vs zero readings.
type SourceCounts struct {
	OK   uint64
	Zero uint64
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Events       uint64
	Truncated    uint64
	FrameErrors  uint64
	Underruns    uint64
	OK           uint64
	ZeroExplicit uint64
	ZeroNoField  uint64
	Sources      map[uint64]SourceCounts
}

// ZeroRate returns the fraction of distance records that were zero.
func (s Snapshot) ZeroRate() float64 {
	total := s.OK + s.ZeroExplicit + s.ZeroNoField
	if total == 0 {
		return 0
	}
	return float64(s.ZeroExplicit+s.ZeroNoField) / float64(total)
}

// Classifier accumulates counters for one monitoring session. Its
// lifetime is the session, not the process: the caller owns an
// instance and hands it to the decode pipeline. Counters are bumped on
// the decode path and may be read by a periodic reporter, so all
// access is atomic.
type Classifier struct {
	events      uint64
	truncated   uint64
	frameErrors uint64
	underruns   uint64
	classes     [numClasses]uint64

	lock    sync.RWMutex
	sources map[uint64]*sourceCounts
}

type sourceCounts struct {
	ok   uint64
	zero uint64
}

// NewClassifier creates an empty Classifier.
func NewClassifier() *Classifier {
	return &Classifier{sources: make(map[uint64]*sourceCounts)}
}

// Record classifies m, updates the counters and returns the class.
func (c *Classifier) Record(m event.Measurement) Class {
	atomic.AddUint64(&c.events, 1)
	cl := Classify(m)
	atomic.AddUint64(&c.classes[cl], 1)
	if m.Underrun {
		atomic.AddUint64(&c.underruns, 1)
	}
	s := c.source(m.SourceID)
	if cl == OK {
		atomic.AddUint64(&s.ok, 1)
	} else {
		atomic.AddUint64(&s.zero, 1)
	}
	return cl
}

// CountEvent counts a decoded non-distance event.
func (c *Classifier) CountEvent() {
	atomic.AddUint64(&c.events, 1)
}

// CountTruncated counts a truncated frame.
func (c *Classifier) CountTruncated() {
	atomic.AddUint64(&c.events, 1)
	atomic.AddUint64(&c.truncated, 1)
}

// CountFrameError counts a frame dropped before decoding because its
// framing could not be unstuffed.
func (c *Classifier) CountFrameError() {
	atomic.AddUint64(&c.frameErrors, 1)
}

// Snapshot copies all counters without resetting them.
func (c *Classifier) Snapshot() Snapshot {
	s := Snapshot{
		Events:       atomic.LoadUint64(&c.events),
		Truncated:    atomic.LoadUint64(&c.truncated),
		FrameErrors:  atomic.LoadUint64(&c.frameErrors),
		Underruns:    atomic.LoadUint64(&c.underruns),
		OK:           atomic.LoadUint64(&c.classes[OK]),
		ZeroExplicit: atomic.LoadUint64(&c.classes[ZeroExplicit]),
		ZeroNoField:  atomic.LoadUint64(&c.classes[ZeroNoField]),
		Sources:      make(map[uint64]SourceCounts),
	}
	c.lock.RLock()
	for id, sc := range c.sources {
		s.Sources[id] = SourceCounts{
			OK:   atomic.LoadUint64(&sc.ok),
			Zero: atomic.LoadUint64(&sc.zero),
		}
	}
	c.lock.RUnlock()
	return s
}

func (c *Classifier) source(id uint64) *sourceCounts {
	c.lock.RLock()
	s := c.sources[id]
	c.lock.RUnlock()
	if s != nil {
		return s
	}
	c.lock.Lock()
	if s = c.sources[id]; s == nil {
		s = &sourceCounts{}
		c.sources[id] = s
	}
	c.lock.Unlock()
	return s
}
