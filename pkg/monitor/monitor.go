// Package monitor assembles the decode pipeline: deframed payloads in,
// classified records out.
package monitor

import (
	"context"
	"time"

	"github.com/obslite/obsmon/pkg/diag"
	"github.com/obslite/obsmon/pkg/event"
)

// Record is one reported frame.
type Record struct {
	Seq     uint64
	Elapsed time.Duration // since the session's first frame
	Event   event.Event
	Class   diag.Class // meaningful only for Distance events
}

// Reporter consumes records as they are decoded.
type Reporter interface {
	Report(Record)
}

// Monitor decodes frames and feeds the classifier and reporters. One
// Monitor serves one transport channel; frames arrive on a single
// goroutine (the serial reader or the notification callback), so Seq
// and the start time need no locking.
type Monitor struct {
	Classifier *diag.Classifier
	Reporters  []Reporter

	seq   uint64
	start time.Time
}

// New creates a Monitor around an existing classifier. The classifier
// is owned by the caller so its counters outlive transport reconnects.
func New(classifier *diag.Classifier, reporters ...Reporter) *Monitor {
	return &Monitor{Classifier: classifier, Reporters: reporters}
}

// HandleFrame implements stream.FrameHandler: one deframed payload in,
// exactly one record out.
func (m *Monitor) HandleFrame(ctx context.Context, frame []byte) {
	if m.start.IsZero() {
		m.start = time.Now()
	}
	m.seq++

	ev := event.Decode(frame)
	rec := Record{Seq: m.seq, Elapsed: time.Since(m.start), Event: ev}
	switch e := ev.(type) {
	case event.Distance:
		rec.Class = m.Classifier.Record(e.Measurement)
	case event.Truncated:
		m.Classifier.CountTruncated()
	default:
		m.Classifier.CountEvent()
	}
	for _, r := range m.Reporters {
		r.Report(rec)
	}
}

// HandleNotification adapts HandleFrame to the notification channel's
// callback signature.
func (m *Monitor) HandleNotification(frame []byte) {
	m.HandleFrame(context.Background(), frame)
}

// HandleDropped records frames lost to framing errors. They never
// reach the decoder, so they produce no Record.
func (m *Monitor) HandleDropped(count int) {
	for i := 0; i < count; i++ {
		m.Classifier.CountFrameError()
	}
}
