package monitor

import (
	"context"
	"log"
	"time"

	"github.com/obslite/obsmon/pkg/diag"
	"github.com/obslite/obsmon/pkg/event"
	"github.com/obslite/obsmon/pkg/telemetry"
)

// LogReporter prints records in the device tool's console format. Zero
// and truncated records always print; OK distance records are sampled
// to keep a healthy sensor from flooding the console.
type LogReporter struct {
	Logger      *log.Logger // nil for the standard logger
	SampleEvery uint64      // print every Nth OK record, 0 = all

	okSeen uint64
}

// Report implements Reporter.
func (r *LogReporter) Report(rec Record) {
	prefix := func(format string, args ...interface{}) {
		args = append([]interface{}{rec.Elapsed.Seconds(), rec.Seq}, args...)
		if r.Logger != nil {
			r.Logger.Printf("[%7.1fs] #%5d  "+format, args...)
		} else {
			log.Printf("[%7.1fs] #%5d  "+format, args...)
		}
	}

	switch e := rec.Event.(type) {
	case event.Distance:
		switch rec.Class {
		case diag.ZeroNoField:
			if e.Underrun {
				prefix("DIST  sid=%d  dist=0.000m  *** SHORT DISTANCE FIELD ***  dm_bytes=%d  raw=%x",
					e.SourceID, len(e.Raw), e.Raw)
				return
			}
			prefix("DIST  sid=%d  dist=0.000m  *** NO DISTANCE FIELD ***  dm_bytes=%d  raw=%x",
				e.SourceID, len(e.Raw), e.Raw)
		case diag.ZeroExplicit:
			prefix("DIST  sid=%d  dist=0.000m  *** EXPLICIT ZERO ***  raw=%x", e.SourceID, e.Raw)
		default:
			r.okSeen++
			if n := r.SampleEvery; n <= 1 || r.okSeen%n == 1 {
				prefix("DIST  sid=%d  dist=%.3fm  OK", e.SourceID, e.Distance)
			}
		}
	case event.Truncated:
		prefix("*** TRUNCATED ***  field=%d expected=%d got=%d  raw=%x",
			e.FieldNum, e.Expected, e.Available, e.Frame)
	case event.UserInput:
		prefix("BUTTON")
	case event.TextMessage:
		prefix("TEXT  %q", e.Raw)
	case event.Geolocation:
		// silent, presence is tracked by the classifier
	case event.Unknown:
		prefix("field_%d  (%d bytes)", e.FieldNum, e.FrameLen)
	}
}

// MetricsReporter mirrors records into the telemetry counters.
type MetricsReporter struct{}

// Report implements Reporter.
func (MetricsReporter) Report(rec Record) {
	telemetry.CountFrame(event.Kind(rec.Event))
	if e, ok := rec.Event.(event.Distance); ok {
		telemetry.CountDistance(e.SourceID, rec.Class.String(), e.Distance)
	}
}

// StatsTicker periodically logs a classifier snapshot without
// resetting it.
type StatsTicker struct {
	Classifier *diag.Classifier
	Interval   time.Duration
	Logger     *log.Logger
}

// Run implements runner.Runnable.
func (t *StatsTicker) Run(ctx context.Context) error {
	interval := t.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			t.log()
		}
	}
}

func (t *StatsTicker) log() {
	printf := log.Printf
	if t.Logger != nil {
		printf = t.Logger.Printf
	}
	s := t.Classifier.Snapshot()
	printf("--- stats: events=%d ok=%d zero_no_field=%d zero_explicit=%d truncated=%d frame_errors=%d ---",
		s.Events, s.OK, s.ZeroNoField, s.ZeroExplicit, s.Truncated, s.FrameErrors)
	for id, counts := range s.Sources {
		printf("    sid%d: ok=%d zero=%d", id, counts.OK, counts.Zero)
	}
	if total := s.OK + s.ZeroExplicit + s.ZeroNoField; total > 0 {
		printf("    zero rate: %.1f%%", s.ZeroRate()*100)
	}
}
