package monitor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obslite/obsmon/pkg/diag"
	"github.com/obslite/obsmon/pkg/event"
	"github.com/obslite/obsmon/pkg/wire"
)

type captureReporter struct {
	records []Record
}

func (r *captureReporter) Report(rec Record) {
	r.records = append(r.records, rec)
}

func TestMonitorHandleFrame(t *testing.T) {
	classifier := diag.NewClassifier()
	capture := &captureReporter{}
	m := New(classifier, capture)
	ctx := context.Background()

	m.HandleFrame(ctx, event.MarshalEvent(event.Distance{
		Measurement: event.Measurement{SourceID: 1, Distance: 2.5, HasDistance: true},
	}))
	m.HandleFrame(ctx, event.MarshalEvent(event.Distance{
		Measurement: event.Measurement{SourceID: 2},
	}))
	m.HandleFrame(ctx, event.MarshalEvent(event.UserInput{}))

	require.Len(t, capture.records, 3)
	require.Equal(t, uint64(1), capture.records[0].Seq)
	require.Equal(t, diag.OK, capture.records[0].Class)
	require.Equal(t, uint64(2), capture.records[1].Seq)
	require.Equal(t, diag.ZeroNoField, capture.records[1].Class)
	require.IsType(t, event.UserInput{}, capture.records[2].Event)

	s := classifier.Snapshot()
	require.Equal(t, uint64(3), s.Events)
	require.Equal(t, uint64(1), s.OK)
	require.Equal(t, uint64(1), s.ZeroNoField)
}

func TestMonitorTruncatedFrame(t *testing.T) {
	classifier := diag.NewClassifier()
	capture := &captureReporter{}
	m := New(classifier, capture)

	frame := wire.AppendVarint(nil, wire.Tag(event.FieldDistance, wire.TypeBytes))
	frame = wire.AppendVarint(frame, 20)
	frame = append(frame, 1, 2, 3, 4, 5)
	m.HandleFrame(context.Background(), frame)

	require.Len(t, capture.records, 1)
	tr, ok := capture.records[0].Event.(event.Truncated)
	require.True(t, ok, "expected Truncated, got %T", capture.records[0].Event)
	require.Equal(t, 20, tr.Expected)
	require.Equal(t, 5, tr.Available)
	require.Equal(t, uint64(1), classifier.Snapshot().Truncated)
}

func TestMonitorHandleDropped(t *testing.T) {
	classifier := diag.NewClassifier()
	m := New(classifier)
	m.HandleDropped(3)

	s := classifier.Snapshot()
	require.Equal(t, uint64(3), s.FrameErrors)
	require.Zero(t, s.Events, "dropped frames never become records")
}
