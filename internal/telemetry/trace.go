// Package telemetry records per-frame scene statistics as CSV and reduces a
// run to summary figures.
package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"riverbed/internal/core"
)

// FrameRecord is one CSV row.
type FrameRecord struct {
	Frame     uint64  `csv:"frame"`
	TimeMS    int64   `csv:"time_ms"`
	DT        float32 `csv:"dt"`
	Energy    float64 `csv:"energy"`
	Active    int     `csv:"active"`
	Airborne  int     `csv:"airborne"`
	Respawned int     `csv:"respawned"`
	Splashes  int     `csv:"splashes"`
}

// NewFrameRecord captures the frame clock and the scene statistics.
func NewFrameRecord(ctx *core.Context, s core.FrameStats) FrameRecord {
	return FrameRecord{
		Frame:     ctx.Frame(),
		TimeMS:    ctx.Now().Milliseconds(),
		DT:        ctx.DT(),
		Energy:    s.Energy,
		Active:    s.Active,
		Airborne:  s.Airborne,
		Respawned: s.Respawned,
		Splashes:  s.Splashes,
	}
}

// TraceWriter streams records to w, writing the header once, and keeps them
// for Summarize. A nil *TraceWriter accepts and drops records.
type TraceWriter struct {
	w       io.Writer
	header  bool
	records []FrameRecord
}

// NewTraceWriter returns a writer on w. A nil w keeps records in memory only.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w}
}

// Write appends one record.
func (t *TraceWriter) Write(r FrameRecord) error {
	if t == nil {
		return nil
	}
	t.records = append(t.records, r)
	if t.w == nil {
		return nil
	}
	rows := []FrameRecord{r}
	var err error
	if !t.header {
		err = gocsv.Marshal(rows, t.w)
		t.header = true
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, t.w)
	}
	if err != nil {
		return fmt.Errorf("writing trace frame %d: %w", r.Frame, err)
	}
	return nil
}

// Records returns the records written so far.
func (t *TraceWriter) Records() []FrameRecord {
	if t == nil {
		return nil
	}
	return t.records
}

// ReadTrace parses a CSV trace produced by TraceWriter.
func ReadTrace(r io.Reader) ([]FrameRecord, error) {
	var out []FrameRecord
	if err := gocsv.Unmarshal(r, &out); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return out, nil
}
