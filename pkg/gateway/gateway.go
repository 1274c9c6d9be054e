// Package gateway reads and replaces the form field table held by an
// external TableStore.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ssargent/fieldsheet/pkg/codec"
	"github.com/ssargent/fieldsheet/pkg/store"
)

const (
	OpRead  = "read"
	OpClear = "clear"
	OpWrite = "write"
)

// Config addresses the table inside the store.
type Config struct {
	Destination string // spreadsheet ID; empty means not configured
	Range       string
}

// OperationRecorder observes every store call.
type OperationRecorder interface {
	RecordStoreOperation(op string, success bool, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordStoreOperation(string, bool, time.Duration) {}

// Gateway is safe for concurrent use; it holds no per-request state.
type Gateway struct {
	store       store.TableStore
	destination string
	rangeSpec   string
	recorder    OperationRecorder
	sugar       *zap.SugaredLogger

	sfRead singleflight.Group
}

// New creates a gateway. A nil recorder disables store metrics.
func New(ts store.TableStore, cfg Config, recorder OperationRecorder, logger *zap.Logger) *Gateway {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	rangeSpec := cfg.Range
	if rangeSpec == "" {
		rangeSpec = store.DefaultRange
	}
	return &Gateway{
		store:       ts,
		destination: cfg.Destination,
		rangeSpec:   rangeSpec,
		recorder:    recorder,
		sugar:       logger.Sugar(),
	}
}

// Configured reports whether a destination is set.
func (g *Gateway) Configured() bool {
	return g.destination != ""
}

// Read fetches the table and decodes it. On failure no records are returned.
func (g *Gateway) Read(ctx context.Context) ([]codec.FieldRecord, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}

	// Concurrent reads share one store call. The shared call is detached from
	// the caller that started it so a cancelled request cannot fail the
	// others; each caller still stops waiting when its own ctx is done.
	shared := context.WithoutCancel(ctx)
	ch := g.sfRead.DoChan(g.rangeSpec, func() (interface{}, error) {
		var table codec.Table
		err := g.observe(OpRead, func() error {
			var err error
			table, err = g.store.ReadRange(shared, g.destination, g.rangeSpec)
			return err
		})
		return table, err
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, &RemoteIOError{Op: OpRead, Err: ctx.Err()}
	}
	if res.Err != nil {
		g.sugar.Errorw("failed to fetch form fields", "range", g.rangeSpec, "error", res.Err)
		return nil, &RemoteIOError{Op: OpRead, Err: res.Err}
	}

	records := codec.Decode(res.Val.(codec.Table))
	for _, rec := range records {
		if rec.Type != "" && !rec.Type.Known() {
			g.sugar.Warnw("unrecognized field type", "id", rec.ID, "type", rec.Type)
		}
	}

	return records, nil
}

// Write replaces the whole table with records: the range is cleared, then the
// encoded table is written. The two calls are not atomic. If the write fails
// after a successful clear the range stays empty, and concurrent readers may
// observe the empty table in between.
func (g *Gateway) Write(ctx context.Context, records []codec.FieldRecord) error {
	if !g.Configured() {
		return ErrNotConfigured
	}

	table := codec.Encode(records)

	err := g.observe(OpClear, func() error {
		return g.store.ClearRange(ctx, g.destination, g.rangeSpec)
	})
	if err != nil {
		g.sugar.Errorw("failed to clear form fields", "range", g.rangeSpec, "error", err)
		return &RemoteIOError{Op: OpClear, Err: err}
	}

	err = g.observe(OpWrite, func() error {
		return g.store.WriteRange(ctx, g.destination, g.rangeSpec, table)
	})
	if err != nil {
		g.sugar.Errorw("form field range left empty after failed write",
			"range", g.rangeSpec, "records", len(records), "error", err)
		return &RemoteIOError{Op: OpWrite, Err: err}
	}

	g.sugar.Infow("form fields replaced", "range", g.rangeSpec, "records", len(records))
	return nil
}

func (g *Gateway) observe(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	g.recorder.RecordStoreOperation(op, err == nil, time.Since(start))
	return err
}

// ParseRecords decodes the formFields payload. Anything but a JSON array of
// field objects is a *ValidationError.
func ParseRecords(raw json.RawMessage) ([]codec.FieldRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ValidationError{Reason: "formFields must be an array"}
	}

	records := []codec.FieldRecord{}
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, &ValidationError{Reason: "malformed form field", Err: err}
	}
	return records, nil
}
