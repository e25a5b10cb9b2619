// Package audit records request metadata after each response is sent.
//
// Recording is strictly fire-and-forget: the HTTP middleware invokes a
// Recorder from its own goroutine once the response is written, and a
// recorder failure is logged on the operational channel without ever
// reaching the client.
package audit

import (
	"context"
	"fmt"

	"costmanager/internal/core"
)

type contextKey string

// RequestIDKey is the context key under which the HTTP middleware stores
// the request id, so recorders can correlate audit events with traces.
const RequestIDKey contextKey = "request_id"

// Recorder persists one access-log entry.
type Recorder interface {
	Record(ctx context.Context, entry core.AccessLog) error
}

// LogStore is the slice of the record store the direct recorder needs.
type LogStore interface {
	CreateAccessLog(ctx context.Context, entry core.AccessLog) error
}

// StoreRecorder writes entries straight to the shared logs table. Used
// when no message broker is configured.
type StoreRecorder struct {
	store LogStore
}

func NewStoreRecorder(store LogStore) *StoreRecorder {
	return &StoreRecorder{store: store}
}

func (r *StoreRecorder) Record(ctx context.Context, entry core.AccessLog) error {
	if err := r.store.CreateAccessLog(ctx, entry); err != nil {
		return fmt.Errorf("record access log: %w", err)
	}
	return nil
}
