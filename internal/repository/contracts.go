package repository

import (
	"context"

	"github.com/maxviazov/survey-pdf-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RecordSource yields every row of the tabular data the store is built from.
// It is read exactly once at startup, so implementations don't need to be cheap.
type RecordSource interface {
	Records(ctx context.Context) ([]model.Record, error)
}

// RecordStore is the read side used by the document service.
type RecordStore interface {
	Lookup(ctx context.Context, guid string) (model.Record, error)
	Len() int
}
