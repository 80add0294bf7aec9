package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/survey-pdf-service/internal/model"
)

// ErrEmptyStore is reported by Ping when no record was loaded.
var ErrEmptyStore = errors.New("record store is empty")

// MemoryStore is the immutable GUID -> Record mapping built once at startup.
// There is no writer after construction, so reads need no locking.
type MemoryStore struct {
	records map[string]model.Record
}

// Load reads the whole source and builds the store. Any error here must abort startup.
func Load(ctx context.Context, src RecordSource, logger zerolog.Logger) (*MemoryStore, error) {
	if src == nil {
		return nil, fmt.Errorf("load records: %w: no source configured", ErrSourceUnavailable)
	}
	start := time.Now()
	rows, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	store := NewMemoryStore(rows, logger)
	logger.Info().Int("records", store.Len()).Dur("took", time.Since(start)).Msg("GUID records loaded")
	return store, nil
}

// NewMemoryStore indexes records by GUID. Rows without a GUID are skipped and a later row
// replaces an earlier one with the same GUID.
func NewMemoryStore(records []model.Record, logger zerolog.Logger) *MemoryStore {
	l := logger.With().Str("module", "repository").Str("component", "memory_store").Logger()

	m := make(map[string]model.Record, len(records))
	var skipped, replaced int
	for _, r := range records {
		if r.GUID == "" {
			skipped++
			continue
		}
		if _, dup := m[r.GUID]; dup {
			replaced++
			l.Debug().Str("guid", r.GUID).Msg("duplicate GUID, keeping last row")
		}
		m[r.GUID] = r
	}
	if skipped > 0 || replaced > 0 {
		l.Warn().Int("skipped_without_guid", skipped).Int("duplicates_replaced", replaced).Msg("record rows normalized")
	}
	return &MemoryStore{records: m}
}

// Lookup returns the record for guid or ErrNotFound.
func (s *MemoryStore) Lookup(_ context.Context, guid string) (model.Record, error) {
	r, ok := s.records[guid]
	if !ok {
		return model.Record{}, ErrNotFound
	}
	return r, nil
}

// Len returns the number of distinct GUIDs loaded.
func (s *MemoryStore) Len() int { return len(s.records) }

// Ping reports the store ready once it holds at least one record.
func (s *MemoryStore) Ping(_ context.Context) error {
	if len(s.records) == 0 {
		return ErrEmptyStore
	}
	return nil
}

var (
	_ RecordStore = (*MemoryStore)(nil)
	_ Pinger      = (*MemoryStore)(nil)
)
