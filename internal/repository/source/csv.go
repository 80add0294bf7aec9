package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/maxviazov/survey-pdf-service/internal/model"
	"github.com/maxviazov/survey-pdf-service/internal/repository"
)

// CSVSource reads records from a comma-separated export of the records sheet.
type CSVSource struct {
	Path string
}

func (s CSVSource) Records(ctx context.Context) ([]model.Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", repository.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w: empty file", s.Path, repository.ErrMissingColumn)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx, err := indexHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	var out []model.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if isBlank(row) {
			continue
		}
		out = append(out, idx.record(row))
	}
	return out, nil
}
