package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/maxviazov/survey-pdf-service/internal/repository"
)

// Source kinds accepted in configuration.
const (
	KindXLSX     = "xlsx"
	KindCSV      = "csv"
	KindPostgres = "postgres"
)

// Kind returns the configured kind, or infers it from the file extension when unset.
func Kind(configured, path string) string {
	if configured != "" {
		return strings.ToLower(configured)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return KindCSV
	default:
		return KindXLSX
	}
}

// OpenFile returns the file-backed source for kind.
func OpenFile(kind, path, sheet string) (repository.RecordSource, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: records path is empty", repository.ErrSourceUnavailable)
	}
	switch kind {
	case KindXLSX:
		return XLSXSource{Path: path, Sheet: sheet}, nil
	case KindCSV:
		return CSVSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported file source %q", kind)
	}
}
