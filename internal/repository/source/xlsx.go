package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/xuri/excelize/v2"

	"github.com/maxviazov/survey-pdf-service/internal/model"
	"github.com/maxviazov/survey-pdf-service/internal/repository"
)

// XLSXSource reads records from one sheet of an Excel workbook.
// An empty Sheet selects the first sheet of the workbook.
type XLSXSource struct {
	Path  string
	Sheet string
}

func (s XLSXSource) Records(ctx context.Context) ([]model.Record, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", repository.ErrSourceUnavailable, s.Path, err)
		}
		return nil, fmt.Errorf("open workbook %s: %w", s.Path, err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no sheets", repository.ErrSourceUnavailable, s.Path)
		}
		sheet = sheets[0]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	var (
		idx    columnIndex
		out    []model.Record
		rowNum int
	)
	for rows.Next() {
		rowNum++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Raw values keep numeric survey numbers free of display formatting.
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if idx == nil {
			if isBlank(cols) {
				continue
			}
			if idx, err = indexHeader(cols); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sheet, err)
			}
			continue
		}
		if isBlank(cols) {
			continue
		}
		rec := idx.record(cols)
		numeric, err := numericCell(f, sheet, idx[ColumnSurvey], rowNum)
		if err != nil {
			return nil, err
		}
		if numeric && idx[ColumnSurvey] < len(cols) {
			rec.Survey = numericSurvey(cols[idx[ColumnSurvey]])
		}
		out = append(out, rec)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("iterate sheet %q: %w", sheet, err)
	}
	if idx == nil {
		return nil, fmt.Errorf("sheet %q: %w: no header row", sheet, repository.ErrMissingColumn)
	}
	return out, nil
}

// numericCell reports whether the cell at the zero-based column and one-based row holds a number.
// Cells without a type attribute are numbers in the workbook format.
func numericCell(f *excelize.File, sheet string, col, row int) (bool, error) {
	ref, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return false, fmt.Errorf("cell reference: %w", err)
	}
	typ, err := f.GetCellType(sheet, ref)
	if err != nil {
		return false, fmt.Errorf("cell type %s: %w", ref, err)
	}
	return typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset, nil
}

func isBlank(cols []string) bool {
	for _, c := range cols {
		if c != "" {
			return false
		}
	}
	return true
}
