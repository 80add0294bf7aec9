// Package source reads survey records from tabular exports (xlsx workbooks and CSV files).
package source

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/maxviazov/survey-pdf-service/internal/model"
	"github.com/maxviazov/survey-pdf-service/internal/repository"
)

// Header names expected in the first row of every tabular source.
const (
	ColumnGUID     = "guid"
	ColumnDistrict = "DistrictName"
	ColumnMandal   = "MandalName"
	ColumnVillage  = "VillageName"
	ColumnSurvey   = "Survey_No"
)

// RequiredColumns lists the header names a source must provide, in canonical order.
var RequiredColumns = []string{ColumnGUID, ColumnDistrict, ColumnMandal, ColumnVillage, ColumnSurvey}

// columnIndex maps a required column name to its position in a row.
type columnIndex map[string]int

// indexHeader locates the required columns. Matching ignores surrounding space, case and a UTF-8 BOM.
func indexHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(RequiredColumns))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, want := range RequiredColumns {
			if _, seen := idx[want]; !seen && strings.EqualFold(h, want) {
				idx[want] = i
			}
		}
	}
	var missing []string
	for _, want := range RequiredColumns {
		if _, ok := idx[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

// record builds a Record from a data row; short rows yield empty trailing fields.
func (ci columnIndex) record(row []string) model.Record {
	cell := func(name string) string {
		i := ci[name]
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return NormalizeRecord(model.Record{
		GUID:     cell(ColumnGUID),
		District: cell(ColumnDistrict),
		Mandal:   cell(ColumnMandal),
		Village:  cell(ColumnVillage),
		Survey:   cell(ColumnSurvey),
	})
}

// NormalizeRecord trims the GUID and coerces the survey designator to its string form.
// District, mandal and village are folder names and are kept exactly as stored.
func NormalizeRecord(r model.Record) model.Record {
	return model.Record{
		GUID:     strings.TrimSpace(r.GUID),
		District: r.District,
		Mandal:   r.Mandal,
		Village:  r.Village,
		Survey:   NormalizeSurvey(r.Survey),
	}
}

var integralFloat = regexp.MustCompile(`^-?[0-9]+\.0+$`)

// NormalizeSurvey collapses the integral-float rendering of a text cell ("12.0" -> "12").
// Anything else, including "12/3", "12.5" and "5E1", is kept verbatim after trimming.
func NormalizeSurvey(s string) string {
	s = strings.TrimSpace(s)
	if integralFloat.MatchString(s) {
		s, _, _ = strings.Cut(s, ".")
	}
	return s
}

// numericSurvey renders the raw value of a cell typed as a number. Integral values lose
// their fractional part and exponent; other values are kept as stored.
func numericSurvey(raw string) string {
	raw = strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) >= 1e15 {
		return NormalizeSurvey(raw)
	}
	return strconv.FormatInt(int64(f), 10)
}
