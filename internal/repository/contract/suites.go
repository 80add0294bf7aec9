// Package contract holds behavior suites every RecordSource implementation must pass.
package contract

import (
	"context"
	"testing"

	"github.com/maxviazov/survey-pdf-service/internal/model"
	"github.com/maxviazov/survey-pdf-service/internal/repository"
)

// SourceFactory materializes rows (in RequiredColumns order) in the backing format and returns
// a source reading them. Cells are raw strings as an operator would type them.
type SourceFactory func(t *testing.T, rows [][]string) repository.RecordSource

// RunRecordSourceContract checks row decoding shared by all sources.
func RunRecordSourceContract(t *testing.T, makeSource SourceFactory) {
	t.Helper()

	t.Run("reads_all_rows", func(t *testing.T) {
		src := makeSource(t, [][]string{
			{"g-1", "Alluri Sitharama Raju", "Addateegala", "Addateegala", "12/3"},
			{"g-2", "Alluri Sitharama Raju", "Addateegala", "Rampa", "45A"},
		})
		got, err := src.Records(context.Background())
		if err != nil {
			t.Fatalf("records failed: %v", err)
		}
		want := []model.Record{
			{GUID: "g-1", District: "Alluri Sitharama Raju", Mandal: "Addateegala", Village: "Addateegala", Survey: "12/3"},
			{GUID: "g-2", District: "Alluri Sitharama Raju", Mandal: "Addateegala", Village: "Rampa", Survey: "45A"},
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d records, got %d: %+v", len(want), len(got), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("record %d mismatch: got %+v want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("trims_guid_and_coerces_survey", func(t *testing.T) {
		src := makeSource(t, [][]string{
			{"  g-3 ", " D ", " M ", " V ", " 7.0 "},
		})
		got, err := src.Records(context.Background())
		if err != nil {
			t.Fatalf("records failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
		want := model.Record{GUID: "g-3", District: " D ", Mandal: " M ", Village: " V ", Survey: "7"}
		if got[0] != want {
			t.Fatalf("got %+v want %+v", got[0], want)
		}
	})

	t.Run("empty_source", func(t *testing.T) {
		src := makeSource(t, nil)
		got, err := src.Records(context.Background())
		if err != nil {
			t.Fatalf("records failed: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no records, got %+v", got)
		}
	})
}
