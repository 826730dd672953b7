package report

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/heartlog/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestParseRecordDate verifies the layout ladder accepts the date shapes
// reports actually contain, padded or not, and rejects everything else.
func TestParseRecordDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2022-03-15", "2022-03-15", true},
		{"3/15/2022", "2022-03-15", true},
		{"03/15/2022", "2022-03-15", true},
		{"2022/3/15", "2022-03-15", true},
		{"3-15-2022", "2022-03-15", true},
		{"3/15/22", "2022-03-15", true},
		{"15/3/2022", "2022-03-15", true},
		{"", "", false},
		{"yesterday", "", false},
		{"13/45/2022", "", false},
	}
	for _, tt := range tests {
		got, ok := parseRecordDate(tt.in)
		if ok != tt.ok {
			t.Errorf("parseRecordDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tt.want {
			t.Errorf("parseRecordDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
		}
	}
}

// TestParseRecordDateAmbiguous verifies month-first layouts win over
// day-first for dates both could read.
func TestParseRecordDateAmbiguous(t *testing.T) {
	got, ok := parseRecordDate("3/4/2022")
	if !ok {
		t.Fatal("parseRecordDate(3/4/2022) failed")
	}
	if want := time.Date(2022, 3, 4, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("parseRecordDate(3/4/2022) = %v, want %v (month first)", got, want)
	}
}

// TestRowFromRecord verifies a full data record converts with a normalized
// date, week description, and numeric fields intact.
func TestRowFromRecord(t *testing.T) {
	week := 1
	notes := "baseline"
	date := "3/15/2022"
	boosted := "yes"
	rec := models.ActivityRecord{
		ParticipantID: "ABC123",
		WeekNumber:    &week,
		Notes:         &notes,
		Date:          &date,
		HRFatBurn:     models.CoerceField("120"),
		HRCardio:      models.CoerceField("140"),
		HRIntense:     models.CoerceField("160"),
		TotalMins:     models.CoerceField("30"),
		TotalWeekly:   models.CoerceField("180"),
		Boosted:       &boosted,
	}

	row, degraded := rowFromRecord(rec, 7, "/reports/week1.docx", discardLogger())
	if degraded != 0 {
		t.Errorf("degraded = %d, want 0", degraded)
	}
	if row.ParticipantRef != 7 || row.ParticipantCode != "ABC123" {
		t.Errorf("participant = %d/%q, want 7/ABC123", row.ParticipantRef, row.ParticipantCode)
	}
	if row.Date == nil || row.Date.Format("2006-01-02") != "2022-03-15" {
		t.Errorf("Date = %v, want 2022-03-15", row.Date)
	}
	if row.WeekDescription == nil || *row.WeekDescription != "Week 1" {
		t.Errorf("WeekDescription = %v, want Week 1", row.WeekDescription)
	}
	if row.Notes == nil || *row.Notes != "baseline" {
		t.Errorf("Notes = %v, want baseline", row.Notes)
	}
	if row.HRFatBurn == nil || *row.HRFatBurn != 120 {
		t.Errorf("HRFatBurn = %v, want 120", row.HRFatBurn)
	}
	if row.TotalWeekly == nil || *row.TotalWeekly != 180 {
		t.Errorf("TotalWeekly = %v, want 180", row.TotalWeekly)
	}
	if row.Boosted == nil || *row.Boosted != "yes" {
		t.Errorf("Boosted = %v, want yes", row.Boosted)
	}
	if row.IsAbsence() {
		t.Error("data row reported as absence")
	}
}

// TestRowFromRecordDegradedField verifies a raw-text metric stores null and
// counts as degraded rather than failing the row.
func TestRowFromRecordDegradedField(t *testing.T) {
	week := 2
	date := "3/16/2022"
	rec := models.ActivityRecord{
		ParticipantID: "ABC123",
		WeekNumber:    &week,
		Date:          &date,
		HRFatBurn:     models.CoerceField("110"),
		HRIntense:     models.CoerceField("n/a"),
	}

	row, degraded := rowFromRecord(rec, 1, "report.txt", discardLogger())
	if degraded != 1 {
		t.Errorf("degraded = %d, want 1", degraded)
	}
	if row.HRIntense != nil {
		t.Errorf("HRIntense = %v, want nil", *row.HRIntense)
	}
	if row.HRFatBurn == nil || *row.HRFatBurn != 110 {
		t.Errorf("HRFatBurn = %v, want 110", row.HRFatBurn)
	}
}

// TestRowFromRecordUnparseableDate verifies a date no layout matches turns
// the row into a weekly-keyed one instead of failing.
func TestRowFromRecordUnparseableDate(t *testing.T) {
	week := 3
	date := "mid March"
	rec := models.ActivityRecord{
		ParticipantID: "ABC123",
		WeekNumber:    &week,
		Date:          &date,
	}

	row, _ := rowFromRecord(rec, 1, "report.txt", discardLogger())
	if row.Date != nil {
		t.Errorf("Date = %v, want nil", row.Date)
	}
	if !row.IsAbsence() {
		t.Error("row with unparseable date should key by week")
	}
}

// TestRowFromRecordNotesFallback verifies empty notes fall back to naming
// the source file.
func TestRowFromRecordNotesFallback(t *testing.T) {
	week := 1
	rec := models.ActivityRecord{ParticipantID: "ABC123", WeekNumber: &week}

	row, _ := rowFromRecord(rec, 1, "/data/reports/march.docx", discardLogger())
	if row.Notes == nil || *row.Notes != "Imported from march.docx" {
		t.Errorf("Notes = %v, want Imported from march.docx", row.Notes)
	}
}
