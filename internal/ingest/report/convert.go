package report

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/heartlog/internal/models"
)

// recordDateLayouts are tried in order when normalizing a record's date
// string. Unpadded layouts accept both "3/15/2022" and "03/15/2022".
var recordDateLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"2/1/2006",
	"2006/1/2",
	"1-2-2006",
	"2-1-2006",
	"1/2/06",
	"2/1/06",
}

// parseRecordDate normalizes a raw date string. The second return is false
// when no layout matches.
func parseRecordDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// rowFromRecord converts one parsed record into a storage row. A date that
// fails every layout becomes null, turning the row into a weekly-keyed one.
// Numeric fields that degraded to raw text are stored as null and logged;
// the raw value stays visible in the source document and direct exports.
// Returns the row and the count of degraded fields.
func rowFromRecord(rec models.ActivityRecord, participantRef int, sourceFile string, log *slog.Logger) (models.RecordRow, int) {
	row := models.RecordRow{
		ParticipantRef:  participantRef,
		ParticipantCode: rec.ParticipantID,
		WeekNumber:      rec.WeekNumber,
		Boosted:         rec.Boosted,
		SourceFile:      sourceFile,
	}

	if rec.WeekNumber != nil {
		desc := fmt.Sprintf("Week %d", *rec.WeekNumber)
		row.WeekDescription = &desc
	}

	if rec.Date != nil {
		if d, ok := parseRecordDate(*rec.Date); ok {
			row.Date = &d
		} else {
			log.Warn("unparseable record date, storing as weekly row",
				"participant", rec.ParticipantID, "date", *rec.Date)
		}
	}

	notes := ""
	if rec.Notes != nil {
		notes = *rec.Notes
	}
	if notes == "" {
		notes = "Imported from " + filepath.Base(sourceFile)
	}
	row.Notes = &notes

	degraded := 0
	numeric := func(v models.FieldValue, field string) *float64 {
		if v.Raw != nil {
			degraded++
			log.Warn("non-numeric field stored as null",
				"participant", rec.ParticipantID, "field", field, "value", *v.Raw)
		}
		return v.Num
	}
	row.HRFatBurn = numeric(rec.HRFatBurn, models.DataFieldNames[1])
	row.HRCardio = numeric(rec.HRCardio, models.DataFieldNames[2])
	row.HRIntense = numeric(rec.HRIntense, models.DataFieldNames[3])
	row.TotalMinsPerSession = numeric(rec.TotalMins, models.DataFieldNames[4])
	row.TotalWeekly = numeric(rec.TotalWeekly, models.DataFieldNames[5])

	return row, degraded
}
