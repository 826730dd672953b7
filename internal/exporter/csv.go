package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/claude/heartlog/internal/models"
)

// Header is the exact CSV column set downstream tools key on: the
// participant identifier, the week context pair, then the seven positional
// daily fields in capture order.
var Header = []string{
	"participant_id",
	"Week_Number",
	"Notes",
	"Date",
	"HR (fat burn)",
	"HR (cardio)",
	"HR (intense)",
	"Total mins (per session)",
	"Total weekly",
	"Boosted",
}

// Options configures CSV output.
type Options struct {
	// BOM prepends a UTF-8 byte order mark so spreadsheet tools detect
	// the encoding.
	BOM bool
}

// WriteRecords writes parsed activity records as CSV. Degraded numeric
// fields keep their raw text here — direct export preserves the source.
func WriteRecords(w io.Writer, records []models.ActivityRecord, opts Options) error {
	cw, err := newWriter(w, opts)
	if err != nil {
		return err
	}
	for i, rec := range records {
		row := []string{
			rec.ParticipantID,
			intCell(rec.WeekNumber),
			strCell(rec.Notes),
			strCell(rec.Date),
			fieldCell(rec.HRFatBurn),
			fieldCell(rec.HRCardio),
			fieldCell(rec.HRIntense),
			fieldCell(rec.TotalMins),
			fieldCell(rec.TotalWeekly),
			strCell(rec.Boosted),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRows writes stored rows as CSV with dates normalized to ISO form.
func WriteRows(w io.Writer, rows []models.RecordRow, opts Options) error {
	cw, err := newWriter(w, opts)
	if err != nil {
		return err
	}
	for i, r := range rows {
		date := ""
		if r.Date != nil {
			date = r.Date.Format("2006-01-02")
		}
		row := []string{
			r.ParticipantCode,
			intCell(r.WeekNumber),
			strCell(r.Notes),
			date,
			floatCell(r.HRFatBurn),
			floatCell(r.HRCardio),
			floatCell(r.HRIntense),
			floatCell(r.TotalMinsPerSession),
			floatCell(r.TotalWeekly),
			strCell(r.Boosted),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func newWriter(w io.Writer, opts Options) (*csv.Writer, error) {
	if opts.BOM {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return nil, fmt.Errorf("writing BOM: %w", err)
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	return cw, nil
}

func strCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intCell(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatCell(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}

func fieldCell(v models.FieldValue) string {
	switch {
	case v.Num != nil:
		return strconv.FormatFloat(*v.Num, 'g', -1, 64)
	case v.Raw != nil:
		return *v.Raw
	default:
		return ""
	}
}
