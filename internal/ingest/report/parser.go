package report

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/heartlog/internal/models"
)

var (
	// participantHeaderRe matches: "Participant ABC123" (any case)
	participantHeaderRe = regexp.MustCompile(`(?i)Participant\s+([A-Z]{3}[A-Z0-9P]+)`)

	// weekHeaderRe matches: "Week 3 recovery focus"
	weekHeaderRe = regexp.MustCompile(`(?i)^Week (\d+)\s*(.*)`)

	// dateStartRe matches items beginning with a date like "3/15/2022".
	// Lexical shape only — no calendar validation.
	dateStartRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}`)
)

// fieldCount is the number of values that make up one daily record: date,
// three heart-rate zones, session minutes, weekly minutes, boost note.
const fieldCount = 7

// Parse splits report text into participant blocks and extracts each
// block's activity records, in document order.
func Parse(text string) []models.ActivityRecord {
	var records []models.ActivityRecord
	for _, block := range Segment(text) {
		records = append(records, ExtractBlock(block)...)
	}
	return records
}

// Segment splits report text into per-participant blocks. Text before the
// first participant header carries no identifier and is discarded; so are
// headers whose trimmed body is empty.
func Segment(text string) []models.ParticipantBlock {
	matches := participantHeaderRe.FindAllStringSubmatchIndex(text, -1)
	var blocks []models.ParticipantBlock
	for i, m := range matches {
		id := text[m[2]:m[3]]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])
		if id == "" || body == "" {
			continue
		}
		// Clone so blocks do not pin the full document in memory.
		blocks = append(blocks, models.ParticipantBlock{
			ParticipantID: strings.Clone(id),
			Body:          strings.Clone(body),
		})
	}
	return blocks
}

// ExtractBlock scans one participant block and returns its daily records
// and weekly placeholders in source order.
func ExtractBlock(block models.ParticipantBlock) []models.ActivityRecord {
	sections := splitSections(block.Body)
	if len(sections) == 0 {
		return nil
	}

	st := &blockState{participantID: block.ParticipantID}
	for _, item := range dataItems(sections) {
		st.next(strings.TrimSpace(item))
	}
	return st.finish()
}

// splitSections splits a block body on triple-newline runs and drops
// sections that are empty after trimming.
func splitSections(body string) []string {
	var sections []string
	for _, s := range strings.Split(body, "\n\n\n") {
		if s = strings.TrimSpace(s); s != "" {
			sections = append(sections, s)
		}
	}
	return sections
}

// dataItems rejoins everything after the label section and splits it into
// double-newline items. A block with only the label section has no data.
func dataItems(sections []string) []string {
	if len(sections) <= 1 {
		return nil
	}
	return strings.Split(strings.Join(sections[1:], "\n\n"), "\n\n")
}

// blockState is the extraction state machine for one block: the active week
// context plus the accumulator for the daily record in progress.
type blockState struct {
	participantID string

	weekNumber *int
	weekNotes  *string
	hasData    bool

	buf []string
	out []models.ActivityRecord
}

// next feeds one trimmed item through the transition table: week header,
// date start, continuation, or no-op.
func (st *blockState) next(item string) {
	if m := weekHeaderRe.FindStringSubmatch(item); m != nil {
		// Placeholders are detected one header late: flush the week that
		// just ended before switching context.
		st.flushPlaceholder()
		n, _ := strconv.Atoi(m[1])
		st.weekNumber = &n
		st.weekNotes = nil
		if notes := strings.TrimSpace(m[2]); notes != "" {
			st.weekNotes = &notes
		}
		st.hasData = false
		st.buf = nil
		return
	}

	if dateStartRe.MatchString(item) {
		// A new date starts fresh; an incomplete prior accumulation is
		// dropped, never emitted as a partial record.
		st.buf = []string{item}
		return
	}

	if len(st.buf) > 0 {
		st.buf = append(st.buf, item)
		if len(st.buf) == fieldCount {
			st.emitRecord()
		}
	}
	// Plain text with no record in progress has no effect.
}

// finish flushes the final week's placeholder and returns the records.
func (st *blockState) finish() []models.ActivityRecord {
	st.flushPlaceholder()
	return st.out
}

// flushPlaceholder emits an absence row for the active week when it has a
// number but produced no complete daily record.
func (st *blockState) flushPlaceholder() {
	if st.weekNumber == nil || st.hasData {
		return
	}
	st.out = append(st.out, models.ActivityRecord{
		ParticipantID: st.participantID,
		WeekNumber:    st.weekNumber,
		Notes:         st.weekNotes,
	})
}

// emitRecord assembles a daily record from the seven accumulated values.
func (st *blockState) emitRecord() {
	st.out = append(st.out, models.ActivityRecord{
		ParticipantID: st.participantID,
		WeekNumber:    st.weekNumber,
		Notes:         st.weekNotes,
		Date:          rawOrNil(st.buf[0]),
		HRFatBurn:     models.CoerceField(st.buf[1]),
		HRCardio:      models.CoerceField(st.buf[2]),
		HRIntense:     models.CoerceField(st.buf[3]),
		TotalMins:     models.CoerceField(st.buf[4]),
		TotalWeekly:   models.CoerceField(st.buf[5]),
		Boosted:       rawOrNil(st.buf[6]),
	})
	st.hasData = true
	st.buf = nil
}

// rawOrNil keeps a raw string field, mapping empty to nil.
func rawOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
