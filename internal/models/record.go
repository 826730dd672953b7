package models

import (
	"strconv"
	"strings"
)

// DataFieldNames lists the seven positional daily fields in capture order.
// These names are a contract with downstream consumers and must not change.
var DataFieldNames = [7]string{
	"Date",
	"HR (fat burn)",
	"HR (cardio)",
	"HR (intense)",
	"Total mins (per session)",
	"Total weekly",
	"Boosted",
}

// ParticipantBlock is one participant's section of a report document.
type ParticipantBlock struct {
	ParticipantID string
	Body          string
}

// FieldValue holds a daily metric that is a number when the source text
// parses, the raw text when it does not, and null when the field was empty.
// At most one of Num and Raw is set.
type FieldValue struct {
	Num *float64
	Raw *string
}

// CoerceField converts raw field text to a FieldValue. Whitespace-only text
// becomes null; unparseable text is kept verbatim.
func CoerceField(s string) FieldValue {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return FieldValue{}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return FieldValue{Num: &f}
	}
	return FieldValue{Raw: &s}
}

// IsNull reports whether the field carried no value at all.
func (v FieldValue) IsNull() bool {
	return v.Num == nil && v.Raw == nil
}

// MarshalJSON emits a number, a string, or null.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.Num != nil:
		return []byte(strconv.FormatFloat(*v.Num, 'g', -1, 64)), nil
	case v.Raw != nil:
		return []byte(strconv.Quote(*v.Raw)), nil
	default:
		return []byte("null"), nil
	}
}

// ActivityRecord is one parsed row: either a daily data record or a weekly
// placeholder for a week that had a header but no daily entries. The JSON
// tags carry the exact field names downstream systems key on.
type ActivityRecord struct {
	ParticipantID string     `json:"participant_id"`
	WeekNumber    *int       `json:"Week_Number"`
	Notes         *string    `json:"Notes"`
	Date          *string    `json:"Date"`
	HRFatBurn     FieldValue `json:"HR (fat burn)"`
	HRCardio      FieldValue `json:"HR (cardio)"`
	HRIntense     FieldValue `json:"HR (intense)"`
	TotalMins     FieldValue `json:"Total mins (per session)"`
	TotalWeekly   FieldValue `json:"Total weekly"`
	Boosted       *string    `json:"Boosted"`
}

// IsPlaceholder reports whether this is a weekly absence row rather than a
// daily data record.
func (r ActivityRecord) IsPlaceholder() bool {
	return r.Date == nil
}
