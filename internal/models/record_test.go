package models

import (
	"encoding/json"
	"testing"
)

// TestCoerceField verifies the number / raw text / null coercion ladder.
func TestCoerceField(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantNum *float64
		wantRaw string
	}{
		{name: "integer", in: "120", wantNum: f(120)},
		{name: "decimal", in: "102.5", wantNum: f(102.5)},
		{name: "zero is a value", in: "0", wantNum: f(0)},
		{name: "padded number", in: " 95 ", wantNum: f(95)},
		{name: "empty is null", in: ""},
		{name: "whitespace is null", in: "   "},
		{name: "text falls back to raw", in: "n/a", wantRaw: "n/a"},
		{name: "mixed falls back to raw", in: "45 min", wantRaw: "45 min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceField(tt.in)
			switch {
			case tt.wantNum != nil:
				if got.Num == nil || *got.Num != *tt.wantNum {
					t.Errorf("CoerceField(%q) = %+v, want num %g", tt.in, got, *tt.wantNum)
				}
			case tt.wantRaw != "":
				if got.Raw == nil || *got.Raw != tt.wantRaw {
					t.Errorf("CoerceField(%q) = %+v, want raw %q", tt.in, got, tt.wantRaw)
				}
			default:
				if !got.IsNull() {
					t.Errorf("CoerceField(%q) = %+v, want null", tt.in, got)
				}
			}
		})
	}
}

// TestCoerceFieldIdempotent verifies coercing the textual form of an
// already-coerced number yields the same number.
func TestCoerceFieldIdempotent(t *testing.T) {
	first := CoerceField("120")
	if first.Num == nil {
		t.Fatalf("CoerceField(120) = %+v, want a number", first)
	}
	second := CoerceField("120")
	if second.Num == nil || *second.Num != *first.Num {
		t.Errorf("re-coercion = %+v, want %g", second, *first.Num)
	}
}

// TestFieldValueJSON verifies the union marshals as number, string, or null.
func TestFieldValueJSON(t *testing.T) {
	tests := []struct {
		name string
		in   FieldValue
		want string
	}{
		{name: "number", in: CoerceField("120"), want: "120"},
		{name: "string", in: CoerceField("n/a"), want: `"n/a"`},
		{name: "null", in: FieldValue{}, want: "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestActivityRecordFieldNames verifies the JSON keys match the downstream
// field-name contract exactly, including spacing and parentheses.
func TestActivityRecordFieldNames(t *testing.T) {
	week := 1
	date := "3/15/2022"
	rec := ActivityRecord{
		ParticipantID: "ABC123",
		WeekNumber:    &week,
		Date:          &date,
		HRFatBurn:     CoerceField("120"),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]any
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{
		"participant_id", "Week_Number", "Notes",
		"Date", "HR (fat burn)", "HR (cardio)", "HR (intense)",
		"Total mins (per session)", "Total weekly", "Boosted",
	}
	if len(keys) != len(want) {
		t.Errorf("marshaled keys = %d, want %d", len(keys), len(want))
	}
	for _, k := range want {
		if _, ok := keys[k]; !ok {
			t.Errorf("missing JSON key %q", k)
		}
	}
	for i, name := range DataFieldNames {
		if _, ok := keys[name]; !ok {
			t.Errorf("DataFieldNames[%d] = %q not present in JSON output", i, name)
		}
	}
}

// TestIsPlaceholder distinguishes absence rows from data rows by date.
func TestIsPlaceholder(t *testing.T) {
	week := 2
	if ph := (ActivityRecord{WeekNumber: &week}); !ph.IsPlaceholder() {
		t.Error("record without date should be a placeholder")
	}
	date := "3/15/2022"
	if rec := (ActivityRecord{Date: &date}); rec.IsPlaceholder() {
		t.Error("record with date should not be a placeholder")
	}
}

func f(v float64) *float64 { return &v }
