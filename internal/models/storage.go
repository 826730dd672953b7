package models

import "time"

// RecordRow is a row ready for upsert into the activity_records table.
// Date is nil for weekly placeholder/absence rows; numeric fields are nil
// when the source value was empty or degraded to text.
type RecordRow struct {
	ParticipantRef      int        `json:"-"`
	ParticipantCode     string     `json:"participant_code"`
	Date                *time.Time `json:"date"`
	WeekNumber          *int       `json:"week_number"`
	WeekDescription     *string    `json:"week_description"`
	HRFatBurn           *float64   `json:"hr_fat_burn"`
	HRCardio            *float64   `json:"hr_cardio"`
	HRIntense           *float64   `json:"hr_intense"`
	TotalMinsPerSession *float64   `json:"total_mins_per_session"`
	TotalWeekly         *float64   `json:"total_weekly"`
	Boosted             *string    `json:"boosted"`
	Notes               *string    `json:"notes"`
	SourceFile          string     `json:"source_file"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// IsAbsence reports whether the row records a week without daily data.
func (r RecordRow) IsAbsence() bool {
	return r.Date == nil
}
