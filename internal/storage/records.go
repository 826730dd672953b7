package storage

import (
	"context"
	"fmt"

	"github.com/claude/heartlog/internal/models"
)

// UpsertRecord inserts or updates one activity record. Daily rows conflict
// on (participant_id, date); absence rows on (participant_id, week_number)
// with a null date. Reports whether the row was newly inserted.
func (db *DB) UpsertRecord(ctx context.Context, row models.RecordRow) (bool, error) {
	conflict := `(participant_id, date) WHERE date IS NOT NULL`
	if row.IsAbsence() {
		conflict = `(participant_id, week_number) WHERE date IS NULL`
	}

	// xmax = 0 only for freshly inserted row versions.
	query := fmt.Sprintf(`
		INSERT INTO activity_records
			(participant_id, participant_code, date, week_number, week_description,
			 hr_fat_burn, hr_cardio, hr_intense, total_mins_per_session, total_weekly,
			 boosted, notes, source_file)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT %s DO UPDATE SET
			week_number = EXCLUDED.week_number,
			week_description = EXCLUDED.week_description,
			hr_fat_burn = EXCLUDED.hr_fat_burn,
			hr_cardio = EXCLUDED.hr_cardio,
			hr_intense = EXCLUDED.hr_intense,
			total_mins_per_session = EXCLUDED.total_mins_per_session,
			total_weekly = EXCLUDED.total_weekly,
			boosted = EXCLUDED.boosted,
			notes = EXCLUDED.notes,
			source_file = EXCLUDED.source_file,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, conflict)

	var inserted bool
	err := db.Pool.QueryRow(ctx, query,
		row.ParticipantRef, row.ParticipantCode, row.Date, row.WeekNumber,
		row.WeekDescription, row.HRFatBurn, row.HRCardio, row.HRIntense,
		row.TotalMinsPerSession, row.TotalWeekly, row.Boosted, row.Notes,
		row.SourceFile,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upserting record for %s: %w", row.ParticipantCode, err)
	}
	return inserted, nil
}

// QueryRecords returns a participant's records, newest date first with
// absence rows last, optionally filtered to one week.
func (db *DB) QueryRecords(ctx context.Context, code string, week *int) ([]models.RecordRow, error) {
	query := `
		SELECT participant_id, participant_code, date, week_number, week_description,
		       hr_fat_burn, hr_cardio, hr_intense, total_mins_per_session, total_weekly,
		       boosted, notes, COALESCE(source_file, ''), created_at, updated_at
		FROM activity_records
		WHERE participant_code = $1`
	args := []any{code}
	if week != nil {
		query += ` AND week_number = $2`
		args = append(args, *week)
	}
	query += ` ORDER BY date DESC NULLS LAST, week_number`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records for %s: %w", code, err)
	}
	defer rows.Close()

	var result []models.RecordRow
	for rows.Next() {
		var r models.RecordRow
		if err := rows.Scan(&r.ParticipantRef, &r.ParticipantCode, &r.Date,
			&r.WeekNumber, &r.WeekDescription, &r.HRFatBurn, &r.HRCardio,
			&r.HRIntense, &r.TotalMinsPerSession, &r.TotalWeekly, &r.Boosted,
			&r.Notes, &r.SourceFile, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
