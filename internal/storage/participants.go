package storage

import (
	"context"
	"fmt"
	"time"
)

// Participant is one study participant identified by report code.
type Participant struct {
	ID             int       `json:"id"`
	Code           string    `json:"code"`
	Age            *int      `json:"age"`
	TargetAchieved bool      `json:"target_achieved"`
	LastHeartRate  *int      `json:"last_heart_rate"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GetOrCreateParticipant finds or creates a participant by report code.
// Returns the participant ID. Refreshes updated_at on each call.
func (db *DB) GetOrCreateParticipant(ctx context.Context, code string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO participants (code)
		VALUES ($1)
		ON CONFLICT (code) DO UPDATE
			SET updated_at = NOW()
		RETURNING id
	`, code).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting participant %s: %w", code, err)
	}
	return id, nil
}

// ListParticipants returns all participants ordered by code.
func (db *DB) ListParticipants(ctx context.Context) ([]Participant, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, code, age, target_achieved, last_heart_rate, created_at, updated_at
		 FROM participants
		 ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("querying participants: %w", err)
	}
	defer rows.Close()

	var result []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.ID, &p.Code, &p.Age, &p.TargetAchieved,
			&p.LastHeartRate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// RefreshTargetAchieved recomputes a participant's weekly-target flag from
// stored records: achieved when any total_weekly reaches the target minutes.
func (db *DB) RefreshTargetAchieved(ctx context.Context, participantID int) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE participants SET
			target_achieved = EXISTS (
				SELECT 1 FROM activity_records
				WHERE participant_id = $1 AND total_weekly >= $2
			),
			updated_at = NOW()
		WHERE id = $1
	`, participantID, WeeklyTargetMinutes)
	if err != nil {
		return fmt.Errorf("refreshing target for participant %d: %w", participantID, err)
	}
	return nil
}
