package storage

import (
	"context"
	"fmt"
	"math"
)

// WeeklyTargetMinutes is the programme's weekly activity goal. A
// participant achieves the target when any week's total reaches it.
const WeeklyTargetMinutes = 150

// CohortStats summarizes the participant cohort against the weekly target.
type CohortStats struct {
	TotalParticipants  int     `json:"total_participants"`
	TargetAchieved     int     `json:"target_achieved"`
	AchievedPercentage float64 `json:"achieved_percentage"`
}

// GetCohortStats counts participants and how many have any week at or above
// the weekly activity target.
func (db *DB) GetCohortStats(ctx context.Context) (*CohortStats, error) {
	stats := &CohortStats{}
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE EXISTS (
		           SELECT 1 FROM activity_records r
		           WHERE r.participant_id = participants.id
		             AND r.total_weekly >= $1
		       ))
		FROM participants
	`, WeeklyTargetMinutes).Scan(&stats.TotalParticipants, &stats.TargetAchieved)
	if err != nil {
		return nil, fmt.Errorf("querying cohort stats: %w", err)
	}
	stats.AchievedPercentage = roundPercentage(stats.TargetAchieved, stats.TotalParticipants)
	return stats, nil
}

// roundPercentage returns part/total as a percentage rounded to one decimal.
// A zero total yields 0, not NaN.
func roundPercentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// HeartRateSummary is one participant's moderate/intense heart-rate pair
// for overview displays.
type HeartRateSummary struct {
	Code     string  `json:"code"`
	Moderate float64 `json:"moderate"`
	Intense  float64 `json:"intense"`
}

// defaultHeartRate stands in for participants with no recorded heart-rate
// data at all.
const defaultHeartRate = 75

// GetHeartRateSummary returns up to seven participants' latest fat-burn and
// intense heart rates. Participants without any fat-burn reading fall back
// to their last known heart rate (or the default) with intense set 30 above.
func (db *DB) GetHeartRateSummary(ctx context.Context) ([]HeartRateSummary, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT p.code, r.hr_fat_burn, r.hr_intense, p.last_heart_rate
		FROM participants p
		LEFT JOIN LATERAL (
			SELECT hr_fat_burn, hr_intense
			FROM activity_records
			WHERE participant_id = p.id AND hr_fat_burn IS NOT NULL
			ORDER BY date DESC NULLS LAST
			LIMIT 1
		) r ON TRUE
		ORDER BY p.code
		LIMIT 7
	`)
	if err != nil {
		return nil, fmt.Errorf("querying heart rate summary: %w", err)
	}
	defer rows.Close()

	var result []HeartRateSummary
	for rows.Next() {
		var (
			code             string
			fatBurn, intense *float64
			lastHeartRate    *int
		)
		if err := rows.Scan(&code, &fatBurn, &intense, &lastHeartRate); err != nil {
			return nil, fmt.Errorf("scanning heart rate summary: %w", err)
		}
		result = append(result, summarizeHeartRate(code, fatBurn, intense, lastHeartRate))
	}
	return result, rows.Err()
}

// summarizeHeartRate applies the fallback ladder for one participant.
func summarizeHeartRate(code string, fatBurn, intense *float64, lastHeartRate *int) HeartRateSummary {
	s := HeartRateSummary{Code: code}
	if fatBurn != nil {
		s.Moderate = *fatBurn
		if intense != nil {
			s.Intense = *intense
		}
		return s
	}
	s.Moderate = defaultHeartRate
	if lastHeartRate != nil {
		s.Moderate = float64(*lastHeartRate)
	}
	s.Intense = s.Moderate + 30
	return s
}

// ageBuckets are the distribution labels in display order.
var ageBuckets = []string{"0-20", "21-40", "41-60", "61-80", "80+"}

// AgeBucket returns the distribution label for an age.
func AgeBucket(age int) string {
	switch {
	case age <= 20:
		return ageBuckets[0]
	case age <= 40:
		return ageBuckets[1]
	case age <= 60:
		return ageBuckets[2]
	case age <= 80:
		return ageBuckets[3]
	default:
		return ageBuckets[4]
	}
}

// AgeBucketCount is one bucket of the cohort age distribution.
type AgeBucketCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// GetAgeDistribution buckets participants with a known age. All buckets are
// present in the result, including empty ones.
func (db *DB) GetAgeDistribution(ctx context.Context) ([]AgeBucketCount, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT age FROM participants WHERE age IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("querying ages: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int, len(ageBuckets))
	for rows.Next() {
		var age int
		if err := rows.Scan(&age); err != nil {
			return nil, fmt.Errorf("scanning age: %w", err)
		}
		counts[AgeBucket(age)]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]AgeBucketCount, 0, len(ageBuckets))
	for _, bucket := range ageBuckets {
		result = append(result, AgeBucketCount{Bucket: bucket, Count: counts[bucket]})
	}
	return result, nil
}
