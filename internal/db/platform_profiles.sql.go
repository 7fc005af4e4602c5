// source: platform_profiles.sql

package db

import (
	"context"
)

func scanPlatformProfile(row interface{ Scan(...interface{}) error }) (PlatformProfile, error) {
	var i PlatformProfile
	err := row.Scan(
		&i.UserID,
		&i.Platform,
		&i.Username,
		&i.Rating,
		&i.AttendedContestsCount,
		&i.Badge,
		&i.TotalQuestions,
		&i.EasyQuestions,
		&i.MediumQuestions,
		&i.HardQuestions,
		&i.FetchTime,
		&i.ShowOnWebsite,
	)
	return i, err
}

const listProfilesByUser = `-- name: ListProfilesByUser :many
SELECT user_id, platform, username, rating, attended_contests_count, badge, total_questions, easy_questions, medium_questions, hard_questions, fetch_time, show_on_website
FROM platform_profiles WHERE user_id = ?
`

func (q *Queries) ListProfilesByUser(ctx context.Context, userID string) ([]PlatformProfile, error) {
	return q.listProfiles(ctx, listProfilesByUser, userID)
}

const listRatedProfilesAboveRating = `-- name: ListRatedProfilesAboveRating :many
SELECT p.user_id, p.platform, p.username, p.rating, p.attended_contests_count, p.badge, p.total_questions, p.easy_questions, p.medium_questions, p.hard_questions, p.fetch_time, p.show_on_website
FROM platform_profiles p
JOIN users u ON u.id = p.user_id
WHERE p.rating IS NOT NULL AND u.digitomize_rating > ?
`

func (q *Queries) ListRatedProfilesAboveRating(ctx context.Context, digitomizeRating int64) ([]PlatformProfile, error) {
	return q.listProfiles(ctx, listRatedProfilesAboveRating, digitomizeRating)
}

const listRatedProfilesRatedOn = `-- name: ListRatedProfilesRatedOn :many
SELECT p.user_id, p.platform, p.username, p.rating, p.attended_contests_count, p.badge, p.total_questions, p.easy_questions, p.medium_questions, p.hard_questions, p.fetch_time, p.show_on_website
FROM platform_profiles p
JOIN platform_profiles f ON f.user_id = p.user_id
WHERE p.rating IS NOT NULL AND f.platform = ? AND f.rating IS NOT NULL
`

func (q *Queries) ListRatedProfilesRatedOn(ctx context.Context, platform string) ([]PlatformProfile, error) {
	return q.listProfiles(ctx, listRatedProfilesRatedOn, platform)
}

func (q *Queries) listProfiles(ctx context.Context, query string, args ...interface{}) ([]PlatformProfile, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PlatformProfile
	for rows.Next() {
		i, err := scanPlatformProfile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertPlatformProfile = `-- name: UpsertPlatformProfile :exec
INSERT INTO platform_profiles (
    user_id, platform, username, rating, attended_contests_count, badge, total_questions, easy_questions, medium_questions, hard_questions, fetch_time, show_on_website
) VALUES (
    ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
)
ON CONFLICT (user_id, platform) DO UPDATE SET
    username = excluded.username,
    rating = excluded.rating,
    attended_contests_count = excluded.attended_contests_count,
    badge = excluded.badge,
    total_questions = excluded.total_questions,
    easy_questions = excluded.easy_questions,
    medium_questions = excluded.medium_questions,
    hard_questions = excluded.hard_questions,
    fetch_time = excluded.fetch_time,
    show_on_website = excluded.show_on_website
`

type UpsertPlatformProfileParams PlatformProfile

func (q *Queries) UpsertPlatformProfile(ctx context.Context, arg UpsertPlatformProfileParams) error {
	_, err := q.db.ExecContext(ctx, upsertPlatformProfile,
		arg.UserID,
		arg.Platform,
		arg.Username,
		arg.Rating,
		arg.AttendedContestsCount,
		arg.Badge,
		arg.TotalQuestions,
		arg.EasyQuestions,
		arg.MediumQuestions,
		arg.HardQuestions,
		arg.FetchTime,
		arg.ShowOnWebsite,
	)
	return err
}
