// source: hackathons.sql

package db

import (
	"context"
)

const insertUpcomingHackathon = `-- name: InsertUpcomingHackathon :exec
INSERT INTO upcoming_hackathons (
    host, vanity, name, url, registeration_start_time_unix, registeration_end_time_unix, hackathon_start_time_unix, hackathon_end_time_unix, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertHackathonParams struct {
	Host                       string
	Vanity                     string
	Name                       string
	Url                        string
	RegisterationStartTimeUnix int64
	RegisterationEndTimeUnix   int64
	HackathonStartTimeUnix     int64
	HackathonEndTimeUnix       int64
	CreatedAt                  int64
}

func (q *Queries) InsertUpcomingHackathon(ctx context.Context, arg InsertHackathonParams) error {
	_, err := q.db.ExecContext(ctx, insertUpcomingHackathon,
		arg.Host,
		arg.Vanity,
		arg.Name,
		arg.Url,
		arg.RegisterationStartTimeUnix,
		arg.RegisterationEndTimeUnix,
		arg.HackathonStartTimeUnix,
		arg.HackathonEndTimeUnix,
		arg.CreatedAt,
	)
	return err
}

const insertAllHackathon = `-- name: InsertAllHackathon :exec
INSERT INTO all_hackathons (
    host, vanity, name, url, registeration_start_time_unix, registeration_end_time_unix, hackathon_start_time_unix, hackathon_end_time_unix, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) InsertAllHackathon(ctx context.Context, arg InsertHackathonParams) error {
	_, err := q.db.ExecContext(ctx, insertAllHackathon,
		arg.Host,
		arg.Vanity,
		arg.Name,
		arg.Url,
		arg.RegisterationStartTimeUnix,
		arg.RegisterationEndTimeUnix,
		arg.HackathonStartTimeUnix,
		arg.HackathonEndTimeUnix,
		arg.CreatedAt,
	)
	return err
}

const deleteClosedUpcomingHackathons = `-- name: DeleteClosedUpcomingHackathons :execrows
DELETE FROM upcoming_hackathons WHERE registeration_end_time_unix < ?
`

func (q *Queries) DeleteClosedUpcomingHackathons(ctx context.Context, now int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteClosedUpcomingHackathons, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listUpcomingHackathons = `-- name: ListUpcomingHackathons :many
SELECT host, vanity, name, url, registeration_start_time_unix, registeration_end_time_unix, hackathon_start_time_unix, hackathon_end_time_unix, created_at
FROM upcoming_hackathons
ORDER BY registeration_start_time_unix ASC, host ASC, vanity ASC
`

func (q *Queries) ListUpcomingHackathons(ctx context.Context) ([]UpcomingHackathon, error) {
	rows, err := q.db.QueryContext(ctx, listUpcomingHackathons)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []UpcomingHackathon
	for rows.Next() {
		var i UpcomingHackathon
		if err := rows.Scan(
			&i.Host,
			&i.Vanity,
			&i.Name,
			&i.Url,
			&i.RegisterationStartTimeUnix,
			&i.RegisterationEndTimeUnix,
			&i.HackathonStartTimeUnix,
			&i.HackathonEndTimeUnix,
			&i.CreatedAt,
		); err != nil {
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

const countAllHackathons = `-- name: CountAllHackathons :one
SELECT COUNT(*) FROM all_hackathons
`

func (q *Queries) CountAllHackathons(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countAllHackathons)
	var count int64
	err := row.Scan(&count)
	return count, err
}
