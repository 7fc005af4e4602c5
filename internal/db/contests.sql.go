// source: contests.sql

package db

import (
	"context"
)

const insertUpcomingContest = `-- name: InsertUpcomingContest :exec
INSERT INTO upcoming_contests (host, vanity, name, url, start_time_unix, duration, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertContestParams struct {
	Host          string
	Vanity        string
	Name          string
	Url           string
	StartTimeUnix int64
	Duration      int64
	CreatedAt     int64
}

func (q *Queries) InsertUpcomingContest(ctx context.Context, arg InsertContestParams) error {
	_, err := q.db.ExecContext(ctx, insertUpcomingContest,
		arg.Host,
		arg.Vanity,
		arg.Name,
		arg.Url,
		arg.StartTimeUnix,
		arg.Duration,
		arg.CreatedAt,
	)
	return err
}

const insertAllContest = `-- name: InsertAllContest :exec
INSERT INTO all_contests (host, vanity, name, url, start_time_unix, duration, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) InsertAllContest(ctx context.Context, arg InsertContestParams) error {
	_, err := q.db.ExecContext(ctx, insertAllContest,
		arg.Host,
		arg.Vanity,
		arg.Name,
		arg.Url,
		arg.StartTimeUnix,
		arg.Duration,
		arg.CreatedAt,
	)
	return err
}

const deleteEndedUpcomingContests = `-- name: DeleteEndedUpcomingContests :execrows
DELETE FROM upcoming_contests WHERE start_time_unix + duration * 60 < ?
`

func (q *Queries) DeleteEndedUpcomingContests(ctx context.Context, now int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteEndedUpcomingContests, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listUpcomingContests = `-- name: ListUpcomingContests :many
SELECT host, vanity, name, url, start_time_unix, duration, created_at
FROM upcoming_contests
ORDER BY start_time_unix ASC, host ASC, vanity ASC
`

func (q *Queries) ListUpcomingContests(ctx context.Context) ([]UpcomingContest, error) {
	return q.listUpcomingContests(ctx, listUpcomingContests)
}

const listUpcomingContestsByHost = `-- name: ListUpcomingContestsByHost :many
SELECT host, vanity, name, url, start_time_unix, duration, created_at
FROM upcoming_contests
WHERE host = ?
ORDER BY start_time_unix ASC, vanity ASC
`

func (q *Queries) ListUpcomingContestsByHost(ctx context.Context, host string) ([]UpcomingContest, error) {
	return q.listUpcomingContests(ctx, listUpcomingContestsByHost, host)
}

func (q *Queries) listUpcomingContests(ctx context.Context, query string, args ...interface{}) ([]UpcomingContest, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []UpcomingContest
	for rows.Next() {
		var i UpcomingContest
		if err := rows.Scan(
			&i.Host,
			&i.Vanity,
			&i.Name,
			&i.Url,
			&i.StartTimeUnix,
			&i.Duration,
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

const getContest = `-- name: GetContest :one
SELECT host, vanity, name, url, start_time_unix, duration, created_at
FROM all_contests
WHERE host = ? AND vanity = ?
`

type GetContestParams struct {
	Host   string
	Vanity string
}

func (q *Queries) GetContest(ctx context.Context, arg GetContestParams) (AllContest, error) {
	row := q.db.QueryRowContext(ctx, getContest, arg.Host, arg.Vanity)
	var i AllContest
	err := row.Scan(
		&i.Host,
		&i.Vanity,
		&i.Name,
		&i.Url,
		&i.StartTimeUnix,
		&i.Duration,
		&i.CreatedAt,
	)
	return i, err
}

const countAllContests = `-- name: CountAllContests :one
SELECT COUNT(*) FROM all_contests
`

func (q *Queries) CountAllContests(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countAllContests)
	var count int64
	err := row.Scan(&count)
	return count, err
}
