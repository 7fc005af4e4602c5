// source: users.sql

package db

import (
	"context"
)

const userColumns = `id, uid, username, name, email, picture, digitomize_rating, skills, education, bio, phone_number, date_of_birth, github, social_linkedin, social_twitter, social_instagram, updates_day, updates_count, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (User, error) {
	var i User
	err := row.Scan(
		&i.ID,
		&i.Uid,
		&i.Username,
		&i.Name,
		&i.Email,
		&i.Picture,
		&i.DigitomizeRating,
		&i.Skills,
		&i.Education,
		&i.Bio,
		&i.PhoneNumber,
		&i.DateOfBirth,
		&i.Github,
		&i.SocialLinkedin,
		&i.SocialTwitter,
		&i.SocialInstagram,
		&i.UpdatesDay,
		&i.UpdatesCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createUser = `-- name: CreateUser :exec
INSERT INTO users (
    ` + userColumns + `
) VALUES (
    ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
)
`

type CreateUserParams User

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.ExecContext(ctx, createUser,
		arg.ID,
		arg.Uid,
		arg.Username,
		arg.Name,
		arg.Email,
		arg.Picture,
		arg.DigitomizeRating,
		arg.Skills,
		arg.Education,
		arg.Bio,
		arg.PhoneNumber,
		arg.DateOfBirth,
		arg.Github,
		arg.SocialLinkedin,
		arg.SocialTwitter,
		arg.SocialInstagram,
		arg.UpdatesDay,
		arg.UpdatesCount,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getUserByUsername = `-- name: GetUserByUsername :one
SELECT ` + userColumns + ` FROM users WHERE username = ?
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByUsername, username))
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT ` + userColumns + ` FROM users WHERE email = ?
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByEmail, email))
}

const updateUser = `-- name: UpdateUser :exec
UPDATE users SET
    username = ?,
    name = ?,
    picture = ?,
    digitomize_rating = ?,
    skills = ?,
    education = ?,
    bio = ?,
    phone_number = ?,
    date_of_birth = ?,
    github = ?,
    social_linkedin = ?,
    social_twitter = ?,
    social_instagram = ?,
    updates_day = ?,
    updates_count = ?,
    updated_at = ?
WHERE id = ?
`

type UpdateUserParams struct {
	Username         string
	Name             string
	Picture          string
	DigitomizeRating int64
	Skills           string
	Education        string
	Bio              *string
	PhoneNumber      *string
	DateOfBirth      *string
	Github           *string
	SocialLinkedin   string
	SocialTwitter    string
	SocialInstagram  string
	UpdatesDay       string
	UpdatesCount     int64
	UpdatedAt        int64
	ID               string
}

func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) error {
	_, err := q.db.ExecContext(ctx, updateUser,
		arg.Username,
		arg.Name,
		arg.Picture,
		arg.DigitomizeRating,
		arg.Skills,
		arg.Education,
		arg.Bio,
		arg.PhoneNumber,
		arg.DateOfBirth,
		arg.Github,
		arg.SocialLinkedin,
		arg.SocialTwitter,
		arg.SocialInstagram,
		arg.UpdatesDay,
		arg.UpdatesCount,
		arg.UpdatedAt,
		arg.ID,
	)
	return err
}

const listUsersAboveRating = `-- name: ListUsersAboveRating :many
SELECT ` + userColumns + ` FROM users WHERE digitomize_rating > ? ORDER BY digitomize_rating DESC, username ASC
`

func (q *Queries) ListUsersAboveRating(ctx context.Context, digitomizeRating int64) ([]User, error) {
	rows, err := q.db.QueryContext(ctx, listUsersAboveRating, digitomizeRating)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		i, err := scanUser(rows)
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

const listUsersRatedOn = `-- name: ListUsersRatedOn :many
SELECT u.id, u.uid, u.username, u.name, u.email, u.picture, u.digitomize_rating, u.skills, u.education, u.bio, u.phone_number, u.date_of_birth, u.github, u.social_linkedin, u.social_twitter, u.social_instagram, u.updates_day, u.updates_count, u.created_at, u.updated_at
FROM users u
JOIN platform_profiles p ON p.user_id = u.id
WHERE p.platform = ? AND p.rating IS NOT NULL
ORDER BY p.rating DESC, u.username ASC
`

func (q *Queries) ListUsersRatedOn(ctx context.Context, platform string) ([]User, error) {
	rows, err := q.db.QueryContext(ctx, listUsersRatedOn, platform)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		i, err := scanUser(rows)
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
