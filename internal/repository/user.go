package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"digitomize/internal/apperror"
	"digitomize/internal/db"
	"digitomize/internal/domain"

	"github.com/rs/zerolog"
)

type UserRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewUserRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger.With().Str("repository", "user").Logger(),
	}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row, err := r.queries.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "user", username)
	}
	return r.withProfiles(ctx, row)
}

func (r *UserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return exists(r.queries.GetUserByUsername(ctx, username))
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return exists(r.queries.GetUserByEmail(ctx, email))
}

func exists(_ db.User, err error) (bool, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a user and its linked profiles.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	row, err := toUserRow(user)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	if err := qtx.CreateUser(ctx, db.CreateUserParams(row)); err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.Username)
		}
		return fmt.Errorf("failed to create user %s: %w", user.Username, err)
	}
	if err := upsertProfiles(ctx, qtx, user); err != nil {
		return err
	}

	return tx.Commit()
}

// Save writes the user row and every profile in one transaction.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	row, err := toUserRow(user)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	err = qtx.UpdateUser(ctx, db.UpdateUserParams{
		Username:         row.Username,
		Name:             row.Name,
		Picture:          row.Picture,
		DigitomizeRating: row.DigitomizeRating,
		Skills:           row.Skills,
		Education:        row.Education,
		Bio:              row.Bio,
		PhoneNumber:      row.PhoneNumber,
		DateOfBirth:      row.DateOfBirth,
		Github:           row.Github,
		SocialLinkedin:   row.SocialLinkedin,
		SocialTwitter:    row.SocialTwitter,
		SocialInstagram:  row.SocialInstagram,
		UpdatesDay:       row.UpdatesDay,
		UpdatesCount:     row.UpdatesCount,
		UpdatedAt:        row.UpdatedAt,
		ID:               row.ID,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.Username)
		}
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	if err := upsertProfiles(ctx, qtx, user); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user %s: %w", user.ID, err)
	}

	r.logger.Debug().
		Str("user_id", user.ID).
		Int("digitomize_rating", user.DigitomizeRating).
		Msg("user saved")
	return nil
}

// ListRanked returns leaderboard candidates with their rated profiles:
// users with a positive composite rating, or with a rating on platform when
// one is given.
func (r *UserRepository) ListRanked(ctx context.Context, platform domain.Platform) ([]*domain.User, error) {
	var (
		rows     []db.User
		profiles []db.PlatformProfile
		err      error
	)
	if platform == "" {
		rows, err = r.queries.ListUsersAboveRating(ctx, 0)
	} else {
		rows, err = r.queries.ListUsersRatedOn(ctx, string(platform))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list ranked users: %w", err)
	}
	if len(rows) == 0 {
		return []*domain.User{}, nil
	}

	if platform == "" {
		profiles, err = r.queries.ListRatedProfilesAboveRating(ctx, 0)
	} else {
		profiles, err = r.queries.ListRatedProfilesRatedOn(ctx, string(platform))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list rated profiles: %w", err)
	}
	byUser := make(map[string][]db.PlatformProfile)
	for _, p := range profiles {
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		user, err := toDomainUser(row, byUser[row.ID])
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *UserRepository) withProfiles(ctx context.Context, row db.User) (*domain.User, error) {
	profiles, err := r.queries.ListProfilesByUser(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles for %s: %w", row.ID, err)
	}
	return toDomainUser(row, profiles)
}

func upsertProfiles(ctx context.Context, q *db.Queries, user *domain.User) error {
	for _, p := range domain.ProfilePlatforms {
		profile := user.Profile(p)
		if profile == nil {
			continue
		}
		err := q.UpsertPlatformProfile(ctx, db.UpsertPlatformProfileParams{
			UserID:                user.ID,
			Platform:              string(p),
			Username:              profile.Username,
			Rating:                toInt64(profile.Rating),
			AttendedContestsCount: toInt64(profile.AttendedContestsCount),
			Badge:                 profile.Badge,
			TotalQuestions:        toInt64(profile.TotalQuestions),
			EasyQuestions:         toInt64(profile.EasyQuestions),
			MediumQuestions:       toInt64(profile.MediumQuestions),
			HardQuestions:         toInt64(profile.HardQuestions),
			FetchTime:             profile.FetchTime,
			ShowOnWebsite:         profile.ShowOnWebsite,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert %s profile for %s: %w", p, user.ID, err)
		}
	}
	return nil
}

func toUserRow(u *domain.User) (db.User, error) {
	skills, err := json.Marshal(nonNil(u.Skills))
	if err != nil {
		return db.User{}, fmt.Errorf("failed to encode skills: %w", err)
	}
	education, err := json.Marshal(nonNil(u.Education))
	if err != nil {
		return db.User{}, fmt.Errorf("failed to encode education: %w", err)
	}

	row := db.User{
		ID:               u.ID,
		Username:         u.Username,
		Name:             u.Name,
		Email:            u.Email,
		Picture:          u.Picture,
		DigitomizeRating: int64(u.DigitomizeRating),
		Skills:           string(skills),
		Education:        string(education),
		SocialLinkedin:   u.Social.LinkedIn,
		SocialTwitter:    u.Social.Twitter,
		SocialInstagram:  u.Social.Instagram,
		UpdatesDay:       u.UpdatesDay,
		UpdatesCount:     int64(u.UpdatesCount),
		CreatedAt:        u.CreatedAt.Unix(),
		UpdatedAt:        u.UpdatedAt.Unix(),
	}
	if u.UID != "" {
		row.Uid = &u.UID
	}
	for dst, src := range map[**string]*domain.PrivateField{
		&row.Bio:         u.Bio,
		&row.PhoneNumber: u.PhoneNumber,
		&row.DateOfBirth: u.DateOfBirth,
		&row.Github:      u.Github,
	} {
		if src == nil {
			continue
		}
		raw, err := json.Marshal(src)
		if err != nil {
			return db.User{}, fmt.Errorf("failed to encode private field: %w", err)
		}
		s := string(raw)
		*dst = &s
	}
	return row, nil
}

func toDomainUser(row db.User, profiles []db.PlatformProfile) (*domain.User, error) {
	user := &domain.User{
		ID:               row.ID,
		Username:         row.Username,
		Name:             row.Name,
		Email:            row.Email,
		Picture:          row.Picture,
		DigitomizeRating: int(row.DigitomizeRating),
		Social: domain.Social{
			LinkedIn:  row.SocialLinkedin,
			Twitter:   row.SocialTwitter,
			Instagram: row.SocialInstagram,
		},
		UpdatesDay:   row.UpdatesDay,
		UpdatesCount: int(row.UpdatesCount),
		CreatedAt:    time.Unix(row.CreatedAt, 0),
		UpdatedAt:    time.Unix(row.UpdatedAt, 0),
	}
	if row.Uid != nil {
		user.UID = *row.Uid
	}
	if err := json.Unmarshal([]byte(row.Skills), &user.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills of %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Education), &user.Education); err != nil {
		return nil, fmt.Errorf("failed to decode education of %s: %w", row.ID, err)
	}
	for dst, src := range map[**domain.PrivateField]*string{
		&user.Bio:         row.Bio,
		&user.PhoneNumber: row.PhoneNumber,
		&user.DateOfBirth: row.DateOfBirth,
		&user.Github:      row.Github,
	} {
		if src == nil {
			continue
		}
		var field domain.PrivateField
		if err := json.Unmarshal([]byte(*src), &field); err != nil {
			return nil, fmt.Errorf("failed to decode private field of %s: %w", row.ID, err)
		}
		*dst = &field
	}

	for _, p := range profiles {
		platform, ok := domain.ParsePlatform(p.Platform)
		if !ok {
			continue
		}
		*user.EnsureProfile(platform) = domain.PlatformProfile{
			Username:              p.Username,
			Rating:                toInt(p.Rating),
			AttendedContestsCount: toInt(p.AttendedContestsCount),
			Badge:                 p.Badge,
			TotalQuestions:        toInt(p.TotalQuestions),
			EasyQuestions:         toInt(p.EasyQuestions),
			MediumQuestions:       toInt(p.MediumQuestions),
			HardQuestions:         toInt(p.HardQuestions),
			FetchTime:             p.FetchTime,
			ShowOnWebsite:         p.ShowOnWebsite,
		}
	}
	return user, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func toInt64(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

func toInt(v *int64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
