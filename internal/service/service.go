package service

import (
	"context"
	"time"

	"digitomize/internal/domain"
	"digitomize/internal/platform"
	"digitomize/internal/repository"
)

type ProfileSource interface {
	Profile(p domain.Platform) (platform.ProfileFetcher, bool)
}

type ListingSource interface {
	ContestListers() []platform.ContestLister
	HackathonListers() []platform.HackathonLister
}

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
	Save(ctx context.Context, user *domain.User) error
	ListRanked(ctx context.Context, platform domain.Platform) ([]*domain.User, error)
}

type ContestStore interface {
	PurgeEnded(ctx context.Context, now time.Time) (int64, error)
	InsertUpcoming(ctx context.Context, contests []domain.Contest) (repository.BulkResult, error)
	InsertAll(ctx context.Context, contests []domain.Contest) (repository.BulkResult, error)
	ListUpcoming(ctx context.Context, host string) ([]domain.Contest, error)
	Get(ctx context.Context, host, vanity string) (*domain.Contest, error)
	CountAll(ctx context.Context) (int64, error)
}

type HackathonStore interface {
	PurgeClosed(ctx context.Context, now time.Time) (int64, error)
	InsertUpcoming(ctx context.Context, hackathons []domain.Hackathon) (repository.BulkResult, error)
	InsertAll(ctx context.Context, hackathons []domain.Hackathon) (repository.BulkResult, error)
	ListUpcoming(ctx context.Context) ([]domain.Hackathon, error)
	CountAll(ctx context.Context) (int64, error)
}
