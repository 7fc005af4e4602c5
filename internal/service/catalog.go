package service

import (
	"context"

	"digitomize/internal/domain"
)

// CatalogService serves the stored contest and hackathon calendars.
type CatalogService struct {
	contests   ContestStore
	hackathons HackathonStore
}

func NewCatalogService(contests ContestStore, hackathons HackathonStore) *CatalogService {
	return &CatalogService{contests: contests, hackathons: hackathons}
}

func (s *CatalogService) UpcomingContests(ctx context.Context, host string) ([]domain.Contest, error) {
	return s.contests.ListUpcoming(ctx, host)
}

func (s *CatalogService) Contest(ctx context.Context, host, vanity string) (*domain.Contest, error) {
	return s.contests.Get(ctx, host, vanity)
}

func (s *CatalogService) UpcomingHackathons(ctx context.Context) ([]domain.Hackathon, error) {
	return s.hackathons.ListUpcoming(ctx)
}
