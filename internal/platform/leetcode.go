package platform

import (
	"context"
	"math"

	"digitomize/internal/api"
	"digitomize/internal/apperror"
	"digitomize/internal/domain"

	"github.com/rs/zerolog"
)

const (
	lcProfileQuery = `query userProfile($username: String!) {
  userContestRanking(username: $username) { attendedContestsCount rating badge { name } }
  matchedUser(username: $username) { submitStats { acSubmissionNum { difficulty count } } }
}`
	lcContestsQuery = `query upcomingContests { upcomingContests { title titleSlug startTime duration } }`
)

type LeetCode struct {
	BaseURL string
	client  *api.Client
	logger  zerolog.Logger
}

func NewLeetCode(client *api.Client, logger zerolog.Logger) *LeetCode {
	return &LeetCode{
		BaseURL: "https://leetcode.com",
		client:  client,
		logger:  logger.With().Str("platform", string(domain.LeetCode)).Logger(),
	}
}

func (l *LeetCode) Platform() domain.Platform { return domain.LeetCode }

func (l *LeetCode) Host() string { return string(domain.LeetCode) }

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type lcProfileResponse struct {
	Data struct {
		UserContestRanking *struct {
			AttendedContestsCount int     `json:"attendedContestsCount"`
			Rating                float64 `json:"rating"`
			Badge                 *struct {
				Name string `json:"name"`
			} `json:"badge"`
		} `json:"userContestRanking"`
		MatchedUser *struct {
			SubmitStats struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
		} `json:"matchedUser"`
	} `json:"data"`
}

type lcContestsResponse struct {
	Data *struct {
		UpcomingContests []struct {
			Title     string `json:"title"`
			TitleSlug string `json:"titleSlug"`
			StartTime int64  `json:"startTime"`
			Duration  int    `json:"duration"`
		} `json:"upcomingContests"`
	} `json:"data"`
}

// FetchProfile returns question counts even for users that never entered a
// contest; their rating stays nil.
func (l *LeetCode) FetchProfile(ctx context.Context, handle string) (*domain.FetchedProfile, error) {
	if handle == "" {
		return nil, nil
	}

	resp, err := api.PostJSON[lcProfileResponse](ctx, l.client, l.Host(), l.BaseURL+"/graphql", graphQLRequest{
		Query:     lcProfileQuery,
		Variables: map[string]any{"username": handle},
	})
	if err != nil {
		return nil, err
	}
	if resp.Data.MatchedUser == nil {
		return nil, apperror.UserNotFound(l.Host(), handle)
	}

	profile := &domain.FetchedProfile{}
	for _, n := range resp.Data.MatchedUser.SubmitStats.AcSubmissionNum {
		switch n.Difficulty {
		case "All":
			profile.TotalQuestions = ptr(n.Count)
		case "Easy":
			profile.EasyQuestions = ptr(n.Count)
		case "Medium":
			profile.MediumQuestions = ptr(n.Count)
		case "Hard":
			profile.HardQuestions = ptr(n.Count)
		}
	}

	if ranking := resp.Data.UserContestRanking; ranking != nil {
		profile.Rating = ptr(int(math.Round(ranking.Rating)))
		profile.AttendedContestsCount = ptr(ranking.AttendedContestsCount)
		if ranking.Badge != nil && ranking.Badge.Name != "" {
			profile.Badge = ptr(ranking.Badge.Name)
		}
	}
	return profile, nil
}

func (l *LeetCode) FetchContests(ctx context.Context) ([]domain.Contest, error) {
	resp, err := api.PostJSON[lcContestsResponse](ctx, l.client, l.Host(), l.BaseURL+"/graphql", graphQLRequest{
		Query: lcContestsQuery,
	})
	if err != nil {
		return nil, degrade(l.logger, l.Host(), err)
	}
	if resp.Data == nil {
		return nil, apperror.Parse(l.Host(), "missing data", nil)
	}

	contests := make([]domain.Contest, 0, len(resp.Data.UpcomingContests))
	for _, uc := range resp.Data.UpcomingContests {
		contests = append(contests, domain.Contest{
			Host:          l.Host(),
			Name:          uc.Title,
			Vanity:        uc.TitleSlug,
			URL:           "https://leetcode.com/contest/" + uc.TitleSlug,
			StartTimeUnix: uc.StartTime,
			Duration:      uc.Duration / 60,
		})
	}

	l.logger.Debug().Int("count", len(contests)).Msg("fetched contests")
	return contests, nil
}
