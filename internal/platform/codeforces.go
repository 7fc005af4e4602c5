package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"digitomize/internal/api"
	"digitomize/internal/apperror"
	"digitomize/internal/domain"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type Codeforces struct {
	BaseURL string
	client  *api.Client
	logger  zerolog.Logger
}

func NewCodeforces(client *api.Client, logger zerolog.Logger) *Codeforces {
	return &Codeforces{
		BaseURL: "https://codeforces.com",
		client:  client,
		logger:  logger.With().Str("platform", string(domain.Codeforces)).Logger(),
	}
}

func (c *Codeforces) Platform() domain.Platform { return domain.Codeforces }

func (c *Codeforces) Host() string { return string(domain.Codeforces) }

type cfEnvelope[T any] struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Result  T      `json:"result"`
}

type cfUser struct {
	Handle string `json:"handle"`
	Rating *int   `json:"rating"`
	Rank   string `json:"rank"`
}

type cfRatingChange struct {
	ContestID int `json:"contestId"`
	NewRating int `json:"newRating"`
}

type cfContest struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Phase               string `json:"phase"`
	DurationSeconds     int    `json:"durationSeconds"`
	StartTimeSeconds    int64  `json:"startTimeSeconds"`
	RelativeTimeSeconds int64  `json:"relativeTimeSeconds"`
}

// call reads the Codeforces envelope. The API answers 400 with a FAILED
// envelope for unknown handles, so the body is decoded whatever the status.
func cfCall[T any](ctx context.Context, c *Codeforces, path string) (T, error) {
	var zero T

	resp, err := c.client.Do(ctx, c.Host(), fasthttp.MethodGet, c.BaseURL+path, nil, nil)
	if err != nil {
		return zero, err
	}

	var env cfEnvelope[T]
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		if resp.StatusCode != fasthttp.StatusOK {
			return zero, apperror.Network(c.Host(), fmt.Errorf("API error: %d", resp.StatusCode))
		}
		return zero, apperror.Parse(c.Host(), "failed to decode response", err)
	}

	if env.Status != "OK" {
		if strings.Contains(env.Comment, "not found") {
			return zero, &apperror.AppError{
				Err:      apperror.ErrNotFound,
				Message:  fmt.Sprintf("%s: %s", c.Host(), env.Comment),
				Platform: c.Host(),
			}
		}
		return zero, apperror.Network(c.Host(), fmt.Errorf("status %s: %s", env.Status, env.Comment))
	}
	return env.Result, nil
}

func (c *Codeforces) FetchProfile(ctx context.Context, handle string) (*domain.FetchedProfile, error) {
	if handle == "" {
		return nil, nil
	}

	users, err := cfCall[[]cfUser](ctx, c, "/api/user.info?handles="+url.QueryEscape(handle))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperror.UserNotFound(c.Host(), handle)
	}

	user := users[0]
	if user.Rating == nil {
		return nil, apperror.NoContestData(c.Host(), handle)
	}

	history, err := cfCall[[]cfRatingChange](ctx, c, "/api/user.rating?handle="+url.QueryEscape(handle))
	if err != nil {
		return nil, err
	}

	profile := &domain.FetchedProfile{
		Rating:                ptr(*user.Rating),
		AttendedContestsCount: ptr(len(history)),
	}
	if user.Rank != "" {
		profile.Badge = ptr(user.Rank)
	}
	return profile, nil
}

func (c *Codeforces) FetchContests(ctx context.Context) ([]domain.Contest, error) {
	list, err := cfCall[[]cfContest](ctx, c, "/api/contest.list?gym=false")
	if err != nil {
		return nil, degrade(c.logger, c.Host(), err)
	}

	contests := make([]domain.Contest, 0)
	for _, cc := range list {
		if cc.RelativeTimeSeconds >= 0 {
			continue
		}
		id := strconv.Itoa(cc.ID)
		contests = append(contests, domain.Contest{
			Host:          c.Host(),
			Name:          cc.Name,
			Vanity:        id,
			URL:           "https://codeforces.com/contests/" + id,
			StartTimeUnix: cc.StartTimeSeconds,
			Duration:      cc.DurationSeconds / 60,
		})
	}

	c.logger.Debug().Int("count", len(contests)).Msg("fetched contests")
	return contests, nil
}
