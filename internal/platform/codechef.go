package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
	"time"

	"digitomize/internal/api"
	"digitomize/internal/apperror"
	"digitomize/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

var drupalSettings = regexp.MustCompile(`(?s)jQuery\.extend\(Drupal\.settings,\s*(\{.*?\})\);`)

type CodeChef struct {
	BaseURL string
	client  *api.Client
	logger  zerolog.Logger
}

func NewCodeChef(client *api.Client, logger zerolog.Logger) *CodeChef {
	return &CodeChef{
		BaseURL: "https://www.codechef.com",
		client:  client,
		logger:  logger.With().Str("platform", string(domain.CodeChef)).Logger(),
	}
}

func (c *CodeChef) Platform() domain.Platform { return domain.CodeChef }

func (c *CodeChef) Host() string { return string(domain.CodeChef) }

type ccSettings struct {
	DateVersusRating struct {
		All []struct {
			Code   string      `json:"code"`
			Rating json.Number `json:"rating"`
		} `json:"all"`
	} `json:"date_versus_rating"`
}

type ccContestList struct {
	Status         string `json:"status"`
	FutureContests []struct {
		Code      string      `json:"contest_code"`
		Name      string      `json:"contest_name"`
		StartDate string      `json:"contest_start_date_iso"`
		Duration  json.Number `json:"contest_duration"`
	} `json:"future_contests"`
}

// FetchProfile reads the rating history embedded in the user page as a
// Drupal settings blob. The last entry is the current rating.
func (c *CodeChef) FetchProfile(ctx context.Context, handle string) (*domain.FetchedProfile, error) {
	if handle == "" {
		return nil, nil
	}

	// Unknown handles are redirected away from the profile page.
	profileURL := c.BaseURL + "/users/" + url.PathEscape(handle)
	resp, err := c.client.Do(ctx, c.Host(), fasthttp.MethodGet, profileURL, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.Redirected() || resp.StatusCode == fasthttp.StatusNotFound {
		return nil, apperror.UserNotFound(c.Host(), handle)
	}
	if err := resp.Check(c.Host(), profileURL); err != nil {
		return nil, err
	}
	body := resp.Body

	match := drupalSettings.FindSubmatch(body)
	if match == nil {
		return nil, apperror.Parse(c.Host(), "User info not found", nil)
	}

	var settings ccSettings
	if err := json.Unmarshal(match[1], &settings); err != nil {
		return nil, apperror.Parse(c.Host(), "User info not found", err)
	}

	history := settings.DateVersusRating.All
	if len(history) == 0 {
		return nil, apperror.NoContestData(c.Host(), handle)
	}

	rating, err := atoi(history[len(history)-1].Rating.String())
	if err != nil {
		return nil, apperror.Parse(c.Host(), "invalid rating", err)
	}

	profile := &domain.FetchedProfile{
		Rating:                ptr(rating),
		AttendedContestsCount: ptr(len(history)),
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err == nil {
		if stars := strings.TrimSpace(doc.Find(".rating").First().Text()); stars != "" {
			profile.Badge = ptr(stars)
		}
	}
	return profile, nil
}

func (c *CodeChef) FetchContests(ctx context.Context) ([]domain.Contest, error) {
	list, err := api.GetJSON[ccContestList](ctx, c.client, c.Host(),
		c.BaseURL+"/api/list/contests/all?sort_by=START&sorting_order=asc&offset=0&mode=all")
	if err != nil {
		return nil, degrade(c.logger, c.Host(), err)
	}
	if list.Status != "success" {
		return nil, apperror.Parse(c.Host(), "unexpected status "+list.Status, nil)
	}

	contests := make([]domain.Contest, 0, len(list.FutureContests))
	for _, fc := range list.FutureContests {
		start, err := parseTime(time.RFC3339, fc.StartDate, time.UTC)
		if err != nil {
			return nil, apperror.Parse(c.Host(), "invalid start date", err)
		}
		duration, err := atoi(fc.Duration.String())
		if err != nil {
			return nil, apperror.Parse(c.Host(), "invalid duration", err)
		}
		contests = append(contests, domain.Contest{
			Host:          c.Host(),
			Name:          fc.Name,
			Vanity:        fc.Code,
			URL:           "https://www.codechef.com/" + fc.Code,
			StartTimeUnix: start,
			Duration:      duration,
		})
	}

	c.logger.Debug().Int("count", len(contests)).Msg("fetched contests")
	return contests, nil
}
