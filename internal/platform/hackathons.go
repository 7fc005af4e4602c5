package platform

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"digitomize/internal/api"
	"digitomize/internal/apperror"
	"digitomize/internal/domain"

	"github.com/rs/zerolog"
)

type Devfolio struct {
	BaseURL string
	client  *api.Client
	logger  zerolog.Logger
}

func NewDevfolio(client *api.Client, logger zerolog.Logger) *Devfolio {
	return &Devfolio{
		BaseURL: "https://api.devfolio.co",
		client:  client,
		logger:  logger.With().Str("platform", "devfolio").Logger(),
	}
}

func (d *Devfolio) Host() string { return "devfolio" }

type devfolioSearch struct {
	Hits *struct {
		Hits []struct {
			Source struct {
				Name     string `json:"name"`
				Slug     string `json:"slug"`
				StartsAt string `json:"starts_at"`
				EndsAt   string `json:"ends_at"`
				Settings struct {
					RegStartsAt string `json:"reg_starts_at"`
					RegEndsAt   string `json:"reg_ends_at"`
				} `json:"hackathon_setting"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (d *Devfolio) FetchHackathons(ctx context.Context) ([]domain.Hackathon, error) {
	resp, err := api.PostJSON[devfolioSearch](ctx, d.client, d.Host(), d.BaseURL+"/api/search/hackathons", map[string]any{
		"type": "application_open",
		"from": 0,
		"size": 100,
	})
	if err != nil {
		return nil, degrade(d.logger, d.Host(), err)
	}
	if resp.Hits == nil {
		return nil, apperror.Parse(d.Host(), "missing hits", nil)
	}

	hackathons := make([]domain.Hackathon, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		src := hit.Source
		times, err := parseRFC3339(src.Settings.RegStartsAt, src.Settings.RegEndsAt, src.StartsAt, src.EndsAt)
		if err != nil {
			return nil, apperror.Parse(d.Host(), "invalid time", err)
		}
		hackathons = append(hackathons, domain.Hackathon{
			Host:                       d.Host(),
			Name:                       src.Name,
			Vanity:                     src.Slug,
			URL:                        "https://" + src.Slug + ".devfolio.co/",
			RegisterationStartTimeUnix: times[0],
			RegisterationEndTimeUnix:   times[1],
			HackathonStartTimeUnix:     times[2],
			HackathonEndTimeUnix:       times[3],
		})
	}

	d.logger.Debug().Int("count", len(hackathons)).Msg("fetched hackathons")
	return hackathons, nil
}

type Devpost struct {
	BaseURL string
	client  *api.Client
	logger  zerolog.Logger
}

func NewDevpost(client *api.Client, logger zerolog.Logger) *Devpost {
	return &Devpost{
		BaseURL: "https://devpost.com",
		client:  client,
		logger:  logger.With().Str("platform", "devpost").Logger(),
	}
}

func (d *Devpost) Host() string { return "devpost" }

type devpostList struct {
	Hackathons []struct {
		ID                    int    `json:"id"`
		Title                 string `json:"title"`
		URL                   string `json:"url"`
		SubmissionPeriodDates string `json:"submission_period_dates"`
	} `json:"hackathons"`
}

// FetchHackathons lists upcoming and open hackathons. Devpost only exposes
// the submission period, which doubles as the registration window.
func (d *Devpost) FetchHackathons(ctx context.Context) ([]domain.Hackathon, error) {
	resp, err := api.GetJSON[devpostList](ctx, d.client, d.Host(),
		d.BaseURL+"/api/hackathons?status[]=upcoming&status[]=open")
	if err != nil {
		return nil, degrade(d.logger, d.Host(), err)
	}

	hackathons := make([]domain.Hackathon, 0, len(resp.Hackathons))
	for _, h := range resp.Hackathons {
		start, end, err := parseDevpostPeriod(h.SubmissionPeriodDates)
		if err != nil {
			return nil, apperror.Parse(d.Host(), "invalid submission period", err)
		}
		hackathons = append(hackathons, domain.Hackathon{
			Host:                       d.Host(),
			Name:                       h.Title,
			Vanity:                     strconv.Itoa(h.ID),
			URL:                        h.URL,
			RegisterationStartTimeUnix: start,
			RegisterationEndTimeUnix:   end,
			HackathonStartTimeUnix:     start,
			HackathonEndTimeUnix:       end,
		})
	}

	d.logger.Debug().Int("count", len(hackathons)).Msg("fetched hackathons")
	return hackathons, nil
}

// parseDevpostPeriod understands "Jan 10 - Feb 12, 2024", "Jan 10 - 12, 2024"
// and "Dec 20, 2023 - Jan 12, 2024". The end is the last second of its day.
func parseDevpostPeriod(s string) (int64, int64, error) {
	left, right, ok := strings.Cut(s, " - ")
	if !ok {
		return 0, 0, fmt.Errorf("no range in %q", s)
	}
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)

	end, err := time.Parse("Jan 2, 2006", right)
	if err != nil {
		// "12, 2024": same month as the start
		month, _, _ := strings.Cut(left, " ")
		if end, err = time.Parse("Jan 2, 2006", month+" "+right); err != nil {
			return 0, 0, fmt.Errorf("invalid end in %q: %w", s, err)
		}
	}

	start, err := time.Parse("Jan 2, 2006", left)
	if err != nil {
		if start, err = time.Parse("Jan 2 2006", left+" "+strconv.Itoa(end.Year())); err != nil {
			return 0, 0, fmt.Errorf("invalid start in %q: %w", s, err)
		}
		if start.After(end) {
			start = start.AddDate(-1, 0, 0)
		}
	}

	return start.Unix(), end.Add(24*time.Hour - time.Second).Unix(), nil
}

type Unstop struct {
	BaseURL string
	client  *api.Client
	logger  zerolog.Logger
}

func NewUnstop(client *api.Client, logger zerolog.Logger) *Unstop {
	return &Unstop{
		BaseURL: "https://unstop.com",
		client:  client,
		logger:  logger.With().Str("platform", "unstop").Logger(),
	}
}

func (u *Unstop) Host() string { return "unstop" }

type unstopSearch struct {
	Data *struct {
		Data []struct {
			ID               int    `json:"id"`
			Title            string `json:"title"`
			PublicURL        string `json:"public_url"`
			StartDate        string `json:"start_date"`
			EndDate          string `json:"end_date"`
			RegnRequirements struct {
				StartRegnDt string `json:"start_regn_dt"`
				EndRegnDt   string `json:"end_regn_dt"`
			} `json:"regnRequirements"`
		} `json:"data"`
	} `json:"data"`
}

func (u *Unstop) FetchHackathons(ctx context.Context) ([]domain.Hackathon, error) {
	resp, err := api.GetJSON[unstopSearch](ctx, u.client, u.Host(),
		u.BaseURL+"/api/public/opportunity/search-result?opportunity=hackathons&oppstatus=open&per_page=100")
	if err != nil {
		return nil, degrade(u.logger, u.Host(), err)
	}
	if resp.Data == nil {
		return nil, apperror.Parse(u.Host(), "missing data", nil)
	}

	hackathons := make([]domain.Hackathon, 0, len(resp.Data.Data))
	for _, h := range resp.Data.Data {
		times, err := parseRFC3339(h.RegnRequirements.StartRegnDt, h.RegnRequirements.EndRegnDt, h.StartDate, h.EndDate)
		if err != nil {
			return nil, apperror.Parse(u.Host(), "invalid time", err)
		}
		hackathons = append(hackathons, domain.Hackathon{
			Host:                       u.Host(),
			Name:                       h.Title,
			Vanity:                     strconv.Itoa(h.ID),
			URL:                        "https://unstop.com/" + h.PublicURL,
			RegisterationStartTimeUnix: times[0],
			RegisterationEndTimeUnix:   times[1],
			HackathonStartTimeUnix:     times[2],
			HackathonEndTimeUnix:       times[3],
		})
	}

	u.logger.Debug().Int("count", len(hackathons)).Msg("fetched hackathons")
	return hackathons, nil
}

func parseRFC3339(values ...string) ([]int64, error) {
	out := make([]int64, len(values))
	for i, v := range values {
		ts, err := parseTime(time.RFC3339, v, time.UTC)
		if err != nil {
			return nil, err
		}
		out[i] = ts
	}
	return out, nil
}
