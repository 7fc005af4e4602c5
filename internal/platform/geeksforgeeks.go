package platform

import (
	"context"
	"time"

	"digitomize/internal/api"
	"digitomize/internal/apperror"
	"digitomize/internal/domain"

	"github.com/rs/zerolog"
)

// GeeksforGeeks publishes event times in IST without an offset.
var ist = time.FixedZone("IST", 5*60*60+30*60)

const gfgTimeLayout = "2006-01-02T15:04:05"

type GeeksforGeeks struct {
	BaseURL string
	client  *api.Client
	logger  zerolog.Logger
}

func NewGeeksforGeeks(client *api.Client, logger zerolog.Logger) *GeeksforGeeks {
	return &GeeksforGeeks{
		BaseURL: "https://practiceapi.geeksforgeeks.org",
		client:  client,
		logger:  logger.With().Str("platform", "geeksforgeeks").Logger(),
	}
}

func (g *GeeksforGeeks) Host() string { return "geeksforgeeks" }

type gfgEvents struct {
	Results *struct {
		Upcoming []struct {
			Slug      string `json:"slug"`
			Name      string `json:"name"`
			StartTime string `json:"start_time"`
			EndTime   string `json:"end_time"`
		} `json:"upcoming"`
	} `json:"results"`
}

func (g *GeeksforGeeks) FetchContests(ctx context.Context) ([]domain.Contest, error) {
	events, err := api.GetJSON[gfgEvents](ctx, g.client, g.Host(),
		g.BaseURL+"/api/vr/events/?type=contest&sub_type=all")
	if err != nil {
		return nil, degrade(g.logger, g.Host(), err)
	}
	if events.Results == nil {
		return nil, apperror.Parse(g.Host(), "missing results", nil)
	}

	contests := make([]domain.Contest, 0, len(events.Results.Upcoming))
	for _, e := range events.Results.Upcoming {
		start, err := parseTime(gfgTimeLayout, e.StartTime, ist)
		if err != nil {
			return nil, apperror.Parse(g.Host(), "invalid start time", err)
		}
		end, err := parseTime(gfgTimeLayout, e.EndTime, ist)
		if err != nil {
			return nil, apperror.Parse(g.Host(), "invalid end time", err)
		}
		contests = append(contests, domain.Contest{
			Host:          g.Host(),
			Name:          e.Name,
			Vanity:        e.Slug,
			URL:           "https://practice.geeksforgeeks.org/contest/" + e.Slug,
			StartTimeUnix: start,
			Duration:      int((end - start) / 60),
		})
	}

	g.logger.Debug().Int("count", len(contests)).Msg("fetched contests")
	return contests, nil
}
