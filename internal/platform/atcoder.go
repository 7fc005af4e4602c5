package platform

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"digitomize/internal/api"
	"digitomize/internal/apperror"
	"digitomize/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const atcoderTimeLayout = "2006-01-02 15:04:05-0700"

type AtCoder struct {
	BaseURL string
	client  *api.Client
	logger  zerolog.Logger
}

func NewAtCoder(client *api.Client, logger zerolog.Logger) *AtCoder {
	return &AtCoder{
		BaseURL: "https://atcoder.jp",
		client:  client,
		logger:  logger.With().Str("platform", string(domain.AtCoder)).Logger(),
	}
}

func (a *AtCoder) Platform() domain.Platform { return domain.AtCoder }

func (a *AtCoder) Host() string { return string(domain.AtCoder) }

func (a *AtCoder) document(ctx context.Context, path string) (*goquery.Document, error) {
	body, err := a.client.Get(ctx, a.Host(), a.BaseURL+path)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, apperror.Parse(a.Host(), "invalid html", err)
	}
	return doc, nil
}

// FetchProfile scrapes the user page. The badge is the rating colour taken
// from the "user-<colour>" class of the rating span.
func (a *AtCoder) FetchProfile(ctx context.Context, handle string) (*domain.FetchedProfile, error) {
	if handle == "" {
		return nil, nil
	}

	doc, err := a.document(ctx, "/users/"+url.PathEscape(handle))
	if err != nil {
		return nil, err
	}

	table := doc.Find("table.dl-table")
	if table.Length() == 0 {
		return nil, apperror.Parse(a.Host(), "profile table not found", nil)
	}

	var (
		profile  domain.FetchedProfile
		parseErr error
	)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		td := row.Find("td").First()
		switch strings.TrimSpace(row.Find("th").First().Text()) {
		case "Rating":
			span := td.Find("span").First()
			rating, err := atoi(span.Text())
			if err != nil {
				parseErr = err
				return
			}
			profile.Rating = ptr(rating)
			if class, ok := span.Attr("class"); ok {
				for _, c := range strings.Fields(class) {
					if colour, found := strings.CutPrefix(c, "user-"); found {
						profile.Badge = ptr(colour)
					}
				}
			}
		case "Rated Matches":
			count, err := atoi(td.Text())
			if err != nil {
				parseErr = err
				return
			}
			profile.AttendedContestsCount = ptr(count)
		}
	})

	if parseErr != nil {
		return nil, apperror.Parse(a.Host(), "invalid profile value", parseErr)
	}
	if profile.Rating == nil {
		return nil, apperror.NoContestData(a.Host(), handle)
	}
	return &profile, nil
}

func (a *AtCoder) FetchContests(ctx context.Context) ([]domain.Contest, error) {
	doc, err := a.document(ctx, "/contests/?lang=en")
	if err != nil {
		return nil, degrade(a.logger, a.Host(), err)
	}

	table := doc.Find("#contest-table-upcoming")
	if table.Length() == 0 {
		return nil, apperror.Parse(a.Host(), "upcoming contest table not found", nil)
	}

	contests := make([]domain.Contest, 0)
	var parseErr error
	table.Find("tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 3 {
			parseErr = fmt.Errorf("unexpected row with %d cells", cells.Length())
			return false
		}

		start, err := parseTime(atcoderTimeLayout, cells.Eq(0).Find("time").Text(), time.UTC)
		if err != nil {
			parseErr = err
			return false
		}

		link := cells.Eq(1).Find("a").First()
		href, _ := link.Attr("href")
		vanity := strings.TrimPrefix(href, "/contests/")
		if vanity == "" || vanity == href {
			parseErr = fmt.Errorf("unexpected contest link %q", href)
			return false
		}

		duration, err := parseClock(cells.Eq(2).Text())
		if err != nil {
			parseErr = err
			return false
		}

		contests = append(contests, domain.Contest{
			Host:          a.Host(),
			Name:          strings.TrimSpace(link.Text()),
			Vanity:        vanity,
			URL:           "https://atcoder.jp/contests/" + vanity,
			StartTimeUnix: start,
			Duration:      duration,
		})
		return true
	})

	if parseErr != nil {
		return nil, apperror.Parse(a.Host(), "invalid contest row", parseErr)
	}

	a.logger.Debug().Int("count", len(contests)).Msg("fetched contests")
	return contests, nil
}

// parseClock converts "hh:mm" into minutes.
func parseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	hours, err := atoi(h)
	if err != nil {
		return 0, err
	}
	minutes, err := atoi(m)
	if err != nil {
		return 0, err
	}
	return hours*60 + minutes, nil
}
