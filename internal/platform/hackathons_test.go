package platform

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unix(s string) int64 {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.Unix()
}

func TestDevfolio_FetchHackathons(t *testing.T) {
	srv, _ := upstream(t, map[string]string{
		"/api/search/hackathons": `{"hits":{"hits":[{"_source":{
			"name":"ETHIndia","slug":"ethindia",
			"starts_at":"2024-02-01T00:00:00Z","ends_at":"2024-02-03T00:00:00Z",
			"hackathon_setting":{"reg_starts_at":"2024-01-01T00:00:00Z","reg_ends_at":"2024-01-25T00:00:00Z"}}}]}}`,
	})
	d := &Devfolio{BaseURL: srv.URL, client: testClient(), logger: zerolog.Nop()}

	hackathons, err := d.FetchHackathons(context.Background())
	require.NoError(t, err)
	require.Len(t, hackathons, 1)

	h := hackathons[0]
	assert.Equal(t, "devfolio", h.Host)
	assert.Equal(t, "ethindia", h.Vanity)
	assert.Equal(t, "https://ethindia.devfolio.co/", h.URL)
	assert.Equal(t, unix("2024-01-01T00:00:00Z"), h.RegisterationStartTimeUnix)
	assert.Equal(t, unix("2024-01-25T00:00:00Z"), h.RegisterationEndTimeUnix)
	assert.Equal(t, unix("2024-02-01T00:00:00Z"), h.HackathonStartTimeUnix)
	assert.Equal(t, unix("2024-02-03T00:00:00Z"), h.HackathonEndTimeUnix)
}

func TestDevpost_FetchHackathons(t *testing.T) {
	srv, _ := upstream(t, map[string]string{
		"/api/hackathons": `{"hackathons":[{"id":19001,"title":"Build Week","url":"https://buildweek.devpost.com/",
			"submission_period_dates":"Jan 10 - Feb 12, 2024"}]}`,
	})
	d := &Devpost{BaseURL: srv.URL, client: testClient(), logger: zerolog.Nop()}

	hackathons, err := d.FetchHackathons(context.Background())
	require.NoError(t, err)
	require.Len(t, hackathons, 1)
	assert.Equal(t, "19001", hackathons[0].Vanity)
	assert.Equal(t, unix("2024-01-10T00:00:00Z"), hackathons[0].RegisterationStartTimeUnix)
	assert.Equal(t, unix("2024-02-12T23:59:59Z"), hackathons[0].RegisterationEndTimeUnix)
}

func TestParseDevpostPeriod(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
	}{
		{"Jan 10 - Feb 12, 2024", "2024-01-10T00:00:00Z", "2024-02-12T23:59:59Z"},
		{"Jan 10 - 12, 2024", "2024-01-10T00:00:00Z", "2024-01-12T23:59:59Z"},
		{"Dec 20, 2023 - Jan 12, 2024", "2023-12-20T00:00:00Z", "2024-01-12T23:59:59Z"},
		{"Dec 20 - Jan 12, 2024", "2023-12-20T00:00:00Z", "2024-01-12T23:59:59Z"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end, err := parseDevpostPeriod(tt.in)
			require.NoError(t, err)
			assert.Equal(t, unix(tt.start), start)
			assert.Equal(t, unix(tt.end), end)
		})
	}

	_, _, err := parseDevpostPeriod("Coming soon")
	assert.Error(t, err)
}

func TestUnstop_FetchHackathons(t *testing.T) {
	srv, _ := upstream(t, map[string]string{
		"/api/public/opportunity/search-result": `{"data":{"data":[{"id":870001,"title":"Code Sprint",
			"public_url":"hackathons/code-sprint-870001",
			"start_date":"2024-02-01T10:00:00+05:30","end_date":"2024-02-02T10:00:00+05:30",
			"regnRequirements":{"start_regn_dt":"2024-01-01T00:00:00+05:30","end_regn_dt":"2024-01-30T23:59:00+05:30"}}]}}`,
	})
	u := &Unstop{BaseURL: srv.URL, client: testClient(), logger: zerolog.Nop()}

	hackathons, err := u.FetchHackathons(context.Background())
	require.NoError(t, err)
	require.Len(t, hackathons, 1)
	assert.Equal(t, "870001", hackathons[0].Vanity)
	assert.Equal(t, "https://unstop.com/hackathons/code-sprint-870001", hackathons[0].URL)
	assert.Equal(t, unix("2024-01-30T23:59:00+05:30"), hackathons[0].RegisterationEndTimeUnix)
}

func TestGeeksforGeeks_FetchContests(t *testing.T) {
	srv, _ := upstream(t, map[string]string{
		"/api/vr/events/": `{"results":{"upcoming":[{"slug":"gfg-weekly-137","name":"GFG Weekly 137",
			"start_time":"2024-01-14T19:00:00","end_time":"2024-01-14T20:30:00"}]}}`,
	})
	g := &GeeksforGeeks{BaseURL: srv.URL, client: testClient(), logger: zerolog.Nop()}

	contests, err := g.FetchContests(context.Background())
	require.NoError(t, err)
	require.Len(t, contests, 1)
	assert.Equal(t, unix("2024-01-14T19:00:00+05:30"), contests[0].StartTimeUnix)
	assert.Equal(t, 90, contests[0].Duration)
	assert.Equal(t, "https://practice.geeksforgeeks.org/contest/gfg-weekly-137", contests[0].URL)
}
