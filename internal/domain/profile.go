package domain

import "time"

// IsStale reports whether the cached data is older than ttl.
func (p *PlatformProfile) IsStale(now time.Time, ttl time.Duration) bool {
	return now.UnixMilli()-p.FetchTime > ttl.Milliseconds()
}

// NeedsRefresh is the per-platform refresh policy. Hidden profiles are never
// fetched, whatever their age.
func (p *PlatformProfile) NeedsRefresh(now time.Time, ttl time.Duration) bool {
	if p == nil || p.Username == "" || !p.ShowOnWebsite {
		return false
	}
	return p.IsStale(now, ttl)
}

// Apply overwrites the fetched fields and stamps the fetch time. The stamp
// never moves backwards.
func (p *PlatformProfile) Apply(f *FetchedProfile, now time.Time) {
	if f == nil {
		f = &FetchedProfile{}
	}
	p.Rating = f.Rating
	p.AttendedContestsCount = f.AttendedContestsCount
	p.Badge = f.Badge
	p.TotalQuestions = f.TotalQuestions
	p.EasyQuestions = f.EasyQuestions
	p.MediumQuestions = f.MediumQuestions
	p.HardQuestions = f.HardQuestions
	if ts := now.UnixMilli(); ts > p.FetchTime {
		p.FetchTime = ts
	}
}

// ChangeHandle sets the handle and visibility of a profile. When the handle
// differs from the stored one every fetched field is cleared and FetchTime
// is zeroed, so data from the previous handle is never shown under the new
// one and the next read refreshes it. Returns true if the handle changed.
func ChangeHandle(p *PlatformProfile, username string, showOnWebsite bool) bool {
	p.ShowOnWebsite = showOnWebsite
	if p.Username == username {
		return false
	}
	p.Username = username
	p.Apply(nil, time.UnixMilli(0))
	p.FetchTime = 0
	return true
}
