package domain

import (
	"time"
)

type Platform string

const (
	Codeforces Platform = "codeforces"
	CodeChef   Platform = "codechef"
	LeetCode   Platform = "leetcode"
	AtCoder    Platform = "atcoder"
)

// ProfilePlatforms is the fixed iteration order for per-user platforms.
var ProfilePlatforms = []Platform{CodeChef, LeetCode, Codeforces, AtCoder}

func ParsePlatform(s string) (Platform, bool) {
	for _, p := range ProfilePlatforms {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

type PlatformProfile struct {
	Username              string // empty means no handle linked
	Rating                *int
	AttendedContestsCount *int
	Badge                 *string
	TotalQuestions        *int
	EasyQuestions         *int
	MediumQuestions       *int
	HardQuestions         *int
	FetchTime             int64 // unix ms, 0 forces a refresh
	ShowOnWebsite         bool
}

// FetchedProfile is what an adapter returns for a handle.
type FetchedProfile struct {
	Rating                *int
	AttendedContestsCount *int
	Badge                 *string
	TotalQuestions        *int
	EasyQuestions         *int
	MediumQuestions       *int
	HardQuestions         *int
}

type PrivateField struct {
	Data          string `json:"data"`
	ShowOnWebsite bool   `json:"showOnWebsite"`
}

type Social struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	StartYear   int    `json:"startYear,omitempty"`
	EndYear     int    `json:"endYear,omitempty"`
}

type User struct {
	ID               string
	UID              string
	Username         string
	Name             string
	Email            string
	Picture          string
	DigitomizeRating int
	Profiles         map[Platform]*PlatformProfile
	Skills           []string
	Education        []Education
	Bio              *PrivateField
	PhoneNumber      *PrivateField
	DateOfBirth      *PrivateField
	Github           *PrivateField
	Social           Social
	UpdatesDay       string // YYYY-MM-DD of UpdatesCount
	UpdatesCount     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Profile returns the profile for p, or nil when the user never linked it.
func (u *User) Profile(p Platform) *PlatformProfile {
	if u == nil || u.Profiles == nil {
		return nil
	}
	return u.Profiles[p]
}

// EnsureProfile returns the profile for p, creating an empty one if needed.
func (u *User) EnsureProfile(p Platform) *PlatformProfile {
	if u.Profiles == nil {
		u.Profiles = make(map[Platform]*PlatformProfile)
	}
	profile, ok := u.Profiles[p]
	if !ok {
		profile = &PlatformProfile{}
		u.Profiles[p] = profile
	}
	return profile
}

type Contest struct {
	Host          string `json:"host"`
	Name          string `json:"name"`
	Vanity        string `json:"vanity"`
	URL           string `json:"url"`
	StartTimeUnix int64  `json:"startTimeUnix"`
	Duration      int    `json:"duration"` // minutes
}

func (c Contest) EndTimeUnix() int64 {
	return c.StartTimeUnix + int64(c.Duration)*60
}

type Hackathon struct {
	Host                       string `json:"host"`
	Name                       string `json:"name"`
	Vanity                     string `json:"vanity"`
	URL                        string `json:"url"`
	RegisterationStartTimeUnix int64  `json:"registerationStartTimeUnix"`
	RegisterationEndTimeUnix   int64  `json:"registerationEndTimeUnix"`
	HackathonStartTimeUnix     int64  `json:"hackathonStartTimeUnix"`
	HackathonEndTimeUnix       int64  `json:"hackathonEndTimeUnix"`
}
