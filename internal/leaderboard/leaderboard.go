// Package leaderboard ranks users by composite or per-platform rating.
//
// The first TopN users are returned separately; the rest are paged with a
// fixed page size. Equal ratings are ordered by username ascending.
package leaderboard

import (
	"cmp"
	"slices"

	"digitomize/internal/constants"
	"digitomize/internal/domain"
)

type Ratings struct {
	CodeChef         *int `json:"codechef"`
	LeetCode         *int `json:"leetcode"`
	Codeforces       *int `json:"codeforces"`
	AtCoder          *int `json:"atcoder"`
	DigitomizeRating *int `json:"digitomize_rating"`
	PlatformRating   *int `json:"platform_rating"`
}

type Entry struct {
	Rank             int     `json:"rank"`
	Username         string  `json:"username"`
	Name             string  `json:"name"`
	Picture          string  `json:"picture"`
	DigitomizeRating int     `json:"digitomize_rating"`
	Ratings          Ratings `json:"ratings"`
}

type Page struct {
	TotalUsers  int     `json:"total_users"`
	Top3        []Entry `json:"top3"`
	UsersInPage int     `json:"users_in_page"`
	TotalPages  int     `json:"total_pages"`
	CurrentPage int     `json:"current_page"`
	Leaderboard []Entry `json:"leaderboard"`
}

type Position struct {
	UserPosition *int    `json:"user_position"`
	Ratings      Ratings `json:"ratings"`
}

// Rank builds the requested page. filter "" ranks by composite rating;
// a platform ranks by that platform's rating. Pages start at 1; a page past
// the end is empty.
func Rank(users []*domain.User, filter domain.Platform, page int) Page {
	ranked := rankable(users, filter)

	topN := min(constants.LeaderboardTopN, len(ranked))
	rest := ranked[topN:]

	if page < 1 {
		page = 1
	}

	result := Page{
		TotalUsers:  len(ranked),
		Top3:        make([]Entry, 0, topN),
		TotalPages:  (len(rest) + constants.LeaderboardPageSize - 1) / constants.LeaderboardPageSize,
		CurrentPage: page,
		Leaderboard: []Entry{},
	}
	for i, u := range ranked[:topN] {
		result.Top3 = append(result.Top3, entry(u, filter, i+1))
	}

	// Compare pages before multiplying so a huge page cannot overflow.
	if page <= result.TotalPages {
		start := (page - 1) * constants.LeaderboardPageSize
		end := min(start+constants.LeaderboardPageSize, len(rest))
		for i, u := range rest[start:end] {
			result.Leaderboard = append(result.Leaderboard, entry(u, filter, topN+start+i+1))
		}
	}
	result.UsersInPage = len(result.Leaderboard)

	return result
}

// Find returns the 1-based rank of username under filter with its ratings,
// or a nil rank and nil ratings when the user is not ranked.
func Find(users []*domain.User, filter domain.Platform, username string) Position {
	for i, u := range rankable(users, filter) {
		if u.Username == username {
			rank := i + 1
			return Position{UserPosition: &rank, Ratings: ratingsOf(u, filter)}
		}
	}
	return Position{}
}

// Score is the sort key of u under filter, nil when u is not ranked.
func Score(u *domain.User, filter domain.Platform) *int {
	if filter == "" {
		if u.DigitomizeRating <= 0 {
			return nil
		}
		r := u.DigitomizeRating
		return &r
	}
	profile := u.Profile(filter)
	if profile == nil {
		return nil
	}
	return profile.Rating
}

func rankable(users []*domain.User, filter domain.Platform) []*domain.User {
	ranked := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if u != nil && Score(u, filter) != nil {
			ranked = append(ranked, u)
		}
	}
	slices.SortFunc(ranked, func(a, b *domain.User) int {
		return cmp.Or(
			cmp.Compare(*Score(b, filter), *Score(a, filter)),
			cmp.Compare(a.Username, b.Username),
		)
	})
	return ranked
}

func entry(u *domain.User, filter domain.Platform, rank int) Entry {
	return Entry{
		Rank:             rank,
		Username:         u.Username,
		Name:             u.Name,
		Picture:          u.Picture,
		DigitomizeRating: u.DigitomizeRating,
		Ratings:          ratingsOf(u, filter),
	}
}

func ratingsOf(u *domain.User, filter domain.Platform) Ratings {
	rating := func(p domain.Platform) *int {
		if profile := u.Profile(p); profile != nil {
			return profile.Rating
		}
		return nil
	}
	composite := u.DigitomizeRating
	return Ratings{
		CodeChef:         rating(domain.CodeChef),
		LeetCode:         rating(domain.LeetCode),
		Codeforces:       rating(domain.Codeforces),
		AtCoder:          rating(domain.AtCoder),
		DigitomizeRating: &composite,
		PlatformRating:   Score(u, filter),
	}
}
