// Package rating derives the composite digitomize_rating of a user.
//
// The score is the user's best single platform after scaling every platform
// onto the Codeforces scale, not an average across platforms.
package rating

import (
	"math"

	"digitomize/internal/domain"
)

// Weights maps each platform's rating scale onto Codeforces (1.0).
var Weights = map[domain.Platform]float64{
	domain.Codeforces: 1.0,
	domain.CodeChef:   0.76,
	domain.LeetCode:   0.695,
	domain.AtCoder:    1.0,
}

// Compute returns floor(max(rating * weight)) over platforms with a rating,
// or 0 when none has one. A user with any rating scores at least 1, so a
// zero composite always means unrated.
func Compute(user *domain.User) int {
	if user == nil {
		return 0
	}

	best, rated := 0.0, false
	for _, p := range domain.ProfilePlatforms {
		profile := user.Profile(p)
		if profile == nil || profile.Rating == nil {
			continue
		}
		rated = true
		if weighted := float64(*profile.Rating) * Weights[p]; weighted > best {
			best = weighted
		}
	}
	if !rated {
		return 0
	}
	return max(1, int(math.Floor(best)))
}
