package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"digitomize/internal/apperror"
	"digitomize/internal/constants"
	"digitomize/internal/domain"
	"digitomize/internal/rating"

	"github.com/asaskevich/govalidator"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var usernameInvalid = regexp.MustCompile(`[^a-z0-9_.-]`)

// socialHosts lists the hosts accepted for each social link.
var socialHosts = map[string][]string{
	"linkedin":  {"linkedin.com"},
	"twitter":   {"twitter.com", "x.com"},
	"instagram": {"instagram.com"},
}

type ProfileService struct {
	users   UserStore
	refresh *RefreshService
	now     func() time.Time
	logger  zerolog.Logger
}

func NewProfileService(users UserStore, refresh *RefreshService, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		users:   users,
		refresh: refresh,
		now:     time.Now,
		logger:  logger.With().Str("service", "profile").Logger(),
	}
}

type RegisterInput struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Username string `json:"username"`
}

// Register creates a user. Without an explicit username the local part of
// the email is used; if that is taken the uid is used instead.
func (s *ProfileService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !govalidator.IsEmail(email) {
		return nil, apperror.ValidationFailed("email", "Invalid email")
	}

	taken, err := s.users.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("user", email)
	}

	username := in.Username
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}
	username = usernameInvalid.ReplaceAllString(strings.ToLower(username), "")
	if username == "" {
		username = strings.ToLower(in.UID)
	}

	if taken, err = s.users.UsernameTaken(ctx, username); err != nil {
		return nil, err
	}
	if taken {
		if in.UID == "" {
			return nil, apperror.Conflict("user", username)
		}
		s.logger.Debug().Str("username", username).Msg("username taken, falling back to uid")
		username = in.UID
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:        id,
		UID:       in.UID,
		Username:  username,
		Name:      in.Name,
		Email:     email,
		Picture:   in.Picture,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("username", username).Msg("user registered")
	return user, nil
}

type HandleUpdate struct {
	Username      *string `json:"username"`
	ShowOnWebsite *bool   `json:"showOnWebsite"`
}

type FieldUpdate struct {
	Data          *string `json:"data"`
	ShowOnWebsite *bool   `json:"showOnWebsite"`
}

type ProfileUpdate struct {
	Name        *string             `json:"name"`
	Picture     *string             `json:"picture"`
	Codeforces  *HandleUpdate       `json:"codeforces"`
	CodeChef    *HandleUpdate       `json:"codechef"`
	LeetCode    *HandleUpdate       `json:"leetcode"`
	AtCoder     *HandleUpdate       `json:"atcoder"`
	Bio         *FieldUpdate        `json:"bio"`
	PhoneNumber *FieldUpdate        `json:"phoneNumber"`
	DateOfBirth *FieldUpdate        `json:"dateOfBirth"`
	Github      *FieldUpdate        `json:"github"`
	Social      *domain.Social      `json:"social"`
	Skills      *[]string           `json:"skills"`
	Education   *[]domain.Education `json:"education"`
}

func (u *ProfileUpdate) handles() map[domain.Platform]*HandleUpdate {
	return map[domain.Platform]*HandleUpdate{
		domain.Codeforces: u.Codeforces,
		domain.CodeChef:   u.CodeChef,
		domain.LeetCode:   u.LeetCode,
		domain.AtCoder:    u.AtCoder,
	}
}

// UpdateProfile validates and applies a user edit. Changing a platform
// handle clears that platform's data so it is refetched on the next read.
func (s *ProfileService) UpdateProfile(ctx context.Context, username string, upd ProfileUpdate) (*domain.User, error) {
	if err := validateUpdate(&upd); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := now.UTC().Format(time.DateOnly)
	if user.UpdatesDay != today {
		user.UpdatesDay = today
		user.UpdatesCount = 0
	}
	if user.UpdatesCount >= constants.MaxUpdatesPerDay {
		return nil, apperror.ValidationFailed("updates", "Daily update limit reached")
	}

	changed := applyUpdate(user, &upd)
	if !changed {
		return nil, apperror.ValidationFailed("", "No changes were applied")
	}

	user.DigitomizeRating = rating.Compute(user)
	user.UpdatesCount++
	user.UpdatedAt = now

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", username).
		Int("updates_today", user.UpdatesCount).
		Msg("profile updated")
	return user, nil
}

func validateUpdate(upd *ProfileUpdate) error {
	for _, p := range domain.ProfilePlatforms {
		h := upd.handles()[p]
		if h == nil {
			continue
		}
		if h.Username == nil || h.ShowOnWebsite == nil {
			return apperror.ValidationFailed(string(p),
				fmt.Sprintf("Both 'username' and 'showOnWebsite' properties are required for the '%s' platform.", p))
		}
	}

	for name, f := range map[string]*FieldUpdate{
		"bio":         upd.Bio,
		"phoneNumber": upd.PhoneNumber,
		"dateOfBirth": upd.DateOfBirth,
		"github":      upd.Github,
	} {
		if f != nil && (f.Data == nil || f.ShowOnWebsite == nil) {
			return apperror.ValidationFailed(name,
				fmt.Sprintf("Both 'data' and 'showOnWebsite' properties are required for '%s'.", name))
		}
	}

	if upd.Social != nil {
		for network, link := range map[string]string{
			"linkedin":  upd.Social.LinkedIn,
			"twitter":   upd.Social.Twitter,
			"instagram": upd.Social.Instagram,
		} {
			if link != "" && !validSocialURL(network, link) {
				return apperror.ValidationFailed("social."+network, fmt.Sprintf("Invalid %s URL", network))
			}
		}
	}
	return nil
}

func validSocialURL(network, link string) bool {
	if !govalidator.IsURL(link) {
		return false
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, allowed := range socialHosts[network] {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

func applyUpdate(user *domain.User, upd *ProfileUpdate) bool {
	changed := false
	set := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}

	set(&user.Name, upd.Name)
	set(&user.Picture, upd.Picture)

	for _, p := range domain.ProfilePlatforms {
		h := upd.handles()[p]
		if h == nil {
			continue
		}
		profile := user.EnsureProfile(p)
		wasVisible := profile.ShowOnWebsite
		handle := strings.TrimSpace(*h.Username)
		if domain.ChangeHandle(profile, handle, *h.ShowOnWebsite) || wasVisible != *h.ShowOnWebsite {
			changed = true
		}
	}

	for _, f := range []struct {
		dst **domain.PrivateField
		src *FieldUpdate
	}{
		{&user.Bio, upd.Bio},
		{&user.PhoneNumber, upd.PhoneNumber},
		{&user.DateOfBirth, upd.DateOfBirth},
		{&user.Github, upd.Github},
	} {
		if f.src == nil {
			continue
		}
		next := domain.PrivateField{Data: *f.src.Data, ShowOnWebsite: *f.src.ShowOnWebsite}
		if *f.dst == nil || **f.dst != next {
			*f.dst = &next
			changed = true
		}
	}

	if upd.Social != nil && user.Social != *upd.Social {
		user.Social = *upd.Social
		changed = true
	}
	if upd.Skills != nil && !slices.Equal(user.Skills, *upd.Skills) {
		user.Skills = *upd.Skills
		changed = true
	}
	if upd.Education != nil && !slices.Equal(user.Education, *upd.Education) {
		user.Education = *upd.Education
		changed = true
	}
	return changed
}

type PublicPlatform struct {
	Username              string  `json:"username"`
	Rating                *int    `json:"rating"`
	AttendedContestsCount *int    `json:"attendedContestsCount"`
	Badge                 *string `json:"badge"`
	TotalQuestions        *int    `json:"totalQuestions,omitempty"`
	EasyQuestions         *int    `json:"easyQuestions,omitempty"`
	MediumQuestions       *int    `json:"mediumQuestions,omitempty"`
	HardQuestions         *int    `json:"hardQuestions,omitempty"`
	FetchTime             int64   `json:"fetchTime"`
}

// PublicProfile is a user as shown to visitors: fields with showOnWebsite
// false are left out.
type PublicProfile struct {
	Username         string                             `json:"username"`
	Name             string                             `json:"name"`
	Picture          string                             `json:"picture"`
	DigitomizeRating int                                `json:"digitomize_rating"`
	Bio              *string                            `json:"bio,omitempty"`
	PhoneNumber      *string                            `json:"phoneNumber,omitempty"`
	DateOfBirth      *string                            `json:"dateOfBirth,omitempty"`
	Github           *string                            `json:"github,omitempty"`
	Skills           []string                           `json:"skills"`
	Education        []domain.Education                 `json:"education"`
	Social           domain.Social                      `json:"social"`
	Platforms        map[domain.Platform]PublicPlatform `json:"platforms"`
}

// GetPublicProfile refreshes stale platforms and returns the public view.
// A failed refresh still serves the cached data.
func (s *ProfileService) GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if refreshed, err := s.refresh.RefreshUserIfStale(ctx, user); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("serving cached profile")
	} else {
		user = refreshed
	}

	return publicView(user), nil
}

func publicView(u *domain.User) *PublicProfile {
	view := &PublicProfile{
		Username:         u.Username,
		Name:             u.Name,
		Picture:          u.Picture,
		DigitomizeRating: u.DigitomizeRating,
		Skills:           u.Skills,
		Education:        u.Education,
		Social:           u.Social,
		Platforms:        make(map[domain.Platform]PublicPlatform),
	}
	visible := func(f *domain.PrivateField) *string {
		if f == nil || !f.ShowOnWebsite {
			return nil
		}
		data := f.Data
		return &data
	}
	view.Bio = visible(u.Bio)
	view.PhoneNumber = visible(u.PhoneNumber)
	view.DateOfBirth = visible(u.DateOfBirth)
	view.Github = visible(u.Github)

	for _, p := range domain.ProfilePlatforms {
		profile := u.Profile(p)
		if profile == nil || profile.Username == "" || !profile.ShowOnWebsite {
			continue
		}
		view.Platforms[p] = PublicPlatform{
			Username:              profile.Username,
			Rating:                profile.Rating,
			AttendedContestsCount: profile.AttendedContestsCount,
			Badge:                 profile.Badge,
			TotalQuestions:        profile.TotalQuestions,
			EasyQuestions:         profile.EasyQuestions,
			MediumQuestions:       profile.MediumQuestions,
			HardQuestions:         profile.HardQuestions,
			FetchTime:             profile.FetchTime,
		}
	}
	return view
}
