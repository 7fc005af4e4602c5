package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"digitomize/internal/apperror"
	"digitomize/internal/domain"
	"digitomize/internal/leaderboard"
	"digitomize/internal/middleware"
	"digitomize/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Profiles interface {
	Register(ctx context.Context, in service.RegisterInput) (*domain.User, error)
	UpdateProfile(ctx context.Context, username string, upd service.ProfileUpdate) (*domain.User, error)
	GetPublicProfile(ctx context.Context, username string) (*service.PublicProfile, error)
}

type Rankings interface {
	GetLeaderboard(ctx context.Context, filter domain.Platform, page int) (*leaderboard.Page, error)
	GetUserRank(ctx context.Context, username string, filter domain.Platform) (*leaderboard.Position, error)
}

type Catalog interface {
	UpcomingContests(ctx context.Context, host string) ([]domain.Contest, error)
	Contest(ctx context.Context, host, vanity string) (*domain.Contest, error)
	UpcomingHackathons(ctx context.Context) ([]domain.Hackathon, error)
}

type Server struct {
	profiles Profiles
	rankings Rankings
	catalog  Catalog
	logger   zerolog.Logger
}

func New(profiles Profiles, rankings Rankings, catalog Catalog, logger zerolog.Logger) *Server {
	return &Server{profiles: profiles, rankings: rankings, catalog: catalog, logger: logger}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.register)
		r.Get("/{username}", s.getUser)
		r.Put("/{username}", s.updateUser)
	})

	r.Get("/leaderboard", s.getLeaderboard)

	r.Route("/contests", func(r chi.Router) {
		r.Get("/", s.listContests)
		r.Get("/{host}/{vanity}", s.getContest)
	})
	r.Get("/hackathons", s.listHackathons)

	return r
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, r, apperror.ValidationFailed("body", "Invalid JSON body"))
		return
	}
	user, err := s.profiles.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]string{"id": user.ID, "username": user.Username})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.GetPublicProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var upd service.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, r, apperror.ValidationFailed("body", "Invalid JSON body"))
		return
	}
	user, err := s.profiles.UpdateProfile(r.Context(), chi.URLParam(r, "username"), upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"username":          user.Username,
		"digitomize_rating": user.DigitomizeRating,
		"updates_today":     user.UpdatesCount,
	})
}

// getLeaderboard serves a page, or the caller's rank when username is set.
func (s *Server) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter domain.Platform
	if raw := q.Get("platform"); raw != "" {
		p, ok := domain.ParsePlatform(raw)
		if !ok {
			writeError(w, r, apperror.ValidationFailed("platform", "Unknown platform "+raw))
			return
		}
		filter = p
	}

	if username := q.Get("username"); username != "" {
		pos, err := s.rankings.GetUserRank(r.Context(), username, filter)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, pos)
		return
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, apperror.ValidationFailed("page", "page must be a number"))
			return
		}
		page = n
	}

	result, err := s.rankings.GetLeaderboard(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) listContests(w http.ResponseWriter, r *http.Request) {
	contests, err := s.catalog.UpcomingContests(r.Context(), r.URL.Query().Get("host"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"total": len(contests), "results": contests})
}

func (s *Server) getContest(w http.ResponseWriter, r *http.Request) {
	contest, err := s.catalog.Contest(r.Context(), chi.URLParam(r, "host"), chi.URLParam(r, "vanity"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, contest)
}

func (s *Server) listHackathons(w http.ResponseWriter, r *http.Request) {
	hackathons, err := s.catalog.UpcomingHackathons(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"total": len(hackathons), "results": hackathons})
}
