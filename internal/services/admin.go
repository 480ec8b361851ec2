package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/requestdata"
	"github.com/soulcompass/soulcoach-backend/internal/types"
)

// DashboardStats is the admin overview aggregate.
type DashboardStats struct {
	TotalUsers        int64            `json:"total_users"`
	OnboardedUsers    int64            `json:"onboarded_users"`
	NewUsersThisWeek  int64            `json:"new_users_this_week"`
	TrackDistribution map[string]int64 `json:"track_distribution"`
	TotalDailyEntries int64            `json:"total_daily_entries"`
	TotalMeditations  int64            `json:"total_meditations"`
	TotalCustomTracks int64            `json:"total_custom_tracks"`
}

// AdminUser is the user row shape exposed to the admin listing; the
// password hash never leaves the service layer.
type AdminUser struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	FullName            string    `json:"full_name"`
	Role                string    `json:"role"`
	Track               string    `json:"track"`
	CurrentStage        int       `json:"current_stage"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
}

type AdminService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	ListUsers(ctx context.Context, search string) ([]AdminUser, error)
}

type adminService struct {
	log          *logger.Logger
	users        repos.UserRepo
	dailyEntries repos.DailyEntryRepo
	meditations  repos.MeditationRepo
	customTracks repos.CustomTrackRepo
	now          func() time.Time
}

func NewAdminService(
	log *logger.Logger,
	users repos.UserRepo,
	dailyEntries repos.DailyEntryRepo,
	meditations repos.MeditationRepo,
	customTracks repos.CustomTrackRepo,
) AdminService {
	return &adminService{
		log:          log.With("service", "AdminService"),
		users:        users,
		dailyEntries: dailyEntries,
		meditations:  meditations,
		customTracks: customTracks,
		now:          time.Now,
	}
}

func requireAdmin(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return ErrUnauthorized
	}
	if !rd.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// DashboardStats runs the independent aggregates concurrently; the first
// failure cancels the rest.
func (s *adminService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	weekAgo := s.now().UTC().AddDate(0, 0, -7)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.users.Count(gctx, nil)
		stats.TotalUsers = n
		return err
	})
	g.Go(func() error {
		n, err := s.users.CountOnboarded(gctx, nil)
		stats.OnboardedUsers = n
		return err
	})
	g.Go(func() error {
		n, err := s.users.CountCreatedSince(gctx, nil, weekAgo)
		stats.NewUsersThisWeek = n
		return err
	})
	g.Go(func() error {
		all, err := s.users.ListAll(gctx, nil)
		if err != nil {
			return err
		}
		dist := make(map[string]int64)
		for _, u := range all {
			track := u.Track
			if track == "" {
				track = "none"
			}
			dist[track]++
		}
		stats.TrackDistribution = dist
		return nil
	})
	g.Go(func() error {
		n, err := s.dailyEntries.Count(gctx, nil)
		stats.TotalDailyEntries = n
		return err
	})
	g.Go(func() error {
		n, err := s.meditations.Count(gctx, nil)
		stats.TotalMeditations = n
		return err
	})
	g.Go(func() error {
		n, err := s.customTracks.Count(gctx, nil)
		stats.TotalCustomTracks = n
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("failed to aggregate dashboard stats", "error", err)
		return nil, err
	}
	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context, search string) ([]AdminUser, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	all, err := s.users.ListAll(ctx, nil)
	if err != nil {
		s.log.Error("failed to list users", "error", err)
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		if search != "" && !matchesUserSearch(u, search) {
			continue
		}
		out = append(out, AdminUser{
			ID:                  u.ID.String(),
			Email:               u.Email,
			FullName:            u.FullName,
			Role:                u.Role,
			Track:               u.Track,
			CurrentStage:        u.CurrentStage,
			OnboardingCompleted: u.OnboardingCompleted,
			CreatedAt:           u.CreatedAt,
		})
	}
	return out, nil
}

func matchesUserSearch(u *types.User, search string) bool {
	return strings.Contains(strings.ToLower(u.Email), search) ||
		strings.Contains(strings.ToLower(u.FullName), search)
}
