package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

type AdminService struct {
	users      ports.UserRepository
	challenges ports.ChallengeRepository
	log        zerolog.Logger
}

func NewAdminService(users ports.UserRepository, challenges ports.ChallengeRepository, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, challenges: challenges, log: log}
}

func (s *AdminService) Stats(ctx context.Context) (*ports.Stats, error) {
	totalChallenges, err := s.challenges.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.Stats{TotalChallenges: totalChallenges, TotalUsers: totalUsers}, nil
}

// Promote grants the ADMIN role to the user registered with email.
func (s *AdminService) Promote(ctx context.Context, email string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError("email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return user, nil
	}

	updated, err := s.users.UpdateRole(ctx, user.ID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", updated.ID).Msg("user promoted to admin")
	return updated, nil
}
