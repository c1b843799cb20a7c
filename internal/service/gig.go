package service

import (
	"context"
	"fmt"

	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/repository"
)

var (
	ErrGigNotFound = repository.ErrGigNotFound
)

type GigRepository interface {
	Create(ctx context.Context, gig domain.Gig) (domain.Gig, error)
	FindByID(ctx context.Context, id uint) (domain.Gig, error)
	FindActive(ctx context.Context, category, search string) ([]domain.Gig, error)
	FindActiveByUserID(ctx context.Context, userID uint) ([]domain.Gig, error)
}

type GigService struct {
	repo GigRepository
}

func NewGigService(repo GigRepository) *GigService {
	return &GigService{
		repo: repo,
	}
}

// ListGigs returns active gigs, newest first. Both filters are optional.
func (s *GigService) ListGigs(ctx context.Context, category, search string) ([]domain.Gig, error) {
	gigs, err := s.repo.FindActive(ctx, category, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActive -> %w", err)
	}

	return gigs, nil
}

func (s *GigService) GetGig(ctx context.Context, id uint) (domain.Gig, error) {
	gig, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Gig{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return gig, nil
}

func (s *GigService) CreateGig(ctx context.Context, gig domain.Gig) (domain.Gig, error) {
	created, err := s.repo.Create(ctx, gig)
	if err != nil {
		return domain.Gig{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *GigService) ListUserGigs(ctx context.Context, userID uint) ([]domain.Gig, error) {
	gigs, err := s.repo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActiveByUserID -> %w", err)
	}

	return gigs, nil
}
