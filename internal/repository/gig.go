package repository

import (
	"context"
	"fmt"

	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/repository/dao"
)

var (
	ErrGigNotFound = dao.ErrGigNotFound
)

type GigDAO interface {
	Insert(ctx context.Context, gig dao.Gig) (dao.Gig, error)
	FindByID(ctx context.Context, id uint) (dao.Gig, error)
	FindActive(ctx context.Context, category, search string) ([]dao.Gig, error)
	FindActiveByUserID(ctx context.Context, userID uint) ([]dao.Gig, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Gig, error)
	FindRatingsByGigIDs(ctx context.Context, gigIDs []uint, limit int) ([]dao.Rating, error)
}

type GigRepository struct {
	dao GigDAO
}

func NewGigRepository(dao GigDAO) *GigRepository {
	return &GigRepository{
		dao: dao,
	}
}

func (r *GigRepository) Create(ctx context.Context, gig domain.Gig) (domain.Gig, error) {
	created, err := r.dao.Insert(ctx, dao.Gig{
		UserID:       gig.UserID,
		Title:        gig.Title,
		Description:  gig.Description,
		Category:     gig.Category,
		Price:        gig.Price,
		DeliveryDays: gig.DeliveryDays,
		ImageURL:     gig.ImageURL,
		IsActive:     true,
	})
	if err != nil {
		return domain.Gig{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *GigRepository) FindByID(ctx context.Context, id uint) (domain.Gig, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Gig{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *GigRepository) FindActive(ctx context.Context, category, search string) ([]domain.Gig, error) {
	found, err := r.dao.FindActive(ctx, category, search)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActive -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *GigRepository) FindActiveByUserID(ctx context.Context, userID uint) ([]domain.Gig, error) {
	found, err := r.dao.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveByUserID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *GigRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Gig, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *GigRepository) FindRatingsByGigIDs(ctx context.Context, gigIDs []uint, limit int) ([]domain.Rating, error) {
	found, err := r.dao.FindRatingsByGigIDs(ctx, gigIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRatingsByGigIDs -> %w", err)
	}

	ratings := make([]domain.Rating, len(found))
	for i, rating := range found {
		ratings[i] = domain.Rating{
			ID:         rating.ID,
			GigID:      rating.GigID,
			ReviewerID: rating.ReviewerID,
			Rating:     rating.Rating,
			Comment:    rating.Comment,
			CreatedAt:  rating.CreatedAt,
			GigTitle:   rating.Gig.Title,
		}
	}

	return ratings, nil
}

func (r *GigRepository) daoToDomain(g dao.Gig) domain.Gig {
	return domain.Gig{
		ID:            g.ID,
		UserID:        g.UserID,
		Title:         g.Title,
		Description:   g.Description,
		Category:      g.Category,
		Price:         g.Price,
		DeliveryDays:  g.DeliveryDays,
		ImageURL:      g.ImageURL,
		IsActive:      g.IsActive,
		AverageRating: g.AverageRating,
		TotalReviews:  g.TotalReviews,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

func (r *GigRepository) daosToDomain(daoGigs []dao.Gig) []domain.Gig {
	gigs := make([]domain.Gig, len(daoGigs))
	for i, g := range daoGigs {
		gigs[i] = r.daoToDomain(g)
	}

	return gigs
}
