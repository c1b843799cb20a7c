package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/repository"
	"github.com/campusgigs/campusgigs-api/internal/storage"
)

var (
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrProfileNotFound = repository.ErrProfileNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindProfile(ctx context.Context, userID uint) (domain.Profile, error)
	FindSendersByIDs(ctx context.Context, userIDs []uint) (map[uint]domain.Sender, error)
	UpdateProfile(ctx context.Context, userID uint, columns map[string]interface{}) error
	MutatePortfolio(ctx context.Context, userID uint, fn func(items []domain.PortfolioItem) []domain.PortfolioItem) error
}

type UserGigRepository interface {
	FindByUserID(ctx context.Context, userID uint) ([]domain.Gig, error)
	FindRatingsByGigIDs(ctx context.Context, gigIDs []uint, limit int) ([]domain.Rating, error)
}

type UserOrderRepository interface {
	CountDeliveredBySeller(ctx context.Context, sellerID uint) (int64, error)
}

type ProfileStore interface {
	Upload(ctx context.Context, bucket, path string, r io.Reader) error
	Remove(ctx context.Context, bucket, path string) error
	PublicURL(bucket, path string) string
}

// ProfileUpdate carries a partial profile change; nil fields stay untouched.
type ProfileUpdate struct {
	Username               *string
	Bio                    *string
	AvatarURL              *string
	ProfessionalTitle      *string
	Location               *string
	AvailabilityHours      *string
	Skills                 *[]string
	Tools                  *[]string
	ResponseTime           *string
	PreferredCommunication *[]string
	EducationProgram       *string
	EducationInstitution   *string
	EducationYear          *int
	EducationLevel         *string
	Certifications         *[]domain.Certification
}

type UserService struct {
	repo      UserRepository
	gigRepo   UserGigRepository
	orderRepo UserOrderRepository
	store     ProfileStore
}

func NewUserService(repo UserRepository, gigRepo UserGigRepository, orderRepo UserOrderRepository, store ProfileStore) *UserService {
	return &UserService{
		repo:      repo,
		gigRepo:   gigRepo,
		orderRepo: orderRepo,
		store:     store,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (domain.Profile, error) {
	profile, err := s.repo.FindProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.FindProfile -> %w", err)
	}

	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (domain.Profile, error) {
	columns := map[string]interface{}{}
	if update.Username != nil {
		columns["username"] = *update.Username
	}
	if update.Bio != nil {
		columns["bio"] = update.Bio
	}
	if update.AvatarURL != nil {
		columns["avatar_url"] = *update.AvatarURL
	}
	if update.ProfessionalTitle != nil {
		columns["professional_title"] = update.ProfessionalTitle
	}
	if update.Location != nil {
		columns["location"] = update.Location
	}
	if update.AvailabilityHours != nil {
		columns["availability_hours"] = update.AvailabilityHours
	}
	if update.Skills != nil {
		columns["skills"] = *update.Skills
	}
	if update.Tools != nil {
		columns["tools"] = *update.Tools
	}
	if update.ResponseTime != nil {
		columns["response_time"] = update.ResponseTime
	}
	if update.PreferredCommunication != nil {
		columns["preferred_communication"] = *update.PreferredCommunication
	}
	if update.EducationProgram != nil {
		columns["education_program"] = update.EducationProgram
	}
	if update.EducationInstitution != nil {
		columns["education_institution"] = update.EducationInstitution
	}
	if update.EducationYear != nil {
		columns["education_year"] = update.EducationYear
	}
	if update.EducationLevel != nil {
		columns["education_level"] = update.EducationLevel
	}
	if update.Certifications != nil {
		columns["certifications"] = *update.Certifications
	}

	if len(columns) > 0 {
		if err := s.repo.UpdateProfile(ctx, userID, columns); err != nil {
			return domain.Profile{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
		}
	}

	return s.GetProfile(ctx, userID)
}

// UploadAvatar replaces the user's avatar in the public avatars bucket and
// points the profile at the new cache-busted URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename string, r io.Reader) (string, error) {
	avatarPath := fmt.Sprintf("%d/avatar%s", userID, strings.ToLower(path.Ext(filename)))

	// Best effort; there may be no previous avatar.
	_ = s.store.Remove(ctx, storage.BucketAvatars, avatarPath)

	if err := s.store.Upload(ctx, storage.BucketAvatars, avatarPath, r); err != nil {
		return "", fmt.Errorf("s.store.Upload -> %w", err)
	}

	url := s.store.PublicURL(storage.BucketAvatars, avatarPath)
	if err := s.repo.UpdateProfile(ctx, userID, map[string]interface{}{"avatar_url": url}); err != nil {
		return "", fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return url, nil
}

type PortfolioItemInput struct {
	Title        string
	Description  string
	FileType     string // "image", "pdf" or "link"
	ExternalLink string
	Filename     string
	File         io.Reader
}

// AddPortfolioItem uploads the file (unless the item is a plain link) and
// appends the item to the profile's portfolio.
func (s *UserService) AddPortfolioItem(ctx context.Context, userID uint, input PortfolioItemInput) (domain.PortfolioItem, error) {
	item := domain.PortfolioItem{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		FileType:     input.FileType,
		ExternalLink: input.ExternalLink,
		CreatedAt:    time.Now(),
	}

	if input.File != nil {
		filePath := fmt.Sprintf("%d/%d%s", userID, time.Now().UnixMilli(), strings.ToLower(path.Ext(input.Filename)))
		if err := s.store.Upload(ctx, storage.BucketPortfolio, filePath, input.File); err != nil {
			return domain.PortfolioItem{}, fmt.Errorf("s.store.Upload -> %w", err)
		}
		item.FileURL = s.store.PublicURL(storage.BucketPortfolio, filePath)
	} else {
		item.FileURL = input.ExternalLink
	}

	err := s.repo.MutatePortfolio(ctx, userID, func(items []domain.PortfolioItem) []domain.PortfolioItem {
		return append(items, item)
	})
	if err != nil {
		return domain.PortfolioItem{}, fmt.Errorf("s.repo.MutatePortfolio -> %w", err)
	}

	return item, nil
}

// RemovePortfolioItem drops the item with the given id. Removing an id that
// is already gone is a no-op.
func (s *UserService) RemovePortfolioItem(ctx context.Context, userID uint, itemID string) error {
	err := s.repo.MutatePortfolio(ctx, userID, func(items []domain.PortfolioItem) []domain.PortfolioItem {
		kept := make([]domain.PortfolioItem, 0, len(items))
		for _, item := range items {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}

		return kept
	})
	if err != nil {
		return fmt.Errorf("s.repo.MutatePortfolio -> %w", err)
	}

	return nil
}

// GetStats aggregates a freelancer's delivered order count and the
// review-weighted average rating over all their gigs.
func (s *UserService) GetStats(ctx context.Context, userID uint) (domain.FreelancerStats, error) {
	completed, err := s.orderRepo.CountDeliveredBySeller(ctx, userID)
	if err != nil {
		return domain.FreelancerStats{}, fmt.Errorf("s.orderRepo.CountDeliveredBySeller -> %w", err)
	}

	gigs, err := s.gigRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.FreelancerStats{}, fmt.Errorf("s.gigRepo.FindByUserID -> %w", err)
	}

	var (
		totalRating  float64
		totalReviews int
	)
	for _, gig := range gigs {
		if gig.AverageRating > 0 && gig.TotalReviews > 0 {
			totalRating += gig.AverageRating * float64(gig.TotalReviews)
			totalReviews += gig.TotalReviews
		}
	}

	stats := domain.FreelancerStats{
		TotalReviews:    totalReviews,
		CompletedOrders: int(completed),
	}
	if totalReviews > 0 {
		stats.AverageRating = totalRating / float64(totalReviews)
	}

	return stats, nil
}

// GetReviews returns the freelancer's latest reviews across all their gigs,
// decorated with the reviewer's display profile.
func (s *UserService) GetReviews(ctx context.Context, userID uint) ([]domain.Rating, error) {
	gigs, err := s.gigRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.gigRepo.FindByUserID -> %w", err)
	}
	if len(gigs) == 0 {
		return []domain.Rating{}, nil
	}

	gigIDs := make([]uint, len(gigs))
	for i, gig := range gigs {
		gigIDs[i] = gig.ID
	}

	ratings, err := s.gigRepo.FindRatingsByGigIDs(ctx, gigIDs, 10)
	if err != nil {
		return nil, fmt.Errorf("s.gigRepo.FindRatingsByGigIDs -> %w", err)
	}

	reviewerIDs := distinctIDs(ratings, func(r domain.Rating) uint { return r.ReviewerID })
	senders, err := s.repo.FindSendersByIDs(ctx, reviewerIDs)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindSendersByIDs -> %w", err)
	}

	for i := range ratings {
		sender, ok := senders[ratings[i].ReviewerID]
		if !ok {
			sender = domain.UnknownSender
		}
		ratings[i].Reviewer = sender
	}

	return ratings, nil
}

func distinctIDs[T any](items []T, id func(T) uint) []uint {
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if key := id(item); !seen[key] {
			seen[key] = true
			ids = append(ids, key)
		}
	}

	return ids
}
