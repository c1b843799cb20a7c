package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrGigNotFound = errors.New("gig not found")
)

type Gig struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index;not null"`

	Title        string `gorm:"not null"`
	Description  string `gorm:"not null"`
	Category     string `gorm:"index;not null"`
	Price        float64
	DeliveryDays int
	ImageURL     *string

	IsActive      bool    `gorm:"not null;default:true"`
	AverageRating float64 `gorm:"not null;default:0"`
	TotalReviews  int     `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Rating struct {
	ID         uint `gorm:"primaryKey"`
	GigID      uint `gorm:"index;not null"`
	ReviewerID uint `gorm:"not null"`

	Rating  int    `gorm:"not null"`
	Comment string

	Gig Gig `gorm:"foreignKey:GigID"`

	CreatedAt time.Time `gorm:"not null"`
}

type GigDAO struct {
	db *gorm.DB
}

func NewGigDAO(db *gorm.DB) *GigDAO {
	return &GigDAO{
		db: db,
	}
}

func (d *GigDAO) Insert(ctx context.Context, gig Gig) (Gig, error) {
	result := d.db.WithContext(ctx).Create(&gig)
	if result.Error != nil {
		return Gig{}, result.Error
	}

	return gig, nil
}

func (d *GigDAO) FindByID(ctx context.Context, id uint) (Gig, error) {
	var gig Gig

	result := d.db.WithContext(ctx).First(&gig, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Gig{}, ErrGigNotFound
		}

		return Gig{}, result.Error
	}

	return gig, nil
}

// FindActive lists active gigs, newest first, optionally filtered by category
// and a case-insensitive search over title and description.
func (d *GigDAO) FindActive(ctx context.Context, category, search string) ([]Gig, error) {
	var gigs []Gig

	query := d.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	result := query.Order("created_at DESC").Find(&gigs)
	if result.Error != nil {
		return nil, result.Error
	}

	return gigs, nil
}

func (d *GigDAO) FindActiveByUserID(ctx context.Context, userID uint) ([]Gig, error) {
	var gigs []Gig

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&gigs)
	if result.Error != nil {
		return nil, result.Error
	}

	return gigs, nil
}

func (d *GigDAO) FindByUserID(ctx context.Context, userID uint) ([]Gig, error) {
	var gigs []Gig

	result := d.db.WithContext(ctx).Where("user_id = ?", userID).Find(&gigs)
	if result.Error != nil {
		return nil, result.Error
	}

	return gigs, nil
}

// FindRatingsByGigIDs returns the latest ratings across the given gigs,
// with the gig preloaded for its title.
func (d *GigDAO) FindRatingsByGigIDs(ctx context.Context, gigIDs []uint, limit int) ([]Rating, error) {
	var ratings []Rating

	if len(gigIDs) == 0 {
		return ratings, nil
	}

	result := d.db.WithContext(ctx).
		Preload("Gig").
		Where("gig_id IN ?", gigIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&ratings)
	if result.Error != nil {
		return nil, result.Error
	}

	return ratings, nil
}
