package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUsernameExists  = dao.ErrUsernameExists
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrProfileNotFound = dao.ErrProfileNotFound
)

type UserDAO interface {
	InsertWithProfile(ctx context.Context, user dao.User, profile dao.Profile) (dao.User, dao.Profile, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindProfileByUserID(ctx context.Context, userID uint) (dao.Profile, error)
	FindProfilesByUserIDs(ctx context.Context, userIDs []uint) ([]dao.Profile, error)
	UpdateProfileColumns(ctx context.Context, userID uint, columns map[string]interface{}) error
	LockProfileForUpdate(tx *gorm.DB, userID uint) (dao.Profile, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, _, err := r.dao.InsertWithProfile(ctx,
		dao.User{
			Email:    user.Email,
			Password: user.Password,
		},
		dao.Profile{
			Username: user.Username,
		},
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.InsertWithProfile -> %w", err)
	}

	result := r.daoToDomain(created)
	result.Username = user.Username

	return result, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	user := r.daoToDomain(found)
	if profile, err := r.dao.FindProfileByUserID(ctx, id); err == nil {
		user.Username = profile.Username
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	user := r.daoToDomain(found)
	if profile, err := r.dao.FindProfileByUserID(ctx, found.ID); err == nil {
		user.Username = profile.Username
	}

	return user, nil
}

func (r *UserRepository) FindProfile(ctx context.Context, userID uint) (domain.Profile, error) {
	found, err := r.dao.FindProfileByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindProfileByUserID -> %w", err)
	}

	return r.profileDaoToDomain(found), nil
}

// FindSendersByIDs loads display projections for the given user ids. Ids with
// no profile row are absent from the returned map.
func (r *UserRepository) FindSendersByIDs(ctx context.Context, userIDs []uint) (map[uint]domain.Sender, error) {
	profiles, err := r.dao.FindProfilesByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindProfilesByUserIDs -> %w", err)
	}

	senders := make(map[uint]domain.Sender, len(profiles))
	for _, p := range profiles {
		senders[p.UserID] = domain.Sender{
			ID:        p.UserID,
			Username:  p.Username,
			AvatarURL: p.AvatarURL,
		}
	}

	return senders, nil
}

// UpdateProfile applies a partial update; columns maps snake_case column
// names to new values, with slice values serialized into jsonb.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID uint, columns map[string]interface{}) error {
	encoded := make(map[string]interface{}, len(columns))
	for name, value := range columns {
		switch value.(type) {
		case []string, []domain.Certification, []domain.PortfolioItem:
			data, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("json.Marshal(%v) -> %w", name, err)
			}
			encoded[name] = data
		default:
			encoded[name] = value
		}
	}

	if err := r.dao.UpdateProfileColumns(ctx, userID, encoded); err != nil {
		return fmt.Errorf("r.dao.UpdateProfileColumns -> %w", err)
	}

	return nil
}

// MutatePortfolio runs fn against the current portfolio items under a row
// lock and writes the result back.
func (r *UserRepository) MutatePortfolio(ctx context.Context, userID uint, fn func(items []domain.PortfolioItem) []domain.PortfolioItem) error {
	err := r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		profile, err := r.dao.LockProfileForUpdate(tx, userID)
		if err != nil {
			return fmt.Errorf("r.dao.LockProfileForUpdate -> %w", err)
		}

		items := decodeJSONSlice[domain.PortfolioItem](profile.PortfolioItems)
		updated, err := json.Marshal(fn(items))
		if err != nil {
			return fmt.Errorf("json.Marshal -> %w", err)
		}

		result := tx.Model(&dao.Profile{}).
			Where("user_id = ?", userID).
			Update("portfolio_items", updated)
		if result.Error != nil {
			return result.Error
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) profileDaoToDomain(p dao.Profile) domain.Profile {
	return domain.Profile{
		UserID:                 p.UserID,
		Username:               p.Username,
		AvatarURL:              p.AvatarURL,
		Bio:                    p.Bio,
		ProfessionalTitle:      p.ProfessionalTitle,
		Location:               p.Location,
		AvailabilityHours:      p.AvailabilityHours,
		ResponseTime:           p.ResponseTime,
		EducationProgram:       p.EducationProgram,
		EducationInstitution:   p.EducationInstitution,
		EducationYear:          p.EducationYear,
		EducationLevel:         p.EducationLevel,
		Skills:                 decodeJSONSlice[string](p.Skills),
		Tools:                  decodeJSONSlice[string](p.Tools),
		PreferredCommunication: decodeJSONSlice[string](p.PreferredCommunication),
		Certifications:         decodeJSONSlice[domain.Certification](p.Certifications),
		PortfolioItems:         decodeJSONSlice[domain.PortfolioItem](p.PortfolioItems),
		IsIdentityVerified:     p.IsIdentityVerified,
		TotalEarnings:          p.TotalEarnings,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

// decodeJSONSlice tolerates NULL/empty/corrupt jsonb by returning an empty
// slice rather than nil or an error.
func decodeJSONSlice[T any](data []byte) []T {
	out := []T{}
	if len(data) == 0 {
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return []T{}
	}

	return out
}
