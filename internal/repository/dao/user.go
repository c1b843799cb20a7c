package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUsernameExists  = errors.New("username already taken")
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Profile shares the user's primary key. The jsonb columns hold JSON arrays
// serialized by the repository layer.
type Profile struct {
	UserID uint `gorm:"primaryKey"`

	Username  string `gorm:"unique;not null"`
	AvatarURL *string
	Bio       *string

	ProfessionalTitle *string
	Location          *string
	AvailabilityHours *string
	ResponseTime      *string

	EducationProgram     *string
	EducationInstitution *string
	EducationYear        *int
	EducationLevel       *string

	Skills                 []byte `gorm:"type:jsonb;default:'[]'"`
	Tools                  []byte `gorm:"type:jsonb;default:'[]'"`
	PreferredCommunication []byte `gorm:"type:jsonb;default:'[]'"`
	Certifications         []byte `gorm:"type:jsonb;default:'[]'"`
	PortfolioItems         []byte `gorm:"type:jsonb;default:'[]'"`

	IsIdentityVerified bool    `gorm:"not null;default:false"`
	TotalEarnings      float64 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// InsertWithProfile creates the user row and its profile row in one
// transaction, so a signup never leaves a user without a profile.
func (d *UserDAO) InsertWithProfile(ctx context.Context, user User, profile Profile) (User, Profile, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&user); result.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(result.Error, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				strings.Contains(pgErr.Message, `unique constraint "uni_users_email"`) {
				return ErrUserEmailExists
			}

			return result.Error
		}

		profile.UserID = user.ID
		if result := tx.Create(&profile); result.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(result.Error, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				strings.Contains(pgErr.Message, `unique constraint "uni_profiles_username"`) {
				return ErrUsernameExists
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return User{}, Profile{}, err
	}

	return user, profile, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindProfileByUserID(ctx context.Context, userID uint) (Profile, error) {
	var profile Profile

	result := d.db.WithContext(ctx).First(&profile, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Profile{}, ErrProfileNotFound
		}

		return Profile{}, result.Error
	}

	return profile, nil
}

// FindProfilesByUserIDs loads display profiles for the given ids in one query.
// Missing ids are simply absent from the result.
func (d *UserDAO) FindProfilesByUserIDs(ctx context.Context, userIDs []uint) ([]Profile, error) {
	var profiles []Profile

	if len(userIDs) == 0 {
		return profiles, nil
	}

	result := d.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}

	return profiles, nil
}

// UpdateProfileColumns applies a partial update. Only the provided columns
// change, plus updated_at.
func (d *UserDAO) UpdateProfileColumns(ctx context.Context, userID uint, columns map[string]interface{}) error {
	columns["updated_at"] = time.Now()

	result := d.db.WithContext(ctx).
		Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(columns)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrUsernameExists
		}

		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// LockProfileForUpdate reads the profile row with FOR UPDATE inside tx, so
// read-modify-write cycles on the jsonb columns don't race.
func (d *UserDAO) LockProfileForUpdate(tx *gorm.DB, userID uint) (Profile, error) {
	var profile Profile

	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&profile, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Profile{}, ErrProfileNotFound
		}

		return Profile{}, result.Error
	}

	return profile, nil
}

func (d *UserDAO) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.db.WithContext(ctx).Transaction(fn)
}
