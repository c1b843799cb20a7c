package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

type Order struct {
	ID       uint `gorm:"primaryKey"`
	GigID    uint `gorm:"index;not null"`
	BuyerID  uint `gorm:"index;not null"`
	SellerID uint `gorm:"index;not null"`

	Status string  `gorm:"not null;default:'pending'"`
	Amount float64 `gorm:"not null"`

	Gig Gig `gorm:"foreignKey:GigID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db: db,
	}
}

func (d *OrderDAO) Insert(ctx context.Context, order Order) (Order, error) {
	result := d.db.WithContext(ctx).Create(&order)
	if result.Error != nil {
		return Order{}, result.Error
	}

	return order, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, id uint) (Order, error) {
	var order Order

	result := d.db.WithContext(ctx).First(&order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

func (d *OrderDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (d *OrderDAO) CountBySellerAndStatus(ctx context.Context, sellerID uint, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Order{}).
		Where("seller_id = ? AND status = ?", sellerID, status).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
