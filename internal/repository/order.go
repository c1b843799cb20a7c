package repository

import (
	"context"
	"fmt"

	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/repository/dao"
)

var (
	ErrOrderNotFound = dao.ErrOrderNotFound
)

type OrderDAO interface {
	Insert(ctx context.Context, order dao.Order) (dao.Order, error)
	FindByID(ctx context.Context, id uint) (dao.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	CountBySellerAndStatus(ctx context.Context, sellerID uint, status string) (int64, error)
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	created, err := r.dao.Insert(ctx, dao.Order{
		GigID:    order.GigID,
		BuyerID:  order.BuyerID,
		SellerID: order.SellerID,
		Status:   string(domain.OrderPending),
		Amount:   order.Amount,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *OrderRepository) CountDeliveredBySeller(ctx context.Context, sellerID uint) (int64, error) {
	count, err := r.dao.CountBySellerAndStatus(ctx, sellerID, string(domain.OrderDelivered))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountBySellerAndStatus -> %w", err)
	}

	return count, nil
}

func (r *OrderRepository) daoToDomain(o dao.Order) domain.Order {
	return domain.Order{
		ID:        o.ID,
		GigID:     o.GigID,
		BuyerID:   o.BuyerID,
		SellerID:  o.SellerID,
		Status:    domain.OrderStatus(o.Status),
		Amount:    o.Amount,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
