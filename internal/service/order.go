package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/repository"
)

var (
	ErrOrderNotFound           = repository.ErrOrderNotFound
	ErrCannotOrderOwnGig       = errors.New("cannot order your own gig")
	ErrGigInactive             = errors.New("gig is not active")
	ErrNotOrderParticipant     = errors.New("user is not a participant of this order")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error
}

type OrderGigRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Gig, error)
}

type OrderEvents interface {
	OrderCreated(ctx context.Context, order domain.Order) error
}

type OrderService struct {
	repo    OrderRepository
	gigRepo OrderGigRepository
	events  OrderEvents
}

func NewOrderService(repo OrderRepository, gigRepo OrderGigRepository, events OrderEvents) *OrderService {
	return &OrderService{
		repo:    repo,
		gigRepo: gigRepo,
		events:  events,
	}
}

// CreateOrder opens a pending order for the gig, with the caller as buyer and
// the gig owner as seller.
func (s *OrderService) CreateOrder(ctx context.Context, buyerID, gigID uint) (domain.Order, error) {
	gig, err := s.gigRepo.FindByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			return domain.Order{}, ErrGigNotFound
		}

		return domain.Order{}, fmt.Errorf("s.gigRepo.FindByID -> %w", err)
	}

	if !gig.IsActive {
		return domain.Order{}, ErrGigInactive
	}
	if gig.UserID == buyerID {
		return domain.Order{}, ErrCannotOrderOwnGig
	}

	order, err := s.repo.Create(ctx, domain.Order{
		GigID:    gig.ID,
		BuyerID:  buyerID,
		SellerID: gig.UserID,
		Amount:   gig.Price,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err = s.events.OrderCreated(ctx, order); err != nil {
		zap.L().Warn("failed to publish order.created event",
			zap.Uint("order_id", order.ID),
			zap.Error(err),
		)
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID, userID uint) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !order.IsParticipant(userID) {
		return domain.Order{}, ErrNotOrderParticipant
	}

	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID, userID uint, to domain.OrderStatus) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !order.IsParticipant(userID) {
		return domain.Order{}, ErrNotOrderParticipant
	}
	if !order.CanTransition(to) {
		return domain.Order{}, ErrInvalidStatusTransition
	}

	if err = s.repo.UpdateStatus(ctx, orderID, to); err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	order.Status = to

	return order, nil
}
