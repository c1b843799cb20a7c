package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/repository"
)

type fakeOrderRepository struct {
	CreateFn       func(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByIDFn     func(ctx context.Context, id uint) (domain.Order, error)
	UpdateStatusFn func(ctx context.Context, id uint, status domain.OrderStatus) error
}

func (f *fakeOrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	return f.CreateFn(ctx, order)
}

func (f *fakeOrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeOrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	return f.UpdateStatusFn(ctx, id, status)
}

type fakeGigFinder struct {
	FindByIDFn func(ctx context.Context, id uint) (domain.Gig, error)
}

func (f *fakeGigFinder) FindByID(ctx context.Context, id uint) (domain.Gig, error) {
	return f.FindByIDFn(ctx, id)
}

type fakeOrderEvents struct {
	created []domain.Order
}

func (f *fakeOrderEvents) OrderCreated(ctx context.Context, order domain.Order) error {
	f.created = append(f.created, order)
	return nil
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	activeGig := func(ctx context.Context, id uint) (domain.Gig, error) {
		return domain.Gig{ID: id, UserID: 2, Price: 49.99, IsActive: true}, nil
	}

	t.Run("opens a pending order at the gig's price", func(t *testing.T) {
		repo := &fakeOrderRepository{
			CreateFn: func(ctx context.Context, order domain.Order) (domain.Order, error) {
				order.ID = 5
				order.Status = domain.OrderPending
				return order, nil
			},
		}
		events := &fakeOrderEvents{}
		svc := NewOrderService(repo, &fakeGigFinder{FindByIDFn: activeGig}, events)

		order, err := svc.CreateOrder(ctx, 1, 9)

		require.NoError(t, err)
		assert.Equal(t, uint(9), order.GigID)
		assert.Equal(t, uint(1), order.BuyerID)
		assert.Equal(t, uint(2), order.SellerID)
		assert.Equal(t, 49.99, order.Amount)
		assert.Equal(t, domain.OrderPending, order.Status)
		assert.Len(t, events.created, 1)
	})

	t.Run("rejects ordering your own gig", func(t *testing.T) {
		svc := NewOrderService(&fakeOrderRepository{}, &fakeGigFinder{FindByIDFn: activeGig}, &fakeOrderEvents{})

		_, err := svc.CreateOrder(ctx, 2, 9)

		assert.ErrorIs(t, err, ErrCannotOrderOwnGig)
	})

	t.Run("rejects an inactive gig", func(t *testing.T) {
		gigRepo := &fakeGigFinder{
			FindByIDFn: func(ctx context.Context, id uint) (domain.Gig, error) {
				return domain.Gig{ID: id, UserID: 2, IsActive: false}, nil
			},
		}
		svc := NewOrderService(&fakeOrderRepository{}, gigRepo, &fakeOrderEvents{})

		_, err := svc.CreateOrder(ctx, 1, 9)

		assert.ErrorIs(t, err, ErrGigInactive)
	})

	t.Run("missing gig surfaces as not found", func(t *testing.T) {
		gigRepo := &fakeGigFinder{
			FindByIDFn: func(ctx context.Context, id uint) (domain.Gig, error) {
				return domain.Gig{}, repository.ErrGigNotFound
			},
		}
		svc := NewOrderService(&fakeOrderRepository{}, gigRepo, &fakeOrderEvents{})

		_, err := svc.CreateOrder(ctx, 1, 9)

		assert.ErrorIs(t, err, ErrGigNotFound)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	orderWithStatus := func(status domain.OrderStatus) func(ctx context.Context, id uint) (domain.Order, error) {
		return func(ctx context.Context, id uint) (domain.Order, error) {
			return domain.Order{ID: id, BuyerID: 1, SellerID: 2, Status: status}, nil
		}
	}

	noopUpdate := func(ctx context.Context, id uint, status domain.OrderStatus) error {
		return nil
	}

	tests := []struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		wantErr error
	}{
		{"pending to paid", domain.OrderPending, domain.OrderPaid, nil},
		{"pending to cancelled", domain.OrderPending, domain.OrderCancelled, nil},
		{"paid to delivered", domain.OrderPaid, domain.OrderDelivered, nil},
		{"paid to cancelled", domain.OrderPaid, domain.OrderCancelled, nil},
		{"pending straight to delivered", domain.OrderPending, domain.OrderDelivered, ErrInvalidStatusTransition},
		{"delivered is terminal", domain.OrderDelivered, domain.OrderCancelled, ErrInvalidStatusTransition},
		{"cancelled is terminal", domain.OrderCancelled, domain.OrderPaid, ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeOrderRepository{
				FindByIDFn:     orderWithStatus(tt.from),
				UpdateStatusFn: noopUpdate,
			}
			svc := NewOrderService(repo, &fakeGigFinder{}, &fakeOrderEvents{})

			order, err := svc.UpdateStatus(ctx, 5, 1, tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, order.Status)
		})
	}

	t.Run("rejects a non-participant", func(t *testing.T) {
		repo := &fakeOrderRepository{FindByIDFn: orderWithStatus(domain.OrderPending)}
		svc := NewOrderService(repo, &fakeGigFinder{}, &fakeOrderEvents{})

		_, err := svc.UpdateStatus(ctx, 5, 99, domain.OrderPaid)

		assert.ErrorIs(t, err, ErrNotOrderParticipant)
	})
}
