package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID        uint        `json:"id"`
	GigID     uint        `json:"gig_id"`
	BuyerID   uint        `json:"buyer_id"`
	SellerID  uint        `json:"seller_id"`
	Status    OrderStatus `json:"status"`
	Amount    float64     `json:"amount"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CanTransition reports whether the status change is legal. Delivered and
// cancelled are terminal.
func (o *Order) CanTransition(to OrderStatus) bool {
	switch o.Status {
	case OrderPending:
		return to == OrderPaid || to == OrderCancelled
	case OrderPaid:
		return to == OrderDelivered || to == OrderCancelled
	default:
		return false
	}
}

// IsParticipant reports whether the user is the buyer or the seller.
func (o *Order) IsParticipant(userID uint) bool {
	return o.BuyerID == userID || o.SellerID == userID
}
