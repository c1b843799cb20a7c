package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/campusgigs/campusgigs-api/internal/domain"
)

type CreateGigRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	DeliveryDays int     `json:"delivery_days"`
	ImageURL     *string `json:"image_url"`
}

func (req *CreateGigRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(5, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(20, 2000)),
		validation.Field(&req.Category, validation.Required, validation.In(domain.GigCategories...)),
		validation.Field(&req.Price, validation.Required, validation.Min(0.01)),
		validation.Field(&req.DeliveryDays, validation.Required, validation.In(domain.DeliveryDaysOptions...)),
	)
}

type CreateOrderRequest struct {
	GigID uint `json:"gig_id"`
}

func (req *CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GigID, validation.Required),
	)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(
			string(domain.OrderPaid),
			string(domain.OrderDelivered),
			string(domain.OrderCancelled),
		)),
	)
}
