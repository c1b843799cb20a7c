package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusgigs/campusgigs-api/internal/api/handler/v1/request"
	"github.com/campusgigs/campusgigs-api/internal/api/handler/v1/response"
	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/service"
)

type OrderService interface {
	CreateOrder(ctx context.Context, buyerID, gigID uint) (domain.Order, error)
	GetOrder(ctx context.Context, orderID, userID uint) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, userID uint, to domain.OrderStatus) (domain.Order, error)
}

type OrderHandler struct {
	svc  OrderService
	uSvc UserService
}

func NewOrderHandler(svc OrderService, uSvc UserService) *OrderHandler {
	return &OrderHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateOrder godoc
// @Summary      Place an order for a gig
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateOrderRequest true "request body"
// @Success      201      {object}   domain.Order
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders [post]
// @Security     BearerAuth
func (h *OrderHandler) HandleCreateOrder(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.CreateOrder(ctx.Request.Context(), user.ID, req.GigID)
	if err != nil {
		if errors.Is(err, service.ErrGigNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("gig", "gigID", req.GigID))
			return
		}
		if errors.Is(err, service.ErrGigInactive) || errors.Is(err, service.ErrCannotOrderOwnGig) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateOrder -> h.svc.CreateOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// HandleGetOrder godoc
// @Summary      Get one order
// @Tags         orders
// @Produce      json
// @Param        orderID   path      int true "Order ID"
// @Success      200      {object}   domain.Order
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID} [get]
// @Security     BearerAuth
func (h *OrderHandler) HandleGetOrder(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	orderID, err := strconv.ParseUint(ctx.Param("orderID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid order id")))
		return
	}

	order, err := h.svc.GetOrder(ctx.Request.Context(), uint(orderID), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "orderID", orderID))
			return
		}
		if errors.Is(err, service.ErrNotOrderParticipant) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetOrder -> h.svc.GetOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleUpdateOrderStatus godoc
// @Summary      Update an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderID   path      int true "Order ID"
// @Param        request   body      request.UpdateOrderStatusRequest true "request body"
// @Success      200      {object}   domain.Order
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID}/status [patch]
// @Security     BearerAuth
func (h *OrderHandler) HandleUpdateOrderStatus(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	orderID, err := strconv.ParseUint(ctx.Param("orderID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid order id")))
		return
	}

	var req request.UpdateOrderStatusRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.UpdateStatus(ctx.Request.Context(), uint(orderID), user.ID, domain.OrderStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "orderID", orderID))
			return
		}
		if errors.Is(err, service.ErrNotOrderParticipant) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}
		if errors.Is(err, service.ErrInvalidStatusTransition) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateOrderStatus -> h.svc.UpdateStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, order)
}
