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

type GigService interface {
	ListGigs(ctx context.Context, category, search string) ([]domain.Gig, error)
	GetGig(ctx context.Context, id uint) (domain.Gig, error)
	CreateGig(ctx context.Context, gig domain.Gig) (domain.Gig, error)
	ListUserGigs(ctx context.Context, userID uint) ([]domain.Gig, error)
}

type GigHandler struct {
	svc  GigService
	uSvc UserService
}

func NewGigHandler(svc GigService, uSvc UserService) *GigHandler {
	return &GigHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListGigs godoc
// @Summary      List active gigs
// @Tags         gigs
// @Produce      json
// @Param        category query     string false "category filter"
// @Param        search   query     string false "free-text search over title and description"
// @Success      200      {array}    domain.Gig
// @Failure      500      {object}   response.Err
// @Router       /gigs [get]
// @Security     BearerAuth
func (h *GigHandler) HandleListGigs(ctx *gin.Context) {
	gigs, err := h.svc.ListGigs(ctx.Request.Context(), ctx.Query("category"), ctx.Query("search"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListGigs -> h.svc.ListGigs -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gigs)
}

// HandleGetGig godoc
// @Summary      Get one gig
// @Tags         gigs
// @Produce      json
// @Param        gigID   path      int true "Gig ID"
// @Success      200      {object}   domain.Gig
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /gigs/{gigID} [get]
// @Security     BearerAuth
func (h *GigHandler) HandleGetGig(ctx *gin.Context) {
	gigID, err := strconv.ParseUint(ctx.Param("gigID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid gig id")))
		return
	}

	gig, err := h.svc.GetGig(ctx.Request.Context(), uint(gigID))
	if err != nil {
		if errors.Is(err, service.ErrGigNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("gig", "gigID", gigID))
			return
		}

		err = fmt.Errorf("v1.HandleGetGig -> h.svc.GetGig -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gig)
}

// HandleCreateGig godoc
// @Summary      Create a new gig
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateGigRequest true "request body"
// @Success      201      {object}   domain.Gig
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /gigs [post]
// @Security     BearerAuth
func (h *GigHandler) HandleCreateGig(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateGigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	gig, err := h.svc.CreateGig(ctx.Request.Context(), domain.Gig{
		UserID:       user.ID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		DeliveryDays: req.DeliveryDays,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateGig -> h.svc.CreateGig -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, gig)
}

// HandleGetUserGigs godoc
// @Summary      List a freelancer's active gigs
// @Tags         gigs,users
// @Produce      json
// @Param        userID   path      int true "User ID"
// @Success      200      {array}    domain.Gig
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/gigs [get]
// @Security     BearerAuth
func (h *GigHandler) HandleGetUserGigs(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid user id")))
		return
	}

	gigs, err := h.svc.ListUserGigs(ctx.Request.Context(), uint(userID))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetUserGigs -> h.svc.ListUserGigs -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gigs)
}
