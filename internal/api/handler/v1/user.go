package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusgigs/campusgigs-api/internal/api/handler/v1/request"
	"github.com/campusgigs/campusgigs-api/internal/api/handler/v1/response"
	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/service"
)

type ProfileService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	GetProfile(ctx context.Context, userID uint) (domain.Profile, error)
	UpdateProfile(ctx context.Context, userID uint, update service.ProfileUpdate) (domain.Profile, error)
	UploadAvatar(ctx context.Context, userID uint, filename string, r io.Reader) (string, error)
	AddPortfolioItem(ctx context.Context, userID uint, input service.PortfolioItemInput) (domain.PortfolioItem, error)
	RemovePortfolioItem(ctx context.Context, userID uint, itemID string) error
	GetStats(ctx context.Context, userID uint) (domain.FreelancerStats, error)
	GetReviews(ctx context.Context, userID uint) ([]domain.Rating, error)
}

type UserHandler struct {
	svc ProfileService
}

func NewUserHandler(svc ProfileService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetUser godoc
// @Summary      Get a user's public profile
// @Tags         users
// @Produce      json
// @Param        userID   path      int true "User ID"
// @Success      200      {object}   domain.Profile
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid user id")))
		return
	}

	profile, err := h.svc.GetProfile(ctx.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("profile", "userID", userID))
			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleUpdateProfile godoc
// @Summary      Update the caller's profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        request   body      request.UpdateProfileRequest true "request body"
// @Success      200      {object}   domain.Profile
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /profiles/me [patch]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdateProfile(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profile, err := h.svc.UpdateProfile(ctx.Request.Context(), user.ID, service.ProfileUpdate{
		Username:               req.Username,
		Bio:                    req.Bio,
		AvatarURL:              req.AvatarURL,
		ProfessionalTitle:      req.ProfessionalTitle,
		Location:               req.Location,
		AvailabilityHours:      req.AvailabilityHours,
		Skills:                 req.Skills,
		Tools:                  req.Tools,
		ResponseTime:           req.ResponseTime,
		PreferredCommunication: req.PreferredCommunication,
		EducationProgram:       req.EducationProgram,
		EducationInstitution:   req.EducationInstitution,
		EducationYear:          req.EducationYear,
		EducationLevel:         req.EducationLevel,
		Certifications:         req.Certifications,
	})
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUsernameExists))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateProfile -> h.svc.UpdateProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleUploadAvatar godoc
// @Summary      Upload the caller's avatar
// @Tags         profiles
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData   file true "avatar image"
// @Success      200      {object}   response.AvatarResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /profiles/me/avatar [post]
// @Security     BearerAuth
func (h *UserHandler) HandleUploadAvatar(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("file is required")))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	defer file.Close()

	url, err := h.svc.UploadAvatar(ctx.Request.Context(), user.ID, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, service.ErrAttachmentTooLarge) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAttachmentTooLarge))
			return
		}

		err = fmt.Errorf("v1.HandleUploadAvatar -> h.svc.UploadAvatar -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.AvatarResponse{AvatarURL: url})
}

// HandleAddPortfolioItem godoc
// @Summary      Add a portfolio item
// @Tags         profiles
// @Accept       multipart/form-data
// @Produce      json
// @Param        title   formData   string true "item title"
// @Param        file_type   formData   string true "image, pdf or link"
// @Param        file   formData   file false "item file"
// @Success      201      {object}   domain.PortfolioItem
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /profiles/me/portfolio [post]
// @Security     BearerAuth
func (h *UserHandler) HandleAddPortfolioItem(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddPortfolioItemRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	input := service.PortfolioItemInput{
		Title:        req.Title,
		Description:  req.Description,
		FileType:     req.FileType,
		ExternalLink: req.ExternalLink,
	}

	if req.FileType != "link" {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("file is required for image and pdf items")))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		defer file.Close()

		input.Filename = fileHeader.Filename
		input.File = file
	}

	item, err := h.svc.AddPortfolioItem(ctx.Request.Context(), user.ID, input)
	if err != nil {
		if errors.Is(err, service.ErrAttachmentTooLarge) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAttachmentTooLarge))
			return
		}

		err = fmt.Errorf("v1.HandleAddPortfolioItem -> h.svc.AddPortfolioItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandleRemovePortfolioItem godoc
// @Summary      Remove a portfolio item
// @Tags         profiles
// @Produce      json
// @Param        itemID   path      string true "portfolio item ID"
// @Success      204
// @Failure      500      {object}   response.Err
// @Router       /profiles/me/portfolio/{itemID} [delete]
// @Security     BearerAuth
func (h *UserHandler) HandleRemovePortfolioItem(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.RemovePortfolioItem(ctx.Request.Context(), user.ID, ctx.Param("itemID")); err != nil {
		err = fmt.Errorf("v1.HandleRemovePortfolioItem -> h.svc.RemovePortfolioItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetFreelancerStats godoc
// @Summary      Get a freelancer's aggregate stats
// @Tags         users
// @Produce      json
// @Param        userID   path      int true "User ID"
// @Success      200      {object}   domain.FreelancerStats
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/stats [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetFreelancerStats(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid user id")))
		return
	}

	stats, err := h.svc.GetStats(ctx.Request.Context(), uint(userID))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetFreelancerStats -> h.svc.GetStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleGetFreelancerReviews godoc
// @Summary      Get a freelancer's latest reviews
// @Tags         users
// @Produce      json
// @Param        userID   path      int true "User ID"
// @Success      200      {array}    domain.Rating
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/reviews [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetFreelancerReviews(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid user id")))
		return
	}

	reviews, err := h.svc.GetReviews(ctx.Request.Context(), uint(userID))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetFreelancerReviews -> h.svc.GetReviews -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reviews)
}
