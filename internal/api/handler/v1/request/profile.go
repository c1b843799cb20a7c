package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/campusgigs/campusgigs-api/internal/domain"
)

// UpdateProfileRequest is a partial update; absent fields stay untouched.
type UpdateProfileRequest struct {
	Username               *string                 `json:"username"`
	Bio                    *string                 `json:"bio"`
	AvatarURL              *string                 `json:"avatar_url"`
	ProfessionalTitle      *string                 `json:"professional_title"`
	Location               *string                 `json:"location"`
	AvailabilityHours      *string                 `json:"availability_hours"`
	Skills                 *[]string               `json:"skills"`
	Tools                  *[]string               `json:"tools"`
	ResponseTime           *string                 `json:"response_time"`
	PreferredCommunication *[]string               `json:"preferred_communication"`
	EducationProgram       *string                 `json:"education_program"`
	EducationInstitution   *string                 `json:"education_institution"`
	EducationYear          *int                    `json:"education_year"`
	EducationLevel         *string                 `json:"education_level"`
	Certifications         *[]domain.Certification `json:"certifications"`
}

func (req *UpdateProfileRequest) Validate() error {
	if req.Username != nil {
		if err := validation.Validate(*req.Username, validation.Required, validation.Length(3, 30)); err != nil {
			return err
		}
	}
	if req.Bio != nil && *req.Bio != "" {
		if err := validation.Validate(*req.Bio, validation.Length(0, 1000)); err != nil {
			return err
		}
	}
	if req.EducationYear != nil {
		if err := validation.Validate(*req.EducationYear, validation.Min(1950), validation.Max(2100)); err != nil {
			return err
		}
	}

	return nil
}

// AddPortfolioItemRequest accompanies an optional multipart file; link items
// carry the external URL instead.
type AddPortfolioItemRequest struct {
	Title        string `form:"title"`
	Description  string `form:"description"`
	FileType     string `form:"file_type"`
	ExternalLink string `form:"external_link"`
}

func (req *AddPortfolioItemRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.FileType, validation.Required, validation.In("image", "pdf", "link")),
	)
	if err != nil {
		return err
	}

	if req.FileType == "link" {
		return validation.Validate(req.ExternalLink, validation.Required, is.URL)
	}

	return nil
}
