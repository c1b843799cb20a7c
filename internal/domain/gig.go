package domain

import "time"

// GigCategories is the fixed category set a gig must belong to.
var GigCategories = []interface{}{
	"graphics_and_design",
	"video_and_animation",
	"writing_and_translation",
	"website_development",
	"social_media_marketing",
	"programming_and_tech",
	"consultations",
	"mathematics_and_physics",
	"online_tutoring",
	"packaging_and_label_design",
	"app_design",
	"t_shirts_and_merchandise",
	"book_design_and_illustration",
	"music_and_audio",
	"video_ads_and_commercials",
	"video_editing",
	"ui_ux_design",
	"image_editing",
	"presentation_design",
	"blockchain_smart_contract_development",
	"study_guides",
	"proofreading",
	"cv_resume_design",
}

// DeliveryDaysOptions mirrors the options offered at gig creation.
var DeliveryDaysOptions = []interface{}{1, 2, 3, 5, 7}

type Gig struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	DeliveryDays  int       `json:"delivery_days"`
	ImageURL      *string   `json:"image_url"`
	IsActive      bool      `json:"is_active"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Rating struct {
	ID         uint      `json:"id"`
	GigID      uint      `json:"gig_id"`
	ReviewerID uint      `json:"reviewer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`

	Reviewer Sender `json:"reviewer"`
	GigTitle string `json:"gig_title"`
}
