package domain

import "time"

// Profile is the public face of a user. JSON-array fields (skills, tools,
// certifications, portfolio items) live in jsonb columns and default to empty
// slices, never nil, once loaded.
type Profile struct {
	UserID                 uint            `json:"id"`
	Username               string          `json:"username"`
	AvatarURL              *string         `json:"avatar_url"`
	Bio                    *string         `json:"bio"`
	ProfessionalTitle      *string         `json:"professional_title"`
	Location               *string         `json:"location"`
	AvailabilityHours      *string         `json:"availability_hours"`
	Skills                 []string        `json:"skills"`
	Tools                  []string        `json:"tools"`
	ResponseTime           *string         `json:"response_time"`
	PreferredCommunication []string        `json:"preferred_communication"`
	EducationProgram       *string         `json:"education_program"`
	EducationInstitution   *string         `json:"education_institution"`
	EducationYear          *int            `json:"education_year"`
	EducationLevel         *string         `json:"education_level"`
	Certifications         []Certification `json:"certifications"`
	PortfolioItems         []PortfolioItem `json:"portfolio_items"`
	IsIdentityVerified     bool            `json:"is_identity_verified"`
	TotalEarnings          float64         `json:"total_earnings"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   int    `json:"year"`
	URL    string `json:"url,omitempty"`
}

type PortfolioItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	FileURL      string    `json:"file_url"`
	FileType     string    `json:"file_type"` // "image", "pdf" or "link"
	ExternalLink string    `json:"external_link,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Sender is the display projection of a profile attached to messages, chats
// and reviews.
type Sender struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// UnknownSender is substituted when a referenced profile row is missing.
var UnknownSender = Sender{Username: "Unknown"}

type FreelancerStats struct {
	AverageRating   float64 `json:"average_rating"`
	TotalReviews    int     `json:"total_reviews"`
	CompletedOrders int     `json:"completed_orders"`
}
