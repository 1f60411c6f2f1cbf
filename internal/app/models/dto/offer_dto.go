package dto

import (
	"time"

	"github.com/yassine/stagelink/internal/app/models"
)

// CreateOfferRequest represents offer creation data
type CreateOfferRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Field        string   `json:"field" binding:"required"`
	City         string   `json:"city" binding:"required"`
	Type         string   `json:"type" binding:"required,oneof=ON_SITE REMOTE HYBRID"`
	Duration     string   `json:"duration" binding:"required"`
	Capacity     int      `json:"capacity" binding:"required,gt=0"`
	Compensation *float64 `json:"compensation,omitempty"`
	StartDate    *string  `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate      *string  `json:"endDate,omitempty"`   // YYYY-MM-DD
	Deadline     *string  `json:"deadline,omitempty"`  // YYYY-MM-DD
	IsActive     *bool    `json:"isActive,omitempty"`
	CompanyID    *int64   `json:"companyId,omitempty"` // Admin only: the owning company
}

// UpdateOfferRequest represents offer update data
type UpdateOfferRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Field        string   `json:"field" binding:"required"`
	City         string   `json:"city" binding:"required"`
	Type         string   `json:"type" binding:"required,oneof=ON_SITE REMOTE HYBRID"`
	Duration     string   `json:"duration" binding:"required"`
	Capacity     int      `json:"capacity" binding:"required,gt=0"`
	Compensation *float64 `json:"compensation,omitempty"`
	StartDate    *string  `json:"startDate,omitempty"`
	EndDate      *string  `json:"endDate,omitempty"`
	Deadline     *string  `json:"deadline,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// OfferFilterRequest represents offer listing filters
type OfferFilterRequest struct {
	Search   string `form:"search"`
	City     string `form:"city"`
	Field    string `form:"field"`
	Type     string `form:"type"`
	IsActive *bool  `form:"isActive"`
	Page     int    `form:"page,default=1"`
	Size     int    `form:"size,default=10"`
}

// OfferResponse represents offer information with derived availability fields
type OfferResponse struct {
	ID           int64      `json:"id"`
	CompanyID    int64      `json:"companyId"`
	CompanyName  string     `json:"companyName,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Field        string     `json:"field"`
	City         string     `json:"city"`
	Type         string     `json:"type"`
	Duration     string     `json:"duration"`
	Capacity     int        `json:"capacity"`
	Compensation *float64   `json:"compensation,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	IsActive     bool       `json:"isActive"`
	PlacesTaken  int        `json:"placesTaken"`
	IsExpired    bool       `json:"isExpired"`
	IsFull       bool       `json:"isFull"`
	IsAvailable  bool       `json:"isAvailable"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// OfferListResponse represents a paginated list of offers
type OfferListResponse struct {
	Offers     []OfferResponse `json:"offers"`
	Pagination PaginationInfo  `json:"pagination"`
}

// FromOffer converts a models.Offer to an OfferResponse.
// Derived availability fields are computed against the given day.
func FromOffer(offer *models.Offer, today time.Time) OfferResponse {
	if offer == nil {
		return OfferResponse{}
	}
	resp := OfferResponse{
		ID:           offer.ID,
		CompanyID:    offer.CompanyID,
		Title:        offer.Title,
		Description:  offer.Description,
		Field:        offer.Field,
		City:         offer.City,
		Type:         string(offer.Type),
		Duration:     offer.Duration,
		Capacity:     offer.Capacity,
		Compensation: offer.Compensation,
		StartDate:    offer.StartDate,
		EndDate:      offer.EndDate,
		Deadline:     offer.Deadline,
		IsActive:     offer.IsActive,
		PlacesTaken:  offer.PlacesTaken,
		IsExpired:    offer.IsExpired(today),
		IsFull:       offer.IsFull(),
		IsAvailable:  offer.IsAvailable(today),
		CreatedAt:    offer.CreatedAt,
		UpdatedAt:    offer.UpdatedAt,
	}
	if offer.Company != nil {
		resp.CompanyName = offer.Company.Name
	}
	return resp
}
