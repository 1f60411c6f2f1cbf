package dto

import (
	"time"

	"github.com/yassine/stagelink/internal/app/models"
)

// CreateApplicationRequest represents application creation data
type CreateApplicationRequest struct {
	OfferID int64   `json:"offerId" binding:"required,gt=0"`
	Message *string `json:"message,omitempty"`
}

// UpdateApplicationRequest represents application update data.
// The status field is only honored for company owners and admins.
type UpdateApplicationRequest struct {
	Status  *string `json:"status,omitempty" binding:"omitempty,oneof=PENDING ACCEPTED REJECTED"`
	Message *string `json:"message,omitempty"`
}

// ApplicationFilterRequest represents application listing filters
type ApplicationFilterRequest struct {
	Status  string `form:"status" binding:"omitempty,oneof=PENDING ACCEPTED REJECTED"`
	OfferID int64  `form:"offerId"`
	Page    int    `form:"page,default=1"`
	Size    int    `form:"size,default=10"`
}

// ApplicationResponse represents application information
type ApplicationResponse struct {
	ID            int64          `json:"id"`
	OfferID       int64          `json:"offerId"`
	CandidateID   int64          `json:"candidateId"`
	Status        string         `json:"status"`
	Message       *string        `json:"message,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Offer         *OfferSummary  `json:"offer,omitempty"`
	CandidateName string         `json:"candidateName,omitempty"`
}

// OfferSummary is a compact offer representation embedded in application responses
type OfferSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	CompanyID   int64  `json:"companyId"`
	CompanyName string `json:"companyName,omitempty"`
	City        string `json:"city"`
	Field       string `json:"field"`
}

// ApplicationListResponse represents a paginated list of applications
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Pagination   PaginationInfo        `json:"pagination"`
}

// FromApplication converts a models.Application to an ApplicationResponse
func FromApplication(app *models.Application) ApplicationResponse {
	if app == nil {
		return ApplicationResponse{}
	}
	resp := ApplicationResponse{
		ID:          app.ID,
		OfferID:     app.OfferID,
		CandidateID: app.CandidateID,
		Status:      string(app.Status),
		Message:     app.Message,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
	if app.Offer != nil {
		summary := &OfferSummary{
			ID:        app.Offer.ID,
			Title:     app.Offer.Title,
			CompanyID: app.Offer.CompanyID,
			City:      app.Offer.City,
			Field:     app.Offer.Field,
		}
		if app.Offer.Company != nil {
			summary.CompanyName = app.Offer.Company.Name
		}
		resp.Offer = summary
	}
	if app.Candidate != nil {
		resp.CandidateName = app.Candidate.FirstName + " " + app.Candidate.LastName
	}
	return resp
}
