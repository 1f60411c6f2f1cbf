package dto

import (
	"time"

	"github.com/yassine/stagelink/internal/app/models"
)

// CandidateProfileResponse represents candidate profile information
type CandidateProfileResponse struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	Email      string     `json:"email,omitempty"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Phone      *string    `json:"phone,omitempty"`
	Field      *string    `json:"field,omitempty"`
	School     *string    `json:"school,omitempty"`
	Bio        *string    `json:"bio,omitempty"`
	ResumeURL  *string    `json:"resumeUrl,omitempty"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CompanyProfileResponse represents company profile information
type CompanyProfileResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Email       string    `json:"email,omitempty"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Website     *string   `json:"website,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	City        *string   `json:"city,omitempty"`
	LogoURL     *string   `json:"logoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UpdateCandidateProfileRequest represents candidate profile update data
type UpdateCandidateProfileRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     *string `json:"phone,omitempty"`
	Field     *string `json:"field,omitempty"`
	School    *string `json:"school,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"` // YYYY-MM-DD
}

// UpdateCompanyProfileRequest represents company profile update data
type UpdateCompanyProfileRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	City        *string `json:"city,omitempty"`
}

// ResumeUploadResponse represents the result of a resume upload
type ResumeUploadResponse struct {
	ResumeURL string `json:"resumeUrl"`
}

// FromCandidateProfile converts a models.CandidateProfile to a CandidateProfileResponse
func FromCandidateProfile(p *models.CandidateProfile) CandidateProfileResponse {
	if p == nil {
		return CandidateProfileResponse{}
	}
	resp := CandidateProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Field:     p.Field,
		School:    p.School,
		Bio:       p.Bio,
		ResumeURL: p.ResumePath,
		BirthDate: p.BirthDate,
		CreatedAt: p.CreatedAt,
	}
	if p.User != nil {
		resp.Email = p.User.Email
	}
	return resp
}

// FromCompanyProfile converts a models.CompanyProfile to a CompanyProfileResponse
func FromCompanyProfile(p *models.CompanyProfile) CompanyProfileResponse {
	if p == nil {
		return CompanyProfileResponse{}
	}
	resp := CompanyProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Website:     p.Website,
		Phone:       p.Phone,
		City:        p.City,
		LogoURL:     p.LogoPath,
		CreatedAt:   p.CreatedAt,
	}
	if p.User != nil {
		resp.Email = p.User.Email
	}
	return resp
}
