package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
	"github.com/yassine/stagelink/internal/pkg/filestorage"
	"github.com/yassine/stagelink/internal/pkg/helpers"
	"github.com/yassine/stagelink/internal/pkg/logger"
)

// maxResumeSize limits uploaded resume files to 5 MiB.
const maxResumeSize = 5 << 20

var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ProfileService defines the interface for profile operations
type ProfileService interface {
	GetCandidateProfile(ctx context.Context, userID int64) (*dto.CandidateProfileResponse, error)
	UpdateCandidateProfile(ctx context.Context, userID int64, req *dto.UpdateCandidateProfileRequest) (*dto.CandidateProfileResponse, error)
	GetCompanyProfile(ctx context.Context, userID int64) (*dto.CompanyProfileResponse, error)
	UpdateCompanyProfile(ctx context.Context, userID int64, req *dto.UpdateCompanyProfileRequest) (*dto.CompanyProfileResponse, error)
	UploadResume(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.ResumeUploadResponse, error)
}

type profileRepository interface {
	GetCandidateByUserID(ctx context.Context, userID int64) (*models.CandidateProfile, error)
	UpdateCandidateProfile(ctx context.Context, profile *models.CandidateProfile) error
	UpdateCandidateResumePath(ctx context.Context, candidateID int64, resumePath *string) error
	GetCompanyByUserID(ctx context.Context, userID int64) (*models.CompanyProfile, error)
	UpdateCompanyProfile(ctx context.Context, profile *models.CompanyProfile) error
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	profileRepo profileRepository
	storage     filestorage.FileStorage
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo profileRepository, storage filestorage.FileStorage) ProfileService {
	return &profileServiceImpl{
		profileRepo: profileRepo,
		storage:     storage,
	}
}

// GetCandidateProfile retrieves the candidate profile of a user
func (s *profileServiceImpl) GetCandidateProfile(ctx context.Context, userID int64) (*dto.CandidateProfileResponse, error) {
	profile, err := s.profileRepo.GetCandidateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromCandidateProfile(profile)
	return &resp, nil
}

// UpdateCandidateProfile updates the candidate profile of a user
func (s *profileServiceImpl) UpdateCandidateProfile(ctx context.Context, userID int64, req *dto.UpdateCandidateProfileRequest) (*dto.CandidateProfileResponse, error) {
	profile, err := s.profileRepo.GetCandidateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Phone = req.Phone
	profile.Field = req.Field
	profile.School = req.School
	profile.Bio = req.Bio

	profile.BirthDate = nil
	if req.BirthDate != nil && *req.BirthDate != "" {
		birthDate, err := helpers.ParseDate(*req.BirthDate)
		if err != nil {
			return nil, apperrors.NewValidationError("birthDate", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", *req.BirthDate))
		}
		if birthDate.After(time.Now()) {
			return nil, apperrors.NewValidationError("birthDate", "birth date cannot be in the future")
		}
		profile.BirthDate = &birthDate
	}

	if err := s.profileRepo.UpdateCandidateProfile(ctx, profile); err != nil {
		return nil, err
	}

	updated, err := s.profileRepo.GetCandidateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromCandidateProfile(updated)
	return &resp, nil
}

// GetCompanyProfile retrieves the company profile of a user
func (s *profileServiceImpl) GetCompanyProfile(ctx context.Context, userID int64) (*dto.CompanyProfileResponse, error) {
	profile, err := s.profileRepo.GetCompanyByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromCompanyProfile(profile)
	return &resp, nil
}

// UpdateCompanyProfile updates the company profile of a user
func (s *profileServiceImpl) UpdateCompanyProfile(ctx context.Context, userID int64, req *dto.UpdateCompanyProfileRequest) (*dto.CompanyProfileResponse, error) {
	profile, err := s.profileRepo.GetCompanyByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Name = req.Name
	profile.Description = req.Description
	profile.Website = req.Website
	profile.Phone = req.Phone
	profile.City = req.City

	if err := s.profileRepo.UpdateCompanyProfile(ctx, profile); err != nil {
		return nil, err
	}

	updated, err := s.profileRepo.GetCompanyByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromCompanyProfile(updated)
	return &resp, nil
}

// UploadResume stores a resume file for the candidate and replaces any
// previous one.
func (s *profileServiceImpl) UploadResume(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.ResumeUploadResponse, error) {
	profile, err := s.profileRepo.GetCandidateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if file.Size > maxResumeSize {
		return nil, apperrors.NewValidationError("file", "resume file exceeds the 5 MB limit")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedResumeExtensions[ext] {
		return nil, apperrors.NewValidationError("file", "resume must be a PDF or Word document")
	}

	path, err := s.storage.SaveFileWithPath(file, "resumes")
	if err != nil {
		return nil, fmt.Errorf("error saving resume file: %w", err)
	}

	if err := s.profileRepo.UpdateCandidateResumePath(ctx, profile.ID, &path); err != nil {
		if delErr := s.storage.DeleteFile(path); delErr != nil {
			logger.Warn().Err(delErr).Str("path", path).Msg("Failed to remove orphaned resume file")
		}
		return nil, err
	}

	if profile.ResumePath != nil && *profile.ResumePath != "" {
		if err := s.storage.DeleteFile(*profile.ResumePath); err != nil {
			logger.Warn().Err(err).Str("path", *profile.ResumePath).Msg("Failed to remove previous resume file")
		}
	}

	return &dto.ResumeUploadResponse{ResumeURL: path}, nil
}
