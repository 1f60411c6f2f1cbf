package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/stagelink/internal/app/models"
	"github.com/yassine/stagelink/internal/app/models/dto"
	"github.com/yassine/stagelink/internal/pkg/apperrors"
)

type fakeProfileRepo struct {
	candidate *models.CandidateProfile
	company   *models.CompanyProfile
}

func (f *fakeProfileRepo) GetCandidateByUserID(_ context.Context, userID int64) (*models.CandidateProfile, error) {
	if f.candidate != nil && f.candidate.UserID == userID {
		cp := *f.candidate
		return &cp, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

func (f *fakeProfileRepo) UpdateCandidateProfile(_ context.Context, profile *models.CandidateProfile) error {
	cp := *profile
	f.candidate = &cp
	return nil
}

func (f *fakeProfileRepo) UpdateCandidateResumePath(_ context.Context, candidateID int64, resumePath *string) error {
	if f.candidate == nil || f.candidate.ID != candidateID {
		return apperrors.ErrProfileNotFound
	}
	f.candidate.ResumePath = resumePath
	return nil
}

func (f *fakeProfileRepo) GetCompanyByUserID(_ context.Context, userID int64) (*models.CompanyProfile, error) {
	if f.company != nil && f.company.UserID == userID {
		cp := *f.company
		return &cp, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

func (f *fakeProfileRepo) UpdateCompanyProfile(_ context.Context, profile *models.CompanyProfile) error {
	cp := *profile
	f.company = &cp
	return nil
}

type fakeStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return f.SaveFileWithPath(fileHeader, "")
}

func (f *fakeStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	url := "/uploads/" + path + "/" + fileHeader.Filename
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

func (f *fakeStorage) GetFullPath(fileURL string) string { return fileURL }

func TestUpdateCandidateProfile(t *testing.T) {
	ctx := context.Background()

	newService := func() (ProfileService, *fakeProfileRepo) {
		repo := &fakeProfileRepo{candidate: &models.CandidateProfile{ID: 10, UserID: 1, FirstName: "Marie", LastName: "Dupont"}}
		return NewProfileService(repo, &fakeStorage{}), repo
	}

	t.Run("updates fields", func(t *testing.T) {
		svc, _ := newService()

		resp, err := svc.UpdateCandidateProfile(ctx, 1, &dto.UpdateCandidateProfileRequest{
			FirstName: "Marie",
			LastName:  "Martin",
			Field:     strPtr("Informatique"),
			BirthDate: strPtr("2002-04-15"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Martin", resp.LastName)
		require.NotNil(t, resp.BirthDate)
	})

	t.Run("malformed birth date rejected", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.UpdateCandidateProfile(ctx, 1, &dto.UpdateCandidateProfileRequest{
			FirstName: "Marie",
			LastName:  "Dupont",
			BirthDate: strPtr("15/04/2002"),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("future birth date rejected", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.UpdateCandidateProfile(ctx, 1, &dto.UpdateCandidateProfileRequest{
			FirstName: "Marie",
			LastName:  "Dupont",
			BirthDate: strPtr("2090-01-01"),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.GetCandidateProfile(ctx, 99)
		assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
	})
}

func TestUploadResume(t *testing.T) {
	ctx := context.Background()

	newService := func(existingResume *string) (ProfileService, *fakeProfileRepo, *fakeStorage) {
		repo := &fakeProfileRepo{candidate: &models.CandidateProfile{ID: 10, UserID: 1, ResumePath: existingResume}}
		storage := &fakeStorage{}
		return NewProfileService(repo, storage), repo, storage
	}

	t.Run("accepts a pdf", func(t *testing.T) {
		svc, repo, storage := newService(nil)

		resp, err := svc.UploadResume(ctx, 1, &multipart.FileHeader{Filename: "cv.pdf", Size: 1024})
		require.NoError(t, err)
		assert.Contains(t, resp.ResumeURL, "cv.pdf")
		require.NotNil(t, repo.candidate.ResumePath)
		assert.Len(t, storage.saved, 1)
	})

	t.Run("replaces the previous resume", func(t *testing.T) {
		old := "/uploads/resumes/old.pdf"
		svc, _, storage := newService(&old)

		_, err := svc.UploadResume(ctx, 1, &multipart.FileHeader{Filename: "cv.pdf", Size: 1024})
		require.NoError(t, err)
		assert.Contains(t, storage.deleted, old)
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		svc, _, _ := newService(nil)

		_, err := svc.UploadResume(ctx, 1, &multipart.FileHeader{Filename: "cv.pdf", Size: maxResumeSize + 1})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		svc, _, _ := newService(nil)

		_, err := svc.UploadResume(ctx, 1, &multipart.FileHeader{Filename: "cv.exe", Size: 1024})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}
