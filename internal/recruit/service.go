package recruit

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"io/fs"
	"log"
	"strings"

	"github.com/quizhire/recruitment/internal/apperr"
	"github.com/quizhire/recruitment/internal/storage"
)

// Service validates catalog and application requests before they reach the store.
type Service struct {
	store Store
	blobs storage.BlobStore
}

func NewService(store Store, blobs storage.BlobStore) *Service {
	return &Service{store: store, blobs: blobs}
}

func (s *Service) CreateCompany(ctx context.Context, in CompanyInput) (Company, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return Company{}, apperr.Validation("name", "Name is required.")
	}
	return s.store.CreateCompany(ctx, Company{Name: *in.Name, Location: deref(in.Location), Description: deref(in.Description)})
}

func (s *Service) GetCompany(ctx context.Context, id int64) (Company, error) {
	return s.store.GetCompany(ctx, id)
}

func (s *Service) ListCompanies(ctx context.Context) ([]Company, error) {
	return s.store.ListCompanies(ctx)
}

func (s *Service) UpdateCompany(ctx context.Context, id int64, in CompanyInput) error {
	return s.store.UpdateCompany(ctx, id, in)
}

func (s *Service) DeleteCompany(ctx context.Context, id int64) error {
	return s.store.DeleteCompany(ctx, id)
}

func (s *Service) CreateJob(ctx context.Context, in JobInput) (Job, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return Job{}, apperr.Validation("title", "Title is required.")
	}
	if in.CompanyID != nil {
		if _, err := s.store.GetCompany(ctx, *in.CompanyID); err != nil {
			return Job{}, err
		}
	}
	return s.store.CreateJob(ctx, Job{
		Title:        *in.Title,
		Description:  deref(in.Description),
		Requirements: deref(in.Requirements),
		CompanyID:    in.CompanyID,
	})
}

func (s *Service) GetJob(ctx context.Context, id int64) (Job, error) { return s.store.GetJob(ctx, id) }

func (s *Service) ListJobs(ctx context.Context) ([]Job, error) { return s.store.ListJobs(ctx) }

func (s *Service) UpdateJob(ctx context.Context, id int64, in JobInput) error {
	if in.CompanyID != nil {
		if _, err := s.store.GetCompany(ctx, *in.CompanyID); err != nil {
			return err
		}
	}
	return s.store.UpdateJob(ctx, id, in)
}

func (s *Service) DeleteJob(ctx context.Context, id int64) error { return s.store.DeleteJob(ctx, id) }

func (s *Service) CreateProfile(ctx context.Context, in ProfileInput) (Profile, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return Profile{}, apperr.Validation("title", "Title is required.")
	}
	return s.store.CreateProfile(ctx, Profile{Title: *in.Title})
}

func (s *Service) GetProfile(ctx context.Context, id int64) (Profile, error) {
	return s.store.GetProfile(ctx, id)
}

func (s *Service) ListProfiles(ctx context.Context) ([]Profile, error) {
	return s.store.ListProfiles(ctx)
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, in ProfileInput) error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return apperr.Validation("title", "Title is required.")
	}
	return s.store.UpdateProfile(ctx, id, in)
}

func (s *Service) DeleteProfile(ctx context.Context, id int64) error {
	return s.store.DeleteProfile(ctx, id)
}

func (s *Service) CreateQuestion(ctx context.Context, in QuestionInput) (Question, error) {
	switch {
	case in.ProfileID == nil:
		return Question{}, apperr.Validation("profileId", "Profile ID is required.")
	case in.Text == nil || *in.Text == "":
		return Question{}, apperr.Validation("text", "Question text is required.")
	case in.Type == nil || *in.Type == "":
		return Question{}, apperr.Validation("type", "Question type is required.")
	case !present(in.Options):
		return Question{}, apperr.Validation("options", "Options are required.")
	case !present(in.Answer):
		return Question{}, apperr.Validation("answer", "Answer is required.")
	}
	if _, err := s.store.GetProfile(ctx, *in.ProfileID); err != nil {
		return Question{}, err
	}
	return s.store.CreateQuestion(ctx, Question{
		ProfileID: in.ProfileID,
		Text:      *in.Text,
		Type:      *in.Type,
		Options:   in.Options,
		Answer:    in.Answer,
	})
}

func (s *Service) GetQuestion(ctx context.Context, id int64) (Question, error) {
	return s.store.GetQuestion(ctx, id)
}

func (s *Service) ListQuestions(ctx context.Context, profileID int64) ([]Question, error) {
	if _, err := s.store.GetProfile(ctx, profileID); err != nil {
		return nil, err
	}
	return s.store.ListQuestions(ctx, profileID)
}

func (s *Service) UpdateQuestion(ctx context.Context, id int64, in QuestionInput) error {
	return s.store.UpdateQuestion(ctx, id, in)
}

func (s *Service) DeleteQuestion(ctx context.Context, id int64) error {
	return s.store.DeleteQuestion(ctx, id)
}

// Apply uploads the resume and records the resume and application rows.
// The uploaded object is removed again if the rows cannot be written.
func (s *Service) Apply(ctx context.Context, in ApplicationInput) (Submission, error) {
	switch {
	case in.UserID == nil:
		return Submission{}, apperr.Validation("userId", "userId is required.")
	case in.JobID == nil:
		return Submission{}, apperr.Validation("jobId", "jobId is required.")
	case in.ResumeFile == "":
		return Submission{}, apperr.Validation("resumeFile", "resumeFile is required.")
	}
	file, err := base64.StdEncoding.DecodeString(in.ResumeFile)
	if err != nil {
		return Submission{}, apperr.Validation("resumeFile", "resumeFile must be valid base64.")
	}

	if _, err := s.store.GetUser(ctx, *in.UserID); err != nil {
		return Submission{}, err
	}
	if _, err := s.store.GetJob(ctx, *in.JobID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Submission{}, ErrJobNotFound
		}
		return Submission{}, err
	}

	key, err := s.blobs.Put(storage.ResumeKey(*in.UserID, *in.JobID), bytes.NewReader(file))
	if err != nil {
		return Submission{}, err
	}
	url, err := s.blobs.URL(key)
	if err != nil {
		s.discard(key)
		return Submission{}, err
	}

	sub, err := s.store.CreateSubmission(ctx, Resume{
		UserID:    in.UserID,
		JobID:     in.JobID,
		ResumeURL: url,
		ObjectKey: key,
	}, StatusSubmitted)
	if err != nil {
		s.discard(key)
		return Submission{}, err
	}
	return sub, nil
}

func (s *Service) GetApplication(ctx context.Context, id int64) (Application, error) {
	return s.store.GetApplication(ctx, id)
}

func (s *Service) ListApplications(ctx context.Context, userID int64) ([]Application, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListApplications(ctx, userID)
}

func (s *Service) UpdateApplicationStatus(ctx context.Context, id int64, status string) error {
	if strings.TrimSpace(status) == "" {
		return apperr.Validation("status", "Status is required.")
	}
	return s.store.UpdateApplicationStatus(ctx, id, status)
}

func (s *Service) DeleteApplication(ctx context.Context, id int64) error {
	return s.store.DeleteApplication(ctx, id)
}

func (s *Service) GetResume(ctx context.Context, id int64) (Resume, error) {
	return s.store.GetResume(ctx, id)
}

// OpenResume returns the stored file behind a resume row.
func (s *Service) OpenResume(r Resume) (io.ReadCloser, error) {
	rc, err := s.blobs.Get(r.ObjectKey)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ResumeNotFound(r.ID)
	}
	return rc, err
}

// DeleteResume removes the row first; a leftover object is only logged.
func (s *Service) DeleteResume(ctx context.Context, id int64) error {
	r, err := s.store.GetResume(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteResume(ctx, id); err != nil {
		return err
	}
	s.discard(r.ObjectKey)
	return nil
}

func (s *Service) discard(key string) {
	if key == "" {
		return
	}
	if err := s.blobs.Delete(key); err != nil {
		log.Printf("recruit: delete blob %s: %v", key, err)
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
