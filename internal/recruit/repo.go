package recruit

import (
	"context"
	"fmt"

	"github.com/quizhire/recruitment/internal/apperr"
)

var (
	ErrUserNotFound  = apperr.NotFound("User not found.")
	ErrJobNotFound   = apperr.NotFound("Job not found.")
	ErrEmailTaken    = apperr.Conflict("A user with this email already exists.")
	errCompanyFields = fieldsRequired("name, location, description")
	errJobFields     = fieldsRequired("title, description, requirements, companyId")
	errProfileFields = fieldsRequired("title")
	errQuestionField = fieldsRequired("text, type, options, answer")
)

func notFound(entity string, id int64) error {
	return apperr.NotFound(fmt.Sprintf("%s with ID %d not found.", entity, id))
}

type Store interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)

	CreateCompany(ctx context.Context, c Company) (Company, error)
	GetCompany(ctx context.Context, id int64) (Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	UpdateCompany(ctx context.Context, id int64, in CompanyInput) error
	DeleteCompany(ctx context.Context, id int64) error

	CreateJob(ctx context.Context, j Job) (Job, error)
	GetJob(ctx context.Context, id int64) (Job, error)
	ListJobs(ctx context.Context) ([]Job, error)
	UpdateJob(ctx context.Context, id int64, in JobInput) error
	DeleteJob(ctx context.Context, id int64) error

	CreateProfile(ctx context.Context, p Profile) (Profile, error)
	GetProfile(ctx context.Context, id int64) (Profile, error)
	ListProfiles(ctx context.Context) ([]Profile, error)
	UpdateProfile(ctx context.Context, id int64, in ProfileInput) error
	DeleteProfile(ctx context.Context, id int64) error

	CreateQuestion(ctx context.Context, q Question) (Question, error)
	GetQuestion(ctx context.Context, id int64) (Question, error)
	ListQuestions(ctx context.Context, profileID int64) ([]Question, error)
	UpdateQuestion(ctx context.Context, id int64, in QuestionInput) error
	DeleteQuestion(ctx context.Context, id int64) error

	// CreateSubmission writes the resume row and its application atomically.
	CreateSubmission(ctx context.Context, r Resume, status string) (Submission, error)
	GetApplication(ctx context.Context, id int64) (Application, error)
	ListApplications(ctx context.Context, userID int64) ([]Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status string) error
	DeleteApplication(ctx context.Context, id int64) error

	GetResume(ctx context.Context, id int64) (Resume, error)
	DeleteResume(ctx context.Context, id int64) error
}

func ApplicationNotFound(id int64) error { return notFound("Application", id) }

func ResumeNotFound(id int64) error { return notFound("Resume", id) }
