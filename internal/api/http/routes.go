package http

import (
	"context"
	"time"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authmw "github.com/quizhire/recruitment/internal/auth/middleware"
	"github.com/quizhire/recruitment/internal/events"
	"github.com/quizhire/recruitment/internal/identity"
	"github.com/quizhire/recruitment/internal/quiz"
	"github.com/quizhire/recruitment/internal/rbac"
	"github.com/quizhire/recruitment/internal/recruit"
)

type Deps struct {
	Auth     *authmw.AuthService
	Identity *identity.Service
	Recruit  *recruit.Service
	Quiz     *quiz.Service
	Events   *events.LogRepo // optional event feed

	// AttachRole, when set, runs after token verification to refresh the role.
	AttachRole  func(nethttp.Handler) nethttp.Handler
	Ping        func(ctx context.Context) error
	CORSOrigins []string
}

func NewRouter(d Deps) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/signup", SignUpHandler(d.Identity))
	r.Post("/auth/token", TokenHandler(d.Identity))
	r.Get("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if d.Ping != nil {
			if err := d.Ping(r.Context()); err != nil {
				writeError(w, "healthz", err)
				return
			}
		}
		w.WriteHeader(nethttp.StatusOK)
	})

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(d.Auth))
		if d.AttachRole != nil {
			pr.Use(d.AttachRole)
		}

		pr.Post("/users/change-password", ChangePasswordHandler(d.Identity))

		read := pr.With(rbac.Require(rbac.PermCatalogRead))
		write := pr.With(rbac.Require(rbac.PermCatalogWrite))

		write.Post("/companies", CreateCompanyHandler(d.Recruit))
		read.Get("/companies", ListCompaniesHandler(d.Recruit))
		read.Get("/companies/{companyID}", GetCompanyHandler(d.Recruit))
		write.Put("/companies/{companyID}", UpdateCompanyHandler(d.Recruit))
		write.Delete("/companies/{companyID}", DeleteCompanyHandler(d.Recruit))

		write.Post("/jobs", CreateJobHandler(d.Recruit))
		read.Get("/jobs", ListJobsHandler(d.Recruit))
		read.Get("/jobs/{jobID}", GetJobHandler(d.Recruit))
		write.Put("/jobs/{jobID}", UpdateJobHandler(d.Recruit))
		write.Delete("/jobs/{jobID}", DeleteJobHandler(d.Recruit))

		write.Post("/profiles", CreateProfileHandler(d.Recruit))
		read.Get("/profiles", ListProfilesHandler(d.Recruit))
		read.Get("/profiles/{profileID}", GetProfileHandler(d.Recruit))
		write.Put("/profiles/{profileID}", UpdateProfileHandler(d.Recruit))
		write.Delete("/profiles/{profileID}", DeleteProfileHandler(d.Recruit))

		// questions carry answer keys
		questions := pr.With(rbac.Require(rbac.PermQuestionRead))
		questions.Get("/profiles/{profileID}/questions", ListProfileQuestionsHandler(d.Recruit))
		questions.Get("/questions/{questionID}", GetQuestionHandler(d.Recruit))
		write.Post("/questions", CreateQuestionHandler(d.Recruit))
		write.Put("/questions/{questionID}", UpdateQuestionHandler(d.Recruit))
		write.Delete("/questions/{questionID}", DeleteQuestionHandler(d.Recruit))

		apps := pr.With(rbac.RequireAny(rbac.PermApplicationOwn, rbac.PermApplicationAll))
		apps.Post("/applications", CreateApplicationHandler(d.Recruit))
		apps.Get("/applications/{applicationID}", GetApplicationHandler(d.Recruit))
		apps.Delete("/applications/{applicationID}", DeleteApplicationHandler(d.Recruit))
		pr.With(rbac.Require(rbac.PermApplicationAll)).
			Put("/applications/{applicationID}/status", UpdateApplicationStatusHandler(d.Recruit))
		pr.With(rbac.RequireOwnerOr(rbac.PermApplicationAll, ownsPath)).
			Get("/users/{userID}/applications", ListUserApplicationsHandler(d.Recruit))
		apps.Get("/resumes/{resumeID}", GetResumeHandler(d.Recruit))
		apps.Get("/resumes/{resumeID}/file", ResumeFileHandler(d.Recruit))
		apps.Delete("/resumes/{resumeID}", DeleteResumeHandler(d.Recruit))

		quizzes := pr.With(rbac.Require(rbac.PermQuizTake))
		quizzes.Post("/quizzes", AssembleQuizHandler(d.Quiz))
		quizzes.Post("/quizzes/validate", ValidateAnswersHandler(d.Quiz))
		quizzes.Get("/quizzes/{quizID}", GetQuizHandler(d.Quiz))
		pr.With(rbac.RequireOwnerOr(rbac.PermHistoryViewAll, ownsPath)).
			Get("/users/{userID}/quiz-history", QuizHistoryHandler(d.Quiz))

		if d.Events != nil {
			pr.With(rbac.Require(rbac.PermEventsRead)).Get("/events", ListEventsHandler(d.Events))
		}
	})

	return r
}

// ownsPath reports whether {userID} in the path is the caller.
func ownsPath(r *nethttp.Request) bool {
	caller, ok := authmw.UserIDFromContext(r.Context())
	return ok && chi.URLParam(r, "userID") == formatID(caller)
}
