package recruit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quizhire/recruitment/internal/db"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// ---- users ----

func (s *SQLStore) CreateUser(ctx context.Context, u User) (User, error) {
	now := time.Now().Unix()
	u.CreatedAt, u.UpdatedAt = now, now
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (first_name, last_name, user_name, email, role, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		u.FirstName, u.LastName, u.UserName, u.Email, u.Role, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

const userCols = `id, first_name, last_name, user_name, email, role, created_at, updated_at`

func scanUser(r rowScanner) (User, error) {
	var u User
	err := r.Scan(&u.ID, &u.FirstName, &u.LastName, &u.UserName, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (s *SQLStore) GetUser(ctx context.Context, id int64) (User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *SQLStore) UserByEmail(ctx context.Context, email string) (User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("user by email: %w", err)
	}
	return u, nil
}

// ---- companies ----

func (s *SQLStore) CreateCompany(ctx context.Context, c Company) (Company, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO companies (name, location, description) VALUES ($1,$2,$3) RETURNING id`,
		c.Name, c.Location, c.Description).Scan(&c.ID)
	if err != nil {
		return Company{}, fmt.Errorf("create company: %w", err)
	}
	return c, nil
}

func scanCompany(r rowScanner) (Company, error) {
	var c Company
	err := r.Scan(&c.ID, &c.Name, &c.Location, &c.Description)
	return c, err
}

func (s *SQLStore) GetCompany(ctx context.Context, id int64) (Company, error) {
	c, err := scanCompany(s.db.QueryRowContext(ctx,
		`SELECT id, name, location, description FROM companies WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Company{}, notFound("Company", id)
	}
	if err != nil {
		return Company{}, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

func (s *SQLStore) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, location, description FROM companies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	out := []Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("list companies: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateCompany(ctx context.Context, id int64, in CompanyInput) error {
	var set setList
	if in.Name != nil {
		set.add("name", *in.Name)
	}
	if in.Location != nil {
		set.add("location", *in.Location)
	}
	if in.Description != nil {
		set.add("description", *in.Description)
	}
	if set.empty() {
		return errCompanyFields
	}
	return applyUpdate(ctx, s.db, "companies", id, &set, notFound("Company", id))
}

func (s *SQLStore) DeleteCompany(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.db, "companies", id, notFound("Company", id))
}

// ---- jobs ----

func (s *SQLStore) CreateJob(ctx context.Context, j Job) (Job, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO jobs (title, description, requirements, company_id) VALUES ($1,$2,$3,$4) RETURNING id`,
		j.Title, j.Description, j.Requirements, j.CompanyID).Scan(&j.ID)
	if err != nil {
		return Job{}, fmt.Errorf("create job: %w", err)
	}
	return j, nil
}

func scanJob(r rowScanner) (Job, error) {
	var (
		j       Job
		company sql.NullInt64
	)
	err := r.Scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &company)
	j.CompanyID = nullable(company)
	return j, err
}

func (s *SQLStore) GetJob(ctx context.Context, id int64) (Job, error) {
	j, err := scanJob(s.db.QueryRowContext(ctx,
		`SELECT id, title, description, requirements, company_id FROM jobs WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, notFound("Job", id)
	}
	if err != nil {
		return Job{}, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

func (s *SQLStore) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, requirements, company_id FROM jobs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	out := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("list jobs: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateJob(ctx context.Context, id int64, in JobInput) error {
	var set setList
	if in.Title != nil {
		set.add("title", *in.Title)
	}
	if in.Description != nil {
		set.add("description", *in.Description)
	}
	if in.Requirements != nil {
		set.add("requirements", *in.Requirements)
	}
	if in.CompanyID != nil {
		set.add("company_id", *in.CompanyID)
	}
	if set.empty() {
		return errJobFields
	}
	return applyUpdate(ctx, s.db, "jobs", id, &set, notFound("Job", id))
}

func (s *SQLStore) DeleteJob(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.db, "jobs", id, notFound("Job", id))
}

// ---- profiles ----

func (s *SQLStore) CreateProfile(ctx context.Context, p Profile) (Profile, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO profiles (title) VALUES ($1) RETURNING id`, p.Title).Scan(&p.ID)
	if err != nil {
		return Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

func (s *SQLStore) GetProfile(ctx context.Context, id int64) (Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx, `SELECT id, title FROM profiles WHERE id=$1`, id).Scan(&p.ID, &p.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, notFound("Profile", id)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *SQLStore) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	out := []Profile{}
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Title); err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateProfile(ctx context.Context, id int64, in ProfileInput) error {
	var set setList
	if in.Title != nil {
		set.add("title", *in.Title)
	}
	if set.empty() {
		return errProfileFields
	}
	return applyUpdate(ctx, s.db, "profiles", id, &set, notFound("Profile", id))
}

func (s *SQLStore) DeleteProfile(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.db, "profiles", id, notFound("Profile", id))
}

// ---- questions ----

func (s *SQLStore) CreateQuestion(ctx context.Context, q Question) (Question, error) {
	now := time.Now().Unix()
	q.CreatedAt, q.UpdatedAt = now, now
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO questions (profile_id, text, type, options, answer, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		q.ProfileID, q.Text, q.Type, string(q.Options), string(q.Answer), q.CreatedAt, q.UpdatedAt).Scan(&q.ID)
	if err != nil {
		return Question{}, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

const questionCols = `id, profile_id, text, type, options, answer, created_at, updated_at`

func scanQuestion(r rowScanner) (Question, error) {
	var (
		q             Question
		profile       sql.NullInt64
		options, ansr string
	)
	if err := r.Scan(&q.ID, &profile, &q.Text, &q.Type, &options, &ansr, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return Question{}, err
	}
	q.ProfileID = nullable(profile)
	q.Options, q.Answer = json.RawMessage(options), json.RawMessage(ansr)
	return q, nil
}

func (s *SQLStore) GetQuestion(ctx context.Context, id int64) (Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx, `SELECT `+questionCols+` FROM questions WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, notFound("Question", id)
	}
	if err != nil {
		return Question{}, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

func (s *SQLStore) ListQuestions(ctx context.Context, profileID int64) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+questionCols+` FROM questions WHERE profile_id=$1 ORDER BY id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("list questions: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateQuestion(ctx context.Context, id int64, in QuestionInput) error {
	var set setList
	if in.Text != nil && *in.Text != "" {
		set.add("text", *in.Text)
	}
	if in.Type != nil && *in.Type != "" {
		set.add("type", *in.Type)
	}
	if present(in.Options) {
		set.add("options", string(in.Options))
	}
	if present(in.Answer) {
		set.add("answer", string(in.Answer))
	}
	if set.empty() {
		return errQuestionField
	}
	set.add("updated_at", time.Now().Unix())
	return applyUpdate(ctx, s.db, "questions", id, &set, notFound("Question", id))
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.db, "questions", id, notFound("Question", id))
}

// ---- applications & resumes ----

func (s *SQLStore) CreateSubmission(ctx context.Context, r Resume, status string) (Submission, error) {
	now := time.Now().Unix()
	r.UploadedAt, r.UpdatedAt = now, now
	a := Application{UserID: r.UserID, JobID: r.JobID, Status: status, SubmittedAt: now}

	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO resumes (user_id, job_id, resume_url, object_key, uploaded_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
			r.UserID, r.JobID, r.ResumeURL, r.ObjectKey, r.UploadedAt, r.UpdatedAt).Scan(&r.ID); err != nil {
			return fmt.Errorf("insert resume: %w", err)
		}
		a.ResumeID = &r.ID
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO applications (user_id, job_id, resume_id, status, submitted_at)
			 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
			a.UserID, a.JobID, a.ResumeID, a.Status, a.SubmittedAt).Scan(&a.ID); err != nil {
			return fmt.Errorf("insert application: %w", err)
		}
		return nil
	})
	if err != nil {
		return Submission{}, err
	}
	return Submission{Application: a, Resume: r}, nil
}

const applicationCols = `id, user_id, job_id, resume_id, status, submitted_at`

func scanApplication(r rowScanner) (Application, error) {
	var (
		a                 Application
		user, job, resume sql.NullInt64
	)
	err := r.Scan(&a.ID, &user, &job, &resume, &a.Status, &a.SubmittedAt)
	a.UserID, a.JobID, a.ResumeID = nullable(user), nullable(job), nullable(resume)
	return a, err
}

func (s *SQLStore) GetApplication(ctx context.Context, id int64) (Application, error) {
	a, err := scanApplication(s.db.QueryRowContext(ctx,
		`SELECT `+applicationCols+` FROM applications WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, notFound("Application", id)
	}
	if err != nil {
		return Application{}, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

func (s *SQLStore) ListApplications(ctx context.Context, userID int64) ([]Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationCols+` FROM applications WHERE user_id=$1 ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()
	out := []Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("list applications: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateApplicationStatus(ctx context.Context, id int64, status string) error {
	var set setList
	set.add("status", status)
	return applyUpdate(ctx, s.db, "applications", id, &set, notFound("Application", id))
}

func (s *SQLStore) DeleteApplication(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.db, "applications", id, notFound("Application", id))
}

func (s *SQLStore) GetResume(ctx context.Context, id int64) (Resume, error) {
	var (
		r         Resume
		user, job sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, job_id, resume_url, object_key, uploaded_at, updated_at FROM resumes WHERE id=$1`, id).
		Scan(&r.ID, &user, &job, &r.ResumeURL, &r.ObjectKey, &r.UploadedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, notFound("Resume", id)
	}
	if err != nil {
		return Resume{}, fmt.Errorf("get resume: %w", err)
	}
	r.UserID, r.JobID = nullable(user), nullable(job)
	return r, nil
}

func (s *SQLStore) DeleteResume(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.db, "resumes", id, notFound("Resume", id))
}

func nullable(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

// present reports whether a JSON field was sent with a non-null value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key value") // postgres
}
