package recruit

import "encoding/json"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusSubmitted = "submitted"
)

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type Company struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// CompanyInput is used for both create and partial update; nil means "not provided".
type CompanyInput struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

type Job struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	CompanyID    *int64 `json:"companyId"`
}

type JobInput struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	CompanyID    *int64  `json:"companyId"`
}

type Profile struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type ProfileInput struct {
	Title *string `json:"title"`
}

// Question is a bank entry. Options and Answer are stored as opaque JSON.
type Question struct {
	ID        int64           `json:"id"`
	ProfileID *int64          `json:"profileId"`
	Text      string          `json:"text"`
	Type      string          `json:"type"`
	Options   json.RawMessage `json:"options"`
	Answer    json.RawMessage `json:"answer"`
	CreatedAt int64           `json:"createdAt"`
	UpdatedAt int64           `json:"updatedAt"`
}

type QuestionInput struct {
	ProfileID *int64          `json:"profileId"`
	Text      *string         `json:"text"`
	Type      *string         `json:"type"`
	Options   json.RawMessage `json:"options"`
	Answer    json.RawMessage `json:"answer"`
}

type Resume struct {
	ID         int64  `json:"id"`
	UserID     *int64 `json:"userId"`
	JobID      *int64 `json:"jobId"`
	ResumeURL  string `json:"resumeUrl"`
	ObjectKey  string `json:"-"`
	UploadedAt int64  `json:"uploadedAt"`
	UpdatedAt  int64  `json:"updatedAt"`
}

type Application struct {
	ID          int64  `json:"id"`
	UserID      *int64 `json:"userId"`
	JobID       *int64 `json:"jobId"`
	ResumeID    *int64 `json:"resumeId"`
	Status      string `json:"status"`
	SubmittedAt int64  `json:"submittedAt"`
}

// ApplicationInput carries the resume as base64 text, as uploaded by clients.
type ApplicationInput struct {
	UserID     *int64 `json:"userId"`
	JobID      *int64 `json:"jobId"`
	ResumeFile string `json:"resumeFile"`
}

// Submission is the result of a successful application create.
type Submission struct {
	Application Application `json:"application"`
	Resume      Resume      `json:"resume"`
}
