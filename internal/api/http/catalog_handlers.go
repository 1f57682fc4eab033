package http

import (
	nethttp "net/http"

	"github.com/quizhire/recruitment/internal/recruit"
)

// Handlers for the company, job, profile and question catalog.

func CreateCompanyHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var in recruit.CompanyInput
		if !decodeJSON(w, r, &in) {
			return
		}
		c, err := svc.CreateCompany(r.Context(), in)
		if err != nil {
			writeError(w, "create company", err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, c)
	}
}

func ListCompaniesHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		list, err := svc.ListCompanies(r.Context())
		if err != nil {
			writeError(w, "list companies", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, list)
	}
}

func GetCompanyHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "companyID")
		if !ok {
			return
		}
		c, err := svc.GetCompany(r.Context(), id)
		if err != nil {
			writeError(w, "get company", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, c)
	}
}

func UpdateCompanyHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "companyID")
		if !ok {
			return
		}
		var in recruit.CompanyInput
		if !decodeJSON(w, r, &in) {
			return
		}
		if err := svc.UpdateCompany(r.Context(), id, in); err != nil {
			writeError(w, "update company", err)
			return
		}
		writeMessage(w, nethttp.StatusOK, "Company updated successfully!")
	}
}

func DeleteCompanyHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "companyID")
		if !ok {
			return
		}
		if err := svc.DeleteCompany(r.Context(), id); err != nil {
			writeError(w, "delete company", err)
			return
		}
		w.WriteHeader(nethttp.StatusNoContent)
	}
}

func CreateJobHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var in recruit.JobInput
		if !decodeJSON(w, r, &in) {
			return
		}
		j, err := svc.CreateJob(r.Context(), in)
		if err != nil {
			writeError(w, "create job", err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, j)
	}
}

func ListJobsHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		list, err := svc.ListJobs(r.Context())
		if err != nil {
			writeError(w, "list jobs", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, list)
	}
}

func GetJobHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "jobID")
		if !ok {
			return
		}
		j, err := svc.GetJob(r.Context(), id)
		if err != nil {
			writeError(w, "get job", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, j)
	}
}

func UpdateJobHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "jobID")
		if !ok {
			return
		}
		var in recruit.JobInput
		if !decodeJSON(w, r, &in) {
			return
		}
		if err := svc.UpdateJob(r.Context(), id, in); err != nil {
			writeError(w, "update job", err)
			return
		}
		writeMessage(w, nethttp.StatusOK, "Job updated successfully!")
	}
}

func DeleteJobHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "jobID")
		if !ok {
			return
		}
		if err := svc.DeleteJob(r.Context(), id); err != nil {
			writeError(w, "delete job", err)
			return
		}
		w.WriteHeader(nethttp.StatusNoContent)
	}
}

func CreateProfileHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var in recruit.ProfileInput
		if !decodeJSON(w, r, &in) {
			return
		}
		p, err := svc.CreateProfile(r.Context(), in)
		if err != nil {
			writeError(w, "create profile", err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, p)
	}
}

func ListProfilesHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		list, err := svc.ListProfiles(r.Context())
		if err != nil {
			writeError(w, "list profiles", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, list)
	}
}

func GetProfileHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "profileID")
		if !ok {
			return
		}
		p, err := svc.GetProfile(r.Context(), id)
		if err != nil {
			writeError(w, "get profile", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, p)
	}
}

func UpdateProfileHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "profileID")
		if !ok {
			return
		}
		var in recruit.ProfileInput
		if !decodeJSON(w, r, &in) {
			return
		}
		if err := svc.UpdateProfile(r.Context(), id, in); err != nil {
			writeError(w, "update profile", err)
			return
		}
		writeMessage(w, nethttp.StatusOK, "Profile updated successfully!")
	}
}

func DeleteProfileHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "profileID")
		if !ok {
			return
		}
		if err := svc.DeleteProfile(r.Context(), id); err != nil {
			writeError(w, "delete profile", err)
			return
		}
		w.WriteHeader(nethttp.StatusNoContent)
	}
}

// GET /profiles/{profileID}/questions
func ListProfileQuestionsHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "profileID")
		if !ok {
			return
		}
		list, err := svc.ListQuestions(r.Context(), id)
		if err != nil {
			writeError(w, "list questions", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, list)
	}
}

func CreateQuestionHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var in recruit.QuestionInput
		if !decodeJSON(w, r, &in) {
			return
		}
		q, err := svc.CreateQuestion(r.Context(), in)
		if err != nil {
			writeError(w, "create question", err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, q)
	}
}

func GetQuestionHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "questionID")
		if !ok {
			return
		}
		q, err := svc.GetQuestion(r.Context(), id)
		if err != nil {
			writeError(w, "get question", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, q)
	}
}

func UpdateQuestionHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "questionID")
		if !ok {
			return
		}
		var in recruit.QuestionInput
		if !decodeJSON(w, r, &in) {
			return
		}
		if err := svc.UpdateQuestion(r.Context(), id, in); err != nil {
			writeError(w, "update question", err)
			return
		}
		writeMessage(w, nethttp.StatusOK, "Question updated successfully!")
	}
}

func DeleteQuestionHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "questionID")
		if !ok {
			return
		}
		if err := svc.DeleteQuestion(r.Context(), id); err != nil {
			writeError(w, "delete question", err)
			return
		}
		w.WriteHeader(nethttp.StatusNoContent)
	}
}
