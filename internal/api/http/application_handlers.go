package http

import (
	nethttp "net/http"

	"github.com/quizhire/recruitment/internal/rbac"
	"github.com/quizhire/recruitment/internal/recruit"
)

// POST /applications  { "userId": 1, "jobId": 2, "resumeFile": "<base64>" }
func CreateApplicationHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var in recruit.ApplicationInput
		if !decodeJSON(w, r, &in) {
			return
		}
		if in.UserID != nil && !actsFor(r, in.UserID, rbac.PermApplicationAll) {
			writeMessage(w, nethttp.StatusForbidden, "Forbidden.")
			return
		}
		sub, err := svc.Apply(r.Context(), in)
		if err != nil {
			writeError(w, "create application", err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, sub)
	}
}

// GET /users/{userID}/applications
func ListUserApplicationsHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID, ok := idParam(w, r, "userID")
		if !ok {
			return
		}
		list, err := svc.ListApplications(r.Context(), userID)
		if err != nil {
			writeError(w, "list applications", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, list)
	}
}

// loadApplication answers 404 for applications the caller may not see.
func loadApplication(w nethttp.ResponseWriter, r *nethttp.Request, svc *recruit.Service, op string) (recruit.Application, bool) {
	id, ok := idParam(w, r, "applicationID")
	if !ok {
		return recruit.Application{}, false
	}
	a, err := svc.GetApplication(r.Context(), id)
	if err == nil && !actsFor(r, a.UserID, rbac.PermApplicationAll) {
		err = recruit.ApplicationNotFound(id)
	}
	if err != nil {
		writeError(w, op, err)
		return recruit.Application{}, false
	}
	return a, true
}

func GetApplicationHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		a, ok := loadApplication(w, r, svc, "get application")
		if !ok {
			return
		}
		writeJSON(w, nethttp.StatusOK, a)
	}
}

func DeleteApplicationHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		a, ok := loadApplication(w, r, svc, "delete application")
		if !ok {
			return
		}
		if err := svc.DeleteApplication(r.Context(), a.ID); err != nil {
			writeError(w, "delete application", err)
			return
		}
		w.WriteHeader(nethttp.StatusNoContent)
	}
}

// PUT /applications/{applicationID}/status  { "status": "reviewed" }
func UpdateApplicationStatusHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "applicationID")
		if !ok {
			return
		}
		var req struct {
			Status string `json:"status"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := svc.UpdateApplicationStatus(r.Context(), id, req.Status); err != nil {
			writeError(w, "update application status", err)
			return
		}
		writeMessage(w, nethttp.StatusOK, "Application updated successfully!")
	}
}

func loadResume(w nethttp.ResponseWriter, r *nethttp.Request, svc *recruit.Service, op string) (recruit.Resume, bool) {
	id, ok := idParam(w, r, "resumeID")
	if !ok {
		return recruit.Resume{}, false
	}
	res, err := svc.GetResume(r.Context(), id)
	if err == nil && !actsFor(r, res.UserID, rbac.PermResumeManageAll) {
		err = recruit.ResumeNotFound(id)
	}
	if err != nil {
		writeError(w, op, err)
		return recruit.Resume{}, false
	}
	return res, true
}

func GetResumeHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		res, ok := loadResume(w, r, svc, "get resume")
		if !ok {
			return
		}
		writeJSON(w, nethttp.StatusOK, res)
	}
}

func DeleteResumeHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		res, ok := loadResume(w, r, svc, "delete resume")
		if !ok {
			return
		}
		if err := svc.DeleteResume(r.Context(), res.ID); err != nil {
			writeError(w, "delete resume", err)
			return
		}
		w.WriteHeader(nethttp.StatusNoContent)
	}
}
