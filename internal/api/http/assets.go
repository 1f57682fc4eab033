package http

import (
	"io"
	"strconv"

	nethttp "net/http"

	"github.com/quizhire/recruitment/internal/recruit"
)

// GET /resumes/{resumeID}/file streams the stored resume.
func ResumeFileHandler(svc *recruit.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		res, ok := loadResume(w, r, svc, "resume file")
		if !ok {
			return
		}
		rc, err := svc.OpenResume(res)
		if err != nil {
			writeError(w, "resume file", err)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="resume-`+strconv.FormatInt(res.ID, 10)+`.pdf"`)
		_, _ = io.Copy(w, rc)
	}
}
