package http

import (
	nethttp "net/http"

	"github.com/quizhire/recruitment/internal/quiz"
	"github.com/quizhire/recruitment/internal/rbac"
)

// POST /quizzes
func AssembleQuizHandler(svc *quiz.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req quiz.AssembleRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.UserID != nil && !actsFor(r, req.UserID, rbac.PermQuizAnyUser) {
			writeMessage(w, nethttp.StatusForbidden, "Forbidden.")
			return
		}
		rec, err := svc.Assemble(r.Context(), req)
		if err != nil {
			writeError(w, "assemble quiz", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, rec)
	}
}

// GET /quizzes/{quizID}
func GetQuizHandler(svc *quiz.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, ok := idParam(w, r, "quizID")
		if !ok {
			return
		}
		q, err := ownedQuiz(r, svc, id)
		if err != nil {
			writeError(w, "get quiz", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, q)
	}
}

// ownedQuiz loads a quiz the caller may use; other users' quizzes are reported
// as missing.
func ownedQuiz(r *nethttp.Request, svc *quiz.Service, id int64) (quiz.Quiz, error) {
	q, err := svc.GetQuiz(r.Context(), id)
	if err != nil {
		return quiz.Quiz{}, err
	}
	if !actsFor(r, &q.UserID, rbac.PermQuizAnyUser) {
		return quiz.Quiz{}, quiz.ErrQuizNotFound
	}
	return q, nil
}

// POST /quizzes/validate
func ValidateAnswersHandler(svc *quiz.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req quiz.ValidateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.UserID != nil && !actsFor(r, req.UserID, rbac.PermQuizAnyUser) {
			writeMessage(w, nethttp.StatusForbidden, "Forbidden.")
			return
		}
		if req.QuizID != nil {
			if _, err := ownedQuiz(r, svc, *req.QuizID); err != nil {
				writeError(w, "validate answers", err)
				return
			}
		}
		out, err := svc.Validate(r.Context(), req)
		if err != nil {
			writeError(w, "validate answers", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, out)
	}
}

// GET /users/{userID}/quiz-history
func QuizHistoryHandler(svc *quiz.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID, ok := idParam(w, r, "userID")
		if !ok {
			return
		}
		list, err := svc.History(r.Context(), userID)
		if err != nil {
			writeError(w, "quiz history", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, list)
	}
}
