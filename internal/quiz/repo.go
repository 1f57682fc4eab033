package quiz

import (
	"context"

	"github.com/quizhire/recruitment/internal/apperr"
)

var (
	ErrQuizNotFound       = apperr.NotFound("Quiz not found.")
	ErrQuestionsNotFound  = apperr.NotFound("Questions not found.")
	ErrNotEnoughQuestions = apperr.InsufficientData("Not enough questions found for the specified profile.")
)

type Store interface {
	// SampleQuestions returns up to n random distinct questions of a profile.
	SampleQuestions(ctx context.Context, profileID int64, n int) ([]Question, error)
	CreateQuiz(ctx context.Context, q Quiz) (int64, error)
	GetQuiz(ctx context.Context, id int64) (Quiz, error) // ErrQuizNotFound when absent
	// AnswerKeys returns keys for the ids that still exist; missing ids are skipped.
	AnswerKeys(ctx context.Context, ids []int64) ([]AnswerKey, error)
	CreateHistory(ctx context.Context, h History) (int64, error)
	ListHistory(ctx context.Context, userID int64) ([]History, error)
}
