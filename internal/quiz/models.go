package quiz

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PassingPercentage is the minimum score, on a 0-100 scale, for a "Pass".
const PassingPercentage = 70.0

const (
	StatusPass = "Pass"
	StatusFail = "Fail"

	MsgCorrect          = "Correct"
	MsgIncorrect        = "Incorrect"
	MsgQuestionNotFound = "Question not found"
)

// Question is a bank question as served in an assembled quiz. Options and
// Answer are opaque JSON values.
type Question struct {
	ID      int64           `json:"id"`
	Text    string          `json:"text"`
	Type    string          `json:"type"`
	Options json.RawMessage `json:"options"`
	Answer  json.RawMessage `json:"answer"`
}

type AnswerKey struct {
	QuestionID int64
	Text       string
	Answer     json.RawMessage
}

// Quiz is the persisted snapshot. QuestionIDs never change after creation.
type Quiz struct {
	ID              int64   `json:"quizId"`
	ProfileID       int64   `json:"profileId"`
	JobID           int64   `json:"jobId"`
	UserID          int64   `json:"userId"`
	QuestionIDs     []int64 `json:"questionIds"`
	Timer           int     `json:"timer"`
	NumberQuestions int     `json:"numberQuestions"`
	CreatedAt       int64   `json:"createdAt"`
}

// Record is what Assemble returns, answer keys included.
type Record struct {
	QuizID          int64      `json:"quizId"`
	ProfileID       int64      `json:"profileId"`
	JobID           int64      `json:"jobId"`
	Questions       []Question `json:"questions"`
	UserID          int64      `json:"userId"`
	Timer           int        `json:"timer"`
	NumberQuestions int        `json:"numberQuestions"`
}

// AssembleRequest uses pointers so a missing field can be told apart from zero.
type AssembleRequest struct {
	ProfileID       *int64 `json:"profileId"`
	NumberQuestions *int   `json:"numberQuestions"`
	Timer           *int   `json:"timer"`
	UserID          *int64 `json:"userId"`
	JobID           *int64 `json:"jobId"`
}

type Response struct {
	QuestionID *int64          `json:"questionId"`
	Answer     json.RawMessage `json:"answer"`
}

type ValidateRequest struct {
	QuizID    *int64     `json:"quizId"`
	UserID    *int64     `json:"userId"`
	Responses []Response `json:"responses"`
}

type Result struct {
	QuestionID int64  `json:"questionId"`
	Correct    bool   `json:"correct"`
	Message    string `json:"message"`
}

type Outcome struct {
	Results            []Result `json:"results"`
	ScorePercentage    float64  `json:"scorePercentage"`
	TotalQuestions     int      `json:"totalQuestions"`
	CorrectAnswers     int      `json:"correctAnswers"`
	NotAnsweredOrFalse int      `json:"notAnsweredOrFalse"`
	Status             string   `json:"status"`
}

// History is one answer-submission attempt. Score is ScorePercentage rounded
// to two places, as stored in the NUMERIC(5,2) column.
type History struct {
	ID                 int64           `json:"id"`
	UserID             int64           `json:"userId"`
	QuizID             int64           `json:"quizId"`
	Score              decimal.Decimal `json:"score"`
	Status             string          `json:"status"`
	CorrectAnswers     int             `json:"correctAnswers"`
	TotalQuestions     int             `json:"totalQuestions"`
	ScorePercentage    float64         `json:"scorePercentage"`
	NotAnsweredOrFalse int             `json:"notAnsweredOrFalse"`
	Results            []Result        `json:"results"`
	CreatedAt          int64           `json:"createdAt"`
}
