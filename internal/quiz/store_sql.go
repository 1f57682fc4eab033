package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) SampleQuestions(ctx context.Context, profileID int64, n int) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, type, options, answer FROM questions
		  WHERE profile_id=$1 ORDER BY RANDOM() LIMIT $2`, profileID, n)
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}
	defer rows.Close()

	// n comes from the client; the row count bounds the slice, not n
	var out []Question
	for rows.Next() {
		var q Question
		var opts, ans string
		if err := rows.Scan(&q.ID, &q.Text, &q.Type, &opts, &ans); err != nil {
			return nil, fmt.Errorf("sample questions: %w", err)
		}
		if q.Options, err = rawJSON(opts); err != nil {
			return nil, fmt.Errorf("question %d options: %w", q.ID, err)
		}
		if q.Answer, err = rawJSON(ans); err != nil {
			return nil, fmt.Errorf("question %d answer: %w", q.ID, err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) CreateQuiz(ctx context.Context, q Quiz) (int64, error) {
	ids, err := json.Marshal(q.QuestionIDs)
	if err != nil {
		return 0, err
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	var id int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO quizzes (profile_id, job_id, question_ids, user_id, timer, number_questions, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		q.ProfileID, q.JobID, string(ids), q.UserID, q.Timer, q.NumberQuestions, q.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create quiz: %w", err)
	}
	return id, nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, id int64) (Quiz, error) {
	var (
		q                  Quiz
		profile, job, user sql.NullInt64
		idsJSON            string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, profile_id, job_id, user_id, question_ids, timer, number_questions, created_at
		   FROM quizzes WHERE id=$1`, id).
		Scan(&q.ID, &profile, &job, &user, &idsJSON, &q.Timer, &q.NumberQuestions, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrQuizNotFound
		}
		return Quiz{}, fmt.Errorf("get quiz: %w", err)
	}
	if err := json.Unmarshal([]byte(idsJSON), &q.QuestionIDs); err != nil {
		return Quiz{}, fmt.Errorf("quiz %d question ids: %w", id, err)
	}
	q.ProfileID, q.JobID, q.UserID = profile.Int64, job.Int64, user.Int64
	return q, nil
}

func (s *SQLStore) AnswerKeys(ctx context.Context, ids []int64) ([]AnswerKey, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = "$" + strconv.Itoa(i+1)
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, answer FROM questions WHERE id IN (`+strings.Join(ph, ",")+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("answer keys: %w", err)
	}
	defer rows.Close()

	var out []AnswerKey
	for rows.Next() {
		var k AnswerKey
		var ans string
		if err := rows.Scan(&k.QuestionID, &k.Text, &ans); err != nil {
			return nil, fmt.Errorf("answer keys: %w", err)
		}
		if k.Answer, err = rawJSON(ans); err != nil {
			return nil, fmt.Errorf("question %d answer: %w", k.QuestionID, err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (s *SQLStore) CreateHistory(ctx context.Context, h History) (int64, error) {
	results, err := json.Marshal(h.Results)
	if err != nil {
		return 0, err
	}
	if h.CreatedAt == 0 {
		h.CreatedAt = time.Now().Unix()
	}
	var id int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO quiz_history
		   (user_id, quiz_id, score, status, correct_answers, total_questions, score_percentage, not_answered_or_false, results, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id`,
		h.UserID, h.QuizID, h.Score, h.Status, h.CorrectAnswers, h.TotalQuestions,
		h.ScorePercentage, h.NotAnsweredOrFalse, string(results), h.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create quiz history: %w", err)
	}
	return id, nil
}

func (s *SQLStore) ListHistory(ctx context.Context, userID int64) ([]History, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, quiz_id, score, status, correct_answers, total_questions,
		        score_percentage, not_answered_or_false, results, created_at
		   FROM quiz_history WHERE user_id=$1 ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list quiz history: %w", err)
	}
	defer rows.Close()

	out := []History{}
	for rows.Next() {
		var (
			h           History
			quizID      sql.NullInt64
			resultsJSON string
		)
		if err := rows.Scan(&h.ID, &h.UserID, &quizID, &h.Score, &h.Status, &h.CorrectAnswers,
			&h.TotalQuestions, &h.ScorePercentage, &h.NotAnsweredOrFalse, &resultsJSON, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("list quiz history: %w", err)
		}
		h.QuizID = quizID.Int64
		if err := json.Unmarshal([]byte(resultsJSON), &h.Results); err != nil {
			return nil, fmt.Errorf("history %d results: %w", h.ID, err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// roundScore is the NUMERIC(5,2) form of a percentage.
func roundScore(pct float64) decimal.Decimal {
	return decimal.NewFromFloat(pct).Round(2)
}

func rawJSON(s string) (json.RawMessage, error) {
	if !json.Valid([]byte(s)) {
		return nil, errors.New("stored value is not valid JSON")
	}
	return json.RawMessage(s), nil
}
