package quiz

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/quizhire/recruitment/internal/apperr"
	"github.com/quizhire/recruitment/internal/events"
	"github.com/quizhire/recruitment/internal/grading"
)

// publishTimeout bounds how long a request waits on the event publisher.
const publishTimeout = 2 * time.Second

type Service struct {
	store  Store
	events events.Publisher
	now    func() time.Time
}

func NewService(store Store, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{store: store, events: pub, now: time.Now}
}

// Assemble draws exactly NumberQuestions random questions from the profile's
// bank and persists a quiz snapshot of their ids. Nothing is written when the
// bank is too small.
func (s *Service) Assemble(ctx context.Context, req AssembleRequest) (Record, error) {
	if err := validateAssemble(req); err != nil {
		return Record{}, err
	}
	n := *req.NumberQuestions

	questions, err := s.store.SampleQuestions(ctx, *req.ProfileID, n)
	if err != nil {
		return Record{}, err
	}
	if len(questions) != n {
		return Record{}, ErrNotEnoughQuestions
	}

	ids := make([]int64, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	q := Quiz{
		ProfileID:       *req.ProfileID,
		JobID:           *req.JobID,
		UserID:          *req.UserID,
		QuestionIDs:     ids,
		Timer:           *req.Timer,
		NumberQuestions: n,
		CreatedAt:       s.now().Unix(),
	}
	q.ID, err = s.store.CreateQuiz(ctx, q)
	if err != nil {
		return Record{}, err
	}

	s.publish(ctx, events.Event{Type: events.TypeQuizCreated, Key: strconv.FormatInt(q.ID, 10), Data: q})

	return Record{
		QuizID:          q.ID,
		ProfileID:       q.ProfileID,
		JobID:           q.JobID,
		Questions:       questions,
		UserID:          q.UserID,
		Timer:           q.Timer,
		NumberQuestions: n,
	}, nil
}

// Validate scores a submission against the quiz's answer keys and records
// exactly one history row.
func (s *Service) Validate(ctx context.Context, req ValidateRequest) (Outcome, error) {
	if err := validateSubmission(req); err != nil {
		return Outcome{}, err
	}

	q, err := s.store.GetQuiz(ctx, *req.QuizID)
	if err != nil {
		return Outcome{}, err
	}
	keys, err := s.store.AnswerKeys(ctx, q.QuestionIDs)
	if err != nil {
		return Outcome{}, err
	}
	if len(keys) == 0 {
		return Outcome{}, ErrQuestionsNotFound
	}

	results, correct, err := checkAnswers(req.Responses, keys)
	if err != nil {
		return Outcome{}, err
	}

	// total is the number of questions that still resolve, not the number of responses
	total := len(answerMap(keys))
	pct := float64(correct) / float64(total) * 100
	status := StatusFail
	if pct >= PassingPercentage {
		status = StatusPass
	}
	out := Outcome{
		Results:            results,
		ScorePercentage:    pct,
		TotalQuestions:     total,
		CorrectAnswers:     correct,
		NotAnsweredOrFalse: total - correct,
		Status:             status,
	}

	h := History{
		UserID:             *req.UserID,
		QuizID:             q.ID,
		Score:              roundScore(pct),
		Status:             status,
		CorrectAnswers:     correct,
		TotalQuestions:     total,
		ScorePercentage:    pct,
		NotAnsweredOrFalse: out.NotAnsweredOrFalse,
		Results:            results,
		CreatedAt:          s.now().Unix(),
	}
	if h.ID, err = s.store.CreateHistory(ctx, h); err != nil {
		return Outcome{}, err
	}

	s.publish(ctx, events.Event{Type: events.TypeQuizSubmitted, Key: strconv.FormatInt(q.ID, 10), Data: h})
	return out, nil
}

// GetQuiz returns the stored snapshot; answer keys are never part of it.
func (s *Service) GetQuiz(ctx context.Context, id int64) (Quiz, error) {
	return s.store.GetQuiz(ctx, id)
}

func (s *Service) History(ctx context.Context, userID int64) ([]History, error) {
	return s.store.ListHistory(ctx, userID)
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(ctx, e); err != nil {
		log.Printf("quiz: publish %s %s: %v", e.Type, e.Key, err)
	}
}

// checkAnswers grades responses in order. Only the first response for a
// question id counts; later ones produce no result.
func checkAnswers(responses []Response, keys []AnswerKey) ([]Result, int, error) {
	byID := answerMap(keys)
	seen := make(map[int64]struct{}, len(responses))
	results := make([]Result, 0, len(responses))
	correct := 0

	for _, r := range responses {
		qid := *r.QuestionID
		if _, dup := seen[qid]; dup {
			continue
		}
		seen[qid] = struct{}{}

		key, ok := byID[qid]
		if !ok {
			results = append(results, Result{QuestionID: qid, Correct: false, Message: MsgQuestionNotFound})
			continue
		}
		match, err := grading.Match(key.Answer, r.Answer)
		if err != nil {
			return nil, 0, fmt.Errorf("question %d: %w", qid, err)
		}
		msg := MsgIncorrect
		if match {
			correct++
			msg = MsgCorrect
		}
		results = append(results, Result{QuestionID: qid, Correct: match, Message: msg})
	}
	return results, correct, nil
}

func answerMap(keys []AnswerKey) map[int64]AnswerKey {
	m := make(map[int64]AnswerKey, len(keys))
	for _, k := range keys {
		m[k.QuestionID] = k
	}
	return m
}

func validateAssemble(req AssembleRequest) error {
	switch {
	case req.ProfileID == nil:
		return apperr.Validation("profileId", "Profile ID is required.")
	case req.NumberQuestions == nil:
		return apperr.Validation("numberQuestions", "Number of questions is required.")
	case *req.NumberQuestions <= 0:
		return apperr.Validation("numberQuestions", "Number of questions must be a positive integer.")
	case req.Timer == nil:
		return apperr.Validation("timer", "Timer is required.")
	case req.UserID == nil:
		return apperr.Validation("userId", "User ID is required.")
	case req.JobID == nil:
		return apperr.Validation("jobId", "Job ID is required.")
	}
	return nil
}

func validateSubmission(req ValidateRequest) error {
	switch {
	case req.QuizID == nil:
		return apperr.Validation("quizId", "Quiz ID is required.")
	case req.UserID == nil:
		return apperr.Validation("userId", "User ID is required.")
	case len(req.Responses) == 0:
		return apperr.Validation("responses", "Responses are required.")
	}
	for i, r := range req.Responses {
		if r.QuestionID == nil {
			return apperr.Validation("responses", fmt.Sprintf("responses[%d].questionId is required.", i))
		}
	}
	return nil
}
