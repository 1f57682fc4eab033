package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/quizhire/recruitment/internal/apperr"
	"github.com/quizhire/recruitment/internal/events"
)

type fakeStore struct {
	bank      map[int64][]Question // profileID -> questions
	answers   map[int64]json.RawMessage
	quizzes   map[int64]Quiz
	histories []History

	sampleErr  error
	historyErr error

	createQuizCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bank:    map[int64][]Question{},
		answers: map[int64]json.RawMessage{},
		quizzes: map[int64]Quiz{},
	}
}

func (f *fakeStore) addQuestion(profileID, id int64, answer string) {
	q := Question{ID: id, Text: "q", Type: "multiple-choice", Options: json.RawMessage(`["A","B","C"]`), Answer: json.RawMessage(answer)}
	f.bank[profileID] = append(f.bank[profileID], q)
	f.answers[id] = q.Answer
}

func (f *fakeStore) SampleQuestions(_ context.Context, profileID int64, n int) ([]Question, error) {
	if f.sampleErr != nil {
		return nil, f.sampleErr
	}
	pool := f.bank[profileID]
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]Question, n)
	copy(out, pool[:n])
	return out, nil
}

func (f *fakeStore) CreateQuiz(_ context.Context, q Quiz) (int64, error) {
	f.createQuizCalls++
	q.ID = int64(len(f.quizzes) + 1)
	f.quizzes[q.ID] = q
	return q.ID, nil
}

func (f *fakeStore) GetQuiz(_ context.Context, id int64) (Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return Quiz{}, ErrQuizNotFound
	}
	return q, nil
}

func (f *fakeStore) AnswerKeys(_ context.Context, ids []int64) ([]AnswerKey, error) {
	var out []AnswerKey
	for _, id := range ids {
		if a, ok := f.answers[id]; ok {
			out = append(out, AnswerKey{QuestionID: id, Answer: a})
		}
	}
	return out, nil
}

func (f *fakeStore) CreateHistory(_ context.Context, h History) (int64, error) {
	if f.historyErr != nil {
		return 0, f.historyErr
	}
	h.ID = int64(len(f.histories) + 1)
	f.histories = append(f.histories, h)
	return h.ID, nil
}

func (f *fakeStore) ListHistory(_ context.Context, userID int64) ([]History, error) {
	var out []History
	for _, h := range f.histories {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func i64(v int64) *int64 { return &v }
func intp(v int) *int    { return &v }

func validAssemble() AssembleRequest {
	return AssembleRequest{ProfileID: i64(1), NumberQuestions: intp(3), Timer: intp(20), UserID: i64(7), JobID: i64(9)}
}

func resp(qid int64, answer string) Response {
	return Response{QuestionID: i64(qid), Answer: json.RawMessage(answer)}
}

// seedQuiz stores a quiz over questions 1..4 with answers "A".."D".
func seedQuiz(f *fakeStore) int64 {
	for i, a := range []string{`"A"`, `"B"`, `"C"`, `"D"`} {
		f.addQuestion(1, int64(i+1), a)
	}
	f.quizzes[1] = Quiz{ID: 1, ProfileID: 1, QuestionIDs: []int64{1, 2, 3, 4}, NumberQuestions: 4}
	return 1
}

func TestAssembleReturnsExactCount(t *testing.T) {
	store := newFakeStore()
	for id := int64(1); id <= 5; id++ {
		store.addQuestion(1, id, `"A"`)
	}
	pub := &recordingPublisher{}
	svc := NewService(store, pub)

	rec, err := svc.Assemble(context.Background(), validAssemble())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(rec.Questions) != 3 || rec.NumberQuestions != 3 {
		t.Fatalf("expected 3 questions, got %d (numberQuestions=%d)", len(rec.Questions), rec.NumberQuestions)
	}
	if rec.QuizID == 0 || rec.ProfileID != 1 || rec.JobID != 9 || rec.UserID != 7 || rec.Timer != 20 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	stored := store.quizzes[rec.QuizID]
	if len(stored.QuestionIDs) != 3 {
		t.Fatalf("stored snapshot has %d ids", len(stored.QuestionIDs))
	}
	for i, q := range rec.Questions {
		if stored.QuestionIDs[i] != q.ID {
			t.Fatalf("snapshot order %v does not match returned questions", stored.QuestionIDs)
		}
		if len(q.Answer) == 0 {
			t.Fatalf("answer key must be returned to the caller")
		}
	}
	if len(pub.events) != 1 || pub.events[0].Type != events.TypeQuizCreated {
		t.Fatalf("expected quiz.created event, got %+v", pub.events)
	}
}

func TestAssembleNotEnoughQuestionsWritesNothing(t *testing.T) {
	store := newFakeStore()
	store.addQuestion(1, 1, `"A"`)
	store.addQuestion(1, 2, `"A"`)
	svc := NewService(store, nil)

	_, err := svc.Assemble(context.Background(), validAssemble())
	if !errors.Is(err, ErrNotEnoughQuestions) {
		t.Fatalf("err = %v, want ErrNotEnoughQuestions", err)
	}
	if apperr.KindOf(err) != apperr.KindInsufficientData {
		t.Fatalf("kind = %v", apperr.KindOf(err))
	}
	if store.createQuizCalls != 0 {
		t.Fatalf("no quiz must be written, got %d inserts", store.createQuizCalls)
	}
}

func TestAssembleValidation(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*AssembleRequest)
		field string
	}{
		{"profile", func(r *AssembleRequest) { r.ProfileID = nil }, "profileId"},
		{"count missing", func(r *AssembleRequest) { r.NumberQuestions = nil }, "numberQuestions"},
		{"count zero", func(r *AssembleRequest) { r.NumberQuestions = intp(0) }, "numberQuestions"},
		{"count negative", func(r *AssembleRequest) { r.NumberQuestions = intp(-2) }, "numberQuestions"},
		{"timer", func(r *AssembleRequest) { r.Timer = nil }, "timer"},
		{"user", func(r *AssembleRequest) { r.UserID = nil }, "userId"},
		{"job", func(r *AssembleRequest) { r.JobID = nil }, "jobId"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := newFakeStore()
			store.sampleErr = errors.New("store must not be touched")
			req := validAssemble()
			c.mut(&req)

			_, err := NewService(store, nil).Assemble(context.Background(), req)
			var ae *apperr.Error
			if !errors.As(err, &ae) || ae.Kind != apperr.KindValidation {
				t.Fatalf("err = %v, want validation error", err)
			}
			if ae.Field != c.field {
				t.Fatalf("field = %q, want %q", ae.Field, c.field)
			}
		})
	}
}

func TestAssemblePropagatesStoreError(t *testing.T) {
	store := newFakeStore()
	boom := errors.New("connection reset")
	store.sampleErr = boom
	_, err := NewService(store, nil).Assemble(context.Background(), validAssemble())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want store error", err)
	}
	if apperr.KindOf(err) != apperr.KindUnknown {
		t.Fatalf("store errors must stay unclassified")
	}
}

func TestValidateThreeOfFourPasses(t *testing.T) {
	store := newFakeStore()
	quizID := seedQuiz(store)
	pub := &recordingPublisher{}
	svc := NewService(store, pub)

	out, err := svc.Validate(context.Background(), ValidateRequest{
		QuizID: i64(quizID),
		UserID: i64(7),
		Responses: []Response{
			resp(1, `"A"`), resp(2, `"B"`), resp(3, `"C"`), resp(4, `"A"`),
		},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if out.CorrectAnswers != 3 || out.TotalQuestions != 4 || out.NotAnsweredOrFalse != 1 {
		t.Fatalf("unexpected counts: %+v", out)
	}
	if out.ScorePercentage != 75.0 || out.Status != StatusPass {
		t.Fatalf("score=%v status=%s, want 75 Pass", out.ScorePercentage, out.Status)
	}
	if len(store.histories) != 1 {
		t.Fatalf("expected one history row, got %d", len(store.histories))
	}
	h := store.histories[0]
	if h.UserID != 7 || h.QuizID != quizID || h.Score.String() != "75" || h.Status != StatusPass || len(h.Results) != 4 {
		t.Fatalf("unexpected history: %+v", h)
	}
	if len(pub.events) != 1 || pub.events[0].Type != events.TypeQuizSubmitted {
		t.Fatalf("expected quiz.submitted event, got %+v", pub.events)
	}
}

func TestValidateTwoOfFourFails(t *testing.T) {
	store := newFakeStore()
	quizID := seedQuiz(store)

	out, err := NewService(store, nil).Validate(context.Background(), ValidateRequest{
		QuizID:    i64(quizID),
		UserID:    i64(7),
		Responses: []Response{resp(1, `"A"`), resp(2, `"B"`), resp(3, `"X"`), resp(4, `"X"`)},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if out.ScorePercentage != 50.0 || out.Status != StatusFail {
		t.Fatalf("score=%v status=%s, want 50 Fail", out.ScorePercentage, out.Status)
	}
}

func TestValidateThresholdIsInclusive(t *testing.T) {
	store := newFakeStore()
	var ids []int64
	for id := int64(1); id <= 10; id++ {
		store.addQuestion(1, id, `"A"`)
		ids = append(ids, id)
	}
	store.quizzes[1] = Quiz{ID: 1, QuestionIDs: ids, NumberQuestions: 10}

	var responses []Response
	for id := int64(1); id <= 10; id++ {
		answer := `"A"`
		if id > 7 {
			answer = `"B"`
		}
		responses = append(responses, resp(id, answer))
	}
	out, err := NewService(store, nil).Validate(context.Background(), ValidateRequest{QuizID: i64(1), UserID: i64(1), Responses: responses})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if out.ScorePercentage != 70.0 || out.Status != StatusPass {
		t.Fatalf("score=%v status=%s, want exactly 70 to pass", out.ScorePercentage, out.Status)
	}
}

func TestValidateDuplicateResponsesCountOnce(t *testing.T) {
	store := newFakeStore()
	quizID := seedQuiz(store)

	out, err := NewService(store, nil).Validate(context.Background(), ValidateRequest{
		QuizID:    i64(quizID),
		UserID:    i64(7),
		Responses: []Response{resp(1, `"A"`), resp(1, `"B"`), resp(1, `"A"`)},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("expected a single result for q1, got %+v", out.Results)
	}
	if !out.Results[0].Correct || out.Results[0].Message != MsgCorrect {
		t.Fatalf("first-seen response must win: %+v", out.Results[0])
	}
	if out.CorrectAnswers != 1 || out.TotalQuestions != 4 {
		t.Fatalf("correct=%d total=%d", out.CorrectAnswers, out.TotalQuestions)
	}
}

func TestValidateDuplicateFirstWrongStaysWrong(t *testing.T) {
	store := newFakeStore()
	quizID := seedQuiz(store)

	out, err := NewService(store, nil).Validate(context.Background(), ValidateRequest{
		QuizID:    i64(quizID),
		UserID:    i64(7),
		Responses: []Response{resp(1, `"B"`), resp(1, `"A"`)},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(out.Results) != 1 || out.Results[0].Correct || out.CorrectAnswers != 0 {
		t.Fatalf("later duplicate must be ignored: %+v", out)
	}
}

func TestValidateUnknownQuestion(t *testing.T) {
	store := newFakeStore()
	quizID := seedQuiz(store)

	out, err := NewService(store, nil).Validate(context.Background(), ValidateRequest{
		QuizID:    i64(quizID),
		UserID:    i64(7),
		Responses: []Response{resp(99, `"A"`), resp(1, `"A"`)},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(out.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out.Results))
	}
	got := out.Results[0]
	if got.QuestionID != 99 || got.Correct || got.Message != MsgQuestionNotFound {
		t.Fatalf("unexpected result for unknown question: %+v", got)
	}
	if out.TotalQuestions != 4 || out.CorrectAnswers != 1 || out.ScorePercentage != 25.0 {
		t.Fatalf("totals must come from the quiz, got %+v", out)
	}
}

func TestValidateDeletedQuestionShrinksTotal(t *testing.T) {
	store := newFakeStore()
	quizID := seedQuiz(store)
	delete(store.answers, 4)

	out, err := NewService(store, nil).Validate(context.Background(), ValidateRequest{
		QuizID:    i64(quizID),
		UserID:    i64(7),
		Responses: []Response{resp(1, `"A"`), resp(2, `"B"`), resp(3, `"C"`), resp(4, `"D"`)},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if out.TotalQuestions != 3 || out.CorrectAnswers != 3 || out.ScorePercentage != 100 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	last := out.Results[3]
	if last.QuestionID != 4 || last.Message != MsgQuestionNotFound {
		t.Fatalf("deleted question must be reported per response: %+v", last)
	}
}

func TestValidateStructuredAnswersAreOrderSensitive(t *testing.T) {
	store := newFakeStore()
	store.addQuestion(1, 1, `["A","B"]`)
	store.addQuestion(1, 2, `["A","B"]`)
	store.quizzes[1] = Quiz{ID: 1, QuestionIDs: []int64{1, 2}, NumberQuestions: 2}

	out, err := NewService(store, nil).Validate(context.Background(), ValidateRequest{
		QuizID:    i64(1),
		UserID:    i64(7),
		Responses: []Response{resp(1, `["A","B"]`), resp(2, `["B","A"]`)},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !out.Results[0].Correct || out.Results[1].Correct {
		t.Fatalf("expected [correct, incorrect], got %+v", out.Results)
	}
}

func TestValidateIsRepeatable(t *testing.T) {
	store := newFakeStore()
	quizID := seedQuiz(store)
	svc := NewService(store, nil)
	req := ValidateRequest{
		QuizID:    i64(quizID),
		UserID:    i64(7),
		Responses: []Response{resp(1, `"A"`), resp(2, `"X"`), resp(3, `"C"`)},
	}

	first, err := svc.Validate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Validate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if first.ScorePercentage != second.ScorePercentage || first.Status != second.Status {
		t.Fatalf("resubmission changed outcome: %+v vs %+v", first, second)
	}
	if len(store.histories) != 2 {
		t.Fatalf("each call writes its own history row, got %d", len(store.histories))
	}
}

func TestValidateNotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	req := ValidateRequest{QuizID: i64(42), UserID: i64(7), Responses: []Response{resp(1, `"A"`)}}

	if _, err := svc.Validate(context.Background(), req); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}

	store.quizzes[42] = Quiz{ID: 42, QuestionIDs: []int64{100, 101}}
	if _, err := svc.Validate(context.Background(), req); !errors.Is(err, ErrQuestionsNotFound) {
		t.Fatalf("err = %v, want ErrQuestionsNotFound", err)
	}
	if len(store.histories) != 0 {
		t.Fatalf("no history must be written on not-found")
	}
}

func TestValidateValidation(t *testing.T) {
	base := func() ValidateRequest {
		return ValidateRequest{QuizID: i64(1), UserID: i64(1), Responses: []Response{resp(1, `"A"`)}}
	}
	cases := []struct {
		name  string
		mut   func(*ValidateRequest)
		field string
	}{
		{"quiz", func(r *ValidateRequest) { r.QuizID = nil }, "quizId"},
		{"user", func(r *ValidateRequest) { r.UserID = nil }, "userId"},
		{"responses", func(r *ValidateRequest) { r.Responses = nil }, "responses"},
		{"question id", func(r *ValidateRequest) { r.Responses = []Response{{Answer: json.RawMessage(`"A"`)}} }, "responses"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := base()
			c.mut(&req)
			_, err := NewService(newFakeStore(), nil).Validate(context.Background(), req)
			var ae *apperr.Error
			if !errors.As(err, &ae) || ae.Kind != apperr.KindValidation || ae.Field != c.field {
				t.Fatalf("err = %v, want validation error on %s", err, c.field)
			}
		})
	}
}

func TestValidateHistoryFailureWritesNothingAndPublishesNothing(t *testing.T) {
	store := newFakeStore()
	quizID := seedQuiz(store)
	store.historyErr = errors.New("disk full")
	pub := &recordingPublisher{}

	_, err := NewService(store, pub).Validate(context.Background(), ValidateRequest{
		QuizID: i64(quizID), UserID: i64(7), Responses: []Response{resp(1, `"A"`)},
	})
	if err == nil {
		t.Fatalf("expected store error")
	}
	if len(pub.events) != 0 {
		t.Fatalf("no event may be published for a failed submission")
	}
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	store := newFakeStore()
	quizID := seedQuiz(store)
	pub := &recordingPublisher{err: errors.New("redis down")}

	if _, err := NewService(store, pub).Validate(context.Background(), ValidateRequest{
		QuizID: i64(quizID), UserID: i64(7), Responses: []Response{resp(1, `"A"`)},
	}); err != nil {
		t.Fatalf("publish errors must be swallowed, got %v", err)
	}
	if len(store.histories) != 1 {
		t.Fatalf("history must still be written")
	}
}

type deadlinePublisher struct {
	deadline time.Time
	bounded  bool
}

func (p *deadlinePublisher) Publish(ctx context.Context, _ events.Event) error {
	p.deadline, p.bounded = ctx.Deadline()
	return ctx.Err()
}

func TestPublishUsesBoundedContext(t *testing.T) {
	store := newFakeStore()
	for id := int64(1); id <= 3; id++ {
		store.addQuestion(1, id, `"A"`)
	}
	pub := &deadlinePublisher{}
	svc := NewService(store, pub)

	// a request context that is already done must not suppress the event
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if _, err := svc.Assemble(ctx, validAssemble()); err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !pub.bounded {
		t.Fatalf("publish ran without a deadline")
	}
	if pub.deadline.After(start.Add(publishTimeout + time.Second)) {
		t.Fatalf("publish deadline %v exceeds %v", pub.deadline.Sub(start), publishTimeout)
	}
}

func TestAssembleHugeCountReportsNotEnough(t *testing.T) {
	store := newFakeStore()
	for id := int64(1); id <= 4; id++ {
		store.addQuestion(1, id, `"A"`)
	}
	svc := NewService(store, nil)
	req := validAssemble()
	req.NumberQuestions = intp(1 << 50)

	if _, err := svc.Assemble(context.Background(), req); !errors.Is(err, ErrNotEnoughQuestions) {
		t.Fatalf("err = %v, want ErrNotEnoughQuestions", err)
	}
	if store.createQuizCalls != 0 {
		t.Fatalf("quiz written for an unsatisfiable request")
	}
}
