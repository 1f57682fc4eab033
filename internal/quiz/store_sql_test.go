package quiz

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/quizhire/recruitment/internal/db/dbtest"
)

func seedBank(t *testing.T, dbh *sql.DB, questions int) {
	t.Helper()
	dbtest.Exec(t, dbh, `INSERT INTO users (id, email, role, created_at, updated_at) VALUES (7, 'cand@example.com', 'user', 1, 1)`)
	dbtest.Exec(t, dbh, `INSERT INTO companies (id, name) VALUES (1, 'Acme')`)
	dbtest.Exec(t, dbh, `INSERT INTO jobs (id, title, company_id) VALUES (9, 'Backend Engineer', 1)`)
	dbtest.Exec(t, dbh, `INSERT INTO profiles (id, title) VALUES (1, 'Go'), (2, 'Empty')`)
	for i := 1; i <= questions; i++ {
		dbtest.Exec(t, dbh,
			`INSERT INTO questions (profile_id, text, type, options, answer, created_at, updated_at)
			 VALUES (1, 'question', 'multiple-choice', '["A","B"]', '"A"', 1, 1)`)
	}
}

func TestSQLStoreSampleAndSnapshot(t *testing.T) {
	dbh := dbtest.Open(t)
	seedBank(t, dbh, 6)
	store := NewSQLStore(dbh)
	ctx := context.Background()

	qs, err := store.SampleQuestions(ctx, 1, 4)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(qs) != 4 {
		t.Fatalf("got %d questions, want 4", len(qs))
	}
	seen := map[int64]bool{}
	for _, q := range qs {
		if seen[q.ID] {
			t.Fatalf("duplicate question %d in sample", q.ID)
		}
		seen[q.ID] = true
		if string(q.Answer) != `"A"` || string(q.Options) != `["A","B"]` {
			t.Fatalf("unexpected question payload: %+v", q)
		}
	}

	short, err := store.SampleQuestions(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(short) != 6 {
		t.Fatalf("short bank returned %d rows", len(short))
	}
	if empty, _ := store.SampleQuestions(ctx, 2, 1); len(empty) != 0 {
		t.Fatalf("empty profile returned %d rows", len(empty))
	}

	ids := []int64{qs[2].ID, qs[0].ID, qs[3].ID, qs[1].ID}
	quizID, err := store.CreateQuiz(ctx, Quiz{ProfileID: 1, JobID: 9, UserID: 7, QuestionIDs: ids, Timer: 15, NumberQuestions: 4})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	got, err := store.GetQuiz(ctx, quizID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if got.ProfileID != 1 || got.JobID != 9 || got.UserID != 7 || got.Timer != 15 || got.CreatedAt == 0 {
		t.Fatalf("unexpected quiz: %+v", got)
	}
	for i := range ids {
		if got.QuestionIDs[i] != ids[i] {
			t.Fatalf("snapshot order changed: %v vs %v", got.QuestionIDs, ids)
		}
	}

	keys, err := store.AnswerKeys(ctx, got.QuestionIDs)
	if err != nil {
		t.Fatalf("answer keys: %v", err)
	}
	if len(keys) != 4 {
		t.Fatalf("got %d keys", len(keys))
	}
}

func TestSQLStoreGetQuizNotFound(t *testing.T) {
	store := NewSQLStore(dbtest.Open(t))
	if _, err := store.GetQuiz(context.Background(), 404); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestSQLStoreAnswerKeysSkipsDeleted(t *testing.T) {
	dbh := dbtest.Open(t)
	seedBank(t, dbh, 3)
	store := NewSQLStore(dbh)

	dbtest.Exec(t, dbh, `DELETE FROM questions WHERE id = 2`)
	keys, err := store.AnswerKeys(context.Background(), []int64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 {
		t.Fatalf("got %d keys, want 2", len(keys))
	}
	if none, err := store.AnswerKeys(context.Background(), nil); err != nil || none != nil {
		t.Fatalf("empty id list: %v %v", none, err)
	}
}

func TestSQLStoreEndToEndScoring(t *testing.T) {
	dbh := dbtest.Open(t)
	seedBank(t, dbh, 4)
	svc := NewService(NewSQLStore(dbh), nil)
	ctx := context.Background()

	req := validAssemble()
	req.NumberQuestions = intp(4)
	rec, err := svc.Assemble(ctx, req)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	responses := make([]Response, 0, 4)
	for i, q := range rec.Questions {
		answer := `"A"`
		if i == 3 {
			answer = `"B"`
		}
		responses = append(responses, resp(q.ID, answer))
	}
	out, err := svc.Validate(ctx, ValidateRequest{QuizID: i64(rec.QuizID), UserID: i64(7), Responses: responses})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if out.ScorePercentage != 75 || out.Status != StatusPass {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	hist, err := svc.History(ctx, 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 1 {
		t.Fatalf("got %d history rows", len(hist))
	}
	h := hist[0]
	if h.QuizID != rec.QuizID || h.Status != StatusPass || !h.Score.Equal(roundScore(75)) || len(h.Results) != 4 {
		t.Fatalf("unexpected history row: %+v", h)
	}

	if _, err := svc.Assemble(ctx, AssembleRequest{ProfileID: i64(2), NumberQuestions: intp(1), Timer: intp(1), UserID: i64(7), JobID: i64(9)}); !errors.Is(err, ErrNotEnoughQuestions) {
		t.Fatalf("err = %v, want ErrNotEnoughQuestions", err)
	}
	var quizzes int
	if err := dbh.QueryRow(`SELECT COUNT(*) FROM quizzes`).Scan(&quizzes); err != nil {
		t.Fatal(err)
	}
	if quizzes != 1 {
		t.Fatalf("failed assembly must not write a quiz, have %d", quizzes)
	}
}

func TestRoundScore(t *testing.T) {
	cases := map[float64]string{
		75:        "75",
		100.0 / 3: "33.33",
		200.0 / 3: "66.67",
		0:         "0",
	}
	for in, want := range cases {
		if got := roundScore(in).String(); got != want {
			t.Fatalf("roundScore(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestAssembleCountBoundariesWithSQLStore(t *testing.T) {
	cases := []struct {
		name    string
		pool    int
		count   int
		wantErr error
	}{
		{"single question", 4, 1, nil},
		{"pool exactly the count", 4, 4, nil},
		{"one more than the pool", 4, 5, ErrNotEnoughQuestions},
		{"huge count", 4, 1 << 50, ErrNotEnoughQuestions},
		{"empty pool", 0, 1, ErrNotEnoughQuestions},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dbh := dbtest.Open(t)
			seedBank(t, dbh, c.pool)
			svc := NewService(NewSQLStore(dbh), nil)

			req := AssembleRequest{ProfileID: i64(1), NumberQuestions: intp(c.count), Timer: intp(10), UserID: i64(7), JobID: i64(9)}
			rec, err := svc.Assemble(context.Background(), req)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("err = %v, want %v", err, c.wantErr)
			}

			var stored int
			if err := dbh.QueryRow(`SELECT COUNT(*) FROM quizzes`).Scan(&stored); err != nil {
				t.Fatal(err)
			}
			if c.wantErr != nil {
				if stored != 0 {
					t.Fatalf("failed assembly stored %d quizzes", stored)
				}
				return
			}
			if len(rec.Questions) != c.count || stored != 1 {
				t.Fatalf("got %d questions and %d stored quizzes", len(rec.Questions), stored)
			}
		})
	}
}
