package recruit

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/quizhire/recruitment/internal/apperr"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// setList collects the columns of a partial update in the order provided.
type setList struct {
	cols []string
	args []any
}

func (s *setList) add(col string, v any) {
	s.cols = append(s.cols, col)
	s.args = append(s.args, v)
}

func (s *setList) empty() bool { return len(s.cols) == 0 }

// build renders UPDATE <table> SET a=$1, b=$2 WHERE id=$n.
func (s *setList) build(table string, id int64) (string, []any) {
	parts := make([]string, len(s.cols))
	for i, c := range s.cols {
		parts[i] = c + "=$" + strconv.Itoa(i+1)
	}
	q := "UPDATE " + table + " SET " + strings.Join(parts, ", ") +
		" WHERE id=$" + strconv.Itoa(len(s.cols)+1)
	args := append(append([]any{}, s.args...), id)
	return q, args
}

func fieldsRequired(fields string) error {
	return apperr.Validation("", "At least one field ("+fields+") must be provided for update.")
}

// applyUpdate runs the update and maps zero affected rows to notFound.
func applyUpdate(ctx context.Context, db execer, table string, id int64, s *setList, notFound error) error {
	q, args := s.build(table, id)
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update %s %d: %w", table, id, err)
	}
	return affected(res, notFound)
}

func deleteByID(ctx context.Context, db execer, table string, id int64, notFound error) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", table, id, err)
	}
	return affected(res, notFound)
}

func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
