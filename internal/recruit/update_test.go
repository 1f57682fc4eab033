package recruit

import (
	"reflect"
	"testing"
)

func TestSetListBuild(t *testing.T) {
	var s setList
	s.add("title", "Go dev")
	s.add("company_id", int64(3))

	q, args := s.build("jobs", 42)
	if q != "UPDATE jobs SET title=$1, company_id=$2 WHERE id=$3" {
		t.Fatalf("unexpected sql: %s", q)
	}
	if !reflect.DeepEqual(args, []any{"Go dev", int64(3), int64(42)}) {
		t.Fatalf("unexpected args: %#v", args)
	}
	if len(s.args) != 2 {
		t.Fatalf("build must not mutate the set list")
	}
}

func TestSetListEmpty(t *testing.T) {
	var s setList
	if !s.empty() {
		t.Fatalf("zero value must be empty")
	}
	s.add("name", "x")
	if s.empty() {
		t.Fatalf("expected non-empty")
	}
}
