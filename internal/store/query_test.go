package store

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestCompileRunQuery_NoFilter(t *testing.T) {
	query, params := compileRunQuery(RunFilter{})

	want := `SELECT id, created_at, mode, rule_files, case_count, pass_count FROM runs ORDER BY created_at DESC, id COLLATE BINARY ASC`
	if query != want {
		t.Errorf("query = %q, expected %q", query, want)
	}
	if len(params) != 0 {
		t.Errorf("params = %v, expected none", params)
	}
}

func TestCompileRunQuery_AllFilters(t *testing.T) {
	f := RunFilter{
		Mode:       "union",
		FailedOnly: true,
		Since:      time.Unix(1500, 0),
		Limit:      10,
	}
	query, params := compileRunQuery(f)

	want := `SELECT id, created_at, mode, rule_files, case_count, pass_count FROM runs` +
		` WHERE mode = ? AND pass_count < case_count AND created_at >= ?` +
		` ORDER BY created_at DESC, id COLLATE BINARY ASC LIMIT ?`
	if query != want {
		t.Errorf("query = %q, expected %q", query, want)
	}
	wantParams := []any{"union", int64(1500), 10}
	if !reflect.DeepEqual(params, wantParams) {
		t.Errorf("params = %v, expected %v", params, wantParams)
	}
}

func TestCompileRunQuery_FailedOnlyAddsNoParam(t *testing.T) {
	query, params := compileRunQuery(RunFilter{FailedOnly: true})

	if len(params) != 0 {
		t.Errorf("params = %v, expected none", params)
	}
	if want := "WHERE pass_count < case_count"; !strings.Contains(query, want) {
		t.Errorf("query %q missing %q", query, want)
	}
}
