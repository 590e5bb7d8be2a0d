package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"studyspace/internal/infra/persistence/postgres/testutil"
)

func newStubStore(t *testing.T) (*Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	var gotDSN string
	restore := OverrideSQLOpen(func(driverName, dsn string) (*sql.DB, error) {
		if driverName != "pgx" {
			t.Fatalf("unexpected driver %s", driverName)
		}
		gotDSN = dsn
		return db, nil
	})
	t.Cleanup(restore)
	s, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if gotDSN != defaultDSN {
		t.Fatalf("expected default dsn, got %s", gotDSN)
	}
	return s, conn
}

func TestNewStoreCreatesStateTable(t *testing.T) {
	_, conn := newStubStore(t)
	if len(conn.Execs) == 0 || !strings.Contains(conn.Execs[0], "JSONB") {
		t.Fatalf("expected JSONB state table DDL, got %v", conn.Execs)
	}
}

func TestStoreSetGetDelete(t *testing.T) {
	ctx := context.Background()
	s, conn := newStubStore(t)

	if _, ok, err := s.Get(ctx, "study_space_feedback"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "study_space_feedback", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "study_space_feedback", []byte(`[{"rating":5}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if rows := conn.Rows("state"); len(rows) != 1 {
		t.Fatalf("expected upsert to keep one row, got %d", len(rows))
	}
	got, ok, err := s.Get(ctx, "study_space_feedback")
	if err != nil || !ok || string(got) != `[{"rating":5}]` {
		t.Fatalf("get: %s ok=%v err=%v", got, ok, err)
	}
	if existed, err := s.Delete(ctx, "study_space_feedback"); err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	if existed, err := s.Delete(ctx, "study_space_feedback"); err != nil || existed {
		t.Fatalf("second delete: existed=%v err=%v", existed, err)
	}
}

func TestStoreRejectsNonJSON(t *testing.T) {
	s, _ := newStubStore(t)
	if err := s.Set(context.Background(), "k", []byte("not json")); !errors.Is(err, ErrNotJSON) {
		t.Fatalf("expected ErrNotJSON, got %v", err)
	}
}

func TestNewStoreSurfacesBackendFailures(t *testing.T) {
	cases := map[string]func(*testutil.StubConn){
		"ping": func(c *testutil.StubConn) { c.FailPing = true },
		"ddl":  func(c *testutil.StubConn) { c.FailExec = true },
	}
	for name, breakConn := range cases {
		t.Run(name, func(t *testing.T) {
			db, conn := testutil.NewStubDB()
			breakConn(conn)
			restore := OverrideSQLOpen(func(string, string) (*sql.DB, error) { return db, nil })
			defer restore()
			if _, err := NewStore(context.Background(), "postgres://example"); err == nil {
				t.Fatalf("expected %s failure", name)
			}
		})
	}

	restore := OverrideSQLOpen(func(string, string) (*sql.DB, error) { return nil, errors.New("boom") })
	defer restore()
	if _, err := NewStore(context.Background(), ""); err == nil || !strings.Contains(err.Error(), "open postgres") {
		t.Fatalf("expected open failure, got %v", err)
	}
}

func TestStoreQueryFailureIsWrapped(t *testing.T) {
	s, conn := newStubStore(t)
	conn.FailQuery = true
	if _, _, err := s.Get(context.Background(), "k"); err == nil || !strings.Contains(err.Error(), "select k") {
		t.Fatalf("expected wrapped select error, got %v", err)
	}
}
