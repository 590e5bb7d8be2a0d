package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingT struct {
	testing.TB
	msg string
}

func (r *recordingT) Fatalf(format string, args ...any) { r.msg = fmt.Sprintf(format, args...) }
func (r *recordingT) Helper()                           {}

func writeFile(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		pred func(string) bool
		in   string
		want bool
	}{
		{InternalImportForbidden, "studyspace/internal/scoring", true},
		{InternalImportForbidden, "studyspace/pkg/domain", false},
		{ThirdPartyImportForbidden, "github.com/google/uuid", true},
		{ThirdPartyImportForbidden, "gopkg.in/yaml.v3", true},
		{ThirdPartyImportForbidden, "encoding/json", false},
		{ThirdPartyImportForbidden, "studyspace/pkg/domain", false},
		{IOImportForbidden, "database/sql", true},
		{IOImportForbidden, "net/http/httptest", true},
		{IOImportForbidden, "github.com/aws/aws-sdk-go-v2/service/s3", true},
		{IOImportForbidden, "math", false},
	}
	for _, c := range cases {
		if got := c.pred(c.in); got != c.want {
			t.Fatalf("predicate(%q)=%v want %v", c.in, got, c.want)
		}
	}
	combined := AnyOf(InternalImportForbidden, IOImportForbidden)
	if !combined("database/sql") || !combined("x/internal/y") || combined("fmt") {
		t.Fatalf("AnyOf did not combine predicates")
	}
}

func TestAssertNoDirectImportsIgnoresTestsAndSubdirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.go", "package tmp\nimport \"fmt\"\nfunc X() { fmt.Println(1) }\n")
	writeFile(t, dir, "x_test.go", "package tmp\nimport \"database/sql\"\nvar _ sql.DB\n")
	writeFile(t, dir, "notes.txt", "import \"database/sql\"")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "sub"), "s.go", "package sub\nimport \"database/sql\"\nvar _ sql.DB\n")
	AssertNoDirectImports(t, dir, IOImportForbidden, "tests and subdirectories are skipped")
}

func TestAssertNoDirectImportsReportsViolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "store.go", "package tmp\nimport \"database/sql\"\nvar _ sql.DB\n")
	rec := &recordingT{TB: t}
	AssertNoDirectImports(rec, dir, IOImportForbidden, "pure package")
	if !strings.Contains(rec.msg, "database/sql (in store.go)") || !strings.Contains(rec.msg, "pure package") {
		t.Fatalf("unexpected failure message: %q", rec.msg)
	}
}

func TestAssertNoDirectImportsBadSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.go", "package tmp\nimport (\n")
	rec := &recordingT{TB: t}
	AssertNoDirectImports(rec, dir, IOImportForbidden, "parse")
	if !strings.Contains(rec.msg, "scan imports") {
		t.Fatalf("expected scan failure, got %q", rec.msg)
	}
}

func TestAssertNoTransitiveDependencyUsesGoList(t *testing.T) {
	orig := goListDeps
	t.Cleanup(func() { goListDeps = orig })

	goListDeps = func(string) ([]byte, error) {
		return []byte("fmt\nstudyspace/pkg/domain\ndatabase/sql\n"), nil
	}
	rec := &recordingT{TB: t}
	AssertNoTransitiveDependency(rec, ".", IOImportForbidden, "no storage")
	if !strings.Contains(rec.msg, "database/sql") {
		t.Fatalf("expected violation, got %q", rec.msg)
	}

	goListDeps = func(string) ([]byte, error) { return []byte("boom"), errors.New("exit 1") }
	rec = &recordingT{TB: t}
	AssertNoTransitiveDependency(rec, ".", IOImportForbidden, "no storage")
	if !strings.Contains(rec.msg, "go list failed") {
		t.Fatalf("expected go list failure, got %q", rec.msg)
	}
}
