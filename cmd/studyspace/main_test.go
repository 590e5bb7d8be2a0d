package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"studyspace/internal/core"
	"studyspace/pkg/domain"
)

// setupEnv points storage at a per-test sqlite file and blob directory so
// separate invocations share state the way real shell sessions would.
func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STUDYSPACE_STORAGE_DRIVER", "sqlite")
	t.Setenv("STUDYSPACE_SQLITE_PATH", filepath.Join(dir, "studyspace.db"))
	t.Setenv("STUDYSPACE_BLOB_DRIVER", "fs")
	t.Setenv("STUDYSPACE_BLOB_FS_ROOT", filepath.Join(dir, "blobs"))
	t.Setenv("STUDYSPACE_LOG_LEVEL", "error")
	t.Setenv("STUDYSPACE_CATALOG_PATH", "")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut syncBuffer
	cmd := newRootCommand(&out, &errOut)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLocationsHuman(t *testing.T) {
	setupEnv(t)
	out, err := runCLI(t, "locations")
	if err != nil {
		t.Fatalf("locations: %v", err)
	}
	for _, want := range []string{"Library", "KUBO Huts", "100/100", "Not Optimal", "Moderate", "trained-model"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestLocationsJSON(t *testing.T) {
	setupEnv(t)
	out, err := runCLI(t, "--json", "locations")
	if err != nil {
		t.Fatalf("locations: %v", err)
	}
	var rows []struct {
		Location struct {
			ID string `json:"id"`
		} `json:"location"`
		Result struct {
			OptimalScore float64 `json:"optimalScore"`
		} `json:"result"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(rows) != 5 || rows[0].Location.ID != "1" || rows[2].Status != "Not Optimal" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestAnalyzeOneLocation(t *testing.T) {
	setupEnv(t)
	out, err := runCLI(t, "--json", "analyze", "3")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var la core.LocationAnalysis
	if err := json.Unmarshal([]byte(out), &la); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if la.Location.Name != "KUBO Huts" || la.Result.OptimalScore != 0 || len(la.Recommendations) != 5 {
		t.Fatalf("unexpected analysis: score=%v recs=%d", la.Result.OptimalScore, len(la.Recommendations))
	}

	out, err = runCLI(t, "analyze", "1")
	if err != nil {
		t.Fatalf("analyze human: %v", err)
	}
	if !strings.Contains(out, "within their optimal ranges") {
		t.Fatalf("expected optimal message:\n%s", out)
	}
}

func TestAnalyzeUnknownLocation(t *testing.T) {
	setupEnv(t)
	_, err := runCLI(t, "analyze", "99")
	if !core.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestScore(t *testing.T) {
	setupEnv(t)
	out, err := runCLI(t, "score", "--temp", "28", "--humidity", "50", "--noise", "30", "--light", "500", "--aqi", "50")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	for _, want := range []string{"25/100", "Not Optimal", "HIGH", "Temperature"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestScoreRejectsInput(t *testing.T) {
	setupEnv(t)
	if _, err := runCLI(t, "score", "--temp", "28"); err == nil || !strings.Contains(err.Error(), "required flag") {
		t.Fatalf("expected missing flag error, got %v", err)
	}
	_, err := runCLI(t, "score", "--temp", "22", "--humidity", "150", "--noise", "30", "--light", "500", "--aqi", "50")
	if err == nil || !strings.Contains(err.Error(), "humidity") {
		t.Fatalf("expected implausible humidity error, got %v", err)
	}
}

func TestRecommendationsJSON(t *testing.T) {
	setupEnv(t)
	out, err := runCLI(t, "--json", "recommendations")
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 9 || recs[0].Priority != domain.PriorityHigh || recs[0].LocationName != "KUBO Huts" {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
}

func TestHistory(t *testing.T) {
	setupEnv(t)
	out, err := runCLI(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 || !strings.HasPrefix(lines[0], "08:00") {
		t.Fatalf("unexpected history output:\n%s", out)
	}
}

func TestFeedbackRoundTrip(t *testing.T) {
	setupEnv(t)
	if _, err := runCLI(t, "feedback", "submit", "--location", "1", "--student-id", "s-1", "--student-name", "Ana", "--rating", "5", "--comment", "quiet"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := runCLI(t, "feedback", "submit", "--location", "3", "--student-id", "s-2", "--student-name", "Ben", "--rating", "2"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := runCLI(t, "feedback", "submit", "--location", "3", "--student-id", "s-2", "--student-name", "Ben", "--rating", "7"); err == nil {
		t.Fatalf("expected rating validation error")
	}

	out, err := runCLI(t, "--json", "feedback", "list", "--student-id", "s-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var entries []domain.Feedback
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Comment != "quiet" {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	out, err = runCLI(t, "feedback", "list", "--location", "3")
	if err != nil {
		t.Fatalf("list by location: %v", err)
	}
	if !strings.Contains(out, "Ben") || strings.Contains(out, "Ana") {
		t.Fatalf("unexpected location listing:\n%s", out)
	}

	out, err = runCLI(t, "--json", "feedback", "summary")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	var ratings []core.LocationRating
	if err := json.Unmarshal([]byte(out), &ratings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ratings) != 2 || ratings[1].LocationName != "KUBO Huts" || ratings[1].AverageRating != 2 {
		t.Fatalf("unexpected ratings: %+v", ratings)
	}

	if _, err := runCLI(t, "feedback", "clear"); err == nil {
		t.Fatalf("expected clear to require --yes")
	}
	if _, err := runCLI(t, "feedback", "clear", "--yes"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	out, err = runCLI(t, "feedback", "list")
	if err != nil {
		t.Fatalf("list after clear: %v", err)
	}
	if !strings.Contains(out, "No feedback recorded.") {
		t.Fatalf("expected empty listing:\n%s", out)
	}
}

func TestReportExportAndList(t *testing.T) {
	setupEnv(t)
	out, err := runCLI(t, "--json", "report")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	var report core.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(report.Key, "reports/") || !strings.HasPrefix(report.URL, "http://local.blob/") {
		t.Fatalf("unexpected report: %+v", report)
	}

	out, err = runCLI(t, "report", "list")
	if err != nil {
		t.Fatalf("report list: %v", err)
	}
	if !strings.Contains(out, report.Key) {
		t.Fatalf("expected listing to contain %s:\n%s", report.Key, out)
	}
}

func TestInvalidStorageDriver(t *testing.T) {
	setupEnv(t)
	t.Setenv("STUDYSPACE_STORAGE_DRIVER", "redis")
	if _, err := runCLI(t, "locations"); err == nil || !strings.Contains(err.Error(), "STUDYSPACE_STORAGE_DRIVER") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestServe(t *testing.T) {
	setupEnv(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out, errOut syncBuffer
	cmd := newRootCommand(&out, &errOut)
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "serve", "--addr", addr})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	var resp *http.Response
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err = http.Get("http://" + addr + "/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never became ready: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected health status: %d", resp.StatusCode)
	}

	metrics, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	var body bytes.Buffer
	_, _ = body.ReadFrom(metrics.Body)
	_ = metrics.Body.Close()
	if !strings.Contains(body.String(), `studyspace_http_requests_total{route="/health",status="200"} 1`) {
		t.Fatalf("metrics missing health counter:\n%s", body.String())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatalf("serve did not stop")
	}
	if !strings.Contains(out.String(), `"GET /health HTTP/1.1" 200`) {
		t.Fatalf("expected access log line:\n%s", out.String())
	}
}
