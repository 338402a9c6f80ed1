package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edurisk/internal/assessment"
	"github.com/abhisek/edurisk/internal/report"
)

var studentArgs = []string{
	"--age", "20", "--attendance", "85", "--marks", "90",
	"--parents-education", "bachelor", "--income", "25k-50k", "--failures", "none",
	"--activity", "sports", "--activity", "Music", "--behavior", "good",
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root, e := newRootCmd()
	defer e.teardown()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "edurisk.log")))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPredictDryRun(t *testing.T) {
	out, err := execute(t, "", append([]string{"predict", "--dry-run"}, studentArgs...)...)
	require.NoError(t, err)
	assert.JSONEq(t, `{"age":20,"attendance_percent":85,"avg_marks":90,"prev_failures":0,
		"parents_education":5,"family_income":2,"extracurricular":2,"behavior_issues":1}`, out)
}

func TestPredictSubmitsAndRenders(t *testing.T) {
	var got assessment.Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"risk":"High","confidence":82.5,"recommendations":["Weekly mentoring"]}`))
	}))
	defer srv.Close()

	out, err := execute(t, "", append([]string{"predict", "--endpoint", srv.URL}, studentArgs...)...)
	require.NoError(t, err)

	assert.Equal(t, 2, got.FamilyIncome)
	assert.Equal(t, 2, got.Extracurricular)
	assert.Contains(t, out, "High Dropout Risk")
	assert.Contains(t, out, "Prediction Confidence: 82.5%")
	assert.Contains(t, out, "1. Weekly mentoring")
}

func TestPredictRawOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"risk":"Low","extra":true}`))
	}))
	defer srv.Close()

	out, err := execute(t, "", append([]string{"predict", "--raw", "--endpoint", srv.URL}, studentArgs...)...)
	require.NoError(t, err)
	assert.JSONEq(t, `{"risk":"Low","extra":true}`, out)
}

func TestPredictServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := execute(t, "", append([]string{"predict", "--endpoint", srv.URL}, studentArgs...)...)
	var ne *assessment.NetworkError
	require.ErrorAs(t, err, &ne)
}

func TestPredictRejectsIncompleteAnswers(t *testing.T) {
	args := []string{"predict", "--dry-run", "--age", "20", "--attendance", "85", "--marks", "90"}
	_, err := execute(t, "", args...)
	var ve *assessment.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, assessment.Step2, ve.Step)
}

func TestPredictRejectsUnknownActivity(t *testing.T) {
	args := append([]string{"predict", "--dry-run"}, studentArgs...)
	args = append(args, "--activity", "Chess")
	_, err := execute(t, "", args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown activity "Chess"`)
}

func TestPredictRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "", append([]string{"predict", "--format", "pdf"}, studentArgs...)...)
	require.Error(t, err)
}

func TestReportFromStdin(t *testing.T) {
	out, err := execute(t, `{"risk":"Low","confidence":0}`, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Low Dropout Risk")
	assert.Contains(t, out, "Prediction Confidence: 0%")
}

func TestReportFromFileAsMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"risk":"High"}`), 0o644))

	out, err := execute(t, "", "report", path, "--format", "md")
	require.NoError(t, err)
	assert.Contains(t, out, "High Dropout Risk")
	assert.Contains(t, out, "#")
}

func TestReportMalformedInput(t *testing.T) {
	out, err := execute(t, "not json", "report", "-")
	require.NoError(t, err)
	assert.Contains(t, out, report.NoDataTitle)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"running","model_loaded":true,"database_connected":false}`))
	}))
	defer srv.Close()

	out, err := execute(t, "", "health", "--endpoint", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "running")
	assert.Regexp(t, `Model loaded\s+yes`, out)
	assert.Regexp(t, `Database connected\s+no`, out)
}

func TestHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := execute(t, "", "health", "--endpoint", url)
	require.Error(t, err)
}

func TestInvalidEndpoint(t *testing.T) {
	_, err := execute(t, "", "health", "--endpoint", "ftp://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "edurisk (devel)\n", out)
}
