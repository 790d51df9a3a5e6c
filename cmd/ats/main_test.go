package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Veraticus/ats-resume-optimizer/internal/analysis"
	"github.com/Veraticus/ats-resume-optimizer/internal/common"
	"github.com/Veraticus/ats-resume-optimizer/internal/input"
	"github.com/Veraticus/ats-resume-optimizer/internal/optimizer"
	tuitesting "github.com/Veraticus/ats-resume-optimizer/internal/tui/testing"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"match_percentage": 85,
	"summary": "Good fit",
	"missing_keywords": [],
	"missing_skills": ["SQL"],
	"recommended_projects": ["Build a CRUD API"],
	"resume_improvement_suggestions": ["Quantify achievements"]
}`

type stubService struct {
	server   *httptest.Server
	analyzes atomic.Int32
	jobs     chan string
}

func newStubService(t *testing.T, status int, body string) *stubService {
	t.Helper()

	s := &stubService{jobs: make(chan string, 4)}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(`{"message": "ATS System API is running"}`))
		case "/analyze":
			s.analyzes.Add(1)
			s.jobs <- r.FormValue(optimizer.JobDescriptionField)
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *stubService) endpoint() string {
	return s.server.URL + "/analyze"
}

func isolate(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	cfgFile = ""
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ATS_API_URL", "")
	t.Setenv("VITE_API_URL", "")
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyzeCmdSummary(t *testing.T) {
	isolate(t)
	svc := newStubService(t, http.StatusOK, samplePayload)
	resume := writeFile(t, "resume.pdf", "%PDF-1.4")

	out, _, err := execute(t, "", "analyze",
		"--service-url", svc.endpoint(),
		"--resume", resume,
		"--job-text", "Backend engineer")
	require.NoError(t, err)

	plain := tuitesting.PlainView(out)
	assert.True(t, tuitesting.ContainsInOrder(plain,
		"Match Score", "85%", "Good fit",
		"Missing Keywords", "No critical keywords missing!",
		"Missing Skills", "SQL",
		"Project Recommendations", "Build a CRUD API",
		"Improvement Guide", "Quantify achievements",
	), plain)
	assert.Equal(t, int32(1), svc.analyzes.Load())
	assert.Equal(t, "Backend engineer", <-svc.jobs)
}

func TestAnalyzeCmdJSON(t *testing.T) {
	isolate(t)
	svc := newStubService(t, http.StatusOK, samplePayload)
	resume := writeFile(t, "resume.pdf", "%PDF-1.4")

	out, _, err := execute(t, "", "analyze",
		"--service-url", svc.endpoint(),
		"--resume", resume,
		"--job-text", "Backend engineer",
		"--output", "json")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.InDelta(t, 85, report["match_percentage"], 0.001)
	assert.Equal(t, "positive", report["band"])
	assert.InDelta(t, 0.85, report["proportion"], 0.001)
	assert.Equal(t, []any{"SQL"}, report["missing_skills"])
	assert.Equal(t, []any{}, report["missing_keywords"])
}

func TestAnalyzeCmdJobSources(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  func(t *testing.T) []string
		want  string
	}{
		{
			name:  "stdin",
			stdin: "Read from stdin",
			args: func(*testing.T) []string {
				return []string{"--job", "-"}
			},
			want: "Read from stdin",
		},
		{
			name: "file",
			args: func(t *testing.T) []string {
				return []string{"--job", writeFile(t, "job.txt", "Read from a file")}
			},
			want: "Read from a file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			svc := newStubService(t, http.StatusOK, samplePayload)
			resume := writeFile(t, "resume.pdf", "%PDF-1.4")

			args := append([]string{"analyze", "--service-url", svc.endpoint(), "--resume", resume}, tt.args(t)...)
			_, _, err := execute(t, tt.stdin, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, <-svc.jobs)
		})
	}
}

func TestAnalyzeCmdValidation(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
	}{
		{
			name: "no inputs",
			args: func(*testing.T) []string { return nil },
		},
		{
			name: "no resume",
			args: func(*testing.T) []string { return []string{"--job-text", "Backend engineer"} },
		},
		{
			name: "blank job description",
			args: func(t *testing.T) []string {
				return []string{"--resume", writeFile(t, "resume.pdf", "%PDF"), "--job-text", "   "}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			svc := newStubService(t, http.StatusOK, samplePayload)

			args := append([]string{"analyze", "--service-url", svc.endpoint()}, tt.args(t)...)
			out, _, err := execute(t, "", args...)

			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrValidation))
			assert.Equal(t, input.ValidationMessage, common.UserMessage(err, ""))
			assert.Contains(t, tuitesting.PlainView(out), input.ValidationMessage)
			assert.Zero(t, svc.analyzes.Load())
		})
	}
}

func TestAnalyzeCmdJSONOutputOnError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		args    func(t *testing.T) []string
		wantErr error
	}{
		{
			name:    "validation failure",
			status:  http.StatusOK,
			args:    func(*testing.T) []string { return []string{"--job-text", "Backend"} },
			wantErr: common.ErrValidation,
		},
		{
			name:   "service failure",
			status: http.StatusInternalServerError,
			args: func(t *testing.T) []string {
				return []string{"--resume", writeFile(t, "resume.pdf", "%PDF"), "--job-text", "Backend"}
			},
			wantErr: common.ErrAnalysis,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			svc := newStubService(t, tt.status, `{"detail": "boom"}`)

			args := append([]string{"analyze", "--service-url", svc.endpoint(), "--output", "json"}, tt.args(t)...)
			out, _, err := execute(t, "", args...)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Empty(t, out)
		})
	}
}

func TestAnalyzeCmdServiceFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"detail": "boom"}`},
		{name: "malformed payload", status: http.StatusOK, body: `{"match_percentage": 85}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			svc := newStubService(t, tt.status, tt.body)
			resume := writeFile(t, "resume.pdf", "%PDF-1.4")

			out, _, err := execute(t, "", "analyze",
				"--service-url", svc.endpoint(),
				"--resume", resume,
				"--job-text", "Backend engineer")

			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrAnalysis))
			assert.Equal(t, analysis.FailureMessage, common.UserMessage(err, ""))
			assert.Contains(t, tuitesting.PlainView(out), analysis.FailureMessage)
			assert.NotContains(t, out, "boom")
		})
	}
}

func TestAnalyzeCmdFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "invalid output", args: []string{"analyze", "--output", "xml"}, wantErr: "invalid output format: xml"},
		{name: "both job sources", args: []string{"analyze", "--job", "a.txt", "--job-text", "b"}, wantErr: "none of the others can be"},
		{name: "missing resume file", args: []string{"analyze", "--resume", "/nonexistent/resume.pdf", "--job-text", "b"}, wantErr: "Could not read the resume file"},
		{name: "invalid service url", args: []string{"analyze", "--service-url", "ftp://example.com"}, wantErr: "must use http or https"},
		{name: "invalid log level", args: []string{"version", "--log-level", "loud"}, wantErr: "invalid log level"},
		{name: "invalid theme", args: []string{"version", "--theme", "neon"}, wantErr: "unknown theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServiceURLFromEnvironment(t *testing.T) {
	isolate(t)
	svc := newStubService(t, http.StatusOK, samplePayload)
	t.Setenv("ATS_API_URL", svc.endpoint())

	out, _, err := execute(t, "", "ping")
	require.NoError(t, err)
	assert.Contains(t, out, "ATS System API is running")
}

func TestPingCmd(t *testing.T) {
	isolate(t)
	svc := newStubService(t, http.StatusOK, samplePayload)

	out, _, err := execute(t, "", "ping", "--service-url", svc.endpoint())
	require.NoError(t, err)
	assert.Contains(t, out, "ATS System API is running")
	assert.Contains(t, out, svc.endpoint())
}

func TestPingCmdUnreachable(t *testing.T) {
	isolate(t)
	svc := newStubService(t, http.StatusOK, samplePayload)
	endpoint := svc.endpoint()
	svc.server.Close()

	_, _, err := execute(t, "", "ping", "--service-url", endpoint)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrAnalysis))
	assert.Contains(t, common.UserMessage(err, ""), "is unreachable")
}

func TestVersionCmd(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "ats version dev\n", out)
}

func TestConfigFile(t *testing.T) {
	isolate(t)
	svc := newStubService(t, http.StatusOK, samplePayload)
	cfg := writeFile(t, "config.yaml", "service:\n  url: "+svc.endpoint()+"\n")

	out, _, err := execute(t, "", "ping", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ATS System API is running")
}
