// Package optimizer is the HTTP client for the ATS resume optimizer service.
package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/ats-resume-optimizer/internal/common"
	"github.com/Veraticus/ats-resume-optimizer/internal/model"
	"github.com/Veraticus/ats-resume-optimizer/internal/service"
)

// DefaultEndpoint is the local development address of the analysis service.
const DefaultEndpoint = "http://localhost:8000/analyze"

// Multipart part names and headers understood by the service.
const (
	ResumeField         = "resume"
	JobDescriptionField = "job_description"
	RequestIDHeader     = "X-Request-ID"
)

const (
	maxResponseBytes = 4 << 20
	maxLoggedBody    = 512
)

// Ensure we implement the interfaces.
var (
	_ service.Analyzer      = (*Client)(nil)
	_ service.HealthChecker = (*Client)(nil)
)

// Config holds client settings.
type Config struct {
	HTTPClient *http.Client
	Endpoint   string
	UserAgent  string
}

// Error describes a failed request. It always matches common.ErrAnalysis.
type Error struct {
	Err        error
	Body       string
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("analysis service error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("analysis service error: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, common.ErrAnalysis) hold.
func (e *Error) Is(target error) bool {
	return target == common.ErrAnalysis
}

// Client talks to the analysis service.
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	userAgent  string
}

// New creates a client for the configured endpoint.
func New(cfg Config) (*Client, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	u, err := ParseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// No client-level timeout; the caller bounds requests through the context.
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
			},
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "ats-resume-optimizer"
	}

	return &Client{
		endpoint:   u,
		httpClient: httpClient,
		userAgent:  userAgent,
	}, nil
}

// ParseEndpoint checks that endpoint is an absolute http(s) URL.
func ParseEndpoint(endpoint string) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid service URL %q: %v", common.ErrInvalidConfig, endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: service URL must use http or https: %q", common.ErrInvalidConfig, endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: service URL has no host: %q", common.ErrInvalidConfig, endpoint)
	}
	return u, nil
}

// Endpoint returns the analysis URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Analyze uploads the resume and job description and decodes the result.
func (c *Client) Analyze(ctx context.Context, req service.AnalysisRequest) (model.AnalysisResult, error) {
	if req.Document == nil {
		return model.AnalysisResult{}, &Error{Err: fmt.Errorf("no document to upload")}
	}

	body, contentType, err := buildForm(req)
	if err != nil {
		return model.AnalysisResult{}, &Error{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), body)
	if err != nil {
		return model.AnalysisResult{}, &Error{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if req.RequestID != "" {
		httpReq.Header.Set(RequestIDHeader, req.RequestID)
	}

	slog.Debug("Submitting resume for analysis",
		"endpoint", c.endpoint.String(),
		"request_id", req.RequestID,
		"document", req.Document.Name,
		"document_bytes", req.Document.Size,
		"job_description_chars", utf8.RuneCountInString(req.JobDescription))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return model.AnalysisResult{}, &Error{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.AnalysisResult{}, &Error{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.AnalysisResult{}, &Error{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(data), maxLoggedBody),
			Err:        fmt.Errorf("unexpected status %s", http.StatusText(resp.StatusCode)),
		}
	}

	result, err := model.DecodeAnalysisResult(data)
	if err != nil {
		return model.AnalysisResult{}, &Error{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(data), maxLoggedBody),
			Err:        err,
		}
	}

	return result, nil
}

// Ping checks the service root and returns its status message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	root := c.endpoint.ResolveReference(&url.URL{Path: "./"})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root.String(), nil)
	if err != nil {
		return "", &Error{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &Error{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(data), maxLoggedBody),
			Err:        fmt.Errorf("unexpected status %s", http.StatusText(resp.StatusCode)),
		}
	}

	var status struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &status); err != nil || status.Message == "" {
		return http.StatusText(resp.StatusCode), nil
	}
	return status.Message, nil
}

// buildForm encodes the two multipart parts expected by the service.
func buildForm(req service.AnalysisRequest) (io.Reader, string, error) {
	doc, err := req.Document.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = doc.Close() }()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, ResumeField, escapeQuotes(req.Document.Name)))
	header.Set("Content-Type", req.Document.ContentType())

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create resume part: %w", err)
	}
	if _, err := io.Copy(part, doc); err != nil {
		return nil, "", fmt.Errorf("failed to write resume part: %w", err)
	}

	if err := w.WriteField(JobDescriptionField, req.JobDescription); err != nil {
		return nil, "", fmt.Errorf("failed to write job description part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
