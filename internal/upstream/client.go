package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/agentdeck/agentdeck/internal/endpoint"
)

// DiagnosticText is the fixed marker carried by reachability probes.
const DiagnosticText = "__ping__"

// DefaultTimeout bounds every request wall-clock; expiry aborts the
// in-flight request via context cancellation.
const DefaultTimeout = 60 * time.Second

var (
	ErrInvalidEndpoint = errors.New("invalid endpoint: must start with http:// or https://")
	ErrTimeout         = errors.New("request timed out")
)

// HTTPError reports a non-2xx upstream response with its body text.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d: %s", e.Status, e.Body)
}

// Submission is built fresh per submit action and not retained afterwards.
type Submission struct {
	Text      string
	Image     []byte
	ImageName string
	Token     string
}

type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Result replaces any prior result entirely; it is empty on failure.
type Result struct {
	AnswerMarkdown string
	Files          []Attachment
}

// Client talks to the agent upstream. It holds no request state; callers
// own displaying results.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

func NewClient() *Client {
	return NewClientWithTimeout(DefaultTimeout)
}

func NewClientWithTimeout(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// Submit posts the submission to the endpoint as multipart/form-data and
// parses the JSON answer. Single attempt, no retries. Malformed response
// bodies degrade to an empty result rather than failing the submission.
func (c *Client) Submit(ctx context.Context, endpointURL string, sub Submission) (Result, error) {
	if !endpoint.IsValid(endpointURL) {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpointURL)
	}

	body, contentType, err := encodeSubmission(sub)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode request: %w", err)
	}

	respBody, err := c.post(ctx, endpointURL, body, contentType)
	if err != nil {
		return Result{}, err
	}

	return decodeResult(respBody), nil
}

// Probe sends a minimal diagnostic submission and reports reachability.
// The response body is never inspected; any non-2xx or transport failure
// is the error.
func (c *Client) Probe(ctx context.Context, endpointURL string) error {
	if !endpoint.IsValid(endpointURL) {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpointURL)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("text", DiagnosticText); err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	if err := w.WriteField("diagnostic", "true"); err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	_, err := c.post(ctx, endpointURL, &buf, w.FormDataContentType())
	return err
}

func (c *Client) post(ctx context.Context, url string, body io.Reader, contentType string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Deadline expiry is reported distinctly from other failures
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

func encodeSubmission(sub Submission) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("text", sub.Text); err != nil {
		return nil, "", err
	}

	if len(sub.Image) > 0 {
		name := sub.ImageName
		if name == "" {
			name = "image"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename=%q`, name))
		header.Set("Content-Type", http.DetectContentType(sub.Image))
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(sub.Image); err != nil {
			return nil, "", err
		}
	}

	if sub.Token != "" {
		if err := w.WriteField("token", sub.Token); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

// decodeResult never fails: a body that is not the expected shape yields
// empty fields instead of an error.
func decodeResult(body []byte) Result {
	var wire struct {
		AnswerMarkdown string          `json:"answer_markdown"`
		Files          json.RawMessage `json:"files"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return Result{Files: []Attachment{}}
	}

	result := Result{
		AnswerMarkdown: wire.AnswerMarkdown,
		Files:          []Attachment{},
	}

	// A missing or non-array files value is never propagated as-is
	if len(wire.Files) > 0 {
		var files []Attachment
		if err := json.Unmarshal(wire.Files, &files); err == nil && files != nil {
			result.Files = files
		}
	}

	return result
}
