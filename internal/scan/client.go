// Package scan submits extracted job descriptions and resumes to the remote
// scoring backend and defensively decodes its analysis.
package scan

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
	"strings"
	"time"
)

// DefaultTimeout bounds a single scan attempt, measured from send.
const DefaultTimeout = 30 * time.Second

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the scoring backend. One attempt per call; no retries.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts *Options) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    DefaultTimeout,
		httpClient: http.DefaultClient,
	}
	if opts != nil {
		if opts.Timeout > 0 {
			c.timeout = opts.Timeout
		}
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
	}
	return c
}

// Submit posts the job description and resume to the backend and returns
// its analysis. The attempt is cancelled after the configured timeout.
func (c *Client) Submit(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	body, contentType, err := encodeRequest(req)
	if err != nil {
		return nil, &NetworkError{Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process", body)
	if err != nil {
		return nil, &NetworkError{Cause: err}
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{}
		}
		return nil, &NetworkError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{}
		}
		return nil, &NetworkError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, raw),
		}
	}

	return decodeResponse(raw)
}

// encodeRequest builds the multipart form the backend expects: a jd_text
// text field and a resume file part carrying filename and content type.
func encodeRequest(req *ScanRequest) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	if err := mw.WriteField("jd_text", req.JDText); err != nil {
		return nil, "", fmt.Errorf("failed to encode jd_text: %w", err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="resume"; filename=%q`, req.Resume.Name))
	mime := req.Resume.MIME
	if mime == "" {
		mime = "application/octet-stream"
	}
	header.Set("Content-Type", mime)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create resume part: %w", err)
	}
	if _, err := part.Write(req.Resume.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write resume: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return buf, mw.FormDataContentType(), nil
}

// errorMessage extracts the backend's own error text from a failure body.
// The backend reports either {detail: {message}} (possibly with detail as a
// bare string) or {error}; anything unparsable falls back to a generic
// message and never fails itself.
func errorMessage(status int, body []byte) string {
	var probe struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if json.Unmarshal(body, &probe) == nil {
		if len(probe.Detail) > 0 {
			var obj struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(probe.Detail, &obj) == nil && obj.Message != "" {
				return obj.Message
			}
			var s string
			if json.Unmarshal(probe.Detail, &s) == nil && s != "" {
				return s
			}
		}
		if probe.Error != "" {
			return probe.Error
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// decodeResponse type-checks each expected field independently; absent or
// wrong-shaped fields default to their empty form. Only a body that is not
// a JSON object at all is an error.
func decodeResponse(body []byte) (*ScanResponse, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &MalformedResponseError{Cause: err}
	}

	resp := &ScanResponse{
		SuggestedSkills:   []string{},
		ImprovementAdvice: []Advice{},
	}

	if v, ok := raw["jd_text"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil {
			resp.JDText = s
		}
	}
	if v, ok := raw["ats_score"]; ok {
		var f float64
		if json.Unmarshal(v, &f) == nil {
			resp.ATSScore = &f
		}
	}
	if v, ok := raw["suggested_skills"]; ok {
		var skills []string
		if json.Unmarshal(v, &skills) == nil && skills != nil {
			resp.SuggestedSkills = skills
		}
	}
	if v, ok := raw["improvement_recommendation"]; ok {
		var advice []Advice
		if json.Unmarshal(v, &advice) == nil && advice != nil {
			resp.ImprovementAdvice = advice
		}
	}
	return resp, nil
}
