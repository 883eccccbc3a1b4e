// Package controller owns the UI-side state of a scan session: the uploaded
// resume, the pasted or extracted job description, and the request
// lifecycle. All state lives behind one owner; other components see only
// snapshot copies.
package controller

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonathan/resume-radar/internal/agent"
	"github.com/jonathan/resume-radar/internal/scan"
)

// Exact user-facing messages.
const (
	msgWrongFileType = "Resume must be a PDF or DOCX file."
	msgMissingJD     = "Please paste a job description to scan."
	msgMissingResume = "Please upload your resume first."
	msgScanInFlight  = "A scan is already in progress."
	msgNoPageAgent   = "No scannable page is attached."
)

// ValidationError is a locally detected input problem; no network call is
// made for these.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ExtractionError is a failure reported by the page agent.
type ExtractionError struct {
	Message string
}

func (e *ExtractionError) Error() string {
	return e.Message
}

// State is a snapshot of the controller's UI state.
type State struct {
	ScanLoading     bool
	PDFLoading      bool
	Error           string
	ResumeFilename  string
	ResumeSizeKB    int
	PastedJD        string
	OnSupportedSite bool
	Result          *scan.ScanResponse
}

// Scanner submits a scan request to the scoring backend.
type Scanner interface {
	Submit(ctx context.Context, req *scan.ScanRequest) (*scan.ScanResponse, error)
}

// PageScanner dispatches extraction requests to the page agent.
type PageScanner interface {
	Send(ctx context.Context, req agent.Request) (agent.Envelope, error)
}

// TabQuerier reports the active browser tab's URL. It may be unavailable in
// some execution contexts; callers treat absence as "not on a supported
// site", never as an error.
type TabQuerier func(ctx context.Context) (string, bool)

// SiteCheck decides whether a URL belongs to a supported job site.
type SiteCheck func(url string) bool

// Config wires a controller's collaborators. Scanner is required; the rest
// are optional capabilities.
type Config struct {
	Scanner   Scanner
	Page      PageScanner
	Tabs      TabQuerier
	Supported SiteCheck
}

// Controller is the single owner of scan-session state.
type Controller struct {
	mu     sync.Mutex
	state  State
	resume *scan.ResumeFile

	scanner   Scanner
	page      PageScanner
	tabs      TabQuerier
	supported SiteCheck
}

// New creates a controller in the idle, no-file state.
func New(cfg Config) *Controller {
	return &Controller{
		scanner:   cfg.Scanner,
		page:      cfg.Page,
		tabs:      cfg.Tabs,
		supported: cfg.Supported,
	}
}

// State returns a snapshot copy of the current UI state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mount performs initial site detection. A missing or failing tab query
// leaves the site unsupported without surfacing an error; the flag only
// gates optional affordances and never blocks the paste-and-scan path.
func (c *Controller) Mount(ctx context.Context) {
	if c.tabs == nil || c.supported == nil {
		return
	}
	url, ok := c.tabs(ctx)
	if !ok {
		return
	}
	supported := c.supported(url)

	c.mu.Lock()
	c.state.OnSupportedSite = supported
	c.mu.Unlock()
}

// SetJD records pasted job description text.
func (c *Controller) SetJD(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PastedJD = text
}

// Upload accepts a resume file. Only files whose declared type or filename
// extension indicates PDF or DOCX are kept; a rejected upload clears any
// pending file. File content is not validated here.
func (c *Controller) Upload(name, mimeType string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.PDFLoading = true
	defer func() { c.state.PDFLoading = false }()

	if !isResumeType(name, mimeType) {
		c.resume = nil
		c.state.ResumeFilename = ""
		c.state.ResumeSizeKB = 0
		c.state.Error = msgWrongFileType
		return &ValidationError{Message: msgWrongFileType}
	}

	c.resume = &scan.ResumeFile{Name: name, MIME: mimeType, Data: data}
	c.state.ResumeFilename = name
	c.state.ResumeSizeKB = int(math.Round(float64(len(data)) / 1024))
	c.state.Error = ""
	return nil
}

// ScanPage asks the page agent to extract the job description from the
// current page and records it as the pasted text on success.
func (c *Controller) ScanPage(ctx context.Context) (string, error) {
	if c.page == nil {
		return "", c.fail(&ValidationError{Message: msgNoPageAgent})
	}

	env, err := c.page.Send(ctx, agent.NewScanRequest())
	if err != nil {
		return "", c.fail(&ExtractionError{Message: err.Error()})
	}
	out, ok := env.First()
	if !ok {
		return "", c.fail(&ExtractionError{Message: "empty response from page agent"})
	}
	if !out.Success {
		return "", c.fail(&ExtractionError{Message: out.Error})
	}

	c.mu.Lock()
	c.state.PastedJD = out.Data
	c.state.Error = ""
	c.mu.Unlock()
	return out.Data, nil
}

// Scan runs one scan attempt. It requires pasted job description text and
// an uploaded resume, allows at most one in-flight attempt, and always
// returns the controller to an actionable state: on failure the error is
// recorded and any stale result cleared, on success the result replaces any
// previous error.
func (c *Controller) Scan(ctx context.Context) (*scan.ScanResponse, error) {
	c.mu.Lock()
	if c.state.ScanLoading {
		c.mu.Unlock()
		return nil, &ValidationError{Message: msgScanInFlight}
	}
	if strings.TrimSpace(c.state.PastedJD) == "" {
		c.state.Error = msgMissingJD
		c.mu.Unlock()
		return nil, &ValidationError{Message: msgMissingJD}
	}
	if c.resume == nil {
		c.state.Error = msgMissingResume
		c.mu.Unlock()
		return nil, &ValidationError{Message: msgMissingResume}
	}

	req := &scan.ScanRequest{JDText: c.state.PastedJD, Resume: *c.resume}
	c.state.Result = nil
	c.state.Error = ""
	c.state.ScanLoading = true
	c.mu.Unlock()

	resp, err := c.scanner.Submit(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ScanLoading = false
	if err != nil {
		c.state.Result = nil
		c.state.Error = err.Error()
		return nil, err
	}
	c.state.Result = resp
	return resp, nil
}

func (c *Controller) fail(err error) error {
	c.mu.Lock()
	c.state.Error = err.Error()
	c.mu.Unlock()
	return err
}

// isResumeType accepts PDF and DOCX by declared MIME type or filename
// extension.
func isResumeType(name, mimeType string) bool {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx":
		return true
	}
	return false
}
