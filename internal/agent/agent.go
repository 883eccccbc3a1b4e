// Package agent implements the page-side scanning agent and the message
// protocol between it and the UI controller. The two sides run independent
// loops and share nothing but channels: the controller sends a scan request
// and receives the outcome asynchronously on a per-request reply channel.
package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-radar/internal/dom"
	"github.com/jonathan/resume-radar/internal/locate"
)

// TypeScanJD requests extraction of the job description from the page.
const TypeScanJD = "SCAN_LINKEDIN_JD"

// Request is a message sent to the page agent.
type Request struct {
	ID   uuid.UUID `json:"id"`
	Type string    `json:"type"`
}

// NewScanRequest builds a scan request with a fresh correlation id.
func NewScanRequest() Request {
	return Request{ID: uuid.New(), Type: TypeScanJD}
}

// Outcome is a single extraction result.
type Outcome struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Envelope is the wire form of a reply: an array holding exactly one
// outcome.
type Envelope []Outcome

// First returns the envelope's single outcome.
func (e Envelope) First() (Outcome, bool) {
	if len(e) == 0 {
		return Outcome{}, false
	}
	return e[0], true
}

func success(text string) Envelope {
	return Envelope{{Success: true, Data: text}}
}

func failure(msg string) Envelope {
	return Envelope{{Success: false, Error: msg}}
}

// PageSource produces a fresh snapshot of the page's element tree. The page
// is externally owned and may change between requests, so the agent
// re-snapshots for every request instead of holding elements across turns.
type PageSource interface {
	Snapshot(ctx context.Context) (*dom.Document, error)
}

// SourceFunc adapts a plain function to a PageSource.
type SourceFunc func(ctx context.Context) (*dom.Document, error)

// Snapshot implements PageSource.
func (f SourceFunc) Snapshot(ctx context.Context) (*dom.Document, error) {
	return f(ctx)
}

type pending struct {
	req   Request
	reply chan<- Envelope
}

// PageAgent owns all DOM access. Requests are handled one at a time, to
// completion, on the agent's own loop.
type PageAgent struct {
	source   PageSource
	requests chan pending
}

// New creates a page agent over the given source.
func New(source PageSource) *PageAgent {
	return &PageAgent{
		source:   source,
		requests: make(chan pending),
	}
}

// Run processes requests until the context is cancelled.
func (a *PageAgent) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p := <-a.requests:
			p.reply <- a.handle(ctx, p.req)
		}
	}
}

// Send dispatches a request to the agent and waits for its asynchronous
// reply. Exactly one envelope arrives per request unless the context is
// cancelled first.
func (a *PageAgent) Send(ctx context.Context, req Request) (Envelope, error) {
	reply := make(chan Envelope, 1)
	select {
	case a.requests <- pending{req: req, reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case env := <-reply:
		return env, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// handle produces exactly one envelope per request; any unexpected fault
// during traversal becomes a failure outcome rather than crashing the loop.
func (a *PageAgent) handle(ctx context.Context, req Request) (env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			env = failure(fmt.Sprint(r))
		}
	}()

	if req.Type != TypeScanJD {
		return failure(fmt.Sprintf("unknown request type: %q", req.Type))
	}

	doc, err := a.source.Snapshot(ctx)
	if err != nil {
		return failure(err.Error())
	}
	text, err := locate.Extract(doc)
	if err != nil {
		return failure(err.Error())
	}
	return success(text)
}
