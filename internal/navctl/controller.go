package navctl

import (
	"context"
	"errors"

	"github.com/llehouerou/tablib/internal/catalog"
	"github.com/llehouerou/tablib/internal/errmsg"
	"github.com/llehouerou/tablib/internal/fsaccess"
	"github.com/llehouerou/tablib/internal/grouping"
)

// Surface displays documents. A new version means a new document: any
// scroll or zoom state from the previous one must be dropped.
type Surface interface {
	Render(content []byte, version uint64)
	Clear()
}

// Request is an issued navigation, to be fetched and then completed.
type Request struct {
	Token uint64
	Entry catalog.Entry
}

// Result is the outcome of fetching a request.
type Result struct {
	Token   uint64
	EntryID string
	Content []byte
	Err     error
}

// Outcome tells the caller what Complete did with a result.
type Outcome int

const (
	// Stale results were superseded by a newer request and ignored.
	Stale Outcome = iota
	// Published results were handed to the surface.
	Published
	// Failed results could not be read; the view was cleared.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Stale:
		return "stale"
	case Published:
		return "published"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Controller owns the Session. Its methods must be called from a single
// control flow; only Fetch may run elsewhere.
type Controller struct {
	session Session
	surface Surface
	notice  string
}

// New returns a controller with no current entry.
func New(surface Surface) *Controller {
	return &Controller{surface: surface}
}

// State returns a copy of the session.
func (c *Controller) State() Session {
	return c.session
}

// Notice returns the message left by the last failed open, if any.
func (c *Controller) Notice() string {
	return c.notice
}

// Open starts navigating to e: it selects e right away, marks the session
// loading and returns the request to fetch.
func (c *Controller) Open(e catalog.Entry) Request {
	c.session.Token++
	c.session.CurrentID = e.ID
	c.session.Loading = true
	c.notice = ""
	return Request{Token: c.session.Token, Entry: e}
}

// Fetch reads the content for req. It touches no controller state, so it
// can run concurrently with the control flow.
func Fetch(ctx context.Context, r fsaccess.Reader, req Request) Result {
	data, err := r.Read(ctx, req.Entry.Ref)
	return Result{Token: req.Token, EntryID: req.Entry.ID, Content: data, Err: err}
}

// Complete applies a fetched result if it is still the latest request.
func (c *Controller) Complete(res Result) Outcome {
	if res.Token != c.session.Token {
		return Stale
	}
	c.session.Loading = false

	if res.Err != nil {
		c.notice = openNotice(res.Err)
		c.surface.Clear()
		return Failed
	}

	c.session.Version++
	c.surface.Render(res.Content, c.session.Version)
	return Published
}

// OpenRaw shows content that does not come from the library.
func (c *Controller) OpenRaw(content []byte) {
	c.session.Token++
	c.session.CurrentID = ""
	c.session.Loading = false
	c.notice = ""
	c.session.Version++
	c.surface.Render(content, c.session.Version)
}

// Abandon drops the pending request, if any. Its result will be stale.
// The current entry and the view are kept.
func (c *Controller) Abandon() {
	c.session.Token++
	c.session.Loading = false
}

// OpenAndWait opens e and completes it in one step. For callers without an
// event loop.
func (c *Controller) OpenAndWait(ctx context.Context, r fsaccess.Reader, e catalog.Entry) Outcome {
	return c.Complete(Fetch(ctx, r, c.Open(e)))
}

// Position locates the current entry in seq.
func (c *Controller) Position(seq []catalog.Entry) Position {
	idx := grouping.IndexOf(seq, c.session.CurrentID)
	loading := c.session.Loading
	return Position{
		Index:       idx,
		CanPrevious: !loading && idx > 0,
		CanNext:     !loading && idx >= 0 && idx < len(seq)-1,
	}
}

// Next opens the entry after the current one. It does nothing while a load
// is in progress or at the end of seq.
func (c *Controller) Next(seq []catalog.Entry) (Request, bool) {
	pos := c.Position(seq)
	if !pos.CanNext {
		return Request{}, false
	}
	return c.Open(seq[pos.Index+1]), true
}

// Previous opens the entry before the current one, under the same rules
// as Next.
func (c *Controller) Previous(seq []catalog.Entry) (Request, bool) {
	pos := c.Position(seq)
	if !pos.CanPrevious {
		return Request{}, false
	}
	return c.Open(seq[pos.Index-1]), true
}

func openNotice(err error) string {
	if errors.Is(err, fsaccess.ErrStaleReference) {
		return errmsg.StaleDocument
	}
	return errmsg.Format(errmsg.OpDocumentOpen, err)
}
