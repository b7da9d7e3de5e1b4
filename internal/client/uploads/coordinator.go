// Package uploads moves files attached to a draft to the server, one at a
// time, through a single background channel.
package uploads

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/dmitrijs2005/draftkeeper/internal/client/client"
	"github.com/dmitrijs2005/draftkeeper/internal/client/display"
	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
	"github.com/dmitrijs2005/draftkeeper/internal/logging"
)

type Status int

const (
	StatusIdle Status = iota
	StatusRequestingUploadURL
	StatusAwaitingResponse
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRequestingUploadURL:
		return "requesting_upload_url"
	case StatusAwaitingResponse:
		return "awaiting_response"
	default:
		return "unknown"
	}
}

// FieldState is the upload state of one file field.
type FieldState struct {
	Status Status
	// DisplayHTML mirrors the field's status span.
	DisplayHTML string
}

// Coordinator runs the upload state machine of every file field of a
// draft. The channel is shared, so at most one field is ever out of Idle.
type Coordinator struct {
	draft   models.Draft
	client  client.Client
	channel Channel
	display display.Display
	log     logging.Logger

	mu      sync.Mutex
	fields  map[string]*FieldState
	busy    bool
	current string
}

func NewCoordinator(d models.Draft, c client.Client, ch Channel, disp display.Display, log logging.Logger) *Coordinator {
	co := &Coordinator{
		draft:   d,
		client:  c,
		channel: ch,
		display: disp,
		log:     log.With("component", "uploads"),
		fields:  map[string]*FieldState{},
	}
	ch.OnLoad(co.HandleFrameLoad)
	return co
}

// Register adds file fields. Registering a field twice keeps its state.
func (c *Coordinator) Register(fields ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range fields {
		if _, ok := c.fields[f]; !ok {
			c.fields[f] = &FieldState{}
		}
	}
}

// Fields returns the registered field names, sorted.
func (c *Coordinator) Fields() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.fields))
	for f := range c.fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// HandleFileChanged starts uploading file for field. It is rejected with
// ErrChannelBusy, without any state change or request, while another
// upload is in flight. Failures after the upload started are rendered in
// the field's status span and release the channel; they are not returned.
// Once accepted, file.Content belongs to the coordinator and is closed when
// it implements io.Closer.
func (c *Coordinator) HandleFileChanged(ctx context.Context, field string, file Selection) error {
	c.mu.Lock()
	if c.busy {
		current := c.current
		c.mu.Unlock()
		c.log.Debug(ctx, "file changed while upload in progress", "field", field, "uploading", current)
		return ErrChannelBusy
	}
	st, ok := c.fields[field]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if file.Name == "" {
		c.mu.Unlock()
		return ErrNoFileSelected
	}
	c.busy = true
	c.current = field
	st.Status = StatusRequestingUploadURL
	st.DisplayHTML = display.LoadingHTML
	c.mu.Unlock()

	c.display.SetHTML(display.UploadedID(field), display.LoadingHTML)

	raw, err := c.client.GetUploadURL(ctx, c.draft)
	if err != nil {
		c.log.Debug(ctx, "get upload url failed", "field", field, "error", err)
		closeSelection(file)
		c.finish(field, display.UploadFailedHTML)
		return nil
	}
	target, err := c.client.Resolve(raw)
	if err != nil {
		c.log.Debug(ctx, "bad upload url", "field", field, "url", raw, "error", err)
		closeSelection(file)
		c.finish(field, display.UploadFailedHTML)
		return nil
	}
	c.log.Debug(ctx, "got upload url", "field", field)

	c.mu.Lock()
	st.Status = StatusAwaitingResponse
	c.mu.Unlock()

	c.display.SetAction(display.FormID(field), target)
	if err := c.channel.Submit(ctx, target, field, file); err != nil {
		c.log.Debug(ctx, "upload submit failed", "field", field, "error", err)
		closeSelection(file)
		c.finish(field, display.UploadFailedHTML)
	}
	return nil
}

// HandleFrameLoad interprets the answer to the upload in flight. Loads
// while nothing is awaiting a response are ignored.
func (c *Coordinator) HandleFrameLoad(ctx context.Context, body []byte) {
	c.mu.Lock()
	field := c.current
	st, ok := c.fields[field]
	if !c.busy || !ok || st.Status != StatusAwaitingResponse {
		c.mu.Unlock()
		c.log.Debug(ctx, "frame loaded with no upload awaiting a response")
		return
	}
	c.mu.Unlock()

	html := display.UploadFailedHTML
	res, err := ParseResult(body)
	switch {
	case err != nil:
		c.log.Debug(ctx, "could not parse upload response", "field", field, "error", err)
	case res.Field != field:
		c.log.Debug(ctx, "upload response for another field", "field", field, "got", res.Field)
	case !res.Complete():
		c.log.Debug(ctx, "incomplete upload response", "field", field)
	default:
		html = display.FileLinkHTML(res.URL, res.Filename)
	}
	c.finish(field, html)
}

// RemoveFile clears the uploaded file of field on the server and, on
// success, shows the no-file placeholder. It does not touch the channel.
func (c *Coordinator) RemoveFile(ctx context.Context, field string) error {
	c.mu.Lock()
	_, ok := c.fields[field]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	if err := c.client.RemoveFile(ctx, c.draft, field); err != nil {
		c.log.Debug(ctx, "remove file failed", "field", field, "error", err)
		return err
	}

	c.mu.Lock()
	c.fields[field].DisplayHTML = display.NoFileHTML
	c.mu.Unlock()
	c.display.SetHTML(display.UploadedID(field), display.NoFileHTML)
	return nil
}

// State returns the state of field.
func (c *Coordinator) State(field string) (FieldState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.fields[field]
	if !ok {
		return FieldState{}, false
	}
	return *st, true
}

// Busy reports whether an upload is in flight and for which field.
func (c *Coordinator) Busy() (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy, c.current
}

// finish renders html for field and releases the channel.
func (c *Coordinator) finish(field, html string) {
	c.mu.Lock()
	if st, ok := c.fields[field]; ok {
		st.Status = StatusIdle
		st.DisplayHTML = html
	}
	if c.current == field {
		c.busy = false
		c.current = ""
	}
	c.mu.Unlock()

	c.display.SetHTML(display.UploadedID(field), html)
}

func closeSelection(file Selection) {
	if closer, ok := file.Content.(io.Closer); ok {
		_ = closer.Close()
	}
}
