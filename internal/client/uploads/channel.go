package uploads

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/draftkeeper/internal/logging"
	"github.com/dmitrijs2005/draftkeeper/internal/netx"
)

// Selection is a file chosen for a field. An empty Name means the input
// was cleared.
type Selection struct {
	Name    string
	Content io.Reader
}

// LoadFunc receives the body the channel ended up on once an upload
// finished. body is nil when the upload failed before any answer arrived.
type LoadFunc func(ctx context.Context, body []byte)

// Channel is the out-of-band route a file takes to its upload URL. Submit
// returns as soon as the upload is under way; its result is delivered to
// the function registered with OnLoad.
type Channel interface {
	Submit(ctx context.Context, target, field string, file Selection) error
	OnLoad(f LoadFunc)
}

// HTTPChannel posts files as multipart forms in the background.
type HTTPChannel struct {
	client  *http.Client
	timeout time.Duration
	log     logging.Logger

	mu     sync.Mutex
	onLoad LoadFunc
	wg     sync.WaitGroup
}

// NewHTTPChannel returns a channel posting through hc, so uploads carry
// the same session cookies as the draft requests. timeout bounds each
// upload; zero means no limit.
func NewHTTPChannel(hc *http.Client, timeout time.Duration, log logging.Logger) *HTTPChannel {
	return &HTTPChannel{client: hc, timeout: timeout, log: log.With("component", "upload_channel")}
}

func (c *HTTPChannel) OnLoad(f LoadFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onLoad = f
}

func (c *HTTPChannel) Submit(ctx context.Context, target, field string, file Selection) error {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		uctx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			uctx, cancel = context.WithTimeout(uctx, c.timeout)
			defer cancel()
		}

		body, err := netx.PostMultipart(uctx, c.client, target, field, file.Name, file.Content)
		if closer, ok := file.Content.(io.Closer); ok {
			_ = closer.Close()
		}
		if err != nil {
			c.log.Debug(ctx, "upload failed", "field", field, "error", err)
			body = nil
		}

		c.mu.Lock()
		f := c.onLoad
		c.mu.Unlock()
		if f != nil {
			f(uctx, body)
		}
	}()
	return nil
}

// Wait blocks until every submitted upload has been delivered.
func (c *HTTPChannel) Wait() {
	c.wg.Wait()
}
