package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
	"github.com/dmitrijs2005/draftkeeper/internal/common"
)

// maxBodySize caps how much of a response body is kept. Draft endpoints
// answer with short texts (a login URL, an upload URL, "success").
const maxBodySize = 1 << 20

const formContentType = "application/x-www-form-urlencoded"

type HTTPClient struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
}

// NewHTTPClient builds a client for the server at baseURL. timeout bounds
// every request; zero disables the per-request deadline. A cookie jar keeps
// the session the same way a browser tab would.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &HTTPClient{
		base:    u,
		http:    &http.Client{Jar: jar},
		timeout: timeout,
	}, nil
}

// HTTP exposes the underlying client so other transports (the upload
// channel) share its cookies.
func (c *HTTPClient) HTTP() *http.Client {
	return c.http
}

// Timeout is the per-request deadline the client was built with.
func (c *HTTPClient) Timeout() time.Duration {
	return c.timeout
}

func (c *HTTPClient) Resolve(ref string) (string, error) {
	u, err := c.base.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (c *HTTPClient) Autosave(ctx context.Context, d models.Draft, form url.Values, force bool) (*Response, error) {
	return c.do(ctx, http.MethodPost, d.AutosavePath(force), formContentType, withUserID(form, d))
}

func (c *HTTPClient) Submit(ctx context.Context, d models.Draft, form url.Values) (*Response, error) {
	return c.do(ctx, http.MethodPost, d.SubmitPath(), formContentType, withUserID(form, d))
}

func (c *HTTPClient) GetUploadURL(ctx context.Context, d models.Draft) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, d.UploadURLPath(), "", nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	target := strings.TrimSpace(string(resp.Body))
	if target == "" {
		return "", fmt.Errorf("%w: empty upload url", ErrUnexpectedStatus)
	}
	return target, nil
}

func (c *HTTPClient) RemoveFile(ctx context.Context, d models.Draft, field string) error {
	resp, err := c.do(ctx, http.MethodPost, d.RemoveFilePath(field), "", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target, err := c.Resolve(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, mapError(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, mapError(err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: b}, nil
}

func withUserID(form url.Values, d models.Draft) io.Reader {
	v := make(url.Values, len(form)+1)
	for k, vals := range form {
		v[k] = append([]string(nil), vals...)
	}
	v.Set(common.UserIDFieldName, d.OwnerUserID)
	return strings.NewReader(v.Encode())
}

// mapError classifies a transport failure: deadlines become ErrTimeout,
// cancellation is passed through, anything else is ErrUnavailable.
func mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
