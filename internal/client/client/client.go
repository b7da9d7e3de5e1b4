package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
)

// Response is what the coordinators need from a finished request: the
// status code and the (size-limited) body.
type Response struct {
	StatusCode int
	Body       []byte
}

type Client interface {
	// Autosave posts form plus the owner user id to the draft's autosave
	// endpoint. Non-2xx statuses are returned as a Response, not an error;
	// an error means no status was received.
	Autosave(ctx context.Context, d models.Draft, form url.Values, force bool) (*Response, error)

	// Submit posts the final form to the draft's submit target.
	Submit(ctx context.Context, d models.Draft, form url.Values) (*Response, error)

	// GetUploadURL fetches a one-time URL the next file upload must go to.
	GetUploadURL(ctx context.Context, d models.Draft) (string, error)

	// RemoveFile clears the uploaded file of field.
	RemoveFile(ctx context.Context, d models.Draft, field string) error

	// Resolve turns a possibly relative reference into an absolute URL
	// against the server base.
	Resolve(ref string) (string, error)
}
