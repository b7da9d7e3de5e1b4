// Package netx holds small HTTP helpers shared by the client transports.
package netx

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// MaxResponseSize caps how much of an upload response is read.
const MaxResponseSize = 1 << 20

// PostMultipart posts content as a single file part named field to url,
// the way a browser submits a one-input upload form, and returns the body
// of the final response after redirects. The request body is streamed, so
// content is never held in memory as a whole.
func PostMultipart(ctx context.Context, client *http.Client, url, field, filename string, content io.Reader) ([]byte, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		pr.Close()
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return b, nil
}
