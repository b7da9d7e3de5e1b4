package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method string
	uri    string
	form   url.Values
	ctype  string
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var reqs []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(b))
		reqs = append(reqs, capturedRequest{method: r.Method, uri: r.URL.RequestURI(), form: form, ctype: r.Header.Get("Content-Type")})
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func testDraft() models.Draft {
	return models.Draft{Kind: models.KindApplication, SubmitID: 5, DraftID: 17, OwnerUserID: "owner-1"}
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "ftp://x", "not a url", "http://"} {
		_, err := NewHTTPClient(u, time.Second)
		require.ErrorIs(t, err, ErrInvalidBaseURL, "url %q", u)
	}
}

func TestAutosave_PostsFormWithUserID(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, "success")
	c, err := NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, err)

	form := url.Values{"title": {"Clean water"}, "budget": {"100"}}
	resp, err := c.Autosave(context.Background(), testDraft(), form, false)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", string(resp.Body))
	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/apply/5/autosave", got.uri)
	assert.Equal(t, formContentType, got.ctype)
	assert.Equal(t, "Clean water", got.form.Get("title"))
	assert.Equal(t, "owner-1", got.form.Get("user_id"))
	assert.NotContains(t, form, "user_id", "caller's values must not be mutated")
}

func TestAutosave_ForceAndStatusPassThrough(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusConflict, "confirm force")
	c, err := NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, err)

	d := testDraft()
	d.StaffOverride = "staff@example.org"
	resp, err := c.Autosave(context.Background(), d, url.Values{}, true)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "/apply/5/autosave?user=staff%40example.org&force=true", (*reqs)[0].uri)
}

func TestAutosave_TimeoutMapsToErrTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() { close(block); srv.Close() })

	c, err := NewHTTPClient(srv.URL, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = c.Autosave(context.Background(), testDraft(), nil, false)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestAutosave_ConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewHTTPClient(base, time.Second)
	require.NoError(t, err)

	_, err = c.Autosave(context.Background(), testDraft(), nil, false)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGetUploadURL(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, "  https://uploads.example/one-time/abc\n")
	c, err := NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, err)

	got, err := c.GetUploadURL(context.Background(), testDraft())
	require.NoError(t, err)
	assert.Equal(t, "https://uploads.example/one-time/abc", got)
	assert.Equal(t, http.MethodGet, (*reqs)[0].method)
	assert.Equal(t, "/get-upload-url/?type=apply&id=17", (*reqs)[0].uri)
}

func TestGetUploadURL_Errors(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusInternalServerError, "boom")
	c, err := NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, err)
	_, err = c.GetUploadURL(context.Background(), testDraft())
	require.ErrorIs(t, err, ErrUnexpectedStatus)

	empty, _ := newTestServer(t, http.StatusOK, "   ")
	c, err = NewHTTPClient(empty.URL, time.Second)
	require.NoError(t, err)
	_, err = c.GetUploadURL(context.Background(), testDraft())
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestRemoveFile(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, "success")
	c, err := NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, err)

	require.NoError(t, c.RemoveFile(context.Background(), testDraft(), "budget1"))
	assert.Equal(t, http.MethodPost, (*reqs)[0].method)
	assert.Equal(t, "/apply/17/remove/budget1", (*reqs)[0].uri)

	bad, _ := newTestServer(t, http.StatusNotFound, "")
	c, err = NewHTTPClient(bad.URL, time.Second)
	require.NoError(t, err)
	require.ErrorIs(t, c.RemoveFile(context.Background(), testDraft(), "budget1"), ErrUnexpectedStatus)
}

func TestSubmit(t *testing.T) {
	srv, reqs := newTestServer(t, http.StatusOK, "")
	c, err := NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, err)

	resp, err := c.Submit(context.Background(), testDraft(), url.Values{"title": {"x"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/apply/5", (*reqs)[0].uri)
	assert.Equal(t, "owner-1", (*reqs)[0].form.Get("user_id"))
}

func TestResolve(t *testing.T) {
	c, err := NewHTTPClient("http://drafts.example:8000/", time.Second)
	require.NoError(t, err)

	got, err := c.Resolve("/_ah/upload/xyz")
	require.NoError(t, err)
	assert.Equal(t, "http://drafts.example:8000/_ah/upload/xyz", got)

	got, err = c.Resolve("https://other.example/u")
	require.NoError(t, err)
	assert.Equal(t, "https://other.example/u", got)
}
