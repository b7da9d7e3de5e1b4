// Package display is the boundary between the coordinators and whatever
// renders the page. Element ids follow the form templates' naming so the
// same ids can be addressed from a browser bridge or a terminal.
package display

import (
	"context"
	"html"
	"strings"

	"github.com/dmitrijs2005/draftkeeper/internal/common"
)

// Element ids shared by every draft page.
const (
	LastSavedID    = "autosaved"
	HiddenSubmitID = "hidden_submit_app"
	UploadFrameID  = "id_upload_frame"
)

// UploadedID is the status span showing a file field's current upload.
func UploadedID(field string) string { return field + "_uploaded" }

// SubmitID is the hidden button that posts a file field's upload form.
func SubmitID(field string) string { return field + "_submit" }

// FormID is the hidden upload form of a file field; its action is the
// one-time upload URL.
func FormID(field string) string { return field + "_form" }

// InputID is the file input element of a field.
func InputID(field string) string { return "id_" + field }

// FieldFromInputID reverses InputID.
func FieldFromInputID(id string) string { return strings.TrimPrefix(id, "id_") }

// HTML fragments rendered into status elements.
const (
	LoadingHTML      = `<img src="/static/images/ajaxloader2.gif" height="16" width="16" alt="Loading...">`
	NoFileHTML       = `<i>no file uploaded</i>`
	ErrorSuffixHTML  = `<br>If you are seeing errors repeatedly please <a href="` + common.ContactURL + `">contact us</a>`
	UploadFailedHTML = `There was an error uploading your file. Try again or <a href="` + common.SupportURL + `">contact us</a>.`
)

// ErrorHTML renders text with the standard contact-us suffix.
func ErrorHTML(text string) string {
	return html.EscapeString(text) + ErrorSuffixHTML
}

// FileLinkHTML renders a link to an uploaded file opening in a new tab.
func FileLinkHTML(url, filename string) string {
	return `<a href="` + html.EscapeString(url) + `" target="_blank">` + html.EscapeString(filename) + `</a>`
}

// Display receives rendered status updates.
type Display interface {
	// SetHTML replaces the contents of element id.
	SetHTML(id, html string)
	// SetAction points form element id at action.
	SetAction(id, action string)
}

// Navigator owns the page location.
type Navigator interface {
	CurrentURL() string
	Navigate(target string)
}

// Submitter performs the final form submission, the equivalent of clicking
// the hidden submit control.
// A non-nil error means the draft was not submitted and editing goes on.
type Submitter interface {
	Submit(ctx context.Context) error
}

// ConflictPrompt asks the user whether to overwrite a draft another session
// saved. Resolving it is expected to trigger a forced save.
type ConflictPrompt interface {
	ShowConflict(ctx context.Context, source string)
}
