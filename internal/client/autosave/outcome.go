package autosave

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/draftkeeper/internal/client/client"
	"github.com/dmitrijs2005/draftkeeper/internal/common"
	"github.com/dmitrijs2005/draftkeeper/internal/statustext"
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeConflict
	OutcomeAuthRequired
	OutcomeTimeout
	OutcomeHTTPError
	OutcomeUnknownError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeConflict:
		return "conflict"
	case OutcomeAuthRequired:
		return "auth_required"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeHTTPError:
		return "http_error"
	case OutcomeUnknownError:
		return "unknown_error"
	default:
		return "unknown"
	}
}

// Texts of outcomes that have no status table entry.
const (
	TimeoutText  = "Request timeout"
	UnknownText  = "Unknown error"
	ConflictText = "This draft was saved from another session"
)

// Outcome is the classified result of one save request.
type Outcome struct {
	Kind OutcomeKind
	// StatusCode is zero when no response was received.
	StatusCode int
	// Text is what the user is shown for failures.
	Text string
	// RedirectTo is set for OutcomeAuthRequired.
	RedirectTo string
	// SavedAt is set by the dispatcher for OutcomeSuccess.
	SavedAt time.Time
	// Submitted reports that the final submission following a successful
	// save went through.
	Submitted bool
}

// Failed reports whether the outcome is rendered as an error.
func (o Outcome) Failed() bool {
	return o.Kind != OutcomeSuccess && o.Kind != OutcomeAuthRequired
}

// Classify maps a finished save request to its outcome. err is a transport
// error from client.Client (no status received); resp is used otherwise.
// currentURL is the page the user should return to after logging in.
func Classify(resp *client.Response, err error, currentURL string) Outcome {
	if err != nil || resp == nil {
		if errors.Is(err, client.ErrTimeout) {
			return Outcome{Kind: OutcomeTimeout, Text: TimeoutText}
		}
		return Outcome{Kind: OutcomeUnknownError, Text: UnknownText}
	}

	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return Outcome{Kind: OutcomeSuccess, StatusCode: code}
	case code > http.StatusOK && code < http.StatusMultipleChoices:
		return Outcome{Kind: OutcomeUnknownError, StatusCode: code, Text: UnknownText}
	case code == http.StatusConflict:
		return Outcome{Kind: OutcomeConflict, StatusCode: code, Text: ConflictText}
	case code == http.StatusUnauthorized:
		return Outcome{
			Kind:       OutcomeAuthRequired,
			StatusCode: code,
			RedirectTo: LoginRedirect(string(resp.Body), currentURL),
		}
	}

	if text, ok := statustext.Lookup(code); ok {
		return Outcome{Kind: OutcomeHTTPError, StatusCode: code, Text: text}
	}
	return Outcome{Kind: OutcomeUnknownError, StatusCode: code, Text: UnknownText}
}

// LoginRedirect builds the navigation target for an expired session: the
// login location the server answered with plus a return path to current.
func LoginRedirect(loginLocation, current string) string {
	target := strings.TrimSpace(loginLocation)
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + common.ReturnPathParamName + "=" + url.QueryEscape(current)
}
