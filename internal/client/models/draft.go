// Package models defines the client-side data the draft coordinators share:
// the immutable draft context, its endpoint paths and local form fields.
package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/draftkeeper/internal/common"
)

// Kind identifies what sort of draft is being edited. Its value doubles as
// the URL prefix of every draft endpoint.
type Kind string

const (
	KindApplication Kind = "apply"
	KindReport      Kind = "report"
)

// ParseKind accepts the URL prefix form ("apply", "report") as well as the
// long name "application".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "apply", "application":
		return KindApplication, nil
	case "report":
		return KindReport, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnknownDraftKind, s)
	}
}

func (k Kind) String() string { return string(k) }

// Draft is the per-page context every coordinator reads. It is a value type:
// components keep their own copy, so nobody can change it after start-up.
//
// Fields:
//   - Kind: application or report.
//   - SubmitID: cycle (applications) or award (reports) the draft is saved into.
//   - DraftID: primary key of the draft row; file endpoints are keyed by it.
//   - OwnerUserID: random id of this editing session, may be empty.
//   - StaffOverride: identity a staff member is impersonating, empty when absent.
type Draft struct {
	Kind          Kind
	SubmitID      int64
	DraftID       int64
	OwnerUserID   string
	StaffOverride string
}

// NewDraft validates its arguments and normalises the staff override.
func NewDraft(kind Kind, draftID, submitID int64, ownerUserID, staffUser string) (Draft, error) {
	if kind != KindApplication && kind != KindReport {
		return Draft{}, fmt.Errorf("%w: %q", common.ErrUnknownDraftKind, kind)
	}
	if draftID <= 0 {
		return Draft{}, fmt.Errorf("%w: draft id must be positive", common.ErrInvalidDraft)
	}
	if submitID <= 0 {
		return Draft{}, fmt.Errorf("%w: submit id must be positive", common.ErrInvalidDraft)
	}
	return Draft{
		Kind:          kind,
		SubmitID:      submitID,
		DraftID:       draftID,
		OwnerUserID:   ownerUserID,
		StaffOverride: NormalizeStaffOverride(staffUser),
	}, nil
}

// NormalizeStaffOverride turns the raw override the page was rendered with
// into a bare identity. Templates emit "None" when there is no override and
// sometimes pass the whole "?user=..." query fragment.
func NormalizeStaffOverride(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "None" {
		return ""
	}
	s = strings.TrimPrefix(s, "?")
	if v, ok := strings.CutPrefix(s, common.StaffOverrideParamName+"="); ok {
		if unescaped, err := url.QueryUnescape(v); err == nil {
			return unescaped
		}
		return v
	}
	return s
}

// AutosavePath is the autosave endpoint. The force parameter is only added
// when a detected conflict is being overridden.
func (d Draft) AutosavePath(force bool) string {
	p := "/" + d.Kind.String() + "/" + strconv.FormatInt(d.SubmitID, 10) + "/autosave"
	var extra []string
	if force {
		extra = append(extra, common.ForceParamName+"=true")
	}
	return p + d.query(extra...)
}

// SubmitPath is where the final form submission is posted.
func (d Draft) SubmitPath() string {
	return "/" + d.Kind.String() + "/" + strconv.FormatInt(d.SubmitID, 10) + d.query()
}

// UploadURLPath is the endpoint handing out one-time upload URLs.
func (d Draft) UploadURLPath() string {
	return "/get-upload-url/?type=" + url.QueryEscape(d.Kind.String()) +
		"&id=" + strconv.FormatInt(d.DraftID, 10)
}

// RemoveFilePath is the endpoint clearing an uploaded file from field.
func (d Draft) RemoveFilePath(field string) string {
	return "/" + d.Kind.String() + "/" + strconv.FormatInt(d.DraftID, 10) +
		"/remove/" + url.PathEscape(field) + d.query()
}

// query renders the staff override first, then extra, as a query string.
func (d Draft) query(extra ...string) string {
	parts := make([]string, 0, len(extra)+1)
	if d.StaffOverride != "" {
		parts = append(parts, common.StaffOverrideParamName+"="+url.QueryEscape(d.StaffOverride))
	}
	parts = append(parts, extra...)
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}
