package models

import (
	"testing"

	"github.com/dmitrijs2005/draftkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "apply", want: KindApplication},
		{in: "Application", want: KindApplication},
		{in: " report ", want: KindReport},
		{in: "grant", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrUnknownDraftKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewDraft_Validation(t *testing.T) {
	_, err := NewDraft("grant", 1, 1, "", "")
	require.ErrorIs(t, err, common.ErrUnknownDraftKind)

	_, err = NewDraft(KindApplication, 0, 1, "", "")
	require.ErrorIs(t, err, common.ErrInvalidDraft)

	_, err = NewDraft(KindApplication, 1, -3, "", "")
	require.ErrorIs(t, err, common.ErrInvalidDraft)

	d, err := NewDraft(KindReport, 7, 12, "u1", "None")
	require.NoError(t, err)
	assert.Equal(t, Draft{Kind: KindReport, DraftID: 7, SubmitID: 12, OwnerUserID: "u1"}, d)
}

func TestNormalizeStaffOverride(t *testing.T) {
	tests := map[string]string{
		"":                        "",
		"None":                    "",
		"  ":                      "",
		"?user=org@example.org":   "org@example.org",
		"user=org%40example.org":  "org@example.org",
		"org@example.org":         "org@example.org",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeStaffOverride(in), "input %q", in)
	}
}

func TestDraft_Paths(t *testing.T) {
	plain := Draft{Kind: KindApplication, SubmitID: 4, DraftID: 31}
	staff := Draft{Kind: KindReport, SubmitID: 9, DraftID: 2, StaffOverride: "org@example.org"}

	assert.Equal(t, "/apply/4/autosave", plain.AutosavePath(false))
	assert.Equal(t, "/apply/4/autosave?force=true", plain.AutosavePath(true))
	assert.Equal(t, "/report/9/autosave?user=org%40example.org", staff.AutosavePath(false))
	assert.Equal(t, "/report/9/autosave?user=org%40example.org&force=true", staff.AutosavePath(true))

	assert.Equal(t, "/apply/4", plain.SubmitPath())
	assert.Equal(t, "/report/9?user=org%40example.org", staff.SubmitPath())

	assert.Equal(t, "/get-upload-url/?type=apply&id=31", plain.UploadURLPath())
	assert.Equal(t, "/get-upload-url/?type=report&id=2", staff.UploadURLPath())

	assert.Equal(t, "/apply/31/remove/budget1", plain.RemoveFilePath("budget1"))
	assert.Equal(t, "/report/2/remove/photo1?user=org%40example.org", staff.RemoveFilePath("photo1"))
}

func TestDefaultFileFields(t *testing.T) {
	assert.Contains(t, DefaultFileFields(KindApplication), "budget1")
	assert.Equal(t, []string{"photo1", "photo2", "photo3", "photo4", "photo_release"}, DefaultFileFields(KindReport))

	f := DefaultFileFields(KindReport)
	f[0] = "changed"
	assert.Equal(t, "photo1", DefaultFileFields(KindReport)[0])
}
