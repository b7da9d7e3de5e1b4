package uploads

import (
	"encoding/json"
	"strings"
)

// Result is what the upload callback page answers with once a file has
// been stored. Field is the correlation key of the upload.
type Result struct {
	Field    string `json:"field"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// ParseResult decodes a callback response body.
func ParseResult(body []byte) (Result, error) {
	var r Result
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(body))), &r); err != nil {
		return Result{}, err
	}
	return r, nil
}

// Complete reports whether r carries everything needed to link the file.
func (r Result) Complete() bool {
	return r.Field != "" && r.URL != "" && r.Filename != ""
}
