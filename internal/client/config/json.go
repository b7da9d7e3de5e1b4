package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/draftkeeper/internal/flagx"
	"github.com/dmitrijs2005/draftkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "60s" or as integer nanoseconds. After parsing, values
// that are present are copied into the runtime Config.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	DraftKind      string         `json:"draft_kind"`
	DraftID        int64          `json:"draft_id"`
	SubmitID       int64          `json:"submit_id"`
	UserID         string         `json:"user_id"`
	StaffUser      string         `json:"staff_user"`
	Debug          *bool          `json:"debug"`
	InitialDelay   timex.Duration `json:"initial_delay"`
	Interval       timex.Duration `json:"interval"`
	PauseGrace     timex.Duration `json:"pause_grace"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	UploadTimeout  timex.Duration `json:"upload_timeout"`
	DataDir        string         `json:"data_dir"`
	DatabasePath   string         `json:"database_path"`
	FileFields     []string       `json:"file_fields"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flag (flagx.ConfigFileFlag);
// without one nothing is loaded. Read or unmarshal errors panic.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.DraftKind, jc.DraftKind)
	setString(&cfg.UserID, jc.UserID)
	setString(&cfg.StaffUser, jc.StaffUser)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	if jc.DraftID != 0 {
		cfg.DraftID = jc.DraftID
	}
	if jc.SubmitID != 0 {
		cfg.SubmitID = jc.SubmitID
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
	setDuration(&cfg.InitialDelay, jc.InitialDelay)
	setDuration(&cfg.Interval, jc.Interval)
	setDuration(&cfg.PauseGrace, jc.PauseGrace)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.UploadTimeout, jc.UploadTimeout)
	if len(jc.FileFields) > 0 {
		cfg.FileFields = jc.FileFields
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
