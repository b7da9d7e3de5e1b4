package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
)

// Config holds runtime settings for the draftkeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the grants site, e.g. "https://grants.example".
//   - DraftKind: "apply" or "report".
//   - DraftID: primary key of the draft; file endpoints use it.
//   - SubmitID: cycle (applications) or award (reports) id the draft saves into.
//   - UserID: fixed user id to send with saves; empty means the stored one.
//   - StaffUser: identity a staff member edits on behalf of, empty for none.
//   - Debug: emit debug logs.
//   - InitialDelay, Interval, PauseGrace: autosave timing.
//   - RequestTimeout: deadline of each draft request.
//   - UploadTimeout: deadline of each file upload.
//   - DataDir, DatabasePath: local store location, DatabasePath relative to DataDir.
//   - FileFields: file inputs of the draft; defaults depend on DraftKind.
type Config struct {
	ServerURL      string
	DraftKind      string
	DraftID        int64
	SubmitID       int64
	UserID         string
	StaffUser      string
	Debug          bool
	InitialDelay   time.Duration
	Interval       time.Duration
	PauseGrace     time.Duration
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
	DataDir        string
	DatabasePath   string
	FileFields     []string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.DraftKind = string(models.KindApplication)
	c.InitialDelay = 10 * time.Second
	c.Interval = 60 * time.Second
	c.PauseGrace = 60 * time.Second
	c.RequestTimeout = 30 * time.Second
	c.UploadTimeout = 5 * time.Minute
	c.DataDir = "data"
	c.DatabasePath = "drafts.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. File fields not set by either default to the
// inputs of the configured draft kind.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	cfg.applyKindDefaults()
	return cfg
}

func (c *Config) applyKindDefaults() {
	if len(c.FileFields) > 0 {
		return
	}
	if k, err := models.ParseKind(c.DraftKind); err == nil {
		c.FileFields = models.DefaultFileFields(k)
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: server url %q", ErrInvalidConfig, c.ServerURL)
	}
	if _, err := models.ParseKind(c.DraftKind); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.DraftID <= 0 {
		return fmt.Errorf("%w: draft id is required", ErrInvalidConfig)
	}
	if c.SubmitID <= 0 {
		return fmt.Errorf("%w: submit id is required", ErrInvalidConfig)
	}
	for name, d := range map[string]time.Duration{
		"initial delay":   c.InitialDelay,
		"interval":        c.Interval,
		"pause grace":     c.PauseGrace,
		"request timeout": c.RequestTimeout,
		"upload timeout":  c.UploadTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, name)
		}
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidConfig)
	}
	return nil
}

// Draft builds the draft context the coordinators share. userID is used
// when no fixed UserID is configured.
func (c *Config) Draft(userID string) (models.Draft, error) {
	kind, err := models.ParseKind(c.DraftKind)
	if err != nil {
		return models.Draft{}, err
	}
	if c.UserID != "" {
		userID = c.UserID
	}
	return models.NewDraft(kind, c.DraftID, c.SubmitID, userID, c.StaffUser)
}
