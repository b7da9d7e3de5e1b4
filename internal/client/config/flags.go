package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/draftkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-s string          base URL of the grants site
//	-k string          draft kind: apply or report
//	-d int             draft id
//	-t int             submit target id (cycle or award)
//	-u string          fixed user id sent with saves
//	-staff string      staff override identity
//	-debug             debug logging
//	-initial-delay     delay before the first autosave, e.g. 10s
//	-interval          autosave interval, e.g. 60s
//	-grace             how long focus may be lost before autosave pauses
//	-timeout           per-request timeout
//	-upload-timeout    per-upload timeout
//	-db string         database file name inside the data directory
//	-files string      comma separated file field names
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-s", "-k", "-d", "-t", "-u", "-staff",
		"-initial-delay", "-interval", "-grace", "-timeout", "-upload-timeout",
		"-db", "-files",
	}, "-debug")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "base URL of the grants site")
	fs.StringVar(&cfg.DraftKind, "k", cfg.DraftKind, "draft kind (apply or report)")
	fs.Int64Var(&cfg.DraftID, "d", cfg.DraftID, "draft id")
	fs.Int64Var(&cfg.SubmitID, "t", cfg.SubmitID, "submit target id")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "fixed user id")
	fs.StringVar(&cfg.StaffUser, "staff", cfg.StaffUser, "staff override identity")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging")
	fs.DurationVar(&cfg.InitialDelay, "initial-delay", cfg.InitialDelay, "delay before the first autosave")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "autosave interval")
	fs.DurationVar(&cfg.PauseGrace, "grace", cfg.PauseGrace, "focus loss tolerated before pausing")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")
	fs.DurationVar(&cfg.UploadTimeout, "upload-timeout", cfg.UploadTimeout, "upload timeout")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "database file name")
	files := fs.String("files", strings.Join(cfg.FileFields, ","), "comma separated file field names")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.FileFields = splitList(*files)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
