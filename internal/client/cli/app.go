package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/dmitrijs2005/draftkeeper/internal/client/autosave"
	"github.com/dmitrijs2005/draftkeeper/internal/client/client"
	"github.com/dmitrijs2005/draftkeeper/internal/client/config"
	"github.com/dmitrijs2005/draftkeeper/internal/client/display"
	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
	"github.com/dmitrijs2005/draftkeeper/internal/client/services"
	"github.com/dmitrijs2005/draftkeeper/internal/client/uploads"
	"github.com/dmitrijs2005/draftkeeper/internal/filex"
	"github.com/dmitrijs2005/draftkeeper/internal/logging"
	"github.com/dmitrijs2005/draftkeeper/internal/timex"

	_ "modernc.org/sqlite"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

const statusWatchInterval = time.Second

type App struct {
	config    *config.Config
	db        *sql.DB
	draft     models.Draft
	client    client.Client
	form      services.FormService
	identity  services.IdentityService
	scheduler *autosave.Scheduler
	uploads   *uploads.Coordinator
	channel   *uploads.HTTPChannel
	board     *display.Board
	log       logging.Logger
	reader    *bufio.Reader
	out       io.Writer

	mu     sync.Mutex
	phase  autosave.Phase
	cancel context.CancelFunc
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	log := logging.New(os.Stderr, c.Debug)

	dir, err := filex.EnsureSubdDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("error preparing data dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, c.DatabasePath))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	identity := services.NewIdentityService(db)
	userID, err := identity.UserID(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	draft, err := c.Draft(userID)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	hc, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:   c,
		db:       db,
		draft:    draft,
		client:   hc,
		identity: identity,
		board:    display.NewBoard(),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	a.wire(timex.Real{}, hc.HTTP())
	return a, nil
}

// wire builds the coordinators on top of the draft, client and store
// already set on a.
func (a *App) wire(clock timex.Clock, hc *http.Client) {
	a.form = services.NewFormService(a.db, a.draft, clock)

	a.board.Observe(display.NewTerminal(a.out).SetHTML)

	dispatcher := autosave.NewDispatcher(a.draft, a.client, a.form, autosave.UI{
		Display:   a.board,
		Navigator: a,
		Submitter: a,
		Prompt:    a,
	}, clock, a.log)

	a.scheduler = autosave.NewScheduler(dispatcher, clock, autosave.Timing{
		InitialDelay: a.config.InitialDelay,
		Interval:     a.config.Interval,
		PauseGrace:   a.config.PauseGrace,
	}, a.log)

	a.channel = uploads.NewHTTPChannel(hc, a.config.UploadTimeout, a.log)
	a.uploads = uploads.NewCoordinator(a.draft, a.client, a.channel, a.board, a.log)
	a.uploads.Register(a.config.FileFields...)
}

// Run starts autosave and the REPL. It returns when the user exits, the
// session expires or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()

	defer a.close()

	if err := a.scheduler.Start(ctx); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Editing %s draft %d (type 'help' for commands)", a.draft.Kind, a.draft.DraftID))

	// The REPL blocks on stdin, so it is not joined: an expired session
	// must end Run without waiting for another line.
	replDone := make(chan struct{})
	go func() {
		defer close(replDone)
		runREPL(ctx, a, a.promptFn(), a.reader)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.StartStatusWatcher(gctx, statusWatchInterval)
		return nil
	})

	select {
	case <-replDone:
	case <-ctx.Done():
	}
	cancel()

	return g.Wait()
}

func (a *App) close() {
	a.scheduler.Stop()
	a.channel.Wait()
	if err := a.db.Close(); err != nil {
		a.log.Error(context.Background(), "error closing database", "error", err)
	}
}

// stop ends Run.
func (a *App) stop() {
	a.mu.Lock()
	cancel := a.cancel
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// promptFn returns nil when stdin is not a terminal, so piped input runs
// without prompts.
func (a *App) promptFn() func() string {
	if !isTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	return a.getStatus
}

func (a *App) getStatus() string {
	st := a.scheduler.State()
	s := st.Phase.String()
	if st.PendingConflict {
		s += " conflict"
	}
	if busy, field := a.uploads.Busy(); busy {
		s += " uploading " + field
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) setMode(phase autosave.Phase) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase != phase {
		a.phase = phase
		printlnFn(fmt.Sprintf("Autosave %s", phase))
	}
}

// StartStatusWatcher reports autosave phase changes until ctx is done.
func (a *App) StartStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st := a.scheduler.State()
			if st.Stopped {
				continue
			}
			a.setMode(st.Phase)

		case <-ctx.Done():
			return
		}
	}
}

// CurrentURL is the page the draft is edited on, used as the return path
// after logging in again.
func (a *App) CurrentURL() string {
	u, err := a.client.Resolve(a.draft.SubmitPath())
	if err != nil {
		return a.draft.SubmitPath()
	}
	return u
}

// Navigate is reached when the session expired. A terminal cannot follow
// the redirect, so the login URL is printed and the app stops.
func (a *App) Navigate(target string) {
	printlnFn("Your session has expired. Log in at:")
	printlnFn("  " + target)
	printlnFn("then start the editor again. Unsaved changes are kept locally.")
	a.stop()
}

// Submit posts the final form once the autosave acknowledged it. On
// failure the editor keeps running and the submit can be retried.
func (a *App) Submit(ctx context.Context) error {
	values, err := a.form.Values(ctx)
	if err != nil {
		printlnFn("Error reading form:", err)
		return err
	}

	resp, err := a.client.Submit(ctx, a.draft, values)
	if err != nil {
		printlnFn("Submission failed:", err)
		return err
	}
	if resp.StatusCode != http.StatusOK {
		printlnFn(fmt.Sprintf("Submission failed: server answered %d", resp.StatusCode))
		return fmt.Errorf("%w: %d", client.ErrUnexpectedStatus, resp.StatusCode)
	}

	printlnFn("Draft submitted.")
	a.stop()
	return nil
}

// ShowConflict explains how to overwrite the other session's save.
func (a *App) ShowConflict(ctx context.Context, source string) {
	printlnFn(autosave.ConflictText + ".")
	if source == autosave.SourceSubmit {
		printlnFn("Type 'force submit' to overwrite it with your version and submit.")
		return
	}
	printlnFn("Autosave is paused. Type 'force' to overwrite it with your version.")
}
