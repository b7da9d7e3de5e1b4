package autosave

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/draftkeeper/internal/client/client"
	"github.com/dmitrijs2005/draftkeeper/internal/client/display"
	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
	"github.com/dmitrijs2005/draftkeeper/internal/logging"
	"github.com/dmitrijs2005/draftkeeper/internal/timex"
)

// FormSource serializes the current form fields.
type FormSource interface {
	Values(ctx context.Context) (url.Values, error)
}

// UI groups the page-side collaborators a save reports to.
type UI struct {
	Display   display.Display
	Navigator display.Navigator
	Submitter display.Submitter
	Prompt    display.ConflictPrompt
}

// Conflict prompt sources.
const (
	SourceAutosave = "autosave"
	SourceSubmit   = "submit"
)

// Dispatcher sends save requests for one draft and renders their outcome.
type Dispatcher struct {
	draft  models.Draft
	client client.Client
	form   FormSource
	ui     UI
	clock  timex.Clock
	log    logging.Logger
}

func NewDispatcher(d models.Draft, c client.Client, form FormSource, ui UI, clock timex.Clock, log logging.Logger) *Dispatcher {
	return &Dispatcher{
		draft:  d,
		client: c,
		form:   form,
		ui:     ui,
		clock:  clock,
		log:    log.With("component", "dispatcher"),
	}
}

// Save posts the form once. submit asks for the final submission to follow
// a successful save; force overrides a conflicting save from another session.
// Failures are reported through the UI and the returned Outcome, never as an error.
func (d *Dispatcher) Save(ctx context.Context, submit, force bool) Outcome {
	d.log.Debug(ctx, "autosaving", "submit", submit, "force", force)

	var o Outcome
	values, err := d.form.Values(ctx)
	if err != nil {
		d.log.Debug(ctx, "form serialization failed", "error", err)
		o = Outcome{Kind: OutcomeUnknownError, Text: UnknownText}
	} else {
		resp, err := d.client.Autosave(ctx, d.draft, values, force)
		if err != nil {
			d.log.Debug(ctx, "autosave request failed", "error", err)
		}
		o = Classify(resp, err, d.ui.Navigator.CurrentURL())
		if o.Kind == OutcomeSuccess {
			o.SavedAt = d.clock.Now()
		}
	}

	d.render(ctx, &o, submit)
	return o
}

func (d *Dispatcher) render(ctx context.Context, o *Outcome, submit bool) {
	switch o.Kind {
	case OutcomeSuccess:
		if submit {
			err := d.ui.Submitter.Submit(ctx)
			if err == nil {
				o.Submitted = true
				return
			}
			d.log.Debug(ctx, "final submission failed", "error", err)
		}
		d.ui.Display.SetHTML(display.LastSavedID, timex.FormatSavedAt(o.SavedAt))
	case OutcomeAuthRequired:
		d.log.Debug(ctx, "session expired, navigating to login", "target", o.RedirectTo)
		d.ui.Navigator.Navigate(o.RedirectTo)
	case OutcomeConflict:
		d.ui.Display.SetHTML(display.LastSavedID, errorHTML(*o))
		source := SourceAutosave
		if submit {
			source = SourceSubmit
		}
		d.ui.Prompt.ShowConflict(ctx, source)
	default:
		d.ui.Display.SetHTML(display.LastSavedID, errorHTML(*o))
	}
}

// errorHTML renders a failed outcome. An unexpected success status is shown
// without the "Error:" prefix.
func errorHTML(o Outcome) string {
	if o.StatusCode >= http.StatusOK && o.StatusCode < http.StatusMultipleChoices {
		return display.ErrorHTML(o.Text)
	}
	return display.ErrorHTML("Error: " + o.Text)
}
