package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/draftkeeper/internal/logging"
	"github.com/dmitrijs2005/draftkeeper/internal/timex"
)

type Phase int

const (
	PhaseInitialDelay Phase = iota
	PhaseActive
	PhasePaused
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialDelay:
		return "initial_delay"
	case PhaseActive:
		return "active"
	case PhasePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Event is a window event the scheduler can be listening for.
type Event int

const (
	EventBlur Event = iota
	EventFocus
)

func (e Event) String() string {
	if e == EventFocus {
		return "focus"
	}
	return "blur"
}

// Saver performs one save. The Dispatcher is the production implementation.
type Saver interface {
	Save(ctx context.Context, submit, force bool) Outcome
}

type Timing struct {
	InitialDelay time.Duration
	Interval     time.Duration
	PauseGrace   time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		InitialDelay: 10 * time.Second,
		Interval:     60 * time.Second,
		PauseGrace:   60 * time.Second,
	}
}

// State is a snapshot of the scheduler.
type State struct {
	Phase           Phase
	PendingConflict bool
	LastSavedAt     time.Time
	Stopped         bool
}

// Armed reports which timers are currently armed.
type Armed struct {
	Initial bool
	Repeat  bool
	Grace   bool
}

// armedTimer pairs a clock timer with the token its callback must present.
// Disarming clears the token, so a callback already waiting on the lock
// becomes a no-op.
type armedTimer struct {
	t     timex.Timer
	token uint64
}

// Scheduler is the autosave state machine of one page. All transitions
// happen under mu; the Saver is always called without holding it.
type Scheduler struct {
	saver  Saver
	clock  timex.Clock
	timing Timing
	log    logging.Logger

	mu              sync.Mutex
	ctx             context.Context
	started         bool
	stopped         bool
	phase           Phase
	pendingConflict bool
	lastSavedAt     time.Time
	focused         bool
	inFlight        int
	seq             uint64

	initial armedTimer
	repeat  armedTimer
	grace   armedTimer
}

func NewScheduler(saver Saver, clock timex.Clock, timing Timing, log logging.Logger) *Scheduler {
	return &Scheduler{
		saver:   saver,
		clock:   clock,
		timing:  timing,
		log:     log.With("component", "scheduler"),
		ctx:     context.Background(),
		focused: true,
	}
}

// Start enters the initial delay. The first save happens when it expires.
// Cancelling ctx stops the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	s.ctx = ctx
	s.phase = PhaseInitialDelay
	s.arm(&s.initial, s.timing.InitialDelay, s.onInitialDelay)
	s.log.Debug(ctx, "waiting to start autosave", "delay", s.timing.InitialDelay)

	context.AfterFunc(ctx, s.Stop)
	return nil
}

// Stop disarms every timer. Saves already in flight still complete but no
// new automatic save is started.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.disarmAll()
	s.log.Debug(s.ctx, "autosave stopped")
}

// TriggerSave saves immediately, regardless of phase or of other saves in
// flight. force overrides a pending conflict.
func (s *Scheduler) TriggerSave(ctx context.Context, submit, force bool) (Outcome, error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return Outcome{}, ErrStopped
	}
	s.inFlight++
	s.mu.Unlock()

	o := s.saver.Save(ctx, submit, force)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	s.applyOutcome(ctx, o, submit, force)
	return o, nil
}

// OnBlur handles the window losing focus. Only effective while the scheduler
// is listening for blur; a short blur is absorbed by the grace timer.
func (s *Scheduler) OnBlur() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.focused = false
	if s.stopped || !s.started || s.listeningLocked() != EventBlur {
		s.log.Debug(s.ctx, "blur ignored", "phase", s.phase)
		return
	}
	s.arm(&s.grace, s.timing.PauseGrace, s.onGraceExpired)
	s.log.Debug(s.ctx, "window blurred, pausing after grace", "grace", s.timing.PauseGrace)
}

// OnFocus handles the window regaining focus.
func (s *Scheduler) OnFocus() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.focused = true
	if s.stopped || !s.started || s.listeningLocked() != EventFocus {
		s.log.Debug(s.ctx, "focus ignored", "phase", s.phase)
		return
	}

	if s.grace.t != nil {
		s.disarm(&s.grace)
		s.log.Debug(s.ctx, "focus returned within grace, autosave continues")
		return
	}
	if s.pendingConflict {
		s.log.Debug(s.ctx, "focus returned, conflict pending; staying paused")
		return
	}
	s.resumeLocked()
}

// Listening returns the window event the scheduler currently reacts to.
// It follows from the phase and the pending grace timer alone, so repeated
// events of the other kind are no-ops.
func (s *Scheduler) Listening() Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listeningLocked()
}

func (s *Scheduler) listeningLocked() Event {
	if s.phase == PhasePaused || s.grace.t != nil {
		return EventFocus
	}
	return EventBlur
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Phase:           s.phase,
		PendingConflict: s.pendingConflict,
		LastSavedAt:     s.lastSavedAt,
		Stopped:         s.stopped,
	}
}

func (s *Scheduler) Armed() Armed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Armed{
		Initial: s.initial.t != nil,
		Repeat:  s.repeat.t != nil,
		Grace:   s.grace.t != nil,
	}
}

func (s *Scheduler) onInitialDelay(token uint64) {
	s.mu.Lock()
	if s.initial.token != token {
		s.mu.Unlock()
		return
	}
	s.initial = armedTimer{}
	s.phase = PhaseActive
	s.arm(&s.repeat, s.timing.Interval, s.onTick)
	s.log.Debug(s.ctx, "autosave active", "interval", s.timing.Interval)
	s.saveLocked()
}

func (s *Scheduler) onTick(token uint64) {
	s.mu.Lock()
	if s.repeat.token != token {
		s.mu.Unlock()
		return
	}
	s.arm(&s.repeat, s.timing.Interval, s.onTick)
	s.saveLocked()
}

func (s *Scheduler) onGraceExpired(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grace.token != token {
		return
	}
	s.grace = armedTimer{}
	s.disarm(&s.initial)
	s.disarm(&s.repeat)
	s.phase = PhasePaused
	s.log.Debug(s.ctx, "autosave paused")
}

// saveLocked runs an automatic save. It is entered with mu held and
// returns with mu released.
func (s *Scheduler) saveLocked() {
	if s.inFlight > 0 {
		s.log.Debug(s.ctx, "previous save still in flight, skipping tick")
		s.mu.Unlock()
		return
	}
	s.inFlight++
	ctx := s.ctx
	s.mu.Unlock()

	o := s.saver.Save(ctx, false, false)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	s.applyOutcome(ctx, o, false, false)
}

func (s *Scheduler) applyOutcome(ctx context.Context, o Outcome, submit, force bool) {
	switch o.Kind {
	case OutcomeSuccess:
		s.lastSavedAt = o.SavedAt
		if submit && o.Submitted {
			s.stopLocked()
			return
		}
		if force && s.pendingConflict {
			s.pendingConflict = false
			if s.focused && !s.stopped {
				s.resumeLocked()
			}
		}
	case OutcomeConflict:
		s.disarmAll()
		s.phase = PhasePaused
		s.pendingConflict = true
		s.log.Debug(ctx, "save conflict, autosave paused until a forced save")
	default:
		s.log.Debug(ctx, "save failed", "outcome", o.Kind, "status", o.StatusCode)
	}
}

func (s *Scheduler) resumeLocked() {
	s.phase = PhaseActive
	s.arm(&s.repeat, s.timing.Interval, s.onTick)
	s.log.Debug(s.ctx, "autosave resumed", "interval", s.timing.Interval)
}

// arm replaces whatever timer slot holds with a new one.
func (s *Scheduler) arm(slot *armedTimer, d time.Duration, f func(token uint64)) {
	s.disarm(slot)
	s.seq++
	token := s.seq
	slot.token = token
	slot.t = s.clock.AfterFunc(d, func() { f(token) })
}

func (s *Scheduler) disarm(slot *armedTimer) {
	if slot.t != nil {
		slot.t.Stop()
	}
	*slot = armedTimer{}
}

func (s *Scheduler) disarmAll() {
	s.disarm(&s.initial)
	s.disarm(&s.repeat)
	s.disarm(&s.grace)
}
