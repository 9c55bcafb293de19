// Package form implements the per-instance submission state machine shared by
// every lead form on the site.
package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"leadcapture_frontend/internal/events"
	"leadcapture_frontend/internal/leads/client"
	"leadcapture_frontend/internal/leads/domain"
	"leadcapture_frontend/internal/leads/validation"
	"leadcapture_frontend/platform/apperr"
	"leadcapture_frontend/platform/logger"

	"golang.org/x/time/rate"
)

// ErrBusy is returned when a submit or edit arrives while a submission is in
// flight. The in-flight submission is unaffected.
var ErrBusy = errors.New("form: submission already in progress")

// User-facing messages owned by the state machine.
const (
	MsgThrottled    = "Please wait a moment before submitting again."
	MsgSubmitFailed = "Failed to submit. Try again later."
)

// Reset reasons carried on LeadFormReset events.
const (
	ResetTimer = "timer"
	ResetEdit  = "edit"
	ResetClose = "close"
)

// Validator turns raw fields into a validated inquiry.
type Validator interface {
	Validate(v validation.Variant, fields domain.Fields) (domain.LeadInquiry, error)
}

// Submitter delivers a validated inquiry to the lead API.
type Submitter interface {
	Submit(ctx context.Context, in domain.LeadInquiry) (client.Result, error)
}

// Options configures a Form.
type Options struct {
	// MinInterval is the minimum gap after an accepted submission before the
	// next one. Zero disables throttling.
	MinInterval time.Duration
	Bus         events.Bus
	Log         *logger.Logger
}

// Snapshot is a point-in-time copy of a form's visible state.
type Snapshot struct {
	Variant string
	State   domain.SubmissionState
	Message string
	Fields  domain.Fields
	PlotID  string
}

// Form is one form instance. It is safe for concurrent use; at most one
// submission is in flight at any time.
type Form struct {
	variant   validation.Variant
	validator Validator
	submitter Submitter
	limiter   *rate.Limiter
	bus       events.Bus
	log       *logger.Logger

	mu      sync.Mutex
	state   domain.SubmissionState
	message string
	fields  domain.Fields
	plotID  string
	timer   *time.Timer
	// gen invalidates reset timers that fired after a newer transition.
	gen     uint64
	touched time.Time
}

// New creates an idle form for variant v.
func New(v validation.Variant, val Validator, sub Submitter, opts Options) *Form {
	f := &Form{
		variant:   v,
		validator: val,
		submitter: sub,
		bus:       opts.Bus,
		log:       opts.Log,
		state:     domain.StateIdle,
		fields:    domain.Fields{},
		plotID:    v.PlotID,
		touched:   time.Now(),
	}
	if f.log == nil {
		f.log = logger.Discard()
	}
	if opts.MinInterval > 0 {
		f.limiter = rate.NewLimiter(rate.Every(opts.MinInterval), 1)
	}
	return f
}

// Variant returns the variant name.
func (f *Form) Variant() string {
	return f.variant.Name
}

// Snapshot returns the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{
		Variant: f.variant.Name,
		State:   f.state,
		Message: f.message,
		Fields:  f.fields.Clone(),
		PlotID:  f.plotID,
	}
}

// SelectPlot binds the form to the plot chosen on the page.
func (f *Form) SelectPlot(plotID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plotID = plotID
	f.touched = time.Now()
}

// Submit validates fields and, when valid, sends them to the lead API. A nil
// fields map submits the values already held by the form. Failures leave the
// form in the error state with fields retained and return an *apperr.Error.
func (f *Form) Submit(ctx context.Context, fields domain.Fields) (Snapshot, error) {
	f.mu.Lock()
	if f.state == domain.StateSubmitting {
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, ErrBusy
	}

	f.stopTimerLocked()
	f.touched = time.Now()
	if fields != nil {
		f.fields = fields.Canonical()
	}
	f.state = domain.StateSubmitting
	f.message = ""
	variant := f.variant.WithPlot(f.plotID)

	inquiry, err := f.validator.Validate(variant, f.fields)
	if err != nil {
		return f.failLocked(ctx, variant, err, 0)
	}
	if f.limiter != nil && f.limiter.Tokens() < 1 {
		f.log.Debug("form submit throttled", "variant", variant.Name)
		return f.failLocked(ctx, variant, apperr.TooManyRequests(MsgThrottled), 0)
	}
	f.mu.Unlock()

	start := time.Now()
	res, err := f.submitter.Submit(ctx, inquiry)
	latency := time.Since(start)

	f.mu.Lock()
	if err != nil {
		return f.failLocked(ctx, variant, err, latency)
	}

	// Only accepted leads count against the throttle, so a failed call can be
	// retried at once.
	if f.limiter != nil {
		f.limiter.Allow()
	}
	f.state = domain.StateSuccess
	f.message = variant.Confirmation()
	f.fields = domain.Fields{}
	f.scheduleResetLocked()
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.publish(ctx, events.LeadSubmissionSucceeded{
		BaseEvent: events.NewBaseEvent(),
		Variant:   variant.Name,
		Source:    string(inquiry.Source),
		Endpoint:  res.Endpoint,
		Email:     inquiry.Email,
		Phone:     inquiry.Phone,
		PlotID:    inquiry.PlotID,
		Latency:   latency,
	})
	return snap, nil
}

// failLocked moves to the error state and releases the lock.
func (f *Form) failLocked(ctx context.Context, v validation.Variant, err error, latency time.Duration) (Snapshot, error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Wrap(apperr.KindInternal, MsgSubmitFailed, err)
	}

	f.state = domain.StateError
	f.message = apperr.Message(appErr, MsgSubmitFailed)
	f.gen++
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.publish(ctx, events.LeadSubmissionFailed{
		BaseEvent: events.NewBaseEvent(),
		Variant:   v.Name,
		Source:    string(v.Source),
		Endpoint:  v.Endpoint,
		Kind:      appErr.Kind.String(),
		Message:   snap.Message,
		Latency:   latency,
	})
	return snap, appErr
}

// Edit merges fields into the form. A settled form returns to idle.
func (f *Form) Edit(fields domain.Fields) (Snapshot, error) {
	f.mu.Lock()
	if f.state == domain.StateSubmitting {
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, ErrBusy
	}

	for k, v := range fields.Canonical() {
		f.fields[k] = v
	}
	f.touched = time.Now()
	from := f.resetLocked()
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.publishReset(from, ResetEdit)
	return snap, nil
}

// Close is the modal close action. A settled form returns to idle at once.
func (f *Form) Close() Snapshot {
	f.mu.Lock()
	from := domain.SubmissionState("")
	if f.state != domain.StateSubmitting {
		from = f.resetLocked()
	}
	f.touched = time.Now()
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.publishReset(from, ResetClose)
	return snap
}

// Stop cancels any pending reset timer.
func (f *Form) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopTimerLocked()
}

// idleSince reports whether the form has not been touched since t.
func (f *Form) idleSince(t time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state != domain.StateSubmitting && f.touched.Before(t)
}

// resetLocked returns a settled form to idle and reports the state it left,
// or "" when nothing changed.
func (f *Form) resetLocked() domain.SubmissionState {
	if !f.state.Settled() {
		return ""
	}
	from := f.state
	f.stopTimerLocked()
	f.state = domain.StateIdle
	f.message = ""
	return from
}

func (f *Form) scheduleResetLocked() {
	f.stopTimerLocked()
	if f.variant.ResetAfter <= 0 {
		return
	}
	gen := f.gen
	f.timer = time.AfterFunc(f.variant.ResetAfter, func() {
		f.mu.Lock()
		if f.gen != gen {
			f.mu.Unlock()
			return
		}
		from := f.resetLocked()
		f.mu.Unlock()
		f.publishReset(from, ResetTimer)
	})
}

func (f *Form) stopTimerLocked() {
	f.gen++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Form) publishReset(from domain.SubmissionState, reason string) {
	if from == "" {
		return
	}
	f.publish(context.Background(), events.LeadFormReset{
		BaseEvent: events.NewBaseEvent(),
		Variant:   f.variant.Name,
		From:      string(from),
		Reason:    reason,
	})
}

func (f *Form) publish(ctx context.Context, event events.Event) {
	if f.bus == nil {
		return
	}
	f.bus.Publish(ctx, event)
}
