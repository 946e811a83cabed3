package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dreamw/travel-quote/internal/domain"
	"github.com/dreamw/travel-quote/internal/port"
	"github.com/google/uuid"
)

// revealDelay lets the reset form settle before feedback is scrolled into view
const revealDelay = 100 * time.Millisecond

// State of the submission state machine
type State int

const (
	StateIdle State = iota
	StateRateChecking
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRateChecking:
		return "rate-checking"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Controller runs one quote form through rate check, validation, delivery
// and feedback. Only one submission per controller is in flight at a time.
type Controller struct {
	limiter   *RateLimiter
	submitter port.Submitter
	presenter port.FeedbackPresenter
	form      port.Form
	logger    *log.Logger
	afterFunc func(time.Duration, func())

	mu    sync.Mutex
	state State
}

type ControllerOption func(*Controller)

func WithControllerLogger(l *log.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// WithAfterFunc replaces the timer used to delay Reveal
func WithAfterFunc(f func(time.Duration, func())) ControllerOption {
	return func(c *Controller) { c.afterFunc = f }
}

func NewController(limiter *RateLimiter, submitter port.Submitter, presenter port.FeedbackPresenter, form port.Form, opts ...ControllerOption) *Controller {
	c := &Controller{
		limiter:   limiter,
		submitter: submitter,
		presenter: presenter,
		form:      form,
		logger:    log.Default(),
		afterFunc: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HandleSubmit processes one submit action for the given form snapshot.
// It never returns an error: every failure ends up as feedback and an Outcome.
func (c *Controller) HandleSubmit(ctx context.Context, f domain.FormState) domain.Outcome {
	if !c.claim() {
		c.logger.Printf("Submit ignored: a submission is already in flight")
		return domain.OutcomeBusy
	}
	attempt := uuid.NewString()
	defer c.transition(StateIdle)

	c.presenter.Hide()

	if !c.limiter.IsAdmitted(ctx) {
		c.logger.Printf("[%s] rejected: rate limited", attempt)
		c.presenter.Show(domain.MsgRateLimited, domain.FeedbackError)
		c.transition(StateFailed)
		return domain.OutcomeRateLimited
	}

	c.transition(StateValidating)
	if err := domain.Validate(f); err != nil {
		msg := err.Error()
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			msg = ve.Message
		}
		c.logger.Printf("[%s] rejected: %v", attempt, err)
		c.presenter.Show(msg, domain.FeedbackError)
		c.transition(StateFailed)
		return domain.OutcomeInvalid
	}

	c.transition(StateSubmitting)
	c.form.SetBusy(true)
	defer c.form.SetBusy(false)

	c.logger.Printf("[%s] submitting quote request for %s", attempt, f.Email)
	if err := c.dispatch(ctx, f); err != nil {
		c.logger.Printf("[%s] submission failed: %v", attempt, err)
		c.presenter.Show(domain.MsgSendFailed, domain.FeedbackError)
		c.transition(StateFailed)
		return domain.OutcomeNetworkFailure
	}

	c.limiter.RecordAttempt(ctx)
	c.presenter.Show(domain.AcceptedMessage(f.Email), domain.FeedbackSuccess)
	c.form.Reset()
	c.afterFunc(revealDelay, c.presenter.Reveal)
	c.logger.Printf("[%s] accepted", attempt)
	c.transition(StateSucceeded)
	return domain.OutcomeAccepted
}

// claim moves Idle -> RateChecking; false if another submit is running
func (c *Controller) claim() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return false
	}
	c.state = StateRateChecking
	return true
}

func (c *Controller) transition(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// dispatch adds the reply-to field and submits. A panicking submitter is
// reported as an ordinary delivery error.
func (c *Controller) dispatch(ctx context.Context, f domain.FormState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("submitter panic: %v", r)
		}
	}()
	payload := f.Payload()
	payload[domain.FieldReplyTo] = f.Email
	return c.submitter.Submit(ctx, payload)
}
