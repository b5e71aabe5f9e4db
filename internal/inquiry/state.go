package inquiry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"villamarisol.com/marisol-web/internal/observability"
)

// Status is the contact form's UI state.
type Status int

const (
	Idle Status = iota
	Pending
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Failure reasons, rendered through the i18n bundle as contact.failed.<reason>.
const (
	ReasonRateLimited = "rate_limited"
	ReasonRejected    = "rejected"
	ReasonUnavailable = "unavailable"
)

// ErrInvalidTransition is returned for transitions the form cannot make.
var ErrInvalidTransition = errors.New("inquiry: invalid state transition")

var transitions = map[Status][]Status{
	Idle:      {Pending},
	Pending:   {Succeeded, Failed},
	Succeeded: {Idle},
	Failed:    {Pending, Idle},
}

// State is everything the contact form needs to render.
type State struct {
	Status  Status
	Form    Form
	Errors  FieldErrors
	Receipt Receipt
	// Reason explains a Failed state.
	Reason string
}

// NewState returns an idle form pre-filled with f.
func NewState(f Form) State {
	return State{Status: Idle, Form: f}
}

// To moves to next, or returns ErrInvalidTransition.
func (s State) To(next Status) (State, error) {
	for _, allowed := range transitions[s.Status] {
		if allowed == next {
			s.Status = next
			return s, nil
		}
	}
	return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, next)
}

// CanRetry reports whether the form offers a retry. The guest's input is
// kept in Form.
func (s State) CanRetry() bool { return s.Status == Failed }

// Process validates f and, when valid, submits it. Validation problems keep
// the form idle with Errors set. Submission errors never escape: they end in
// Failed with a Reason.
func Process(ctx context.Context, sub Submitter, f Form, now time.Time) State {
	st := NewState(f)
	if errs := f.Validate(now); errs != nil {
		st.Errors = errs
		return st
	}
	st, _ = st.To(Pending)

	rec, err := sub.Submit(ctx, f)
	if err != nil {
		st, _ = st.To(Failed)
		st.Reason = reason(err)
		observability.FromContext(ctx).Warn("inquiry failed",
			zap.String("reason", st.Reason),
			zap.Error(err),
		)
		return st
	}
	st, _ = st.To(Succeeded)
	st.Receipt = rec
	return st
}

func reason(err error) string {
	var se *SubmitError
	switch {
	case errors.Is(err, ErrRateLimited):
		return ReasonRateLimited
	case errors.As(err, &se) && !se.Temporary():
		return ReasonRejected
	default:
		return ReasonUnavailable
	}
}
