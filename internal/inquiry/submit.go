package inquiry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"villamarisol.com/marisol-web/internal/observability"
	"villamarisol.com/marisol-web/internal/ratelimit"
)

// Receipt acknowledges an accepted submission.
type Receipt struct {
	ID         string
	ReceivedAt time.Time
}

// Submitter delivers a validated form.
type Submitter interface {
	Submit(ctx context.Context, f Form) (Receipt, error)
}

// ErrRateLimited is returned when a client submitted too often.
var ErrRateLimited = errors.New("inquiry: too many submissions")

// SubmitError is a failure reported by the remote endpoint.
type SubmitError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *SubmitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("inquiry: endpoint returned status %d", e.Status)
	}
	return fmt.Sprintf("inquiry: endpoint returned status %d: %s", e.Status, e.Message)
}

// Temporary reports whether trying again later may succeed.
func (e *SubmitError) Temporary() bool {
	return e.Status == 0 || e.Status == 429 || e.Status >= 500
}

type clientKeyContextKey struct{}

// WithClientKey records who is submitting, usually the client IP.
func WithClientKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, clientKeyContextKey{}, key)
}

// ClientKey returns the key stored by WithClientKey.
func ClientKey(ctx context.Context) string {
	v, _ := ctx.Value(clientKeyContextKey{}).(string)
	return v
}

// Limited counts submissions per client before delegating to Next. Limiter
// failures let the submission through.
type Limited struct {
	Next    Submitter
	Limiter ratelimit.Limiter
}

// Submit implements Submitter.
func (l Limited) Submit(ctx context.Context, f Form) (Receipt, error) {
	if l.Limiter != nil {
		d, err := l.Limiter.Allow(ctx, "inquiry:"+ClientKey(ctx))
		switch {
		case err != nil:
			observability.FromContext(ctx).Warn("inquiry: rate limiter unavailable", zap.Error(err))
		case !d.Allowed:
			return Receipt{}, ErrRateLimited
		}
	}
	return l.Next.Submit(ctx, f)
}
