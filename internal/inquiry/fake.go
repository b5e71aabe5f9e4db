package inquiry

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"villamarisol.com/marisol-web/internal/observability"
)

// Fake accepts every submission without contacting anything. It is used
// when no endpoint is configured.
type Fake struct {
	// Err, when set, is returned instead of a receipt.
	Err error
	now func() time.Time

	mu        sync.Mutex
	submitted []Form
}

// NewFake returns a Fake that always succeeds.
func NewFake() *Fake {
	return &Fake{now: time.Now}
}

// Submit implements Submitter.
func (f *Fake) Submit(ctx context.Context, form Form) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	if f.Err != nil {
		return Receipt{}, f.Err
	}
	now := time.Now
	if f.now != nil {
		now = f.now
	}
	at := now().UTC()
	id := ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String()

	f.mu.Lock()
	f.submitted = append(f.submitted, form)
	f.mu.Unlock()

	observability.FromContext(ctx).Info("inquiry accepted",
		zap.String("receipt", id),
		zap.String("topic", string(form.Topic)),
	)
	return Receipt{ID: id, ReceivedAt: at}, nil
}

// Submitted returns a copy of the forms accepted so far.
func (f *Fake) Submitted() []Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Form(nil), f.submitted...)
}
