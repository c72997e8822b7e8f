package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
)

// retryKeys hands out one Idempotency-Key per logical mutation. A key
// outlives an attempt whose outcome is unknown (transport failure, 5xx,
// cancellation) so re-issuing the same mutation lets the backend replay its
// first answer. Any settled attempt drops every pending key.
type retryKeys struct {
	mu   sync.Mutex
	keys map[string]string
}

// attach returns ctx carrying the key for the mutation identified by sig.
func (k *retryKeys) attach(ctx context.Context, sig string) context.Context {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.keys == nil {
		k.keys = make(map[string]string)
	}
	key, ok := k.keys[sig]
	if !ok {
		key = uuid.NewString()
		k.keys[sig] = key
	}
	return client.WithIdempotencyKey(ctx, key)
}

// settle records the outcome of the last attempt.
func (k *retryKeys) settle(err error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err != nil && outcomeUnknown(err) {
		return
	}
	clear(k.keys)
}

func outcomeUnknown(err error) bool {
	return errors.Is(err, client.ErrUnavailable) ||
		errors.Is(err, client.ErrServer) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
