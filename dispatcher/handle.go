package dispatcher

import "context"

// Handle lets a caller wait for a dispatched handler to finish, or drop it
// and let the handler run to completion on its own. It plays the role the
// original implementation's tokio JoinHandle plays.
type Handle struct {
	done chan struct{}
}

// Wait blocks until the handler completes or ctx is done, whichever comes
// first.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
