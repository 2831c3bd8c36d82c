package pushgen

import "context"

// Pool bounds the number of in-flight generation calls so a slow upstream
// cannot pile up goroutines. Do blocks until a slot is free, runs fn off
// the caller's path and awaits its result.
type Pool struct {
	slots chan struct{}
}

// NewPool creates a pool with the given capacity (minimum 1).
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{slots: make(chan struct{}, size)}
}

// Do schedules fn on the pool and waits for its outcome or for ctx to end.
func (p *Pool) Do(ctx context.Context, fn func() (string, error)) (string, error) {
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() { <-p.slots }()
		text, err := fn()
		done <- outcome{text: text, err: err}
	}()

	select {
	case out := <-done:
		return out.text, out.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
